package models

import (
	"time"

	"momopress/internal/uuid"

	"gorm.io/gorm"
)

// Base contains common columns for mutable, server-owned tables
type Base struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}

// Record contains the columns shared by every ingested transaction table.
// Rows are immutable, so there is no UpdatedAt or soft delete, and the ID is
// derived from the source message rather than generated.
type Record struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Phone     string    `gorm:"size:20;not null;index" json:"phone"`
	Amount    int64     `gorm:"type:bigint;not null" json:"amount"`
	Date      time.Time `gorm:"not null;index" json:"date"`
	Reference string    `gorm:"size:64" json:"reference,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *Record) GetID() string        { return r.ID }
func (r *Record) GetPhone() string     { return r.Phone }
func (r *Record) GetAmount() int64     { return r.Amount }
func (r *Record) GetDate() time.Time   { return r.Date }
func (r *Record) GetReference() string { return r.Reference }
