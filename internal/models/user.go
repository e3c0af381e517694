package models

import "time"

// User is the account that owns ingested transactions. Balance is always the
// latest value reported by an SMS, never computed from transactions.
type User struct {
	Base
	Phone            string     `gorm:"size:20;uniqueIndex;not null" json:"phone"`
	Name             string     `json:"name"`
	Password         string     `gorm:"not null" json:"-"`
	Balance          int64      `gorm:"type:bigint;not null;default:0" json:"balance"`
	BalanceUpdatedAt *time.Time `json:"balance_updated_at,omitempty"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`
}
