package models

import "time"

// SyncCheckpoint marks the newest message already ingested for an account.
type SyncCheckpoint struct {
	Phone        string     `gorm:"size:20;primaryKey" json:"phone"`
	LastSyncedAt time.Time  `gorm:"not null" json:"last_synced_at"`
	LastRunAt    *time.Time `json:"last_run_at,omitempty"`
	LastInserted int        `gorm:"not null;default:0" json:"last_inserted"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
