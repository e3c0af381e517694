package models

import "time"

// RawMessage is an SMS as read from a message source. It is never stored
// as-is; see InboxMessage for the staged upload form.
type RawMessage struct {
	Sender    string    `json:"sender"`
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
}

// InboxMessage is an SMS uploaded by the device and waiting to be synced.
type InboxMessage struct {
	Base
	Phone      string    `gorm:"size:20;not null;uniqueIndex:idx_inbox_unique,priority:1;index:idx_inbox_phone_received,priority:1" json:"phone"`
	Sender     string    `gorm:"size:64;not null;uniqueIndex:idx_inbox_unique,priority:2" json:"sender"`
	ReceivedAt time.Time `gorm:"not null;uniqueIndex:idx_inbox_unique,priority:3;index:idx_inbox_phone_received,priority:2" json:"received_at"`
	BodyHash   string    `gorm:"size:64;not null;uniqueIndex:idx_inbox_unique,priority:4" json:"-"`
	Body       string    `gorm:"type:text;not null" json:"body"`
}

// Raw converts the staged row back to the message-source shape.
func (m *InboxMessage) Raw() RawMessage {
	return RawMessage{Sender: m.Sender, Body: m.Body, Timestamp: m.ReceivedAt}
}
