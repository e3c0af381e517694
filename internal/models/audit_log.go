package models

// Audit actions.
const (
	AuditActionRegister     = "REGISTER"
	AuditActionLogin        = "LOGIN"
	AuditActionUpdateLimits = "UPDATE_LIMITS"
	AuditActionSync         = "SYNC"
	AuditActionOnboarding   = "ONBOARDING"
)

// AuditLog records account operations.
type AuditLog struct {
	Base
	Phone        string `gorm:"size:20;not null;index" json:"phone"`
	Action       string `gorm:"not null" json:"action"`
	ResourceType string `gorm:"not null" json:"resource_type"`
	ResourceID   string `json:"resource_id"`
	IPAddress    string `json:"ip_address"`
	Changes      string `json:"changes,omitempty"`
}
