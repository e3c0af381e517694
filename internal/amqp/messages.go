package amqp

import (
	"encoding/json"
	"time"

	"momopress/internal/budget"
)

// BudgetAlertMessage announces the alerts raised for one account after a sync.
type BudgetAlertMessage struct {
	Phone       string         `json:"phone"`
	Alerts      []budget.Alert `json:"alerts"`
	EvaluatedAt time.Time      `json:"evaluated_at"`
}

// NewBudgetAlertMessage creates an alert message stamped with the current time.
func NewBudgetAlertMessage(phone string, alerts []budget.Alert) *BudgetAlertMessage {
	return &BudgetAlertMessage{
		Phone:       phone,
		Alerts:      alerts,
		EvaluatedAt: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *BudgetAlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// BudgetAlertMessageFromJSON decodes a message published by PublishBudgetAlerts.
func BudgetAlertMessageFromJSON(data []byte) (*BudgetAlertMessage, error) {
	var msg BudgetAlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
