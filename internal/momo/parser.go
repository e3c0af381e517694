// Package momo classifies MTN Mobile Money (RWF) SMS notifications and
// turns them into typed transaction records.
package momo

import (
	"strings"
	"time"

	"momopress/internal/models"
	"momopress/internal/uuid"
)

// Match is the outcome of classifying one message body. Fields a template
// does not capture are left at their zero value.
type Match struct {
	Template   string
	Category   models.Category
	Direction  models.Direction
	BundleType models.BundleType
	Amount     int64
	Fee        int64
	Name       string
	Phone      string
	Code       string
	Token      string
	Reference  string
}

// Recognized reports whether a template matched.
func (m Match) Recognized() bool { return m.Template != "" }

// Classify runs body through the template table. Unrecognised text yields
// CategoryOther with no fields; it never fails.
func Classify(body string) Match {
	m := Match{Category: models.CategoryOther, Direction: models.DirectionSent}

	for _, t := range templates {
		g := t.groups(body)
		if g == nil {
			continue
		}

		m.Template = t.name
		m.Category = t.category
		m.Direction = t.direction
		m.BundleType = t.bundleType
		if amount, ok := parseAmount(g["amount"]); ok {
			m.Amount = amount
		}
		m.Name = strings.TrimSpace(g["name"])
		if m.Name == "" {
			m.Name = t.defaultName
		}
		m.Phone = g["phone"]
		m.Code = g["code"]
		m.Token = g["token"]
		break
	}

	if sub := feePattern.FindStringSubmatch(body); sub != nil {
		if fee, ok := parseAmount(sub[1]); ok {
			m.Fee = fee
		}
	}
	if sub := referencePattern.FindStringSubmatch(body); sub != nil {
		m.Reference = sub[1]
	}
	return m
}

// Parse classifies msg and builds the record for its category, owned by
// ownerPhone. The record id is derived from the owner and the message, so
// parsing the same message twice for one account yields the same id.
func Parse(msg models.RawMessage, ownerPhone string) models.Transaction {
	m := Classify(msg.Body)

	rec := models.Record{
		ID:        uuid.FromMessage(ownerPhone, msg.Sender, msg.Body, msg.Timestamp),
		Phone:     ownerPhone,
		Amount:    m.Amount,
		Date:      msg.Timestamp.UTC().Truncate(time.Millisecond),
		Reference: m.Reference,
	}

	switch m.Category {
	case models.CategoryMoneyTransfer:
		return &models.MoneyTransfer{
			Record:            rec,
			Direction:         m.Direction,
			CounterpartyName:  m.Name,
			CounterpartyPhone: m.Phone,
			Fee:               m.Fee,
		}
	case models.CategoryMerchantPayment:
		return &models.MerchantPayment{Record: rec, MerchantName: m.Name, MerchantCode: m.Code, Fee: m.Fee}
	case models.CategoryBundle:
		return &models.Bundle{Record: rec, BundleType: m.BundleType}
	case models.CategoryBankTransfer:
		return &models.BankTransfer{Record: rec, Direction: m.Direction, BankName: m.Name, AccountRef: m.Code}
	case models.CategoryAgent:
		return &models.AgentTransaction{Record: rec, AgentName: m.Name, AgentPhone: m.Phone, Fee: m.Fee}
	case models.CategoryUtility:
		return &models.Utility{Record: rec, Provider: m.Name, Token: m.Token}
	}
	return &models.OtherTransaction{Record: rec, Name: m.Name, Body: msg.Body}
}
