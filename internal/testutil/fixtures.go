package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"momopress/internal/models"
	"momopress/internal/uuid"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plaintext password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// UniquePhone returns a valid, unused Rwandan MSISDN.
func UniquePhone() string {
	return fmt.Sprintf("078%07d", nextID()%10_000_000)
}

// CreateTestUser creates a user with a hashed password and unique phone.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithPhone(t, db, UniquePhone())
}

// CreateTestUserWithPhone creates a user with the given phone.
func CreateTestUserWithPhone(t *testing.T, db *gorm.DB, phone string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Phone:    phone,
		Name:     fmt.Sprintf("Test User %d", nextID()),
		Password: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestLimits stores budget limits for a phone.
func CreateTestLimits(t *testing.T, db *gorm.DB, limits models.BudgetLimits) *models.BudgetLimits {
	t.Helper()

	if err := db.Create(&limits).Error; err != nil {
		t.Fatalf("failed to create test limits: %v", err)
	}
	return &limits
}

// NewRecord returns the shared columns of a transaction with a fresh id.
func NewRecord(phone string, amount int64, date time.Time) models.Record {
	return models.Record{
		ID:     uuid.New(),
		Phone:  phone,
		Amount: amount,
		Date:   date.UTC(),
	}
}

// CreateTestTransaction stores any transaction variant.
func CreateTestTransaction(t *testing.T, db *gorm.DB, tx models.Transaction) models.Transaction {
	t.Helper()

	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test %T: %v", tx, err)
	}
	return tx
}

// CreateTestTransfer stores a money transfer.
func CreateTestTransfer(t *testing.T, db *gorm.DB, phone string, amount int64, dir models.Direction, date time.Time) *models.MoneyTransfer {
	t.Helper()

	tx := &models.MoneyTransfer{
		Record:            NewRecord(phone, amount, date),
		Direction:         dir,
		CounterpartyName:  fmt.Sprintf("Counterparty %d", nextID()),
		CounterpartyPhone: "250788000000",
	}
	CreateTestTransaction(t, db, tx)
	return tx
}

// CreateTestMerchantPayment stores a merchant payment.
func CreateTestMerchantPayment(t *testing.T, db *gorm.DB, phone string, amount int64, date time.Time) *models.MerchantPayment {
	t.Helper()

	tx := &models.MerchantPayment{
		Record:       NewRecord(phone, amount, date),
		MerchantName: fmt.Sprintf("Shop %d", nextID()),
		MerchantCode: "12845",
	}
	CreateTestTransaction(t, db, tx)
	return tx
}

// CreateTestInboxMessage stages a raw SMS for a phone.
func CreateTestInboxMessage(t *testing.T, db *gorm.DB, phone, sender, body string, at time.Time) *models.InboxMessage {
	t.Helper()

	msg := &models.InboxMessage{
		Phone:      phone,
		Sender:     sender,
		ReceivedAt: at.UTC(),
		BodyHash:   fmt.Sprintf("hash-%d", nextID()),
		Body:       body,
	}
	if err := db.Create(msg).Error; err != nil {
		t.Fatalf("failed to create test inbox message: %v", err)
	}
	return msg
}
