package services

import (
	"cmp"
	"context"
	"slices"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"momopress/internal/budget"
	apperrors "momopress/internal/errors"
	"momopress/internal/models"
)

// ledgerService stores ingested transactions in their per-category tables.
type ledgerService struct {
	db *gorm.DB
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(db *gorm.DB) LedgerServicer {
	return &ledgerService{db: db}
}

// Record inserts tx, ignoring a conflict on the primary key.
func (s *ledgerService) Record(ctx context.Context, tx models.Transaction) (bool, error) {
	if tx == nil || tx.GetID() == "" || tx.GetPhone() == "" {
		return false, apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction id and phone are required")
	}
	if tx.GetAmount() < 0 {
		return false, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount cannot be negative")
	}

	db := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true})

	var result *gorm.DB
	switch v := tx.(type) {
	case *models.MoneyTransfer:
		result = db.Create(v)
	case *models.MerchantPayment:
		result = db.Create(v)
	case *models.Bundle:
		result = db.Create(v)
	case *models.BankTransfer:
		result = db.Create(v)
	case *models.OtherTransaction:
		result = db.Create(v)
	case *models.AgentTransaction:
		result = db.Create(v)
	case *models.Utility:
		result = db.Create(v)
	default:
		return false, apperrors.ErrUnknownTransaction
	}

	if result.Error != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Spending sums the debits of every category inside window, bounds included.
func (s *ledgerService) Spending(ctx context.Context, phone string, window budget.Window) (budget.Aggregates, error) {
	w := window.UTC()
	agg := make(budget.Aggregates, len(models.Categories))

	for _, m := range models.TransactionModels() {
		q := s.db.WithContext(ctx).Model(m).
			Select("COALESCE(SUM(amount), 0)").
			Where("phone = ? AND date >= ? AND date <= ?", phone, w.Start, w.End)
		if m.Category().HasDirection() {
			q = q.Where("direction = ?", models.DirectionSent)
		}

		var sum int64
		if err := q.Scan(&sum).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		agg[m.Category()] = sum
	}
	return agg, nil
}

// Entries merges the seven tables into one list, newest first.
func (s *ledgerService) Entries(ctx context.Context, phone string, window *budget.Window) ([]models.Entry, error) {
	base := s.db.WithContext(ctx).Where("phone = ?", phone)
	if window != nil {
		w := window.UTC()
		base = base.Where("date >= ? AND date <= ?", w.Start, w.End)
	}
	base = base.Session(&gorm.Session{})

	finders := []func(*gorm.DB) ([]models.Transaction, error){
		findAll[models.MoneyTransfer],
		findAll[models.BankTransfer],
		findAll[models.MerchantPayment],
		findAll[models.Bundle],
		findAll[models.Utility],
		findAll[models.AgentTransaction],
		findAll[models.OtherTransaction],
	}

	var entries []models.Entry
	for _, find := range finders {
		txs, err := find(base)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		for _, tx := range txs {
			entries = append(entries, models.NewEntry(tx))
		}
	}

	slices.SortStableFunc(entries, func(a, b models.Entry) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return entries, nil
}

func findAll[T any, PT interface {
	*T
	models.Transaction
}](db *gorm.DB) ([]models.Transaction, error) {
	var rows []T
	if err := db.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.Transaction, len(rows))
	for i := range rows {
		out[i] = PT(&rows[i])
	}
	return out, nil
}
