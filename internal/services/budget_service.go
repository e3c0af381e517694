package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"momopress/internal/budget"
	apperrors "momopress/internal/errors"
	"momopress/internal/models"
)

var limitColumns = []string{
	"general", "money_transfer", "bank_transfer", "merchant_payment",
	"bundle", "utility", "agent", "other",
}

// budgetService handles budget limits and month-to-date alert checks.
type budgetService struct {
	db     *gorm.DB
	ledger LedgerServicer
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, ledger LedgerServicer) BudgetServicer {
	return &budgetService{db: db, ledger: ledger}
}

// GetLimits returns the stored limits, or all-zero limits when none are set.
func (s *budgetService) GetLimits(ctx context.Context, phone string) (*models.BudgetLimits, error) {
	var limits models.BudgetLimits
	if err := s.db.WithContext(ctx).Where("phone = ?", phone).First(&limits).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.BudgetLimits{Phone: phone}, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &limits, nil
}

// UpsertLimits replaces every limit of limits.Phone.
func (s *budgetService) UpsertLimits(ctx context.Context, limits models.BudgetLimits) (*models.BudgetLimits, error) {
	if limits.Phone == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "phone is required")
	}
	if limits.General < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "limits cannot be negative")
	}
	for _, c := range models.Categories {
		if limits.For(c) < 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "limits cannot be negative")
		}
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "phone"}},
			DoUpdates: clause.AssignmentColumns(limitColumns),
		}).
		Create(&limits).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &limits, nil
}

// SetGeneralLimit changes the general limit and keeps the category limits.
func (s *budgetService) SetGeneralLimit(ctx context.Context, phone string, general int64) (*models.BudgetLimits, error) {
	limits, err := s.GetLimits(ctx, phone)
	if err != nil {
		return nil, err
	}
	limits.General = general
	return s.UpsertLimits(ctx, *limits)
}

// CheckAlerts evaluates the month-to-date spending of phone. now decides
// both the window end and, through its location, where the month starts.
func (s *budgetService) CheckAlerts(ctx context.Context, phone string, now time.Time) ([]budget.Alert, error) {
	limits, err := s.GetLimits(ctx, phone)
	if err != nil {
		return nil, err
	}

	agg, err := s.ledger.Spending(ctx, phone, budget.MonthToDate(now))
	if err != nil {
		return nil, err
	}
	return budget.Evaluate(*limits, agg), nil
}
