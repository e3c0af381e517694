package services

import (
	"context"
	"testing"
	"time"

	"momopress/internal/budget"
	"momopress/internal/models"
	"momopress/internal/testutil"
)

func TestGetLimits(t *testing.T) {
	ctx := context.Background()

	t.Run("unset_limits_are_zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewLedgerService(db))

		limits, err := svc.GetLimits(ctx, "0781234567")
		testutil.AssertNoError(t, err)
		if limits.Phone != "0781234567" || limits.General != 0 || limits.Bundle != 0 {
			t.Errorf("expected zero limits, got %+v", limits)
		}
	})

	t.Run("stored_limits", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewLedgerService(db))
		testutil.CreateTestLimits(t, db, models.BudgetLimits{Phone: "0781234567", General: 100000, Utility: 5000})

		limits, err := svc.GetLimits(ctx, "0781234567")
		testutil.AssertNoError(t, err)
		if limits.General != 100000 || limits.Utility != 5000 {
			t.Errorf("unexpected limits %+v", limits)
		}
	})
}

func TestUpsertLimits(t *testing.T) {
	ctx := context.Background()

	t.Run("insert_then_replace", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewLedgerService(db))

		_, err := svc.UpsertLimits(ctx, models.BudgetLimits{Phone: "0781234567", General: 100000, Bundle: 3000})
		testutil.AssertNoError(t, err)

		_, err = svc.UpsertLimits(ctx, models.BudgetLimits{Phone: "0781234567", General: 80000})
		testutil.AssertNoError(t, err)

		limits, err := svc.GetLimits(ctx, "0781234567")
		testutil.AssertNoError(t, err)
		if limits.General != 80000 {
			t.Errorf("expected general 80000, got %d", limits.General)
		}
		if limits.Bundle != 0 {
			t.Errorf("expected bundle limit cleared, got %d", limits.Bundle)
		}
		testutil.AssertRowCount(t, db, &models.BudgetLimits{}, 1)
	})

	t.Run("negative_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewLedgerService(db))

		_, err := svc.UpsertLimits(ctx, models.BudgetLimits{Phone: "0781234567", Agent: -5})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("missing_phone", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewLedgerService(db))

		_, err := svc.UpsertLimits(ctx, models.BudgetLimits{General: 5})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestSetGeneralLimit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBudgetService(db, NewLedgerService(db))
	testutil.CreateTestLimits(t, db, models.BudgetLimits{Phone: "0781234567", General: 1000, Bundle: 300})

	limits, err := svc.SetGeneralLimit(context.Background(), "0781234567", 150000)
	testutil.AssertNoError(t, err)
	if limits.General != 150000 || limits.Bundle != 300 {
		t.Errorf("expected general replaced and bundle kept, got %+v", limits)
	}
}

func TestCheckAlerts(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 17, 12, 0, 0, 0, time.UTC)

	t.Run("general_limit_exceeded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewLedgerService(db))
		phone := testutil.UniquePhone()
		testutil.CreateTestLimits(t, db, models.BudgetLimits{Phone: phone, General: 100000})
		testutil.CreateTestMerchantPayment(t, db, phone, 50000, now.Add(-48*time.Hour))
		testutil.CreateTestTransfer(t, db, phone, 60000, models.DirectionSent, now.Add(-24*time.Hour))

		alerts, err := svc.CheckAlerts(ctx, phone, now)
		testutil.AssertNoError(t, err)
		if len(alerts) != 1 {
			t.Fatalf("expected 1 alert, got %d", len(alerts))
		}
		if alerts[0].Label != budget.GeneralLabel || alerts[0].Exceeded != 10000 {
			t.Errorf("unexpected alert %+v", alerts[0])
		}
	})

	t.Run("last_month_ignored", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewLedgerService(db))
		phone := testutil.UniquePhone()
		testutil.CreateTestLimits(t, db, models.BudgetLimits{Phone: phone, MerchantPayment: 1000})
		testutil.CreateTestMerchantPayment(t, db, phone, 5000, time.Date(2024, 4, 28, 10, 0, 0, 0, time.UTC))

		alerts, err := svc.CheckAlerts(ctx, phone, now)
		testutil.AssertNoError(t, err)
		if len(alerts) != 0 {
			t.Errorf("expected no alerts, got %+v", alerts)
		}
	})

	t.Run("no_limits_no_alerts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewLedgerService(db))
		phone := testutil.UniquePhone()
		testutil.CreateTestMerchantPayment(t, db, phone, 5_000_000, now)

		alerts, err := svc.CheckAlerts(ctx, phone, now)
		testutil.AssertNoError(t, err)
		if len(alerts) != 0 {
			t.Errorf("expected no alerts, got %+v", alerts)
		}
	})
}
