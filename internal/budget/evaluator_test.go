package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momopress/internal/models"
)

func TestEvaluate(t *testing.T) {
	t.Run("general_limit_against_sum", func(t *testing.T) {
		limits := models.BudgetLimits{General: 100000, MerchantPayment: 0}
		agg := Aggregates{
			models.CategoryMerchantPayment: 50000,
			models.CategoryMoneyTransfer:   60000,
		}

		alerts := Evaluate(limits, agg)

		require.Len(t, alerts, 1)
		assert.Equal(t, GeneralLabel, alerts[0].Label)
		assert.Equal(t, int64(10000), alerts[0].Exceeded)
		assert.Equal(t, int64(110000), alerts[0].Spent)
		assert.Empty(t, alerts[0].Category)
	})

	t.Run("zero_limits_never_alert", func(t *testing.T) {
		agg := Aggregates{}
		for _, c := range models.Categories {
			agg[c] = 1_000_000
		}
		assert.Empty(t, Evaluate(models.BudgetLimits{}, agg))
	})

	t.Run("equal_to_limit_is_not_exceeded", func(t *testing.T) {
		limits := models.BudgetLimits{General: 5000, Bundle: 5000}
		agg := Aggregates{models.CategoryBundle: 5000}
		assert.Empty(t, Evaluate(limits, agg))
	})

	t.Run("category_alerts_in_fixed_order", func(t *testing.T) {
		limits := models.BudgetLimits{
			MoneyTransfer:   100,
			BankTransfer:    100,
			MerchantPayment: 100,
			Bundle:          100,
			Utility:         100,
			Agent:           100,
			Other:           100,
		}
		agg := Aggregates{}
		for _, c := range models.Categories {
			agg[c] = 150
		}

		alerts := Evaluate(limits, agg)

		require.Len(t, alerts, 7)
		labels := make([]string, len(alerts))
		for i, a := range alerts {
			labels[i] = a.Label
			assert.Equal(t, int64(50), a.Exceeded)
		}
		assert.Equal(t, []string{
			"Money Transfers", "Bank Transfers", "Merchant Payments", "Bundles", "Utilities", "Agents", "Others",
		}, labels)
	})

	t.Run("general_and_category_together", func(t *testing.T) {
		limits := models.BudgetLimits{General: 1000, Utility: 200}
		agg := Aggregates{models.CategoryUtility: 900, models.CategoryAgent: 300}

		alerts := Evaluate(limits, agg)

		require.Len(t, alerts, 2)
		assert.Equal(t, GeneralLabel, alerts[0].Label)
		assert.Equal(t, int64(200), alerts[0].Exceeded)
		assert.Equal(t, models.CategoryUtility, alerts[1].Category)
		assert.Equal(t, int64(700), alerts[1].Exceeded)
	})

	t.Run("negative_limit_treated_as_disabled", func(t *testing.T) {
		limits := models.BudgetLimits{General: -1}
		assert.Empty(t, Evaluate(limits, Aggregates{models.CategoryOther: 10}))
	})
}

func TestAggregatesTotal(t *testing.T) {
	assert.Zero(t, Aggregates{}.Total())
	assert.Equal(t, int64(30), Aggregates{models.CategoryBundle: 10, models.CategoryUtility: 20}.Total())
}
