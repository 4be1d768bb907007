package services_test

import (
	"testing"
	"time"

	"pgstay-backend/models"
	"pgstay-backend/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDiscount(t *testing.T) {
	tests := []struct {
		name     string
		duration int
		want     services.Discount
	}{
		{"one month no discount", 1, services.Discount{}},
		{"two months no discount", 2, services.Discount{}},
		{"three months enters flat 1000", 3, services.Discount{Amount: 1000, Label: "₹1,000 Off"}},
		{"five months still flat 1000", 5, services.Discount{Amount: 1000, Label: "₹1,000 Off"}},
		{"six months enters flat 3000", 6, services.Discount{Amount: 3000, Label: "₹3,000 Off"}},
		{"eleven months still flat 3000", 11, services.Discount{Amount: 3000, Label: "₹3,000 Off"}},
		{"twelve months one month free", 12, services.Discount{FreeMonths: 1, Label: "1 Month Free"}},
		{"two years one month free", 24, services.Discount{FreeMonths: 1, Label: "1 Month Free"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.ComputeDiscount(tt.duration))
		})
	}
}

func TestComputeTotals_FreeMonth(t *testing.T) {
	d := services.ComputeDiscount(12)
	totals := services.ComputeTotals(8000, 12, 6000, d)

	assert.Equal(t, 96000, totals.RentForDuration)
	assert.Equal(t, 88000, totals.DiscountedRent)
	assert.Equal(t, 8000, totals.EffectiveDiscount)
	assert.Equal(t, 94000, totals.FullTotal)
}

func TestComputeTotals_FlatDiscount(t *testing.T) {
	d := services.ComputeDiscount(6)
	totals := services.ComputeTotals(8000, 6, 6000, d)

	assert.Equal(t, 48000, totals.RentForDuration)
	assert.Equal(t, 45000, totals.DiscountedRent)
	assert.Equal(t, 3000, totals.EffectiveDiscount)
	assert.Equal(t, 51000, totals.FullTotal)
}

func TestComputeTotals_GSTSplitIsDisplayOnly(t *testing.T) {
	totals := services.ComputeTotals(8000, 1, 0, services.Discount{})

	// 8000 / 1.18 rounds to 6780; split must re-add to the listed price.
	assert.Equal(t, 6780, totals.BaseRent)
	assert.Equal(t, 1220, totals.GSTOnRent)
	assert.Equal(t, 8000, totals.BaseRent+totals.GSTOnRent)
}

func TestSelectPaymentAmount(t *testing.T) {
	d := services.ComputeDiscount(6)
	totals := services.ComputeTotals(8000, 6, 6000, d)

	t.Run("monthly collects first month plus deposit", func(t *testing.T) {
		plan := services.SelectPaymentAmount(services.PaymentModeMonthly, 8000, 6000, totals, 6)
		assert.Equal(t, 14000, plan.AmountDueNow)
		assert.Equal(t, totals.DiscountedRent-8000, plan.AmountDueLater)
	})

	t.Run("token is fixed regardless of price and duration", func(t *testing.T) {
		plan := services.SelectPaymentAmount(services.PaymentModeToken, 8000, 6000, totals, 6)
		assert.Equal(t, 2000, plan.AmountDueNow)
		assert.Equal(t, totals.FullTotal-2000, plan.AmountDueLater)

		long := services.ComputeTotals(15000, 12, 10000, services.ComputeDiscount(12))
		plan = services.SelectPaymentAmount(services.PaymentModeToken, 15000, 10000, long, 12)
		assert.Equal(t, 2000, plan.AmountDueNow)
	})

	t.Run("full collects everything upfront", func(t *testing.T) {
		plan := services.SelectPaymentAmount(services.PaymentModeFull, 8000, 6000, totals, 6)
		assert.Equal(t, totals.FullTotal, plan.AmountDueNow)
		assert.Equal(t, 0, plan.AmountDueLater)
	})
}

func TestBuildPaymentSchedule(t *testing.T) {
	moveIn := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	schedule := services.BuildPaymentSchedule(3, 5000, 1, moveIn)

	require.Len(t, schedule, 3)
	assert.Equal(t, models.PaymentStatusPaid, schedule[0].Status)
	assert.Equal(t, models.PaymentStatusPending, schedule[1].Status)
	assert.Equal(t, models.PaymentStatusPending, schedule[2].Status)

	for i, entry := range schedule {
		assert.Equal(t, i+1, entry.Month)
		assert.Equal(t, 5000, entry.Amount)
		assert.Equal(t, moveIn.AddDate(0, i, 0), entry.DueDate)
	}
}

func TestApplyMonthPayment(t *testing.T) {
	moveIn := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 10, 3, 12, 0, 0, 0, time.UTC)

	t.Run("paying the one remaining month settles the ledger", func(t *testing.T) {
		schedule := services.BuildPaymentSchedule(4, 5000, 0, moveIn)
		for i := range schedule {
			if schedule[i].Month != 2 {
				schedule[i].Status = models.PaymentStatusPaid
			}
		}
		before := services.CountPaidMonths(schedule)

		err := services.ApplyMonthPayment(schedule, 2, "pay_123", now)
		require.NoError(t, err)

		assert.Equal(t, before+1, services.CountPaidMonths(schedule))
		assert.Equal(t, "pay_123", schedule[1].PaymentID)
		require.NotNil(t, schedule[1].PaidAt)
		assert.Equal(t, now, *schedule[1].PaidAt)
		assert.Nil(t, services.NextPendingDue(schedule))
	})

	t.Run("next due moves to the earliest remaining pending month", func(t *testing.T) {
		schedule := services.BuildPaymentSchedule(4, 5000, 1, moveIn)

		err := services.ApplyMonthPayment(schedule, 2, "pay_456", now)
		require.NoError(t, err)

		next := services.NextPendingDue(schedule)
		require.NotNil(t, next)
		assert.Equal(t, moveIn.AddDate(0, 2, 0), *next)
	})

	t.Run("unknown month is not found", func(t *testing.T) {
		schedule := services.BuildPaymentSchedule(3, 5000, 0, moveIn)
		err := services.ApplyMonthPayment(schedule, 7, "pay_789", now)
		assert.ErrorIs(t, err, services.ErrMonthNotFound)
	})
}

func TestApplyFullPayoff(t *testing.T) {
	moveIn := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()

	schedule := services.BuildPaymentSchedule(6, 8000, 2, moveIn)
	services.ApplyFullPayoff(schedule, "pay_full", now)

	assert.Equal(t, 6, services.CountPaidMonths(schedule))
	assert.Nil(t, services.NextPendingDue(schedule))

	// The two months paid before the payoff keep their original stamps empty
	// here, the rest carry the payoff id.
	for _, entry := range schedule[2:] {
		assert.Equal(t, "pay_full", entry.PaymentID)
	}
}
