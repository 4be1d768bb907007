// services/pricing_service.go
package services

import (
	"fmt"
	"math"
	"time"

	"pgstay-backend/models"
)

// PaymentMode selects how much of a booking is collected upfront. Exactly one
// mode applies to a booking; the type makes the exclusivity structural.
type PaymentMode string

const (
	PaymentModeFull    PaymentMode = "full"
	PaymentModeMonthly PaymentMode = "monthly"
	PaymentModeToken   PaymentMode = "token"
)

// TokenAmount is the fixed reservation amount in rupees.
const TokenAmount = 2000

// GST rate baked into listed rents. Used only to decompose the price for
// display; rent is always charged GST-inclusive.
const gstRate = 1.18

// Discount is the tier a stay duration falls into.
type Discount struct {
	Amount     int    `json:"amount"`
	FreeMonths int    `json:"free_months"`
	Label      string `json:"label,omitempty"`
}

// Totals is the full cost breakdown for a booking before a payment mode is
// applied.
type Totals struct {
	RentForDuration   int `json:"rent_for_duration"`
	DiscountedRent    int `json:"discounted_rent"`
	EffectiveDiscount int `json:"effective_discount"`
	FullTotal         int `json:"full_total"`

	// Display-only decomposition of one month's rent.
	BaseRent  int `json:"base_rent"`
	GSTOnRent int `json:"gst_on_rent"`
}

// PaymentPlan is what the chosen mode collects now versus later.
type PaymentPlan struct {
	AmountDueNow   int    `json:"amount_due_now"`
	AmountDueLater int    `json:"amount_due_later"`
	Description    string `json:"description"`
}

// ComputeDiscount maps a stay duration in months onto its discount tier.
// Bands are inclusive on the lower bound only: <3 none, 3-5 flat 1000,
// 6-11 flat 3000, 12+ one month free.
func ComputeDiscount(duration int) Discount {
	switch {
	case duration >= 12:
		return Discount{FreeMonths: 1, Label: "1 Month Free"}
	case duration >= 6:
		return Discount{Amount: 3000, Label: "₹3,000 Off"}
	case duration >= 3:
		return Discount{Amount: 1000, Label: "₹1,000 Off"}
	default:
		return Discount{}
	}
}

// ComputeTotals expands price, duration and deposit into the full cost
// breakdown with the given discount applied. The free-month tier discounts by
// one month's rent; flat tiers subtract their fixed amount.
func ComputeTotals(price, duration, deposit int, d Discount) Totals {
	t := Totals{RentForDuration: price * duration}

	if d.FreeMonths > 0 {
		t.DiscountedRent = price * (duration - d.FreeMonths)
		t.EffectiveDiscount = price * d.FreeMonths
	} else {
		t.DiscountedRent = t.RentForDuration - d.Amount
		t.EffectiveDiscount = d.Amount
	}

	t.FullTotal = t.DiscountedRent + deposit

	t.BaseRent = int(math.Round(float64(price) / gstRate))
	t.GSTOnRent = price - t.BaseRent
	return t
}

// SelectPaymentAmount splits the total into now/later per the chosen mode.
// Monthly collects the first month plus deposit; token collects the fixed
// reservation amount; full collects everything.
func SelectPaymentAmount(mode PaymentMode, price, deposit int, t Totals, duration int) PaymentPlan {
	switch mode {
	case PaymentModeMonthly:
		return PaymentPlan{
			AmountDueNow:   price + deposit,
			AmountDueLater: t.DiscountedRent - price,
			Description:    "First month rent + security deposit",
		}
	case PaymentModeToken:
		return PaymentPlan{
			AmountDueNow:   TokenAmount,
			AmountDueLater: t.FullTotal - TokenAmount,
			Description:    fmt.Sprintf("Token amount to reserve (balance due at move-in for %d months)", duration),
		}
	default:
		return PaymentPlan{
			AmountDueNow:   t.FullTotal,
			AmountDueLater: 0,
			Description:    "Full payment",
		}
	}
}

// BuildPaymentSchedule produces one ledger entry per month of the stay. Every
// entry charges the full monthly price; the duration discount applies only to
// the upfront total, not the per-month schedule.
func BuildPaymentSchedule(duration, price, paidMonths int, moveIn time.Time) []models.MonthlyPayment {
	schedule := make([]models.MonthlyPayment, 0, duration)
	for m := 1; m <= duration; m++ {
		status := models.PaymentStatusPending
		if m <= paidMonths {
			status = models.PaymentStatusPaid
		}
		schedule = append(schedule, models.MonthlyPayment{
			Month:   m,
			Amount:  price,
			Status:  status,
			DueDate: moveIn.AddDate(0, m-1, 0),
		})
	}
	return schedule
}

// ApplyMonthPayment flips one ledger entry to paid, stamping the gateway
// payment id and timestamp. Paying an already-paid month re-stamps it.
func ApplyMonthPayment(payments []models.MonthlyPayment, month int, paymentID string, now time.Time) error {
	for i := range payments {
		if payments[i].Month == month {
			payments[i].Status = models.PaymentStatusPaid
			payments[i].PaymentID = paymentID
			payments[i].PaidAt = &now
			return nil
		}
	}
	return ErrMonthNotFound
}

// ApplyFullPayoff marks every pending entry paid in one pass.
func ApplyFullPayoff(payments []models.MonthlyPayment, paymentID string, now time.Time) {
	for i := range payments {
		if payments[i].Status != models.PaymentStatusPaid {
			payments[i].Status = models.PaymentStatusPaid
			payments[i].PaymentID = paymentID
			payments[i].PaidAt = &now
		}
	}
}

// CountPaidMonths recomputes the paid counter from the ledger.
func CountPaidMonths(payments []models.MonthlyPayment) int {
	n := 0
	for i := range payments {
		if payments[i].Status == models.PaymentStatusPaid {
			n++
		}
	}
	return n
}

// NextPendingDue returns the due date of the earliest pending month, or nil
// when the ledger is settled.
func NextPendingDue(payments []models.MonthlyPayment) *time.Time {
	var next *models.MonthlyPayment
	for i := range payments {
		if payments[i].Status != models.PaymentStatusPending {
			continue
		}
		if next == nil || payments[i].Month < next.Month {
			next = &payments[i]
		}
	}
	if next == nil {
		return nil
	}
	due := next.DueDate
	return &due
}
