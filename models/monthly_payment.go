package models

import (
	"time"

	"gorm.io/gorm"
)

// Installment statuses.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// MonthlyPayment is one entry in a booking's installment ledger. Rows are
// created together with the booking (one per month of duration) and only ever
// flip from pending to paid; they are never deleted.
type MonthlyPayment struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	BookingID uint `gorm:"index;column:booking_id" json:"booking_id"`

	// 1-indexed month within the stay.
	Month int `json:"month"`

	Amount int    `json:"amount"`
	Status string `gorm:"size:16;default:pending" json:"status"`

	DueDate time.Time `gorm:"column:due_date" json:"due_date"`

	PaymentID string     `gorm:"column:payment_id;size:64" json:"payment_id,omitempty"`
	PaidAt    *time.Time `gorm:"column:paid_at" json:"paid_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
