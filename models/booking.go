package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking statuses.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReferenceCode string `gorm:"column:reference_code;uniqueIndex;size:64" json:"reference_code"`

	UserName  string `gorm:"size:255" json:"user_name"`
	UserEmail string `gorm:"size:255;index" json:"user_email"`
	UserPhone string `gorm:"size:32" json:"user_phone"`

	PropertyID uint   `gorm:"index;column:property_id" json:"property_id"`
	RoomType   string `gorm:"size:32" json:"room_type"`

	MoveInDate time.Time `gorm:"column:move_in_date" json:"move_in_date"`

	// Months, 1-24.
	Duration int `json:"duration"`

	// full / monthly / token
	PaymentType string `gorm:"size:16" json:"payment_type"`

	MonthlyRent   int `gorm:"column:monthly_rent" json:"monthly_rent"`
	DepositAmount int `gorm:"column:deposit_amount" json:"deposit_amount"`
	TotalAmount   int `gorm:"column:total_amount" json:"total_amount"`
	AmountPaid    int `gorm:"column:amount_paid" json:"amount_paid"`

	Status string `gorm:"size:32;default:pending" json:"status"`

	PaidMonths     int        `gorm:"column:paid_months" json:"paid_months"`
	NextPaymentDue *time.Time `gorm:"column:next_payment_due" json:"next_payment_due,omitempty"`

	// Optimistic lock counter: bumped on every ledger mutation so concurrent
	// installment payments can't silently clobber each other.
	Version uint `gorm:"column:version;default:0" json:"-"`

	Property Property         `gorm:"foreignKey:PropertyID;references:ID" json:"property,omitempty"`
	Payments []MonthlyPayment `gorm:"foreignKey:BookingID" json:"payments"`
}
