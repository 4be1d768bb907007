package services

import "errors"

var (
	ErrBookingNotFound  = errors.New("booking_not_found")
	ErrPropertyNotFound = errors.New("property_not_found")
	ErrMonthNotFound    = errors.New("payment_month_not_found")
	ErrVersionConflict  = errors.New("booking_version_conflict")
	ErrInvalidSignature = errors.New("payment_signature_invalid")
	ErrSlotInvariant    = errors.New("slot_counts_inconsistent")
)
