// services/booking_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"pgstay-backend/gateway"
	"pgstay-backend/models"
	"pgstay-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingService owns the booking lifecycle and the installment ledger.
type BookingService struct {
	DB      *gorm.DB
	Gateway gateway.PaymentGateway
}

func NewBookingService(db *gorm.DB, gw gateway.PaymentGateway) *BookingService {
	return &BookingService{DB: db, Gateway: gw}
}

// CreateBookingInput carries a validated booking request into the service.
type CreateBookingInput struct {
	UserName  string
	UserEmail string
	UserPhone string

	PropertyID uint
	RoomType   string
	MoveInDate time.Time
	Duration   int

	Mode    PaymentMode
	Payment *gateway.PaymentConfirmation
}

// CreateBooking prices the stay, verifies any supplied payment and persists
// the booking with its full month-by-month ledger. The booking is confirmed
// only when a verified payment accompanies it.
func (s *BookingService) CreateBooking(in CreateBookingInput) (models.Booking, error) {
	var property models.Property
	if err := s.DB.Preload("RoomTypes").First(&property, in.PropertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, ErrPropertyNotFound
		}
		return models.Booking{}, fmt.Errorf("load property: %w", err)
	}

	var roomType *models.RoomType
	for i := range property.RoomTypes {
		if strings.EqualFold(property.RoomTypes[i].Type, in.RoomType) {
			roomType = &property.RoomTypes[i]
			break
		}
	}
	if roomType == nil {
		return models.Booking{}, fmt.Errorf("%w: room type %q", ErrPropertyNotFound, in.RoomType)
	}

	discount := ComputeDiscount(in.Duration)
	totals := ComputeTotals(roomType.Price, in.Duration, roomType.Deposit, discount)
	plan := SelectPaymentAmount(in.Mode, roomType.Price, roomType.Deposit, totals, in.Duration)

	status := models.BookingStatusPending
	amountPaid := 0
	paidMonths := 0
	if in.Payment != nil {
		if err := s.Gateway.VerifyPayment(*in.Payment); err != nil {
			return models.Booking{}, ErrInvalidSignature
		}
		status = models.BookingStatusConfirmed
		amountPaid = plan.AmountDueNow
		switch in.Mode {
		case PaymentModeFull:
			paidMonths = in.Duration
		case PaymentModeMonthly:
			paidMonths = 1
		}
	}

	schedule := BuildPaymentSchedule(in.Duration, roomType.Price, paidMonths, in.MoveInDate)
	if in.Payment != nil {
		now := time.Now().UTC()
		for i := range schedule {
			if schedule[i].Status == models.PaymentStatusPaid {
				schedule[i].PaymentID = in.Payment.PaymentID
				schedule[i].PaidAt = &now
			}
		}
	}

	booking := models.Booking{
		ReferenceCode:  "PG-" + strings.ToUpper(uuid.NewString()[:8]),
		UserName:       in.UserName,
		UserEmail:      in.UserEmail,
		UserPhone:      in.UserPhone,
		PropertyID:     property.ID,
		RoomType:       roomType.Type,
		MoveInDate:     in.MoveInDate,
		Duration:       in.Duration,
		PaymentType:    string(in.Mode),
		MonthlyRent:    roomType.Price,
		DepositAmount:  roomType.Deposit,
		TotalAmount:    totals.FullTotal,
		AmountPaid:     amountPaid,
		Status:         status,
		PaidMonths:     paidMonths,
		NextPaymentDue: NextPendingDue(schedule),
		Payments:       schedule,
	}

	if err := s.DB.Create(&booking).Error; err != nil {
		return models.Booking{}, fmt.Errorf("create booking: %w", err)
	}

	// Email is best-effort; the booking row is the system of record.
	if err := utils.SendBookingConfirmationEmail(booking.UserEmail, booking.UserName, booking.ReferenceCode, property.Name, plan.AmountDueNow, plan.AmountDueLater, booking.MoveInDate); err != nil {
		log.Printf("warning: booking %s confirmation email failed: %v", booking.ReferenceCode, err)
	}

	booking.Property = property
	return booking, nil
}

// PayMonth records a verified gateway payment against one month of the
// ledger. The write is guarded by the booking's version counter so two
// concurrent installments can't clobber each other; the loser gets
// ErrVersionConflict and should retry.
func (s *BookingService) PayMonth(bookingID uint, month int, conf gateway.PaymentConfirmation) (models.Booking, error) {
	if err := s.Gateway.VerifyPayment(conf); err != nil {
		return models.Booking{}, ErrInvalidSignature
	}

	booking, err := s.loadBooking(bookingID)
	if err != nil {
		return models.Booking{}, err
	}

	if err := ApplyMonthPayment(booking.Payments, month, conf.PaymentID, time.Now().UTC()); err != nil {
		return models.Booking{}, err
	}

	if err := s.saveLedger(&booking); err != nil {
		return models.Booking{}, err
	}
	return booking, nil
}

// PayComplete settles every pending month in one pass.
func (s *BookingService) PayComplete(bookingID uint, conf gateway.PaymentConfirmation) (models.Booking, error) {
	if err := s.Gateway.VerifyPayment(conf); err != nil {
		return models.Booking{}, ErrInvalidSignature
	}

	booking, err := s.loadBooking(bookingID)
	if err != nil {
		return models.Booking{}, err
	}

	ApplyFullPayoff(booking.Payments, conf.PaymentID, time.Now().UTC())
	booking.Status = models.BookingStatusConfirmed

	if err := s.saveLedger(&booking); err != nil {
		return models.Booking{}, err
	}
	return booking, nil
}

func (s *BookingService) GetBooking(id uint) (models.Booking, error) {
	return s.loadBooking(id)
}

func (s *BookingService) ListBookingsByEmail(email string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("month ASC") }).
		Preload("Property").
		Where("user_email = ?", email).
		Order("id DESC").
		Find(&bookings).Error
	return bookings, err
}

// CancelBooking flips the status; the ledger is left untouched as a record of
// what was already paid.
func (s *BookingService) CancelBooking(id uint) (models.Booking, error) {
	booking, err := s.loadBooking(id)
	if err != nil {
		return models.Booking{}, err
	}

	booking.Status = models.BookingStatusCancelled
	if err := s.DB.Model(&models.Booking{}).Where("id = ?", booking.ID).
		Update("status", models.BookingStatusCancelled).Error; err != nil {
		return models.Booking{}, fmt.Errorf("cancel booking: %w", err)
	}
	return booking, nil
}

func (s *BookingService) loadBooking(id uint) (models.Booking, error) {
	var booking models.Booking
	err := s.DB.
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("month ASC") }).
		Preload("Property").
		First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, ErrBookingNotFound
		}
		return models.Booking{}, fmt.Errorf("load booking: %w", err)
	}
	return booking, nil
}

// saveLedger persists mutated payment rows and the recomputed booking
// summary. The booking update is conditional on the version read earlier;
// zero rows affected means another writer got there first.
func (s *BookingService) saveLedger(booking *models.Booking) error {
	booking.PaidMonths = CountPaidMonths(booking.Payments)
	booking.NextPaymentDue = NextPendingDue(booking.Payments)
	booking.AmountPaid = booking.DepositAmount + sumPaid(booking.Payments)

	return s.DB.Transaction(func(tx *gorm.DB) error {
		for i := range booking.Payments {
			if booking.Payments[i].Status != models.PaymentStatusPaid {
				continue
			}
			if err := tx.Save(&booking.Payments[i]).Error; err != nil {
				return fmt.Errorf("save payment month %d: %w", booking.Payments[i].Month, err)
			}
		}

		res := tx.Model(&models.Booking{}).
			Where("id = ? AND version = ?", booking.ID, booking.Version).
			Updates(map[string]interface{}{
				"paid_months":      booking.PaidMonths,
				"next_payment_due": booking.NextPaymentDue,
				"amount_paid":      booking.AmountPaid,
				"status":           booking.Status,
				"version":          booking.Version + 1,
			})
		if res.Error != nil {
			return fmt.Errorf("update booking: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrVersionConflict
		}
		booking.Version++
		return nil
	})
}

func sumPaid(payments []models.MonthlyPayment) int {
	total := 0
	for i := range payments {
		if payments[i].Status == models.PaymentStatusPaid {
			total += payments[i].Amount
		}
	}
	return total
}
