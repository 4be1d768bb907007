// controllers/booking_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"pgstay-backend/gateway"
	"pgstay-backend/services"
	"pgstay-backend/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateBookingRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone" binding:"required"`
	PropertyID uint   `json:"propertyId" binding:"required"`
	RoomType   string `json:"roomType" binding:"required"`
	MoveInDate string `json:"moveInDate" binding:"required"` // YYYY-MM-DD
	Duration   int    `json:"duration" binding:"required"`

	// full / monthly / token; empty means full.
	PaymentType string `json:"paymentType"`

	Payment *gateway.PaymentConfirmation `json:"payment,omitempty"`
}

type PayMonthRequest struct {
	BookingID uint                        `json:"bookingId" binding:"required"`
	Month     int                         `json:"month" binding:"required"`
	Payment   gateway.PaymentConfirmation `json:"payment" binding:"required"`
}

type PayCompleteRequest struct {
	BookingID uint                        `json:"bookingId" binding:"required"`
	Payment   gateway.PaymentConfirmation `json:"payment" binding:"required"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

func parsePaymentMode(raw string) (services.PaymentMode, bool) {
	switch raw {
	case "", string(services.PaymentModeFull):
		return services.PaymentModeFull, true
	case string(services.PaymentModeMonthly):
		return services.PaymentModeMonthly, true
	case string(services.PaymentModeToken):
		return services.PaymentModeToken, true
	default:
		return "", false
	}
}

func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	if req.Duration < 1 || req.Duration > 24 {
		utils.JSONError(c, http.StatusBadRequest, "duration must be between 1 and 24 months")
		return
	}

	mode, ok := parsePaymentMode(req.PaymentType)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "paymentType must be full, monthly or token")
		return
	}
	if mode == services.PaymentModeMonthly && req.Duration < 2 {
		utils.JSONError(c, http.StatusBadRequest, "monthly payment requires a stay of at least 2 months")
		return
	}

	moveIn, err := time.Parse("2006-01-02", req.MoveInDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "moveInDate must be YYYY-MM-DD")
		return
	}

	booking, err := ctrl.BookingSvc.CreateBooking(services.CreateBookingInput{
		UserName:   req.Name,
		UserEmail:  req.Email,
		UserPhone:  req.Phone,
		PropertyID: req.PropertyID,
		RoomType:   req.RoomType,
		MoveInDate: moveIn,
		Duration:   req.Duration,
		Mode:       mode,
		Payment:    req.Payment,
	})
	if err != nil {
		respondBookingError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, booking)
}

func (ctrl *BookingController) PayMonth(c *gin.Context) {
	var req PayMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: bookingId, month and payment are required")
		return
	}

	booking, err := ctrl.BookingSvc.PayMonth(req.BookingID, req.Month, req.Payment)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"message": "payment recorded",
		"booking": booking,
	})
}

func (ctrl *BookingController) PayComplete(c *gin.Context) {
	var req PayCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: bookingId and payment are required")
		return
	}

	booking, err := ctrl.BookingSvc.PayComplete(req.BookingID, req.Payment)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"message": "all pending months settled",
		"booking": booking,
	})
}

func (ctrl *BookingController) GetBooking(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	booking, err := ctrl.BookingSvc.GetBooking(uint(id))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func (ctrl *BookingController) ListBookings(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		utils.JSONError(c, http.StatusBadRequest, "email query parameter is required")
		return
	}

	bookings, err := ctrl.BookingSvc.ListBookingsByEmail(email)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

func (ctrl *BookingController) CancelBooking(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	booking, err := ctrl.BookingSvc.CancelBooking(uint(id))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBookingNotFound):
		utils.JSONError(c, http.StatusNotFound, "booking not found")
	case errors.Is(err, services.ErrPropertyNotFound):
		utils.JSONError(c, http.StatusNotFound, "property or room type not found")
	case errors.Is(err, services.ErrMonthNotFound):
		utils.JSONError(c, http.StatusNotFound, "payment month not found")
	case errors.Is(err, services.ErrVersionConflict):
		utils.JSONError(c, http.StatusConflict, "booking was updated concurrently, retry")
	case errors.Is(err, services.ErrInvalidSignature):
		utils.JSONError(c, http.StatusBadRequest, "payment verification failed")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error")
	}
}
