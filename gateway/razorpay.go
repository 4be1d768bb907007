package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"strings"
)

// PaymentConfirmation is the signed confirmation Razorpay checkout hands back
// to the client after a successful capture.
type PaymentConfirmation struct {
	PaymentID string `json:"razorpay_payment_id"`
	OrderID   string `json:"razorpay_order_id"`
	Signature string `json:"razorpay_signature"`
}

// PaymentGateway verifies a payment confirmation is authentic. The booking
// flow treats a verified confirmation as authoritative proof of payment.
type PaymentGateway interface {
	VerifyPayment(conf PaymentConfirmation) error
}

var ErrBadSignature = errors.New("razorpay signature mismatch")

// RazorpayGateway verifies checkout signatures with the key secret.
// Razorpay signs "order_id|payment_id" with HMAC-SHA256.
type RazorpayGateway struct {
	KeySecret string
}

func NewRazorpayGateway() *RazorpayGateway {
	return &RazorpayGateway{KeySecret: strings.TrimSpace(os.Getenv("RAZORPAY_KEY_SECRET"))}
}

func (g *RazorpayGateway) VerifyPayment(conf PaymentConfirmation) error {
	if conf.PaymentID == "" || conf.OrderID == "" || conf.Signature == "" {
		return ErrBadSignature
	}

	mac := hmac.New(sha256.New, []byte(g.KeySecret))
	mac.Write([]byte(conf.OrderID + "|" + conf.PaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(conf.Signature)) {
		return ErrBadSignature
	}
	return nil
}
