package gateway_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"pgstay-backend/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestRazorpayGateway_VerifyPayment(t *testing.T) {
	gw := &gateway.RazorpayGateway{KeySecret: "test_secret"}

	t.Run("valid signature passes", func(t *testing.T) {
		conf := gateway.PaymentConfirmation{
			OrderID:   "order_abc",
			PaymentID: "pay_xyz",
			Signature: sign("test_secret", "order_abc", "pay_xyz"),
		}
		require.NoError(t, gw.VerifyPayment(conf))
	})

	t.Run("tampered signature fails", func(t *testing.T) {
		conf := gateway.PaymentConfirmation{
			OrderID:   "order_abc",
			PaymentID: "pay_xyz",
			Signature: sign("wrong_secret", "order_abc", "pay_xyz"),
		}
		assert.ErrorIs(t, gw.VerifyPayment(conf), gateway.ErrBadSignature)
	})

	t.Run("swapped ids fail", func(t *testing.T) {
		conf := gateway.PaymentConfirmation{
			OrderID:   "pay_xyz",
			PaymentID: "order_abc",
			Signature: sign("test_secret", "order_abc", "pay_xyz"),
		}
		assert.ErrorIs(t, gw.VerifyPayment(conf), gateway.ErrBadSignature)
	})

	t.Run("missing fields fail", func(t *testing.T) {
		assert.ErrorIs(t, gw.VerifyPayment(gateway.PaymentConfirmation{}), gateway.ErrBadSignature)
	})
}
