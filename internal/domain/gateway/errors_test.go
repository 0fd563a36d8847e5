package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserFacingMessage(t *testing.T) {
	t.Run("known codes map to fixed text", func(t *testing.T) {
		msg := UserFacingMessage(ErrCodeCardDeclined, "issuer refused txn 0x91")
		assert.Equal(t, "Your card was declined. Please try a different card or payment method.", msg)

		// The raw gateway description never leaks for a mapped code.
		assert.NotContains(t, msg, "0x91")
	})

	t.Run("every defined code has a mapping", func(t *testing.T) {
		codes := []string{
			ErrCodeBadRequest, ErrCodeGatewayError, ErrCodeServerError,
			ErrCodeNetworkError, ErrCodeCardDeclined, ErrCodeInsufficientFunds,
			ErrCodeTimeout,
		}
		for _, code := range codes {
			msg := UserFacingMessage(code, "raw description")
			assert.NotEmpty(t, msg)
			assert.NotEqual(t, "raw description", msg, "code %s fell through", code)
		}
	})

	t.Run("unknown code falls back to the description", func(t *testing.T) {
		assert.Equal(t, "the gateway said something odd",
			UserFacingMessage("SOMETHING_ODD", "the gateway said something odd"))
	})

	t.Run("unknown code without description gets a generic message", func(t *testing.T) {
		msg := UserFacingMessage("SOMETHING_ODD", "")
		assert.NotEmpty(t, msg)
	})
}

func TestGatewayError_Error(t *testing.T) {
	err := &GatewayError{Code: ErrCodeGatewayError, Message: "order create failed", Details: "HTTP 502"}
	assert.Equal(t, "order create failed: HTTP 502", err.Error())

	err = &GatewayError{Code: ErrCodeGatewayError, Message: "order create failed"}
	assert.Equal(t, "order create failed", err.Error())
}
