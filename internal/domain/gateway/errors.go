package gateway

// Gateway-declared failure codes. Razorpay reports these through the modal's
// payment.failed callback; PayPal maps its error names onto the same set.
const (
	ErrCodeBadRequest        = "BAD_REQUEST_ERROR"
	ErrCodeGatewayError      = "GATEWAY_ERROR"
	ErrCodeServerError       = "SERVER_ERROR"
	ErrCodeNetworkError      = "NETWORK_ERROR"
	ErrCodeCardDeclined      = "CARD_DECLINED"
	ErrCodeInsufficientFunds = "INSUFFICIENT_FUNDS"
	ErrCodeTimeout           = "TIMEOUT"
)

var userFacingMessages = map[string]string{
	ErrCodeBadRequest:        "The payment request was rejected. Please check your details and try again.",
	ErrCodeGatewayError:      "The payment gateway ran into a problem. Please try again in a moment.",
	ErrCodeServerError:       "The payment provider is having trouble right now. Please try again shortly.",
	ErrCodeNetworkError:      "A network problem interrupted the payment. Please check your connection and try again.",
	ErrCodeCardDeclined:      "Your card was declined. Please try a different card or payment method.",
	ErrCodeInsufficientFunds: "The payment was declined due to insufficient funds. Please try another payment method.",
	ErrCodeTimeout:           "The payment timed out before it could complete. Please try again.",
}

// UserFacingMessage maps a gateway failure code to customer-facing text.
// Unmapped codes fall back to the gateway's own description so the customer
// is never shown an empty error.
func UserFacingMessage(code, description string) string {
	if msg, ok := userFacingMessages[code]; ok {
		return msg
	}
	if description != "" {
		return description
	}
	return "The payment could not be completed. Please try again or contact us."
}
