package gateway

import (
	"context"
)

// PaymentGateway defines the interface for payment gateways (Razorpay, PayPal, etc.)
type PaymentGateway interface {
	// Ready blocks until the gateway is primed and usable, or fails closed.
	Ready(ctx context.Context) error

	// CreateOrder registers a payment order with the gateway
	CreateOrder(ctx context.Context, req *OrderRequest) (*Order, error)

	// VerifyPayment checks that a gateway-reported payment is authentic
	VerifyPayment(ctx context.Context, proof *Proof) (bool, error)

	// Kind returns the gateway kind
	Kind() Kind
}

// Kind identifies a payment gateway strategy
type Kind string

const (
	// KindRazorpay is the modal checkout gateway (overlay opened client-side,
	// one asynchronous result callback).
	KindRazorpay Kind = "razorpay"
	// KindPayPal is the embedded-button gateway (rendered widget with
	// create-order / approve / error-cancel hooks).
	KindPayPal Kind = "paypal"
)

// OrderRequest represents a gateway-agnostic order creation request
type OrderRequest struct {
	Receipt  string            `json:"receipt"` // client-generated idempotency key
	Amount   int64             `json:"amount"`  // amount in smallest currency unit
	Currency string            `json:"currency"`
	Notes    map[string]string `json:"notes,omitempty"` // denormalized booking details for audit
}

// Order is the gateway-registered intent to pay
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Proof is the artifact a gateway returns after the user completes payment.
// It is opaque to the rest of the pipeline and forwarded to verification
// unmodified. Razorpay fills OrderID/PaymentID/Signature; PayPal fills
// OrderID plus the capture cross-check fields.
type Proof struct {
	OrderID       string `json:"order_id"`
	PaymentID     string `json:"payment_id,omitempty"`
	Signature     string `json:"signature,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
	Amount        int64  `json:"amount,omitempty"`
	ServiceName   string `json:"service_name,omitempty"`
}

// GatewayError represents an error declared by a payment gateway
type GatewayError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *GatewayError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}
