package errors

import (
	"fmt"
)

// Checkout error types. The type drives both the HTTP mapping and whether
// the customer is told to retry or to contact support.
const (
	ErrTypeConfiguration      = "CONFIGURATION_ERROR"
	ErrTypeValidation         = "VALIDATION_ERROR"
	ErrTypeGateway            = "GATEWAY_ERROR"
	ErrTypeGatewayUnavailable = "GATEWAY_UNAVAILABLE"
	ErrTypeVerificationFailed = "VERIFICATION_FAILED"
	ErrTypeAttemptNotFound    = "ATTEMPT_NOT_FOUND"
	ErrTypeAttemptConflict    = "ATTEMPT_CONFLICT"
	ErrTypeTransient          = "TRANSIENT_ERROR"
)

// CheckoutError represents errors raised by the booking/payment pipeline
type CheckoutError struct {
	Type      string
	Message   string
	Field     string // set for validation errors
	PaymentID string // set when a human must reconcile with the gateway
	Cause     error
}

func (e *CheckoutError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s - %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *CheckoutError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError creates an error for missing or placeholder
// credentials. The payment path fails closed with a direct contact channel.
func NewConfigurationError(message string) *CheckoutError {
	return &CheckoutError{
		Type:    ErrTypeConfiguration,
		Message: message,
	}
}

// NewValidationError creates a field-scoped validation error
func NewValidationError(field, message string) *CheckoutError {
	return &CheckoutError{
		Type:    ErrTypeValidation,
		Field:   field,
		Message: message,
	}
}

// NewGatewayError wraps a gateway-declared failure
func NewGatewayError(message string, cause error) *CheckoutError {
	return &CheckoutError{
		Type:    ErrTypeGateway,
		Message: message,
		Cause:   cause,
	}
}

// NewGatewayUnavailableError creates an error for a gateway that never
// became ready; the checkout surface must not be opened against it.
func NewGatewayUnavailableError(cause error) *CheckoutError {
	return &CheckoutError{
		Type:    ErrTypeGatewayUnavailable,
		Message: "the payment system is unavailable right now, please contact us to complete your booking",
		Cause:   cause,
	}
}

// NewVerificationFailedError creates the fatal verification error. Money may
// have moved without a trusted confirmation, so the payment id is surfaced
// and the attempt is never silently retried.
func NewVerificationFailedError(paymentID string, cause error) *CheckoutError {
	return &CheckoutError{
		Type:      ErrTypeVerificationFailed,
		Message:   "we could not verify your payment, please contact support and quote your payment id",
		PaymentID: paymentID,
		Cause:     cause,
	}
}

// NewAttemptNotFoundError creates an error for an unknown or expired attempt
func NewAttemptNotFoundError(attemptID string) *CheckoutError {
	return &CheckoutError{
		Type:    ErrTypeAttemptNotFound,
		Message: fmt.Sprintf("checkout attempt %s was not found or has expired", attemptID),
	}
}

// NewAttemptConflictError creates an error for a state-machine violation
func NewAttemptConflictError(message string) *CheckoutError {
	return &CheckoutError{
		Type:    ErrTypeAttemptConflict,
		Message: message,
	}
}

// NewTransientError wraps a recoverable infrastructure failure
func NewTransientError(message string, cause error) *CheckoutError {
	return &CheckoutError{
		Type:    ErrTypeTransient,
		Message: message,
		Cause:   cause,
	}
}
