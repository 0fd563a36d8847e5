package entity

import (
	"time"

	"github.com/ashwinbuilds/booking-engine/internal/domain/gateway"
)

// AttemptStatus is the state of a checkout attempt.
type AttemptStatus string

const (
	// AttemptStatusOrderCreated: gateway order registered, checkout surface
	// not yet presented to the customer.
	AttemptStatusOrderCreated AttemptStatus = "order_created"
	// AttemptStatusAwaitingUser: the customer is inside the gateway's
	// checkout surface.
	AttemptStatusAwaitingUser AttemptStatus = "awaiting_user_action"
	// AttemptStatusVerifying: a proof arrived and is being verified.
	AttemptStatusVerifying AttemptStatus = "verifying"
	AttemptStatusSucceeded AttemptStatus = "succeeded"
	AttemptStatusFailed    AttemptStatus = "failed"
	AttemptStatusCancelled AttemptStatus = "cancelled"
)

var allowedTransitions = map[AttemptStatus][]AttemptStatus{
	AttemptStatusOrderCreated: {AttemptStatusAwaitingUser, AttemptStatusVerifying, AttemptStatusFailed, AttemptStatusCancelled},
	AttemptStatusAwaitingUser: {AttemptStatusVerifying, AttemptStatusFailed, AttemptStatusCancelled},
	AttemptStatusVerifying:    {AttemptStatusSucceeded, AttemptStatusFailed},
}

// CheckoutAttempt is one customer's pass through the payment flow. Every
// attempt owns its own order id; a retry after cancellation is a brand new
// attempt and the old order is simply abandoned gateway-side.
type CheckoutAttempt struct {
	ID          string        `json:"id"`
	Intent      BookingIntent `json:"intent"`
	GatewayKind gateway.Kind  `json:"gateway_kind"`
	Currency    string        `json:"currency"`
	OrderID     string        `json:"order_id"`
	Receipt     string        `json:"receipt"`
	Status      AttemptStatus `json:"status"`
	PaymentID   string        `json:"payment_id,omitempty"`
	FailureCode string        `json:"failure_code,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// CanTransition reports whether the attempt may move to the given status.
// Terminal states (succeeded, failed, cancelled) allow no further moves;
// a fresh attempt supersedes them instead.
func (a *CheckoutAttempt) CanTransition(to AttemptStatus) bool {
	for _, next := range allowedTransitions[a.Status] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition moves the attempt to the given status, refreshing UpdatedAt.
// Returns false if the move is not allowed from the current state.
func (a *CheckoutAttempt) Transition(to AttemptStatus, now time.Time) bool {
	if !a.CanTransition(to) {
		return false
	}
	a.Status = to
	a.UpdatedAt = now
	return true
}

// Terminal reports whether the attempt has reached a final state.
func (a *CheckoutAttempt) Terminal() bool {
	switch a.Status {
	case AttemptStatusSucceeded, AttemptStatusFailed, AttemptStatusCancelled:
		return true
	}
	return false
}
