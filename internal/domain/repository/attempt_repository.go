package repository

import (
	"context"

	"github.com/ashwinbuilds/booking-engine/internal/domain/entity"
)

// AttemptRepository stores in-flight checkout attempts. Attempts are
// ephemeral (TTL-bound); callbacks re-read the current attempt here at the
// moment they fire rather than trusting any snapshot they were created with.
type AttemptRepository interface {
	Save(ctx context.Context, attempt *entity.CheckoutAttempt) error
	Get(ctx context.Context, id string) (*entity.CheckoutAttempt, error)
}
