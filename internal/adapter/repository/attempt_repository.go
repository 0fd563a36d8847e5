package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ashwinbuilds/booking-engine/internal/domain/entity"
	"github.com/ashwinbuilds/booking-engine/internal/domain/repository"
)

const attemptKeyPrefix = "checkout:attempt:"

const defaultAttemptTTL = 30 * time.Minute

type attemptRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewAttemptRepository creates a Redis-backed checkout attempt store.
// Attempts expire after the TTL; an expired attempt simply looks abandoned.
func NewAttemptRepository(client *redis.Client, ttl time.Duration, logger *zap.Logger) repository.AttemptRepository {
	if ttl <= 0 {
		ttl = defaultAttemptTTL
	}
	return &attemptRepository{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Save stores the attempt, refreshing its TTL
func (r *attemptRepository) Save(ctx context.Context, attempt *entity.CheckoutAttempt) error {
	data, err := json.Marshal(attempt)
	if err != nil {
		return fmt.Errorf("failed to marshal attempt: %w", err)
	}

	if err := r.client.Set(ctx, attemptKeyPrefix+attempt.ID, data, r.ttl).Err(); err != nil {
		r.logger.Error("Failed to save checkout attempt",
			zap.String("attempt_id", attempt.ID),
			zap.Error(err))
		return fmt.Errorf("failed to save attempt: %w", err)
	}
	return nil
}

// Get returns the attempt, or nil when unknown or expired
func (r *attemptRepository) Get(ctx context.Context, id string) (*entity.CheckoutAttempt, error) {
	data, err := r.client.Get(ctx, attemptKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		r.logger.Error("Failed to load checkout attempt",
			zap.String("attempt_id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to load attempt: %w", err)
	}

	var attempt entity.CheckoutAttempt
	if err := json.Unmarshal(data, &attempt); err != nil {
		return nil, fmt.Errorf("failed to unmarshal attempt: %w", err)
	}
	return &attempt, nil
}
