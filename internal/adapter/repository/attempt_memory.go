package repository

import (
	"context"
	"sync"
	"time"

	"github.com/ashwinbuilds/booking-engine/internal/domain/entity"
	"github.com/ashwinbuilds/booking-engine/internal/domain/repository"
)

type memoryEntry struct {
	attempt entity.CheckoutAttempt
	expires time.Time
}

// memoryAttemptRepository is the in-process attempt store, used for
// single-instance deployments without Redis and in tests.
type memoryAttemptRepository struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

// NewMemoryAttemptRepository creates an in-memory checkout attempt store
func NewMemoryAttemptRepository(ttl time.Duration) repository.AttemptRepository {
	if ttl <= 0 {
		ttl = defaultAttemptTTL
	}
	return &memoryAttemptRepository{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

func (r *memoryAttemptRepository) Save(ctx context.Context, attempt *entity.CheckoutAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[attempt.ID] = memoryEntry{
		attempt: *attempt,
		expires: time.Now().Add(r.ttl),
	}
	return nil
}

func (r *memoryAttemptRepository) Get(ctx context.Context, id string) (*entity.CheckoutAttempt, error) {
	r.mu.RLock()
	entry, ok := r.entries[id]
	r.mu.RUnlock()

	if !ok || time.Now().After(entry.expires) {
		return nil, nil
	}

	attempt := entry.attempt
	return &attempt, nil
}
