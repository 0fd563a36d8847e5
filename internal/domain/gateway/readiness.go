package gateway

import (
	"context"
	"sync"
	"time"
)

// ReadinessState is the lifecycle of a gateway's one-time priming step
// (credential checks, token handshakes). At most one priming run happens
// per process; every checkout waits on the same state.
type ReadinessState int

const (
	StateNotReady ReadinessState = iota
	StatePriming
	StateReady
	StateFailed
)

const (
	readyPollInterval = 500 * time.Millisecond
	readyPollAttempts = 30 // ~15s total
)

// Readiness guards a gateway behind an explicit NotReady -> Priming ->
// Ready|Failed lifecycle. A checkout surface must never be opened against
// an unprimed gateway, so Await fails closed once the poll budget runs out.
type Readiness struct {
	mu    sync.Mutex
	state ReadinessState
	err   error
	prime func(ctx context.Context) error
}

// NewReadiness creates a readiness guard around a priming function.
func NewReadiness(prime func(ctx context.Context) error) *Readiness {
	return &Readiness{prime: prime}
}

// State returns the current lifecycle state.
func (r *Readiness) State() ReadinessState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Await returns nil once the gateway is Ready. If priming has not started
// it is kicked off exactly once; concurrent callers poll the shared state.
// After the poll budget (~15s) or a failed priming run, Await returns the
// priming error and the gateway stays Failed until Reset.
func (r *Readiness) Await(ctx context.Context) error {
	r.mu.Lock()
	switch r.state {
	case StateReady:
		r.mu.Unlock()
		return nil
	case StateFailed:
		err := r.err
		r.mu.Unlock()
		return err
	case StateNotReady:
		r.state = StatePriming
		r.mu.Unlock()
		go r.runPrime(ctx)
	default:
		r.mu.Unlock()
	}

	for i := 0; i < readyPollAttempts; i++ {
		r.mu.Lock()
		state, err := r.state, r.err
		r.mu.Unlock()

		switch state {
		case StateReady:
			return nil
		case StateFailed:
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(readyPollInterval):
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StatePriming {
		r.state = StateFailed
		r.err = &GatewayError{
			Code:    ErrCodeTimeout,
			Message: "payment gateway did not become ready in time",
		}
	}
	return r.err
}

// Reset returns a Failed guard to NotReady so the next Await retries priming.
func (r *Readiness) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateFailed {
		r.state = StateNotReady
		r.err = nil
	}
}

func (r *Readiness) runPrime(ctx context.Context) {
	// Priming must outlive the first caller's request context.
	primeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), readyPollAttempts*readyPollInterval)
	defer cancel()

	err := r.prime(primeCtx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.state = StateFailed
		r.err = err
		return
	}
	r.state = StateReady
}
