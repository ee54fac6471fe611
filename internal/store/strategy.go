package store

import (
	"context"
	"time"
)

// ExecutionStrategy re-invokes an operation when the database classifies the
// failure as transient. Each attempt must open its own transaction, so the
// operation has to be restartable: no partial effect of a failed attempt may
// leak into the next one.
type ExecutionStrategy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultStrategy mirrors the usual relational retry budget: three attempts
// with a linearly growing pause.
func DefaultStrategy() *ExecutionStrategy {
	return &ExecutionStrategy{MaxAttempts: 3, Delay: 100 * time.Millisecond}
}

func (s *ExecutionStrategy) Execute(ctx context.Context, op func(context.Context) error) error {
	attempts := s.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; ; attempt++ {
		err := op(ctx)
		if err == nil || attempt >= attempts || !IsTransient(err) {
			return err
		}

		timer := time.NewTimer(s.Delay * time.Duration(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
