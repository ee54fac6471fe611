package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastStrategy(attempts int) *ExecutionStrategy {
	return &ExecutionStrategy{MaxAttempts: attempts, Delay: time.Millisecond}
}

func TestExecuteRetriesTransientErrors(t *testing.T) {
	serialization := &pq.Error{Code: "40001"}

	calls := 0
	err := fastStrategy(3).Execute(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return serialization
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestExecuteStopsOnTerminalError(t *testing.T) {
	terminal := errors.New("syntax error")

	calls := 0
	err := fastStrategy(3).Execute(context.Background(), func(context.Context) error {
		calls++
		return terminal
	})

	assert.ErrorIs(t, err, terminal)
	assert.Equal(t, 1, calls)
}

func TestExecuteExhaustsAttempts(t *testing.T) {
	deadlock := &pq.Error{Code: "40P01"}

	calls := 0
	err := fastStrategy(3).Execute(context.Background(), func(context.Context) error {
		calls++
		return deadlock
	})

	assert.ErrorIs(t, err, deadlock)
	assert.Equal(t, 3, calls)
}

func TestExecuteHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	strategy := &ExecutionStrategy{MaxAttempts: 5, Delay: time.Minute}
	done := make(chan error, 1)
	go func() {
		done <- strategy.Execute(ctx, func(context.Context) error {
			calls++
			return &pq.Error{Code: "40001"}
		})
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	case <-time.After(5 * time.Second):
		t.Fatal("Execute did not return after cancellation")
	}
}

func TestIsTransient(t *testing.T) {
	cases := []struct {
		code pq.ErrorCode
		want bool
	}{
		{"40001", true}, // serialization_failure
		{"40P01", true}, // deadlock_detected
		{"57P01", true}, // admin_shutdown
		{"53300", true}, // too_many_connections
		{"08006", true}, // connection_failure
		{"23505", false},
		{"42601", false},
	}
	for _, tc := range cases {
		wrapped := fmt.Errorf("exec: %w", &pq.Error{Code: tc.code})
		assert.Equal(t, tc.want, IsTransient(wrapped), "code %s", tc.code)
	}

	assert.False(t, IsTransient(errors.New("plain")))
	assert.False(t, IsTransient(nil))
}

func TestIsConstraintViolation(t *testing.T) {
	assert.True(t, IsConstraintViolation(&pq.Error{Code: "23505"}))
	assert.True(t, IsConstraintViolation(fmt.Errorf("insert: %w", &pq.Error{Code: "23503"})))
	assert.False(t, IsConstraintViolation(&pq.Error{Code: "40001"}))
	assert.False(t, IsConstraintViolation(errors.New("plain")))
}
