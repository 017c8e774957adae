package tsp

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// cancelCheckMask throttles ctx polling in hot loops: the context is read when
// counter&cancelCheckMask == 0, i.e. on the first step and every 1024 after.
const cancelCheckMask = 1023

// withBudget derives a context bounded by budget (0 ⇒ no extra bound).
func withBudget(ctx context.Context, budget time.Duration) (context.Context, context.CancelFunc) {
	if budget > 0 {
		return context.WithTimeout(ctx, budget)
	}

	return context.WithCancel(ctx)
}

// stopReasonOf maps a context error to the matching StopReason.
func stopReasonOf(err error) StopReason {
	if errors.Is(err, context.DeadlineExceeded) {
		return StopDeadline
	}

	return StopCancelled
}

// cancelledError wraps a context error into ErrCancelled.
func cancelledError(err error) error {
	return fmt.Errorf("%w: %w", ErrCancelled, err)
}
