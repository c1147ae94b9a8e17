package util

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrAttemptsExhausted is returned when every attempt in a fallback chain failed
	ErrAttemptsExhausted = errors.New("all attempts failed")

	// ErrRejected marks an attempt that completed but produced an unusable result
	// (bad status, empty body). Rejections are logged quietly; other errors warn.
	ErrRejected = errors.New("attempt rejected")
)

// Attempt is one named strategy in an ordered fallback chain
type Attempt[T any] struct {
	Name string
	Run  func(ctx context.Context) (T, error)
}

// FirstSuccess runs attempts strictly in order and returns the first result
// whose attempt returned a nil error. Each attempt runs exactly once, with no
// delay between attempts. A cancelled context stops the chain.
func FirstSuccess[T any](ctx context.Context, attempts []Attempt[T], operationName string) (T, error) {
	var zero T
	var lastErr error

	for i, a := range attempts {
		if err := ctx.Err(); err != nil {
			return zero, fmt.Errorf("%s cancelled before %s: %w", operationName, a.Name, err)
		}

		DebugLog("%s: attempt %d/%d via %s", operationName, i+1, len(attempts), a.Name)

		result, err := a.Run(ctx)
		if err == nil {
			DebugLog("%s: succeeded via %s", operationName, a.Name)
			return result, nil
		}
		lastErr = err

		if errors.Is(err, ErrRejected) {
			DebugLog("%s: %s rejected: %v", operationName, a.Name, err)
		} else {
			WarnLog("%s: attempt via %s threw an error: %v", operationName, a.Name, err)
		}
	}

	if lastErr == nil {
		return zero, fmt.Errorf("%s: %w (no attempts configured)", operationName, ErrAttemptsExhausted)
	}
	return zero, fmt.Errorf("%s: %w (%d attempts): %v", operationName, ErrAttemptsExhausted, len(attempts), lastErr)
}
