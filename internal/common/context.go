package common

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// HandleContextError checks for context cancellation and wraps the error with a message
func HandleContextError(ctx context.Context, operation string) error {
	if ctx.Err() != nil {
		return fmt.Errorf("%s canceled: %w", operation, ctx.Err())
	}
	return nil
}

// IsContextCanceled checks if an error is due to context cancellation
func IsContextCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// IsTimeout reports whether err was caused by a deadline or a network timeout
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
