package util

import (
	"context"
	"time"
)

const (
	CONTEXT_TIMEOUT = 5 * time.Second
)

// GetContextWithTimeout bounds every collaborator call (store, cache,
// blob) with the same deadline.
func GetContextWithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, CONTEXT_TIMEOUT)
}
