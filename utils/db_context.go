package utils

import (
	"context"
	"time"
)

// DefaultQueryTimeout bounds ordinary database queries.
const DefaultQueryTimeout = 30 * time.Second

// FastQueryTimeout is for single-row lookups that should never be slow.
const FastQueryTimeout = 10 * time.Second

// GetQueryContext returns a context with the given timeout for database
// queries, falling back to a background context when none is provided.
func GetQueryContext(parentCtx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	return context.WithTimeout(parentCtx, timeout)
}

// GetDefaultQueryContext returns a context with the default timeout.
func GetDefaultQueryContext(parentCtx context.Context) (context.Context, context.CancelFunc) {
	return GetQueryContext(parentCtx, DefaultQueryTimeout)
}
