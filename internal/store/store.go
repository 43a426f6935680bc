// Package store is the persistence layer, one store per resource kind over
// database/sql. Partial updates go through per-resource patch types that only
// touch the columns a caller actually set.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by lookups and deletes that matched no row.
var ErrNotFound = errors.New("record not found")

// ErrNoFields is returned when a patch would update nothing.
var ErrNoFields = errors.New("no fields to update")

// queryTimeout bounds every persistence call independently of the request
// deadline.
const queryTimeout = 5 * time.Second

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, queryTimeout)
}

type scanner interface {
	Scan(dest ...any) error
}

// Timestamps are persisted as unix milliseconds so sqlite and mysql behave
// identically.
func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
