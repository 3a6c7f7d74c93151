// Package cursor persists resumption cursors between pipeline runs.
//
// A cursor records how many eligible repositories a scan has consumed, so
// the next run can start where the previous one stopped. Cursors are keyed
// by the scan scope (required technologies, matching mode, strategy); two
// requests with the same scope walk the same repositories.
//
// # Stores
//
//   - [FileStore]: one JSON file per cursor, for CLI use
//   - [RedisStore]: shared cursors for server deployments
package cursor

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/ecoscout/pkg/cache"
)

// Cursor is the saved position of a scan.
type Cursor struct {
	Key       string    `json:"key"`
	Scope     string    `json:"scope"`      // Human-readable scope summary
	Offset    int       `json:"offset"`     // Eligible repositories consumed so far
	RunID     string    `json:"run_id"`     // Run that produced the cursor
	UpdatedAt time.Time `json:"updated_at"` // When the cursor was saved
}

// Store persists cursors. Get returns (nil, nil) for an unknown key.
type Store interface {
	Get(ctx context.Context, key string) (*Cursor, error)
	Set(ctx context.Context, c *Cursor) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]*Cursor, error)
	Close() error
}

// Key derives the cursor key for a scan scope.
func Key(scope ...any) string {
	k := cache.HashKey("cursor", scope...)
	// Keys double as file names; keep them short.
	return strings.TrimPrefix(k, "cursor:")[:16]
}
