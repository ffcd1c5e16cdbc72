// Package id stamps render and comparison results with time-sortable ULIDs
// so batch callers can correlate log lines with per-cell outcomes.
package id

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// NewRenderID returns the ULID string stamped on one render or comparison
// cell. IDs issued within the same millisecond stay lexicographically
// ordered, so sorting results by ID recovers issue order.
func NewRenderID() string {
	mu.Lock()
	defer mu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now().UTC()), entropy).String()
}
