// README: Append-only location record for the per-user log.
package record

import (
	"context"
	"time"
)

// Record is one accepted and enriched sample. Records are never updated or
// deleted once appended.
type Record struct {
	Latitude   float64
	Longitude  float64
	RecordedAt time.Time
	PlaceName  string
	Category   string
	AccuracyM  float64
}

// Store is the persistence boundary: append-only writes plus the recent-first
// read path consumed by the timeline UI.
//
// Append has no idempotency key; a retried write after an ambiguous network
// failure can duplicate a record. Accepted as a known limitation.
type Store interface {
	Append(ctx context.Context, userID string, rec Record) error
	QueryRecent(ctx context.Context, userID string, limit int) ([]Record, error)
}
