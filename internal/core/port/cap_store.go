package port

import (
	"context"
	"time"
)

// CapStore persists per-user, per-banner "last shown" records for frequency
// capping. It is deliberately narrow so the backing store is swappable: an
// in-memory map in tests, redis on a shared serving fleet, an embedded
// sqlite file on a single box.
//
// Records are only ever removed by clearing the backing storage; the engine
// never deletes them.
type CapStore interface {
	// LastShown returns the recorded last-shown instant for the pair and
	// whether a record exists.
	LastShown(ctx context.Context, userID string, bannerID int64) (time.Time, bool, error)

	// SetLastShown upserts the record, overwriting any previous instant.
	// Safe to call on every render.
	SetLastShown(ctx context.Context, userID string, bannerID int64, shownAt time.Time) error
}
