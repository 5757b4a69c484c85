package port

import (
	"context"
	"time"

	"serene-banners/internal/core/domain"
)

// BannerUseCase defines the business operations exposed by the banner
// engine. This interface represents the primary port into the application
// domain.
type BannerUseCase interface {
	// EvaluateForLocation runs the gate pipeline (schedule, audience,
	// frequency cap) over the candidate banners for a location and returns
	// the highest-priority survivor with its destination resolved, or nil
	// when nothing is eligible. Collaborator failures degrade to nil: a
	// promo failure must never block the page it decorates.
	EvaluateForLocation(ctx context.Context, req PlacementRequest) (*Placement, error)

	// RecordShown persists the display record that drives frequency capping
	// and appends a shown event. Failures are logged, not surfaced: the
	// accepted cost is one extra display.
	RecordShown(ctx context.Context, userID string, bannerID int64, now time.Time) error

	// RecordDismissed appends a dismissed event. Dismissal never resets or
	// shortens the frequency cap.
	RecordDismissed(ctx context.Context, userID string, bannerID int64, now time.Time) error

	// ResolveDestination resolves any destination against the current
	// lookup tables.
	ResolveDestination(ctx context.Context, d domain.Destination) (domain.ResolvedDestination, error)

	// Stats returns shown/dismissed counts for a period.
	Stats(ctx context.Context, req StatsReq) (*StatsResp, error)

	// Admin surface over the banner store.
	CreateBanner(ctx context.Context, b *domain.Banner) error
	UpdateBanner(ctx context.Context, b *domain.Banner) error
	DeleteBanner(ctx context.Context, id int64) error
	GetBanner(ctx context.Context, id int64) (*domain.Banner, error)
	ListBanners(ctx context.Context) ([]domain.Banner, error)
}

// PlacementRequest identifies one page view asking for a banner. PlaylistID
// carries the playback context and only matters for the player location.
// A zero Now means "use the wall clock".
type PlacementRequest struct {
	Location   domain.DisplayLocation
	UserID     string
	PlaylistID string
	Now        time.Time
}

// Placement is the selected banner together with its resolved destination.
// It is a DTO used by the HTTP layer and does not contain domain behaviour.
type Placement struct {
	Banner   domain.Banner              `json:"banner"`
	Resolved domain.ResolvedDestination `json:"resolved"`
}

// StatsReq bounds a stats query. A nil BannerID aggregates across all
// banners.
type StatsReq struct {
	From     time.Time
	To       time.Time
	BannerID *int64
}

// StatsResp contains aggregated event counts for banners.
type StatsResp struct {
	Shown     int64 `json:"shown"`
	Dismissed int64 `json:"dismissed"`
}
