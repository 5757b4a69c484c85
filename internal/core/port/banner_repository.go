package port

import (
	"context"
	"errors"

	"serene-banners/internal/core/domain"
)

var (
	ErrBannerNotFound = errors.New("banner not found")
	ErrInvalidBanner  = errors.New("invalid banner")
)

// BannerRepository defines the persistence layer for the banner engine. It
// is an outbound port in hexagonal architecture. Implementations must be
// concurrency-safe.
type BannerRepository interface {
	// ActiveForLocation returns active banners scoped to the given location
	// or to "all". Schedule, audience and frequency gating happen in the
	// usecase; the repository only narrows by location and the active flag.
	ActiveForLocation(ctx context.Context, loc domain.DisplayLocation) ([]domain.Banner, error)

	// UserProfile assembles the audience-relevant profile for a user. A user
	// with no memberships yields an empty (not nil-error) profile.
	UserProfile(ctx context.Context, userID string) (domain.UserProfile, error)

	// Lookups returns the destination lookup tables (routines, playlists,
	// channels, programs, task templates, routine bank, breathing
	// exercises) keyed by identifier.
	Lookups(ctx context.Context) (domain.Lookups, error)

	// RecordEvent appends a shown/dismissed event.
	RecordEvent(ctx context.Context, ev domain.BannerEvent) error

	// Stats returns aggregated shown/dismissed counts for a period,
	// optionally narrowed to one banner.
	Stats(ctx context.Context, req StatsReq) (*StatsResp, error)

	// Admin surface. GetBanner and UpdateBanner/DeleteBanner return
	// ErrBannerNotFound for unknown ids.
	CreateBanner(ctx context.Context, b *domain.Banner) error
	UpdateBanner(ctx context.Context, b *domain.Banner) error
	DeleteBanner(ctx context.Context, id int64) error
	GetBanner(ctx context.Context, id int64) (*domain.Banner, error)
	ListBanners(ctx context.Context) ([]domain.Banner, error)
}
