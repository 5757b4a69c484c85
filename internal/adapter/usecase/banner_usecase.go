package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"serene-banners/internal/core/domain"
	"serene-banners/internal/core/port"
)

// BannerUseCase provides business logic for banner targeting, selection and
// event recording. It orchestrates the repository and the cap store to
// implement the port.BannerUseCase interface.
type BannerUseCase struct {
	repo   port.BannerRepository
	caps   port.CapStore
	logger *slog.Logger
}

// NewBannerUseCase creates a new usecase with the provided collaborators.
func NewBannerUseCase(repo port.BannerRepository, caps port.CapStore, logger *slog.Logger) *BannerUseCase {
	return &BannerUseCase{repo: repo, caps: caps, logger: logger}
}

// EvaluateForLocation runs the gate pipeline for one page view. Gates run
// cheapest first: the schedule gate and the location/playlist scope discard
// banners before the profile fetch, the audience rule before the per-banner
// cap-store reads. The survivors are ordered by priority then recency and
// the head wins.
//
// Any collaborator failure degrades to "no banner": the error is logged and
// (nil, nil) is returned, never an error that could fail the page render.
func (u *BannerUseCase) EvaluateForLocation(ctx context.Context, req port.PlacementRequest) (*port.Placement, error) {
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	banners, err := u.repo.ActiveForLocation(ctx, req.Location)
	if err != nil {
		u.logger.Error("banner fetch failed", slog.Any("error", err))
		return nil, nil
	}

	live := banners[:0]
	for _, b := range banners {
		if b.LiveAt(now) && b.AppliesTo(req.Location, req.PlaylistID) {
			live = append(live, b)
		}
	}
	if len(live) == 0 {
		return nil, nil
	}

	profile, err := u.repo.UserProfile(ctx, req.UserID)
	if err != nil {
		u.logger.Error("profile fetch failed", slog.Any("error", err), slog.String("user_id", req.UserID))
		return nil, nil
	}

	eligible := live[:0]
	for _, b := range live {
		if !b.Audience.Matches(profile) {
			continue
		}
		if !u.mayShow(ctx, req.UserID, &b, now) {
			continue
		}
		eligible = append(eligible, b)
	}
	if len(eligible) == 0 {
		return nil, nil
	}

	domain.OrderCandidates(eligible)
	winner := eligible[0]

	return &port.Placement{
		Banner:   winner,
		Resolved: domain.Resolve(winner.Destination, u.lookups(ctx)),
	}, nil
}

// mayShow consults the cap store for one banner. A read failure counts as
// "no record": over-showing a capped banner once is the accepted cost, and
// a degraded cap backend must not blank every capped banner.
func (u *BannerUseCase) mayShow(ctx context.Context, userID string, b *domain.Banner, now time.Time) bool {
	lastShown, exists, err := u.caps.LastShown(ctx, userID, b.ID)
	if err != nil {
		u.logger.Warn("cap store read failed", slog.Any("error", err), slog.Int64("banner_id", b.ID))
		return true
	}
	if !exists {
		return true
	}
	return domain.MayShowAgain(b.DisplayFrequency, lastShown, now)
}

// lookups fetches the destination lookup tables, degrading to nil (raw
// identifier labels) on failure.
func (u *BannerUseCase) lookups(ctx context.Context) domain.Lookups {
	lookups, err := u.repo.Lookups(ctx)
	if err != nil {
		u.logger.Warn("lookup fetch failed", slog.Any("error", err))
		return nil
	}
	return lookups
}

// RecordShown overwrites the display record for the pair and appends a
// shown event. Either write failing is logged and swallowed; the only risk
// is one extra display of a capped banner.
func (u *BannerUseCase) RecordShown(ctx context.Context, userID string, bannerID int64, now time.Time) error {
	if now.IsZero() {
		now = time.Now()
	}
	if err := u.caps.SetLastShown(ctx, userID, bannerID, now); err != nil {
		u.logger.Error("cap store write failed", slog.Any("error", err), slog.Int64("banner_id", bannerID))
	}
	u.appendEvent(ctx, userID, bannerID, domain.EventShown, now)
	return nil
}

// RecordDismissed appends a dismissed event. It deliberately leaves the
// display record alone: dismissal does not reset or shorten the cap.
func (u *BannerUseCase) RecordDismissed(ctx context.Context, userID string, bannerID int64, now time.Time) error {
	if now.IsZero() {
		now = time.Now()
	}
	u.appendEvent(ctx, userID, bannerID, domain.EventDismissed, now)
	return nil
}

func (u *BannerUseCase) appendEvent(ctx context.Context, userID string, bannerID int64, typ domain.EventType, now time.Time) {
	ev := domain.BannerEvent{
		Token:      uuid.NewString(),
		BannerID:   bannerID,
		UserID:     userID,
		Type:       typ,
		OccurredAt: now,
	}
	if err := u.repo.RecordEvent(ctx, ev); err != nil {
		u.logger.Error("event write failed", slog.Any("error", err),
			slog.Int64("banner_id", bannerID), slog.String("type", string(typ)))
	}
}

// ResolveDestination resolves a destination against the current lookup
// tables. Resolution itself cannot fail; a lookup fetch failure only costs
// the friendly label.
func (u *BannerUseCase) ResolveDestination(ctx context.Context, d domain.Destination) (domain.ResolvedDestination, error) {
	return domain.Resolve(d, u.lookups(ctx)), nil
}

// Stats returns aggregated shown/dismissed counts for a period.
func (u *BannerUseCase) Stats(ctx context.Context, req port.StatsReq) (*port.StatsResp, error) {
	return u.repo.Stats(ctx, req)
}

// CreateBanner validates and stores a new banner.
func (u *BannerUseCase) CreateBanner(ctx context.Context, b *domain.Banner) error {
	if err := b.Validate(); err != nil {
		return fmt.Errorf("%w: %v", port.ErrInvalidBanner, err)
	}
	return u.repo.CreateBanner(ctx, b)
}

// UpdateBanner validates and replaces an existing banner.
func (u *BannerUseCase) UpdateBanner(ctx context.Context, b *domain.Banner) error {
	if err := b.Validate(); err != nil {
		return fmt.Errorf("%w: %v", port.ErrInvalidBanner, err)
	}
	return u.repo.UpdateBanner(ctx, b)
}

// DeleteBanner removes a banner. Its display records are left behind in the
// cap store; they are harmless and keyed by an id that will not be reused.
func (u *BannerUseCase) DeleteBanner(ctx context.Context, id int64) error {
	return u.repo.DeleteBanner(ctx, id)
}

// GetBanner returns one banner by id.
func (u *BannerUseCase) GetBanner(ctx context.Context, id int64) (*domain.Banner, error) {
	return u.repo.GetBanner(ctx, id)
}

// ListBanners returns every banner for the admin console.
func (u *BannerUseCase) ListBanners(ctx context.Context) ([]domain.Banner, error) {
	return u.repo.ListBanners(ctx)
}
