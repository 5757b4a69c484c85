package usecase

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"serene-banners/internal/adapter/capstore"
	"serene-banners/internal/core/domain"
	"serene-banners/internal/core/port"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// fakeRepo is an in-memory port.BannerRepository for pipeline tests.
type fakeRepo struct {
	banners    []domain.Banner
	profile    domain.UserProfile
	lookups    domain.Lookups
	events     []domain.BannerEvent
	fetchErr   error
	profileErr error
}

func (f *fakeRepo) ActiveForLocation(_ context.Context, loc domain.DisplayLocation) ([]domain.Banner, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	var out []domain.Banner
	for _, b := range f.banners {
		if b.IsActive && (b.DisplayLocation == loc || b.DisplayLocation == domain.LocationAll) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeRepo) UserProfile(context.Context, string) (domain.UserProfile, error) {
	if f.profileErr != nil {
		return domain.UserProfile{}, f.profileErr
	}
	return f.profile, nil
}

func (f *fakeRepo) Lookups(context.Context) (domain.Lookups, error) { return f.lookups, nil }

func (f *fakeRepo) RecordEvent(_ context.Context, ev domain.BannerEvent) error {
	f.events = append(f.events, ev)
	return nil
}

func (f *fakeRepo) Stats(context.Context, port.StatsReq) (*port.StatsResp, error) {
	return &port.StatsResp{}, nil
}

func (f *fakeRepo) CreateBanner(context.Context, *domain.Banner) error { return nil }
func (f *fakeRepo) UpdateBanner(context.Context, *domain.Banner) error { return nil }
func (f *fakeRepo) DeleteBanner(context.Context, int64) error          { return nil }
func (f *fakeRepo) GetBanner(context.Context, int64) (*domain.Banner, error) {
	return nil, port.ErrBannerNotFound
}
func (f *fakeRepo) ListBanners(context.Context) ([]domain.Banner, error) { return f.banners, nil }

func newTestUseCase(repo *fakeRepo) (*BannerUseCase, *capstore.Memory) {
	caps := capstore.NewMemory()
	return NewBannerUseCase(repo, caps, slog.New(slog.DiscardHandler)), caps
}

func activeBanner(id int64, loc domain.DisplayLocation, priority int) domain.Banner {
	return domain.Banner{
		ID:               id,
		DisplayLocation:  loc,
		DisplayFrequency: domain.FrequencyDaily,
		Priority:         priority,
		IsActive:         true,
		Audience:         domain.AudienceRule{TargetType: domain.TargetAll},
		Destination:      domain.Destination{Kind: domain.KindHome},
		CreatedAt:        testNow.Add(-time.Duration(id) * time.Minute),
	}
}

// TestHighestPriorityWins ensures the usecase picks the highest-priority
// survivor for the location.
func TestHighestPriorityWins(t *testing.T) {
	repo := &fakeRepo{banners: []domain.Banner{
		activeBanner(1, domain.LocationHomeTop, 5),
		activeBanner(2, domain.LocationHomeTop, 1),
	}}
	svc, _ := newTestUseCase(repo)

	req := port.PlacementRequest{Location: domain.LocationHomeTop, UserID: "u1", Now: testNow}
	placement, err := svc.EvaluateForLocation(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, placement)
	require.Equal(t, int64(1), placement.Banner.ID)

	// repeated calls with the same inputs return the same winner
	again, err := svc.EvaluateForLocation(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, placement.Banner.ID, again.Banner.ID)
}

func TestScheduleGateFiltersBeforeSelection(t *testing.T) {
	ended := testNow.Add(-time.Minute)
	expired := activeBanner(1, domain.LocationHomeTop, 10)
	expired.EndsAt = &ended
	inactive := activeBanner(2, domain.LocationHomeTop, 9)
	inactive.IsActive = false

	repo := &fakeRepo{banners: []domain.Banner{
		expired,
		inactive,
		activeBanner(3, domain.LocationHomeTop, 1),
	}}
	svc, _ := newTestUseCase(repo)

	placement, err := svc.EvaluateForLocation(context.Background(),
		port.PlacementRequest{Location: domain.LocationHomeTop, UserID: "u1", Now: testNow})
	require.NoError(t, err)
	require.NotNil(t, placement)
	require.Equal(t, int64(3), placement.Banner.ID)
}

func TestAudienceGate(t *testing.T) {
	targeted := activeBanner(1, domain.LocationExplore, 10)
	targeted.Audience = domain.AudienceRule{
		TargetType:      domain.TargetCustom,
		IncludePrograms: []string{"biz101"},
	}
	repo := &fakeRepo{banners: []domain.Banner{targeted}}
	svc, _ := newTestUseCase(repo)

	req := port.PlacementRequest{Location: domain.LocationExplore, UserID: "u1", Now: testNow}
	placement, err := svc.EvaluateForLocation(context.Background(), req)
	require.NoError(t, err)
	require.Nil(t, placement, "unenrolled user must not see the banner")

	repo.profile = domain.UserProfile{EnrolledProgramSlugs: []string{"biz101"}}
	placement, err = svc.EvaluateForLocation(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, placement)
}

func TestFrequencyCapSuppressesShownBanner(t *testing.T) {
	repo := &fakeRepo{banners: []domain.Banner{activeBanner(1, domain.LocationHomeTop, 5)}}
	svc, _ := newTestUseCase(repo)
	req := port.PlacementRequest{Location: domain.LocationHomeTop, UserID: "u1", Now: testNow}

	placement, err := svc.EvaluateForLocation(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, placement)

	require.NoError(t, svc.RecordShown(context.Background(), "u1", 1, testNow))

	// inside the 24h window nothing is eligible
	req.Now = testNow.Add(time.Hour)
	placement, err = svc.EvaluateForLocation(context.Background(), req)
	require.NoError(t, err)
	require.Nil(t, placement)

	// at exactly 24h the banner is eligible again
	req.Now = testNow.Add(24 * time.Hour)
	placement, err = svc.EvaluateForLocation(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, placement)

	// a different user starts with a clean cap state
	req.Now = testNow.Add(time.Hour)
	req.UserID = "u2"
	placement, err = svc.EvaluateForLocation(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, placement)
}

func TestOnceCapIsPermanent(t *testing.T) {
	b := activeBanner(1, domain.LocationHomeTop, 5)
	b.DisplayFrequency = domain.FrequencyOnce
	repo := &fakeRepo{banners: []domain.Banner{b}}
	svc, _ := newTestUseCase(repo)

	require.NoError(t, svc.RecordShown(context.Background(), "u1", 1, testNow))

	placement, err := svc.EvaluateForLocation(context.Background(),
		port.PlacementRequest{Location: domain.LocationHomeTop, UserID: "u1", Now: testNow.Add(1000 * time.Hour)})
	require.NoError(t, err)
	require.Nil(t, placement)
}

func TestPlayerPlaylistRefinement(t *testing.T) {
	scoped := activeBanner(1, domain.LocationPlayer, 5)
	scoped.TargetPlaylistIDs = []string{"pl-sleep"}
	repo := &fakeRepo{banners: []domain.Banner{scoped}}
	svc, _ := newTestUseCase(repo)

	placement, err := svc.EvaluateForLocation(context.Background(),
		port.PlacementRequest{Location: domain.LocationPlayer, UserID: "u1", PlaylistID: "pl-focus", Now: testNow})
	require.NoError(t, err)
	require.Nil(t, placement)

	placement, err = svc.EvaluateForLocation(context.Background(),
		port.PlacementRequest{Location: domain.LocationPlayer, UserID: "u1", PlaylistID: "pl-sleep", Now: testNow})
	require.NoError(t, err)
	require.NotNil(t, placement)
}

// Collaborator failures degrade to "no banner", never an error: a promo
// failure must not block the page it decorates.
func TestFetchFailureDegradesToNothing(t *testing.T) {
	repo := &fakeRepo{fetchErr: errors.New("connection refused")}
	svc, _ := newTestUseCase(repo)

	placement, err := svc.EvaluateForLocation(context.Background(),
		port.PlacementRequest{Location: domain.LocationHomeTop, UserID: "u1", Now: testNow})
	require.NoError(t, err)
	require.Nil(t, placement)

	repo = &fakeRepo{
		banners:    []domain.Banner{activeBanner(1, domain.LocationHomeTop, 5)},
		profileErr: errors.New("timeout"),
	}
	svc, _ = newTestUseCase(repo)
	placement, err = svc.EvaluateForLocation(context.Background(),
		port.PlacementRequest{Location: domain.LocationHomeTop, UserID: "u1", Now: testNow})
	require.NoError(t, err)
	require.Nil(t, placement)
}

func TestRecordShownOverwritesAndLogsEvent(t *testing.T) {
	repo := &fakeRepo{}
	svc, caps := newTestUseCase(repo)

	require.NoError(t, svc.RecordShown(context.Background(), "u1", 7, testNow))
	require.NoError(t, svc.RecordShown(context.Background(), "u1", 7, testNow))

	last, ok, err := caps.LastShown(context.Background(), "u1", 7)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, testNow, last)

	require.Len(t, repo.events, 2)
	require.Equal(t, domain.EventShown, repo.events[0].Type)
	require.NotEmpty(t, repo.events[0].Token)
}

// Dismissal is reporting only: it neither creates nor resets display
// records.
func TestRecordDismissedLeavesCapAlone(t *testing.T) {
	repo := &fakeRepo{}
	svc, caps := newTestUseCase(repo)

	require.NoError(t, svc.RecordShown(context.Background(), "u1", 7, testNow))
	require.NoError(t, svc.RecordDismissed(context.Background(), "u1", 7, testNow.Add(time.Minute)))

	last, ok, err := caps.LastShown(context.Background(), "u1", 7)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, testNow, last)

	require.Len(t, repo.events, 2)
	require.Equal(t, domain.EventDismissed, repo.events[1].Type)
}

func TestResolveDestinationThroughLookups(t *testing.T) {
	repo := &fakeRepo{lookups: domain.Lookups{
		domain.LookupPlaylists: {"p9": {Label: "Deep Focus"}},
	}}
	svc, _ := newTestUseCase(repo)

	got, err := svc.ResolveDestination(context.Background(),
		domain.Destination{Kind: domain.KindPlaylist, Identifier: "p9"})
	require.NoError(t, err)
	require.Equal(t, "Deep Focus", got.Label)

	// unknown identifier degrades to the raw identifier
	got, err = svc.ResolveDestination(context.Background(),
		domain.Destination{Kind: domain.KindPlaylist, Identifier: "p404"})
	require.NoError(t, err)
	require.Equal(t, "p404", got.Label)
}

func TestCreateBannerValidates(t *testing.T) {
	repo := &fakeRepo{}
	svc, _ := newTestUseCase(repo)

	bad := activeBanner(0, domain.LocationHomeTop, 1)
	bad.AspectRatio = "4:3"
	err := svc.CreateBanner(context.Background(), &bad)
	require.ErrorIs(t, err, port.ErrInvalidBanner)
}
