package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestLiveAtWindow(t *testing.T) {
	start := testNow.Add(-time.Hour)
	end := testNow.Add(time.Hour)

	tests := []struct {
		name   string
		banner Banner
		now    time.Time
		want   bool
	}{
		{name: "no window", banner: Banner{IsActive: true}, now: testNow, want: true},
		{name: "inactive short-circuits", banner: Banner{IsActive: false}, now: testNow, want: false},
		{name: "inside window", banner: Banner{IsActive: true, StartsAt: &start, EndsAt: &end}, now: testNow, want: true},
		{name: "eligible at exactly starts_at", banner: Banner{IsActive: true, StartsAt: &start}, now: start, want: true},
		{name: "before starts_at", banner: Banner{IsActive: true, StartsAt: &start}, now: start.Add(-time.Second), want: false},
		{name: "eligible at exactly ends_at", banner: Banner{IsActive: true, EndsAt: &end}, now: end, want: true},
		{name: "one second past ends_at", banner: Banner{IsActive: true, EndsAt: &end}, now: end.Add(time.Second), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.banner.LiveAt(tt.now))
		})
	}
}

// A banner expiring at midnight is gone one second later.
func TestLiveAtWindowEdge(t *testing.T) {
	end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := Banner{IsActive: true, EndsAt: &end}
	require.False(t, b.LiveAt(time.Date(2024, 1, 1, 0, 0, 1, 0, time.UTC)))
}

func TestAppliesTo(t *testing.T) {
	home := Banner{DisplayLocation: LocationHomeTop}
	require.True(t, home.AppliesTo(LocationHomeTop, ""))
	require.False(t, home.AppliesTo(LocationExplore, ""))

	everywhere := Banner{DisplayLocation: LocationAll}
	require.True(t, everywhere.AppliesTo(LocationHomeTop, ""))
	require.True(t, everywhere.AppliesTo(LocationPlayer, "pl-1"))

	// player banners with target playlists only apply inside those playlists
	scoped := Banner{DisplayLocation: LocationPlayer, TargetPlaylistIDs: []string{"pl-sleep"}}
	require.True(t, scoped.AppliesTo(LocationPlayer, "pl-sleep"))
	require.False(t, scoped.AppliesTo(LocationPlayer, "pl-focus"))

	// empty target playlists means every playlist
	open := Banner{DisplayLocation: LocationPlayer}
	require.True(t, open.AppliesTo(LocationPlayer, "pl-focus"))
}

func TestMayShowAgain(t *testing.T) {
	last := testNow

	require.False(t, MayShowAgain(FrequencyOnce, last, testNow.Add(365*24*time.Hour)))

	// daily boundary: false strictly inside the 24h window, true at exactly 24h
	require.False(t, MayShowAgain(FrequencyDaily, last, last.Add(time.Second)))
	require.False(t, MayShowAgain(FrequencyDaily, last, last.Add(24*time.Hour-time.Nanosecond)))
	require.True(t, MayShowAgain(FrequencyDaily, last, last.Add(24*time.Hour)))

	require.False(t, MayShowAgain(FrequencyWeekly, last, last.Add(6*24*time.Hour)))
	require.True(t, MayShowAgain(FrequencyWeekly, last, last.Add(7*24*time.Hour)))
}

func TestOrderCandidates(t *testing.T) {
	older := testNow.Add(-time.Hour)
	banners := []Banner{
		{ID: 1, Priority: 1, CreatedAt: testNow},
		{ID: 2, Priority: 5, CreatedAt: older},
		{ID: 3, Priority: 5, CreatedAt: testNow},
	}
	OrderCandidates(banners)

	// priority descending, ties broken by most recently created
	require.Equal(t, int64(3), banners[0].ID)
	require.Equal(t, int64(2), banners[1].ID)
	require.Equal(t, int64(1), banners[2].ID)

	// deterministic: reordering again changes nothing
	OrderCandidates(banners)
	require.Equal(t, int64(3), banners[0].ID)
}

func TestBannerValidate(t *testing.T) {
	valid := Banner{
		AspectRatio:      AspectVideo,
		DisplayLocation:  LocationHomeTop,
		DisplayFrequency: FrequencyDaily,
		Audience:         AudienceRule{TargetType: TargetAll},
		Destination:      Destination{Kind: KindJournal},
	}
	require.NoError(t, valid.Validate())

	bad := valid
	bad.AspectRatio = "4:3"
	require.Error(t, bad.Validate())

	bad = valid
	bad.DisplayFrequency = "hourly"
	require.Error(t, bad.Validate())

	bad = valid
	bad.Destination = Destination{Kind: KindPlaylist}
	require.Error(t, bad.Validate(), "playlist destination requires an identifier")
}
