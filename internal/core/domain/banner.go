package domain

import (
	"fmt"
	"slices"
	"sort"
	"time"
)

// AspectRatio is the rendered shape of a banner creative.
type AspectRatio string

const (
	AspectWide   AspectRatio = "3:1"
	AspectVideo  AspectRatio = "16:9"
	AspectSquare AspectRatio = "1:1"
)

// DisplayLocation names the screen region a banner is scoped to. A banner
// scoped to LocationAll is a candidate for every location.
type DisplayLocation string

const (
	LocationHomeTop     DisplayLocation = "home_top"
	LocationHomeRituals DisplayLocation = "home_rituals"
	LocationExplore     DisplayLocation = "explore"
	LocationListen      DisplayLocation = "listen"
	LocationPlayer      DisplayLocation = "player"
	LocationAll         DisplayLocation = "all"
)

// DisplayFrequency caps how often the same banner may be re-shown to the
// same user once a display record exists.
type DisplayFrequency string

const (
	FrequencyOnce   DisplayFrequency = "once"
	FrequencyDaily  DisplayFrequency = "daily"
	FrequencyWeekly DisplayFrequency = "weekly"
)

// Banner represents a promotional creative with its targeting, scheduling
// and destination. Banners are authored by administrators and read-only to
// the serving path.
type Banner struct {
	ID               int64            `json:"id"`
	CoverImageURL    string           `json:"cover_image_url"`
	AspectRatio      AspectRatio      `json:"aspect_ratio"`
	Destination      Destination      `json:"destination"`
	DisplayLocation  DisplayLocation  `json:"display_location"`
	DisplayFrequency DisplayFrequency `json:"display_frequency"`
	Priority         int              `json:"priority"`
	IsActive         bool             `json:"is_active"`
	StartsAt         *time.Time       `json:"starts_at,omitempty"`
	EndsAt           *time.Time       `json:"ends_at,omitempty"`
	Audience         AudienceRule     `json:"audience"`

	// TargetPlaylistIDs narrows a player-scoped banner to specific playback
	// contexts. Empty means the banner applies to every playlist.
	TargetPlaylistIDs []string `json:"target_playlist_ids,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LiveAt reports whether the banner is active and inside its activation
// window at the given instant. The window is inclusive at both ends: a
// banner becomes eligible at exactly StartsAt and stops being eligible
// strictly after EndsAt. A missing bound means no bound.
func (b *Banner) LiveAt(now time.Time) bool {
	if !b.IsActive {
		return false
	}
	if b.StartsAt != nil && now.Before(*b.StartsAt) {
		return false
	}
	if b.EndsAt != nil && now.After(*b.EndsAt) {
		return false
	}
	return true
}

// AppliesTo reports whether the banner is scoped to the requested location.
// For the player location, a banner carrying TargetPlaylistIDs only applies
// when the current playback playlist is among them.
func (b *Banner) AppliesTo(loc DisplayLocation, playlistID string) bool {
	if b.DisplayLocation != loc && b.DisplayLocation != LocationAll {
		return false
	}
	if loc == LocationPlayer && len(b.TargetPlaylistIDs) > 0 {
		return slices.Contains(b.TargetPlaylistIDs, playlistID)
	}
	return true
}

// Validate checks admin-supplied banner fields against the closed enums and
// the destination invariants. It does not touch timestamps or the id.
func (b *Banner) Validate() error {
	switch b.AspectRatio {
	case AspectWide, AspectVideo, AspectSquare:
	default:
		return fmt.Errorf("unknown aspect ratio %q", b.AspectRatio)
	}
	switch b.DisplayLocation {
	case LocationHomeTop, LocationHomeRituals, LocationExplore, LocationListen, LocationPlayer, LocationAll:
	default:
		return fmt.Errorf("unknown display location %q", b.DisplayLocation)
	}
	switch b.DisplayFrequency {
	case FrequencyOnce, FrequencyDaily, FrequencyWeekly:
	default:
		return fmt.Errorf("unknown display frequency %q", b.DisplayFrequency)
	}
	if err := b.Audience.Validate(); err != nil {
		return err
	}
	return b.Destination.Validate()
}

// MayShowAgain decides whether a banner whose display record is lastShownAt
// may be shown again at now under the given frequency policy. Callers with
// no display record may always show; this function is only consulted once a
// record exists.
func MayShowAgain(freq DisplayFrequency, lastShownAt, now time.Time) bool {
	switch freq {
	case FrequencyDaily:
		return now.Sub(lastShownAt) >= 24*time.Hour
	case FrequencyWeekly:
		return now.Sub(lastShownAt) >= 7*24*time.Hour
	default:
		// once, and anything unrecognised, never re-shows.
		return false
	}
}

// OrderCandidates sorts banners in place by priority descending, ties broken
// by creation time descending. The sort is stable so repeated calls over the
// same input produce the same order.
func OrderCandidates(banners []Banner) {
	sort.SliceStable(banners, func(i, j int) bool {
		if banners[i].Priority != banners[j].Priority {
			return banners[i].Priority > banners[j].Priority
		}
		return banners[i].CreatedAt.After(banners[j].CreatedAt)
	})
}
