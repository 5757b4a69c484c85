package db

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"serene-banners/internal/core/domain"
)

// Seed inserts demo data: lookup content, user memberships and a handful of
// banners covering each display location and audience shape.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	// lookup content
	type row struct{ id, label, emoji string }
	lookupRows := map[string][]row{
		`INSERT INTO routines (id, title) VALUES ($1, $2) ON CONFLICT DO NOTHING`: {
			{id: "rt-morning", label: "Morning Reset"},
			{id: "rt-evening", label: "Evening Wind-Down"},
		},
		`INSERT INTO playlists (id, name) VALUES ($1, $2) ON CONFLICT DO NOTHING`: {
			{id: "pl-focus", label: "Deep Focus"},
			{id: "pl-sleep", label: "Sleep Sounds"},
			{id: "pl-calm", label: "Calm Start"},
		},
		`INSERT INTO channels (id, name) VALUES ($1, $2) ON CONFLICT DO NOTHING`: {
			{id: "ch-daily", label: "Daily Calm"},
		},
		`INSERT INTO programs (slug, name) VALUES ($1, $2) ON CONFLICT DO NOTHING`: {
			{id: "biz101", label: "Business Foundations"},
			{id: "mindful-month", label: "Mindful Month"},
		},
	}
	for query, rows := range lookupRows {
		for _, lr := range rows {
			if _, err := db.Exec(ctx, query, lr.id, lr.label); err != nil {
				return err
			}
		}
	}
	emojiRows := map[string][]row{
		`INSERT INTO task_templates (id, title, emoji) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`: {
			{id: "tt-water", label: "Drink water", emoji: "💧"},
			{id: "tt-stretch", label: "Stretch", emoji: "🧘"},
		},
		`INSERT INTO routine_bank (id, title, emoji) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`: {
			{id: "rb-sunrise", label: "Sunrise Ritual", emoji: "🌅"},
		},
		`INSERT INTO breathe_exercises (id, name, emoji) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`: {
			{id: "be-box", label: "Box Breathing", emoji: "🫁"},
			{id: "be-478", label: "4-7-8 Breathing", emoji: "😮‍💨"},
		},
	}
	for query, rows := range emojiRows {
		for _, lr := range rows {
			if _, err := db.Exec(ctx, query, lr.id, lr.label, lr.emoji); err != nil {
				return err
			}
		}
	}

	// user memberships
	programs := []string{"biz101", "mindful-month"}
	playlists := []string{"pl-focus", "pl-sleep", "pl-calm"}
	tools := []string{"journal", "breathe", "water"}
	for i := 1; i <= 50; i++ {
		userID := fmt.Sprintf("user-%d", i)
		if r.Intn(2) == 0 {
			if _, err := db.Exec(ctx,
				`INSERT INTO user_program_enrollments (user_id, program_slug) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				userID, programs[r.Intn(len(programs))]); err != nil {
				return err
			}
		}
		if _, err := db.Exec(ctx,
			`INSERT INTO user_playlist_access (user_id, playlist_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			userID, playlists[r.Intn(len(playlists))]); err != nil {
			return err
		}
		if _, err := db.Exec(ctx,
			`INSERT INTO user_tool_usage (user_id, tool_slug) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			userID, tools[r.Intn(len(tools))]); err != nil {
			return err
		}
	}

	// banners
	weekAhead := time.Now().AddDate(0, 0, 7)
	banners := []domain.Banner{
		{
			CoverImageURL:    "https://cdn.example.com/banners/welcome.png",
			AspectRatio:      domain.AspectWide,
			Destination:      domain.Destination{Kind: domain.KindRoutinesHub, Identifier: "rb-sunrise"},
			DisplayLocation:  domain.LocationHomeTop,
			DisplayFrequency: domain.FrequencyDaily,
			Priority:         5,
			IsActive:         true,
			Audience:         domain.AudienceRule{TargetType: domain.TargetAll},
		},
		{
			CoverImageURL:    "https://cdn.example.com/banners/breathe.png",
			AspectRatio:      domain.AspectSquare,
			Destination:      domain.Destination{Kind: domain.KindBreatheExercise, Identifier: "be-box"},
			DisplayLocation:  domain.LocationHomeRituals,
			DisplayFrequency: domain.FrequencyWeekly,
			Priority:         3,
			IsActive:         true,
			EndsAt:           &weekAhead,
			Audience: domain.AudienceRule{
				TargetType:   domain.TargetCustom,
				IncludeTools: []string{"breathe"},
			},
		},
		{
			CoverImageURL:    "https://cdn.example.com/banners/program-upsell.png",
			AspectRatio:      domain.AspectVideo,
			Destination:      domain.Destination{Kind: domain.KindProgram, Identifier: "biz101"},
			DisplayLocation:  domain.LocationExplore,
			DisplayFrequency: domain.FrequencyOnce,
			Priority:         10,
			IsActive:         true,
			Audience: domain.AudienceRule{
				TargetType:      domain.TargetCustom,
				ExcludePrograms: []string{"biz101"},
			},
		},
		{
			CoverImageURL:     "https://cdn.example.com/banners/sleep-upgrade.png",
			AspectRatio:       domain.AspectWide,
			Destination:       domain.Destination{Kind: domain.KindExternalURL, URL: "https://example.com/upgrade"},
			DisplayLocation:   domain.LocationPlayer,
			DisplayFrequency:  domain.FrequencyDaily,
			Priority:          1,
			IsActive:          true,
			TargetPlaylistIDs: []string{"pl-sleep"},
			Audience:          domain.AudienceRule{TargetType: domain.TargetEnrolled},
		},
	}
	for _, b := range banners {
		destinationRaw, err := json.Marshal(b.Destination)
		if err != nil {
			return err
		}
		audienceRaw, err := json.Marshal(b.Audience)
		if err != nil {
			return err
		}
		if _, err = db.Exec(ctx, `INSERT INTO banners
    (cover_image_url, aspect_ratio, destination, display_location, display_frequency,
     priority, is_active, starts_at, ends_at, audience, target_playlist_ids)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11) ON CONFLICT DO NOTHING`,
			b.CoverImageURL, b.AspectRatio, destinationRaw, b.DisplayLocation,
			b.DisplayFrequency, b.Priority, b.IsActive, b.StartsAt, b.EndsAt,
			audienceRaw, b.TargetPlaylistIDs); err != nil {
			return err
		}
	}

	// historical shown/dismissed events
	for i := 0; i < 500; i++ {
		bannerID := int64(r.Intn(len(banners)) + 1)
		userID := fmt.Sprintf("user-%d", r.Intn(50)+1)
		eventType := domain.EventShown
		if r.Intn(10) == 0 {
			eventType = domain.EventDismissed
		}
		occurredAt := time.Now().Add(-time.Duration(r.Intn(72)) * time.Hour)
		if _, err := db.Exec(ctx, `INSERT INTO banner_events
    (token, banner_id, user_id, event_type, occurred_at)
VALUES ($1,$2,$3,$4,$5) ON CONFLICT DO NOTHING`,
			uuid.NewString(), bannerID, userID, eventType, occurredAt); err != nil {
			return err
		}
	}
	return nil
}
