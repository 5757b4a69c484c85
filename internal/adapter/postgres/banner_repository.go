package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"serene-banners/internal/core/domain"
	"serene-banners/internal/core/port"
)

// BannerRepository implements port.BannerRepository using pgxpool for
// PostgreSQL.
type BannerRepository struct {
	pool *pgxpool.Pool
}

// NewBannerRepository returns a new repository instance.
func NewBannerRepository(pool *pgxpool.Pool) *BannerRepository {
	return &BannerRepository{pool: pool}
}

const bannerColumns = `id, cover_image_url, aspect_ratio, destination, display_location,
	display_frequency, priority, is_active, starts_at, ends_at, audience,
	target_playlist_ids, created_at, updated_at`

// scanBanner scans one banner row, unmarshalling the destination and
// audience JSONB payloads.
func scanBanner(row pgx.CollectableRow) (domain.Banner, error) {
	var (
		b              domain.Banner
		destinationRaw []byte
		audienceRaw    []byte
	)
	err := row.Scan(
		&b.ID,
		&b.CoverImageURL,
		&b.AspectRatio,
		&destinationRaw,
		&b.DisplayLocation,
		&b.DisplayFrequency,
		&b.Priority,
		&b.IsActive,
		&b.StartsAt,
		&b.EndsAt,
		&audienceRaw,
		&b.TargetPlaylistIDs,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return b, err
	}
	if err = json.Unmarshal(destinationRaw, &b.Destination); err != nil {
		return b, fmt.Errorf("decode destination for banner %d: %w", b.ID, err)
	}
	if err = json.Unmarshal(audienceRaw, &b.Audience); err != nil {
		return b, fmt.Errorf("decode audience for banner %d: %w", b.ID, err)
	}
	return b, nil
}

// ActiveForLocation returns active banners scoped to the location or to
// "all". Further gating happens in the usecase over already-fetched rows.
func (r *BannerRepository) ActiveForLocation(ctx context.Context, loc domain.DisplayLocation) ([]domain.Banner, error) {
	query := fmt.Sprintf(`SELECT %s FROM banners
		WHERE is_active AND (display_location = $1 OR display_location = 'all')`, bannerColumns)
	rows, err := r.pool.Query(ctx, query, loc)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanBanner)
}

// UserProfile assembles the profile from the three membership tables. A
// user absent from all of them yields an empty profile.
func (r *BannerRepository) UserProfile(ctx context.Context, userID string) (domain.UserProfile, error) {
	p := domain.UserProfile{UserID: userID}

	rows, err := r.pool.Query(ctx, `SELECT program_slug FROM user_program_enrollments WHERE user_id = $1`, userID)
	if err != nil {
		return p, err
	}
	if p.EnrolledProgramSlugs, err = pgx.CollectRows(rows, pgx.RowTo[string]); err != nil {
		return p, err
	}

	rows, err = r.pool.Query(ctx, `SELECT playlist_id FROM user_playlist_access WHERE user_id = $1`, userID)
	if err != nil {
		return p, err
	}
	if p.AccessedPlaylistIDs, err = pgx.CollectRows(rows, pgx.RowTo[string]); err != nil {
		return p, err
	}

	rows, err = r.pool.Query(ctx, `SELECT tool_slug FROM user_tool_usage WHERE user_id = $1`, userID)
	if err != nil {
		return p, err
	}
	if p.UsedToolSlugs, err = pgx.CollectRows(rows, pgx.RowTo[string]); err != nil {
		return p, err
	}

	return p, nil
}

// lookupQueries maps each lookup category to the query returning
// (identifier, label, emoji) rows for it. Tables without an emoji column
// select an empty string to keep the scan uniform.
var lookupQueries = map[domain.LookupCategory]string{
	domain.LookupRoutines:         `SELECT id, title, '' FROM routines`,
	domain.LookupPlaylists:        `SELECT id, name, '' FROM playlists`,
	domain.LookupChannels:         `SELECT id, name, '' FROM channels`,
	domain.LookupPrograms:         `SELECT slug, name, '' FROM programs`,
	domain.LookupTaskTemplates:    `SELECT id, title, emoji FROM task_templates`,
	domain.LookupRoutineBank:      `SELECT id, title, emoji FROM routine_bank`,
	domain.LookupBreatheExercises: `SELECT id, name, emoji FROM breathe_exercises`,
}

// Lookups loads every destination lookup table.
func (r *BannerRepository) Lookups(ctx context.Context) (domain.Lookups, error) {
	lookups := make(domain.Lookups, len(lookupQueries))
	for category, query := range lookupQueries {
		rows, err := r.pool.Query(ctx, query)
		if err != nil {
			return nil, err
		}
		table := make(map[string]domain.LookupEntry)
		for rows.Next() {
			var id string
			var entry domain.LookupEntry
			if err = rows.Scan(&id, &entry.Label, &entry.Emoji); err != nil {
				rows.Close()
				return nil, err
			}
			table[id] = entry
		}
		if err = rows.Err(); err != nil {
			return nil, err
		}
		lookups[category] = table
	}
	return lookups, nil
}

// RecordEvent appends a shown/dismissed event.
func (r *BannerRepository) RecordEvent(ctx context.Context, ev domain.BannerEvent) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO banner_events (token, banner_id, user_id, event_type, occurred_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		ev.Token, ev.BannerID, ev.UserID, ev.Type, ev.OccurredAt.UTC())
	return err
}

// Stats returns aggregated shown/dismissed counts for a period.
func (r *BannerRepository) Stats(ctx context.Context, req port.StatsReq) (*port.StatsResp, error) {
	args := []interface{}{req.From, req.To}
	whereBanner := ""
	if req.BannerID != nil {
		whereBanner = "AND banner_id = $3"
		args = append(args, *req.BannerID)
	}
	query := fmt.Sprintf(`SELECT
			COALESCE(count(*) FILTER (WHERE event_type = 'shown'), 0),
			COALESCE(count(*) FILTER (WHERE event_type = 'dismissed'), 0)
		FROM banner_events
		WHERE occurred_at >= $1 AND occurred_at <= $2 %s`, whereBanner)
	var resp port.StatsResp
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&resp.Shown, &resp.Dismissed); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateBanner inserts a banner and fills in its id and timestamps.
func (r *BannerRepository) CreateBanner(ctx context.Context, b *domain.Banner) error {
	destinationRaw, audienceRaw, err := encodeBanner(b)
	if err != nil {
		return err
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO banners (cover_image_url, aspect_ratio, destination, display_location,
			display_frequency, priority, is_active, starts_at, ends_at, audience, target_playlist_ids)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		 RETURNING id, created_at, updated_at`,
		b.CoverImageURL, b.AspectRatio, destinationRaw, b.DisplayLocation,
		b.DisplayFrequency, b.Priority, b.IsActive, b.StartsAt, b.EndsAt,
		audienceRaw, b.TargetPlaylistIDs,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

// UpdateBanner replaces every admin-editable field of an existing banner.
func (r *BannerRepository) UpdateBanner(ctx context.Context, b *domain.Banner) error {
	destinationRaw, audienceRaw, err := encodeBanner(b)
	if err != nil {
		return err
	}
	b.UpdatedAt = time.Now().UTC()
	tag, err := r.pool.Exec(ctx,
		`UPDATE banners SET cover_image_url = $1, aspect_ratio = $2, destination = $3,
			display_location = $4, display_frequency = $5, priority = $6, is_active = $7,
			starts_at = $8, ends_at = $9, audience = $10, target_playlist_ids = $11,
			updated_at = $12
		 WHERE id = $13`,
		b.CoverImageURL, b.AspectRatio, destinationRaw, b.DisplayLocation,
		b.DisplayFrequency, b.Priority, b.IsActive, b.StartsAt, b.EndsAt,
		audienceRaw, b.TargetPlaylistIDs, b.UpdatedAt, b.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrBannerNotFound
	}
	return nil
}

// DeleteBanner removes a banner by id.
func (r *BannerRepository) DeleteBanner(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM banners WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrBannerNotFound
	}
	return nil
}

// GetBanner returns a banner by id.
func (r *BannerRepository) GetBanner(ctx context.Context, id int64) (*domain.Banner, error) {
	query := fmt.Sprintf(`SELECT %s FROM banners WHERE id = $1`, bannerColumns)
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	b, err := pgx.CollectOneRow(rows, scanBanner)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrBannerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListBanners returns every banner, newest first.
func (r *BannerRepository) ListBanners(ctx context.Context) ([]domain.Banner, error) {
	query := fmt.Sprintf(`SELECT %s FROM banners ORDER BY created_at DESC`, bannerColumns)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanBanner)
}

func encodeBanner(b *domain.Banner) (destinationRaw, audienceRaw []byte, err error) {
	if destinationRaw, err = json.Marshal(b.Destination); err != nil {
		return nil, nil, err
	}
	if audienceRaw, err = json.Marshal(b.Audience); err != nil {
		return nil, nil, err
	}
	return destinationRaw, audienceRaw, nil
}
