package capstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLite is a CapStore persisted to an embedded sqlite file. It survives
// restarts and is cleared by deleting the file, which is the documented
// "storage reset" escape hatch for once-capped banners.
type SQLite struct {
	db *sql.DB
}

const sqliteSchema = `CREATE TABLE IF NOT EXISTS display_records (
	user_id       TEXT    NOT NULL,
	banner_id     INTEGER NOT NULL,
	last_shown_at INTEGER NOT NULL,
	PRIMARY KEY (user_id, banner_id)
)`

// NewSQLite opens (creating if needed) the database at path and ensures the
// schema exists. WAL mode and a busy timeout keep concurrent readers cheap;
// a single write connection avoids lock contention.
func NewSQLite(path string) (*SQLite, error) {
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open cap store: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err = db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init cap store schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) LastShown(ctx context.Context, userID string, bannerID int64) (time.Time, bool, error) {
	var nanos int64
	err := s.db.QueryRowContext(ctx,
		`SELECT last_shown_at FROM display_records WHERE user_id = ? AND banner_id = ?`,
		userID, bannerID).Scan(&nanos)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return time.Unix(0, nanos).UTC(), true, nil
}

func (s *SQLite) SetLastShown(ctx context.Context, userID string, bannerID int64, shownAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO display_records (user_id, banner_id, last_shown_at) VALUES (?, ?, ?)
		 ON CONFLICT (user_id, banner_id) DO UPDATE SET last_shown_at = excluded.last_shown_at`,
		userID, bannerID, shownAt.UnixNano())
	return err
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}
