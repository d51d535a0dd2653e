package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/okian/pitchline/internal/domain/types"
)

// sqliteStore implements Store on a SQLite database. All methods are
// safe for concurrent use; database/sql serializes access per
// connection and the schema upserts are atomic.
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the cache database at path and ensures
// the schema exists. Pass ":memory:" for an ephemeral store.
func OpenSQLite(path string) (Store, error) {
	connStr := path
	if path == ":memory:" {
		// Shared cache so every pooled connection sees the same database.
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &sqliteStore{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

func (s *sqliteStore) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS briefs (
		session_key TEXT NOT NULL,
		cache_key TEXT NOT NULL,
		text TEXT NOT NULL,
		provenance TEXT NOT NULL,
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (session_key, cache_key)
	);

	CREATE INDEX IF NOT EXISTS idx_briefs_session ON briefs(session_key);

	CREATE TABLE IF NOT EXISTS images (
		session_key TEXT NOT NULL,
		cache_key TEXT NOT NULL,
		url TEXT NOT NULL,
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (session_key, cache_key)
	);

	CREATE INDEX IF NOT EXISTS idx_images_session ON images(session_key);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// SaveBrief upserts a brief. The conflict clause encodes the provenance
// rule: a remote brief is only overwritten by another remote brief.
func (s *sqliteStore) SaveBrief(ctx context.Context, rec BriefRecord) error {
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO briefs (session_key, cache_key, text, provenance, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(session_key, cache_key) DO UPDATE SET
			text = excluded.text,
			provenance = excluded.provenance,
			updated_at = excluded.updated_at
		WHERE NOT (briefs.provenance = ? AND excluded.provenance != ?)
	`, rec.SessionKey, rec.CacheKey, rec.Text, rec.Provenance, rec.UpdatedAt,
		types.ProvenanceRemote, types.ProvenanceRemote)
	return err
}

func (s *sqliteStore) GetBrief(ctx context.Context, sessionKey, cacheKey string) (BriefRecord, error) {
	var rec BriefRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT session_key, cache_key, text, provenance, updated_at
		FROM briefs
		WHERE session_key = ? AND cache_key = ?
	`, sessionKey, cacheKey).Scan(&rec.SessionKey, &rec.CacheKey, &rec.Text, &rec.Provenance, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return BriefRecord{}, ErrNotFound
	}
	if err != nil {
		return BriefRecord{}, err
	}
	return rec, nil
}

func (s *sqliteStore) BriefsForSession(ctx context.Context, sessionKey string) ([]BriefRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_key, cache_key, text, provenance, updated_at
		FROM briefs
		WHERE session_key = ?
		ORDER BY cache_key
	`, sessionKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []BriefRecord
	for rows.Next() {
		var rec BriefRecord
		if err := rows.Scan(&rec.SessionKey, &rec.CacheKey, &rec.Text, &rec.Provenance, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *sqliteStore) SaveImage(ctx context.Context, rec ImageRecord) error {
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO images (session_key, cache_key, url, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(session_key, cache_key) DO UPDATE SET
			url = excluded.url,
			updated_at = excluded.updated_at
	`, rec.SessionKey, rec.CacheKey, rec.URL, rec.UpdatedAt)
	return err
}

func (s *sqliteStore) GetImage(ctx context.Context, sessionKey, cacheKey string) (ImageRecord, error) {
	var rec ImageRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT session_key, cache_key, url, updated_at
		FROM images
		WHERE session_key = ? AND cache_key = ?
	`, sessionKey, cacheKey).Scan(&rec.SessionKey, &rec.CacheKey, &rec.URL, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ImageRecord{}, ErrNotFound
	}
	if err != nil {
		return ImageRecord{}, err
	}
	return rec, nil
}

func (s *sqliteStore) BriefCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM briefs").Scan(&count)
	return count, err
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}
