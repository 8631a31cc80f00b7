package geocode

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Cache persists geocode results in a SQLite file so repeat runs skip the
// network entirely. Non-matches are cached too; asking Nominatim the same
// unanswerable question every run wastes the rate budget.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (or creates) the cache database at path and configures
// WAL mode.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: open cache")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "geocode: exec %s", pragma)
		}
	}
	return &Cache{db: db}, nil
}

const cacheMigration = `
CREATE TABLE IF NOT EXISTS geocode_cache (
	address_hash TEXT PRIMARY KEY,
	latitude     REAL NOT NULL,
	longitude    REAL NOT NULL,
	display_name TEXT,
	matched      INTEGER NOT NULL,
	cached_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);
`

// Migrate creates the cache schema if missing.
func (c *Cache) Migrate(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, cacheMigration)
	return eris.Wrap(err, "geocode: migrate cache")
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get looks up a cached result by address hash. The second return is false
// on a miss.
func (c *Cache) Get(ctx context.Context, key string) (*Result, bool, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT latitude, longitude, display_name, matched FROM geocode_cache WHERE address_hash = ?`,
		key)

	var r Result
	var displayName sql.NullString
	var matched int
	if err := row.Scan(&r.Latitude, &r.Longitude, &displayName, &matched); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, eris.Wrap(err, "geocode: cache lookup")
	}

	r.DisplayName = displayName.String
	r.Matched = matched != 0
	r.Source = "cache"

	zap.L().Debug("geocode: cache hit",
		zap.String("key", key[:12]),
		zap.Bool("matched", r.Matched),
	)
	return &r, true, nil
}

// Put stores a result under the address hash, replacing any prior entry.
func (c *Cache) Put(ctx context.Context, key string, r *Result) error {
	matched := 0
	if r.Matched {
		matched = 1
	}
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO geocode_cache (address_hash, latitude, longitude, display_name, matched, cached_at)
		VALUES (?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT (address_hash) DO UPDATE SET
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			display_name = excluded.display_name,
			matched = excluded.matched,
			cached_at = datetime('now')`,
		key, r.Latitude, r.Longitude, r.DisplayName, matched,
	)
	return eris.Wrap(err, "geocode: cache store")
}
