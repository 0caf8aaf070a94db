package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"geomap-admin/internal/domain"
	"geomap-admin/internal/platform/db"
	"geomap-admin/internal/platform/obs"
	"strings"
)

// Dialect selects the SQL flavor used by SQLGeocodeCache.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

func (d Dialect) String() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite"
}

// DialectOf maps a database driver to its cache dialect.
func DialectOf(driver db.Driver) Dialect {
	if driver == db.Postgres {
		return Postgres
	}
	return SQLite
}

// SQLGeocodeCache is a SQL-backed cache mapping addresses to coordinates.
// It reads and writes the geocode_cache table created by repositories.InitSchema.
type SQLGeocodeCache struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLGeocodeCache(db *sql.DB, dialect Dialect) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db, Dialect: dialect}
}

// selectQuery builds the lookup for uniq keys.
// Postgres binds the whole slice; SQLite needs one placeholder per key.
func (s *SQLGeocodeCache) selectQuery(uniq []string) (string, []any) {
	if s.Dialect == Postgres {
		return `
		SELECT address, lon, lat
		FROM geocode_cache
		WHERE address = ANY($1::text[]);
		`, []any{uniq}
	}

	ph := make([]string, len(uniq))
	args := make([]any, len(uniq))
	for i, a := range uniq {
		ph[i] = "?"
		args[i] = a
	}
	// Only the placeholder structure is interpolated; all values remain parameterized.
	return fmt.Sprintf(`
		SELECT address, lon, lat
		FROM geocode_cache
		WHERE address IN (%s);
		`, strings.Join(ph, ",")), args
}

func (s *SQLGeocodeCache) upsertQuery() string {
	if s.Dialect == Postgres {
		return `
		INSERT INTO geocode_cache (address, lon, lat)
		VALUES ($1, $2, $3)
		ON CONFLICT (address) DO UPDATE
		SET lon = EXCLUDED.lon,
			lat = EXCLUDED.lat;
		`
	}
	return `
		INSERT OR REPLACE INTO geocode_cache (address, lon, lat)
		VALUES (?, ?, ?);
		`
}

// Fetch cached coordinates for the given addresses.
// Addresses missing from the cache are absent from the result.
func (s *SQLGeocodeCache) GetMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.cache."+s.Dialect.String()+".GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	uniq := uniqueAddresses(addresses)
	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	q, args := s.selectQuery(uniq)
	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Coordinates, len(uniq))
	for rows.Next() {
		var addr string
		var lon, lat float64
		if err := rows.Scan(&addr, &lon, &lat); err != nil {
			return nil, fmt.Errorf("get geocode cache: scan rows: %w", err)
		}
		out[addr] = domain.Coordinates{Lon: lon, Lat: lat}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get geocode cache: row iteration: %w", err)
	}

	return out, nil
}

// Store address -> coordinate mappings in the cache.
func (s *SQLGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, s.upsertQuery())
	if err != nil {
		return fmt.Errorf("insert geocode cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for addr, c := range results {
		if strings.TrimSpace(addr) == "" {
			return errors.New("insert geocode cache: empty address key")
		}

		if _, err := stmt.ExecContext(ctx, addr, c.Lon, c.Lat); err != nil {
			return fmt.Errorf("insert geocode cache address=%q: %w", addr, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert geocode cache commit: %w", err)
	}

	return nil
}
