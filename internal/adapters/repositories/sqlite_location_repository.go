package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"geomap-admin/internal/domain"
	"geomap-admin/internal/platform/obs"
	"geomap-admin/internal/ports"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SQLite-backed implementation of the LocationRepository port.
type SqliteLocationRepository struct{ DB *sql.DB }

func NewSqliteLocationRepository(db *sql.DB) *SqliteLocationRepository {
	return &SqliteLocationRepository{DB: db}
}

// Return all locations matching the filter.
func (s *SqliteLocationRepository) List(
	ctx context.Context,
	filter ports.ListFilter,
) (_ []*domain.Location, err error) {
	defer obs.Time(ctx, "locations.sqlite.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite location repository: DB is nil")
	}

	order, err := orderClause(filter.Ordering)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}

	var (
		where string
		args  []any
	)
	if search := strings.TrimSpace(filter.Search); search != "" {
		where = `WHERE search_text LIKE ? ESCAPE '\'`
		args = append(args, containsPattern(strings.ToLower(search)))
	}

	// Only the whitelisted ORDER BY clause is interpolated.
	query := fmt.Sprintf(`
	SELECT
		id,
		name,
		address,
		lon,
		lat,
		created_at
	FROM locations
	%s
	ORDER BY %s;
	`, where, order)

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list locations: query locations table: %w", err)
	}
	defer rows.Close()

	locations := make([]*domain.Location, 0, 64)
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("list locations: scan row: %w", err)
		}
		locations = append(locations, loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list locations: row iteration: %w", err)
	}

	return locations, nil
}

// Return the location with the given id.
func (s *SqliteLocationRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Location, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite location repository: DB is nil")
	}

	row := s.DB.QueryRowContext(ctx, `
	SELECT
		id,
		name,
		address,
		lon,
		lat,
		created_at
	FROM locations
	WHERE id = ?;
	`, id)

	loc, err := scanLocation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get location %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get location %s: scan row: %w", id, err)
	}

	return loc, nil
}

// Insert or update a location.
func (s *SqliteLocationRepository) Save(ctx context.Context, loc *domain.Location) error {
	if s.DB == nil {
		return errors.New("sqlite location repository: DB is nil")
	}

	if loc.ID == uuid.Nil {
		loc.ID = uuid.New()
	}
	if loc.CreatedAt.IsZero() {
		loc.CreatedAt = time.Now().UTC()
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT INTO locations (
		id,
		name,
		address,
		lon,
		lat,
		created_at,
		search_text
	)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE
	SET name = excluded.name,
		address = excluded.address,
		lon = excluded.lon,
		lat = excluded.lat,
		search_text = excluded.search_text;
	`, loc.ID, loc.Name, loc.Address, nullable(loc.Lon), nullable(loc.Lat), loc.CreatedAt.UnixMilli(), searchText(loc))
	if err != nil {
		return fmt.Errorf("save location %s: %w", loc.ID, err)
	}

	return nil
}
