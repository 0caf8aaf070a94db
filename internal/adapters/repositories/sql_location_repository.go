package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"geomap-admin/internal/domain"
	"geomap-admin/internal/platform/db"
	"geomap-admin/internal/platform/obs"
	"geomap-admin/internal/ports"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SQLLocationRepository is the Postgres (pgx) implementation of LocationRepository.
type SQLLocationRepository struct{ DB *sql.DB }

func NewSQLLocationRepository(db *sql.DB) *SQLLocationRepository {
	return &SQLLocationRepository{DB: db}
}

func (s *SQLLocationRepository) List(
	ctx context.Context,
	filter ports.ListFilter,
) (_ []*domain.Location, err error) {
	defer obs.Time(ctx, "locations.sql.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sql location repository: DB is nil")
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
		where = `WHERE name ILIKE $1 ESCAPE '\' OR address ILIKE $1 ESCAPE '\'`
		args = append(args, containsPattern(search))
	}

	query := fmt.Sprintf(`
	SELECT id, name, address, lon, lat, created_at
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

func (s *SQLLocationRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Location, error) {
	if s.DB == nil {
		return nil, errors.New("sql location repository: DB is nil")
	}

	row := s.DB.QueryRowContext(ctx, `
	SELECT id, name, address, lon, lat, created_at
	FROM locations
	WHERE id = $1;
	`, id.String())

	loc, err := scanLocation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get location %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get location %s: scan row: %w", id, err)
	}

	return loc, nil
}

func (s *SQLLocationRepository) Save(ctx context.Context, loc *domain.Location) error {
	if s.DB == nil {
		return errors.New("sql location repository: DB is nil")
	}

	if loc.ID == uuid.Nil {
		loc.ID = uuid.New()
	}
	if loc.CreatedAt.IsZero() {
		loc.CreatedAt = time.Now().UTC()
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT INTO locations (id, name, address, lon, lat, created_at, search_text)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name,
		address = EXCLUDED.address,
		lon = EXCLUDED.lon,
		lat = EXCLUDED.lat,
		search_text = EXCLUDED.search_text;
	`, loc.ID.String(), loc.Name, loc.Address, nullable(loc.Lon), nullable(loc.Lat), loc.CreatedAt.UnixMilli(), searchText(loc))
	if err != nil {
		return fmt.Errorf("save location %s: %w", loc.ID, err)
	}

	return nil
}

// NewLocationRepository returns the repository matching the database driver.
func NewLocationRepository(driver db.Driver, conn *sql.DB) ports.LocationRepository {
	if driver == db.Postgres {
		return NewSQLLocationRepository(conn)
	}
	return NewSqliteLocationRepository(conn)
}
