package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"geomap-admin/internal/domain"
	"geomap-admin/internal/ports"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Initialize the database schema.
// The DDL is shared by SQLite and Postgres.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createLocationsQuery := `
	CREATE TABLE IF NOT EXISTS locations (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		lon DOUBLE PRECISION,
		lat DOUBLE PRECISION,
		created_at BIGINT NOT NULL,
		search_text TEXT NOT NULL DEFAULT ''
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lon DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_locations_name
	ON locations(name);
	`

	statements := []string{
		createLocationsQuery,
		createGeocodeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type LocationSeed struct {
	ID      string   `json:"id" yaml:"id"`
	Name    string   `json:"name" yaml:"name"`
	Address string   `json:"address" yaml:"address"`
	Lon     *float64 `json:"lon" yaml:"lon"`
	Lat     *float64 `json:"lat" yaml:"lat"`
}

// Populate the repository with locations from a JSON or YAML file.
// Returns the number of saved locations.
func SeedFromFile(ctx context.Context, repo ports.LocationRepository, path string) (int, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("seed locations: read %q: %w", path, err)
	}

	var data []LocationSeed
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(bytes, &data); err != nil {
			return 0, fmt.Errorf("seed locations: parse yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(bytes, &data); err != nil {
			return 0, fmt.Errorf("seed locations: parse json: %w", err)
		}
	}

	rows := make([]*domain.Location, 0, len(data))
	for i, item := range data {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return 0, fmt.Errorf("seed locations: item at index %d: name cannot be empty", i+1)
		}

		loc := &domain.Location{
			Name:    name,
			Address: strings.TrimSpace(item.Address),
		}

		if item.ID != "" {
			id, err := uuid.Parse(item.ID)
			if err != nil {
				return 0, fmt.Errorf("seed locations: item at index %d: invalid id %q: %w", i+1, item.ID, err)
			}
			loc.ID = id
		}

		if (item.Lon == nil) != (item.Lat == nil) {
			return 0, fmt.Errorf("seed locations: item at index %d: lon and lat must be set together", i+1)
		}
		if item.Lon != nil {
			c := domain.Coordinates{Lon: *item.Lon, Lat: *item.Lat}
			if !c.Valid() {
				return 0, fmt.Errorf("seed locations: item at index %d: coordinates out of range", i+1)
			}
			loc.Place(c)
		}

		rows = append(rows, loc)
	}

	for _, loc := range rows {
		if err := repo.Save(ctx, loc); err != nil {
			return 0, fmt.Errorf("seed locations: %w", err)
		}
	}

	return len(rows), nil
}
