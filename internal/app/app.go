// Package app opens the storage and geocoding stack described by config.Settings.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"geomap-admin/internal/adapters/cache"
	"geomap-admin/internal/adapters/geocode"
	"geomap-admin/internal/adapters/repositories"
	"geomap-admin/internal/config"
	"geomap-admin/internal/platform/db"
	"geomap-admin/internal/ports"
	"log"

	"github.com/redis/go-redis/v9"
)

// Env holds the opened backends. Geocoder is nil when no ORS key is configured.
type Env struct {
	Driver   db.Driver
	DB       *sql.DB
	Repo     ports.LocationRepository
	Cache    ports.GeocodeCache
	Geocoder ports.Geocoder

	redis *redis.Client
}

func Open(ctx context.Context, s config.Settings) (*Env, error) {
	driver, err := db.ParseDriver(s.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("open app: %w", err)
	}

	conn, err := db.Connect(driver, s.DBPath, s.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open app: %w", err)
	}

	env := &Env{
		Driver: driver,
		DB:     conn,
		Repo:   repositories.NewLocationRepository(driver, conn),
		Cache:  cache.NewSQLGeocodeCache(conn, cache.DialectOf(driver)),
	}

	if s.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: s.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			_ = conn.Close()
			return nil, fmt.Errorf("open app: ping redis %s: %w", s.RedisAddr, err)
		}
		env.redis = client
		env.Cache = cache.NewRedisGeocodeCache(client, s.GeocodeTTL)
	}

	if s.ORSAPIKey == "" {
		log.Println("ORS_API_KEY not set; addresses will not be geocoded")
		return env, nil
	}

	g, err := geocode.NewORSGeocoder(s.ORSAPIKey,
		geocode.WithCountry(s.ORSCountry),
		geocode.WithCache(env.Cache),
	)
	if err != nil {
		_ = env.Close()
		return nil, fmt.Errorf("open app: %w", err)
	}
	env.Geocoder = g

	return env, nil
}

// Close releases the database and Redis connections.
func (e *Env) Close() error {
	var errs []error
	if e.redis != nil {
		errs = append(errs, e.redis.Close())
	}
	if e.DB != nil {
		errs = append(errs, e.DB.Close())
	}
	return errors.Join(errs...)
}

// InitAndSeed creates the schema and loads seedPath when it is set.
func (e *Env) InitAndSeed(ctx context.Context, seedPath string) (int, error) {
	if err := repositories.InitSchema(e.DB); err != nil {
		return 0, fmt.Errorf("init and seed: %w", err)
	}
	if seedPath == "" {
		return 0, nil
	}

	n, err := repositories.SeedFromFile(ctx, e.Repo, seedPath)
	if err != nil {
		return 0, fmt.Errorf("init and seed: %w", err)
	}
	return n, nil
}
