package main

import (
	"context"
	"errors"
	"geomap-admin/internal/admin"
	"geomap-admin/internal/api"
	"geomap-admin/internal/api/views"
	"geomap-admin/internal/app"
	"geomap-admin/internal/config"
	"geomap-admin/internal/platform/graceful"
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, ORS, Redis) behind ports and starts the HTTP server.
func main() {
	config.Load()
	settings := config.FromEnv()

	ctx, stop := graceful.Context(context.Background())
	defer stop()

	env, err := app.Open(ctx, settings)
	if err != nil {
		log.Fatal(err)
	}
	defer env.Close()

	// Initialize schema and seed demo data on startup for local runs.
	n, err := env.InitAndSeed(ctx, settings.SeedPath)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Database ready driver=%s seeded=%d", env.Driver, n)

	renderer, err := views.New(views.DefaultAssets())
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(api.Deps{
		Repo:     env.Repo,
		DB:       env.DB,
		Geocoder: env.Geocoder,
		Views:    renderer,
		Map:      config.Map(),
		Policy:   admin.Policy{ReadOnly: settings.AdminReadOnly},
		PageSize: settings.AdminPageSize,
	})

	// WriteTimeout covers a cold-cache geocode on form submission.
	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening addr=:%s", settings.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server failed: %v", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}
	log.Println("Server stopped")
}
