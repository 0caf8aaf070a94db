package api

import (
	"geomap-admin/internal/admin"
	"geomap-admin/internal/api/handlers"
	"geomap-admin/internal/api/views"
	"geomap-admin/internal/geomap"
	"geomap-admin/internal/ports"
	"net/http"
)

// LocationsAdminPath is the URL prefix of the location admin screens.
const LocationsAdminPath = "/admin/locations/"

// Deps are the collaborators the router hands to its handlers.
type Deps struct {
	Repo     ports.LocationRepository
	DB       handlers.Pinger // optional, checked by /health
	Geocoder ports.Geocoder  // optional
	Views    *views.Renderer
	Map      geomap.Config
	Policy   admin.Policy
	PageSize int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	screen := &admin.LocationScreen{
		Repo:     d.Repo,
		Geocoder: d.Geocoder,
		Policy:   d.Policy,
		PageSize: d.PageSize,
		BasePath: LocationsAdminPath,
	}
	adminHandler := &handlers.AdminHandler{
		Admin: geomap.NewModelAdmin(screen, d.Map),
		Views: d.Views,
		Title: "Locations",
	}
	homeHandler := &handlers.HomeHandler{Repo: d.Repo, Views: d.Views, Map: d.Map}
	locHandler := &handlers.LocationHandler{Repo: d.Repo, Map: d.Map}

	healthHandler := &handlers.HealthHandler{DB: d.DB}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("GET /{$}", homeHandler.Index)
	mux.HandleFunc("GET /map.geojson", locHandler.GeoJSON)
	mux.HandleFunc("GET /api/locations", locHandler.List)

	mux.HandleFunc("GET "+LocationsAdminPath+"{$}", adminHandler.Changelist)
	mux.HandleFunc("GET "+LocationsAdminPath+"add/{$}", adminHandler.Add)
	mux.HandleFunc("POST "+LocationsAdminPath+"add/{$}", adminHandler.Add)
	mux.HandleFunc("GET "+LocationsAdminPath+"{id}/change/{$}", adminHandler.Change)
	mux.HandleFunc("POST "+LocationsAdminPath+"{id}/change/{$}", adminHandler.Change)

	return requestIDMiddleware(loggingMiddleware(mux))
}
