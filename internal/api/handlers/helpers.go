package handlers

import (
	"encoding/json"
	"geomap-admin/internal/domain"
	"geomap-admin/internal/geomap"
	"geomap-admin/internal/ports"
	"log"
	"net/http"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// mapOptions seeds BuildContext with the configured map defaults.
func mapOptions(cfg geomap.Config) []geomap.Option {
	return []geomap.Option{
		geomap.WithCenter(cfg.DefaultLongitude, cfg.DefaultLatitude),
		geomap.WithZoom(cfg.DefaultZoom),
		geomap.WithAutoZoom(cfg.AutoZoom),
		geomap.WithHeight(cfg.Height),
	}
}

func asItems(locs []*domain.Location) []geomap.Item {
	items := make([]geomap.Item, len(locs))
	for i, loc := range locs {
		items[i] = loc
	}
	return items
}

// listAll returns every location in name order.
func listAll(r *http.Request, repo ports.LocationRepository) ([]*domain.Location, error) {
	return repo.List(r.Context(), ports.ListFilter{Ordering: ports.OrderByName})
}
