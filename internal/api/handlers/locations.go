package handlers

import (
	"geomap-admin/internal/api/dto"
	"geomap-admin/internal/geomap"
	"geomap-admin/internal/ports"
	"log"
	"net/http"
)

// LocationHandler exposes read-only location endpoints.
type LocationHandler struct {
	Repo ports.LocationRepository
	Map  geomap.Config
}

// List returns all locations with the map context a client needs to draw them.
func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	locs, err := listAll(r, h.Repo)
	if err != nil {
		log.Printf("list locations failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListLocationsResponse{
		Count:     len(locs),
		Locations: make([]dto.LocationResponse, 0, len(locs)),
		Map:       geomap.BuildContext(asItems(locs), mapOptions(h.Map)...),
	}
	for _, loc := range locs {
		res.Locations = append(res.Locations, dto.LocationResponse{
			ID:        loc.ID.String(),
			Name:      loc.Name,
			Address:   loc.Address,
			Longitude: loc.Longitude(),
			Latitude:  loc.Latitude(),
			CreatedAt: loc.CreatedAt,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// GeoJSON exports placed locations as a FeatureCollection.
func (h *LocationHandler) GeoJSON(w http.ResponseWriter, r *http.Request) {
	locs, err := listAll(r, h.Repo)
	if err != nil {
		log.Printf("geojson: list locations failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	fc, skipped := geomap.FeatureCollection(asItems(locs))
	if skipped > 0 {
		log.Printf("geojson: skipped=%d reason=unparseable coordinates", skipped)
	}

	body, err := fc.MarshalJSON()
	if err != nil {
		log.Printf("geojson: encode failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Printf("geojson: write failed: %v", err)
	}
}
