package handlers

import (
	"geomap-admin/internal/api/views"
	"geomap-admin/internal/geomap"
	"geomap-admin/internal/ports"
	"log"
	"net/http"
)

// HomeHandler serves the public map of all locations.
type HomeHandler struct {
	Repo  ports.LocationRepository
	Views *views.Renderer
	Map   geomap.Config
}

func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	locs, err := listAll(r, h.Repo)
	if err != nil {
		log.Printf("home: list locations failed: %v", err)
		renderError(w, r, h.Views, http.StatusInternalServerError)
		return
	}

	items := asItems(locs)
	located := 0
	for _, item := range items {
		if geomap.Locatable(item) {
			located++
		}
	}

	c := geomap.BuildContext(items, mapOptions(h.Map)...)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = h.Views.Home(w, views.HomeData{
		Title:   "Locations map",
		Total:   len(items),
		Located: located,
		Map:     &c,
	})
	if err != nil {
		log.Printf("home: render failed: %v", err)
		renderError(w, r, h.Views, http.StatusInternalServerError)
	}
}
