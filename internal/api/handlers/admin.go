package handlers

import (
	"errors"
	"geomap-admin/internal/admin"
	"geomap-admin/internal/api/views"
	"geomap-admin/internal/domain"
	"geomap-admin/internal/geomap"
	"log"
	"net/http"
)

// AdminHandler serves the map-enabled admin screens of one record type.
type AdminHandler struct {
	Admin *geomap.ModelAdmin
	Views *views.Renderer
	Title string
}

func (h *AdminHandler) Changelist(w http.ResponseWriter, r *http.Request) {
	page, err := h.Admin.ChangelistView(r)
	h.respond(w, r, page, err)
}

func (h *AdminHandler) Add(w http.ResponseWriter, r *http.Request) {
	page, err := h.Admin.AddView(r)
	h.respond(w, r, page, err)
}

func (h *AdminHandler) Change(w http.ResponseWriter, r *http.Request) {
	page, err := h.Admin.ChangeView(r, r.PathValue("id"))
	h.respond(w, r, page, err)
}

func (h *AdminHandler) respond(w http.ResponseWriter, r *http.Request, page geomap.Page, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		renderError(w, r, h.Views, http.StatusNotFound)
		return
	case errors.Is(err, admin.ErrPermissionDenied):
		renderError(w, r, h.Views, http.StatusForbidden)
		return
	case err != nil:
		log.Printf("admin view failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		renderError(w, r, h.Views, http.StatusInternalServerError)
		return
	}

	if rd, ok := page.Response.(*admin.Redirect); ok {
		http.Redirect(w, r, rd.URL, http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.Views.Admin(w, h.Title, page); err != nil {
		log.Printf("admin render failed: path=%s err=%v", r.URL.Path, err)
		renderError(w, r, h.Views, http.StatusInternalServerError)
	}
}

// renderError writes an HTML error page. Internal details stay in the log.
func renderError(w http.ResponseWriter, r *http.Request, v *views.Renderer, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	msg := "Something went wrong."
	switch status {
	case http.StatusNotFound:
		msg = "The requested record does not exist."
	case http.StatusForbidden:
		msg = "You do not have permission to change this record."
	}

	if err := v.Error(w, http.StatusText(status), msg); err != nil {
		log.Printf("error page render failed: path=%s err=%v", r.URL.Path, err)
	}
}
