package admin

import (
	"errors"
	"fmt"
	"geomap-admin/internal/domain"
	"geomap-admin/internal/geomap"
	"geomap-admin/internal/ports"
	"geomap-admin/internal/services"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Changelist query parameters.
const (
	ParamSearch   = "q"
	ParamOrdering = "o"
	ParamPage     = "p"
)

const DefaultPageSize = 20

// ErrPermissionDenied is returned when a read-only caller submits a form.
var ErrPermissionDenied = errors.New("permission denied")

// LocationScreen is the admin screen for Location records.
type LocationScreen struct {
	Repo     ports.LocationRepository
	Geocoder ports.Geocoder
	Policy   Policy
	PageSize int
	// URL prefix of the screen, with trailing slash.
	BasePath string
}

var _ geomap.Screen = (*LocationScreen)(nil)

func (s *LocationScreen) pageSize() int {
	if s.PageSize < 1 {
		return DefaultPageSize
	}
	return s.PageSize
}

func (s *LocationScreen) HasChangePermission(r *http.Request) bool {
	return s.Policy.HasChangePermission(r)
}

// Lookup returns a location by its UUID. Malformed ids are reported as not found.
func (s *LocationScreen) Lookup(r *http.Request, id string) (geomap.Item, error) {
	loc, err := s.get(r, id)
	if err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *LocationScreen) get(r *http.Request, id string) (*domain.Location, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("lookup location %q: %w", id, domain.ErrNotFound)
	}
	return s.Repo.Get(r.Context(), uid)
}

// Changelist lists locations with search, ordering and pagination.
func (s *LocationScreen) Changelist(r *http.Request) (geomap.Response, error) {
	q := r.URL.Query()
	search := strings.TrimSpace(q.Get(ParamSearch))

	ordering := q.Get(ParamOrdering)
	switch ordering {
	case ports.OrderByName, ports.OrderByNameDesc, ports.OrderByCreated, ports.OrderByCreatedDesc:
	default:
		ordering = ports.OrderByName
	}

	all, err := s.Repo.List(r.Context(), ports.ListFilter{Search: search, Ordering: ordering})
	if err != nil {
		return nil, fmt.Errorf("changelist: %w", err)
	}

	size := s.pageSize()
	numPages := max(1, (len(all)+size-1)/size)
	page, err := strconv.Atoi(q.Get(ParamPage))
	if err != nil || page < 1 {
		page = 1
	}
	page = min(page, numPages)

	start := min((page-1)*size, len(all))
	end := min(start+size, len(all))

	filtered := make([]geomap.Item, len(all))
	for i, loc := range all {
		filtered[i] = loc
	}

	return &ChangelistResponse{
		Title:    "Select location to change",
		BasePath: s.BasePath,
		Rows:     all[start:end],
		Total:    len(all),
		Page:     page,
		NumPages: numPages,
		Query:    search,
		Ordering: ordering,
		CanAdd:   s.HasChangePermission(r),
		filtered: filtered,
	}, nil
}

// Add shows the empty add form, or on POST validates and saves a new location.
func (s *LocationScreen) Add(r *http.Request) (geomap.Response, error) {
	resp := &FormResponse{
		Title:    "Add location",
		BasePath: s.BasePath,
		Action:   s.BasePath + "add/",
		Errors:   map[string]string{},
		ReadOnly: !s.HasChangePermission(r),
		template: TemplateAddForm,
	}

	if r.Method != http.MethodPost {
		return resp, nil
	}

	return s.submit(r, &domain.Location{}, resp)
}

// Change shows the change form of a location, or on POST validates and saves it.
// The record resolved by geomap.ModelAdmin for the same request is reused.
func (s *LocationScreen) Change(r *http.Request, id string) (geomap.Response, error) {
	loc, err := s.changeTarget(r, id)
	if err != nil {
		return nil, err
	}

	resp := &FormResponse{
		Title:    "Change location",
		BasePath: s.BasePath,
		Action:   fmt.Sprintf("%s%s/change/", s.BasePath, loc.ID),
		Record:   loc,
		Form:     FormFromLocation(loc),
		Errors:   map[string]string{},
		ReadOnly: !s.HasChangePermission(r),
		template: TemplateChangeForm,
	}

	if r.Method != http.MethodPost {
		return resp, nil
	}

	return s.submit(r, loc, resp)
}

func (s *LocationScreen) changeTarget(r *http.Request, id string) (*domain.Location, error) {
	if item, ok := geomap.LookedUp(r.Context()); ok {
		if loc, ok := item.(*domain.Location); ok && loc.ID.String() == strings.ToLower(id) {
			return loc, nil
		}
	}
	return s.get(r, id)
}

func (s *LocationScreen) submit(r *http.Request, loc *domain.Location, resp *FormResponse) (geomap.Response, error) {
	if !s.HasChangePermission(r) {
		return nil, ErrPermissionDenied
	}

	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("parse form: %w", err)
	}

	form := ParseLocationForm(r)
	resp.Form = form
	if errs := form.Validate(); len(errs) > 0 {
		resp.Errors = errs
		return resp, nil
	}

	form.Apply(loc)

	// Geocoding is best effort; the record is saved without coordinates on failure.
	if _, err := services.LocateLocation(r.Context(), loc, s.Geocoder); err != nil {
		log.Printf("geocode on save failed: id=%s err=%v", loc.ID, err)
	}

	if err := s.Repo.Save(r.Context(), loc); err != nil {
		return nil, fmt.Errorf("save location: %w", err)
	}

	return &Redirect{URL: s.BasePath}, nil
}
