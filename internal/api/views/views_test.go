package views

import (
	"bytes"
	"context"
	"geomap-admin/internal/admin"
	"geomap-admin/internal/domain"
	"geomap-admin/internal/geomap"
	"geomap-admin/internal/ports"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	locs []*domain.Location
}

func (r *memoryRepo) List(context.Context, ports.ListFilter) ([]*domain.Location, error) {
	return r.locs, nil
}

func (r *memoryRepo) Get(_ context.Context, id uuid.UUID) (*domain.Location, error) {
	for _, l := range r.locs {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryRepo) Save(_ context.Context, loc *domain.Location) error {
	r.locs = append(r.locs, loc)
	return nil
}

func location(name string, lon, lat float64) *domain.Location {
	loc := &domain.Location{ID: uuid.New(), Name: name}
	loc.Place(domain.Coordinates{Lon: lon, Lat: lat})
	return loc
}

func newScreen(locs ...*domain.Location) *admin.LocationScreen {
	return &admin.LocationScreen{
		Repo:     &memoryRepo{locs: locs},
		BasePath: "/admin/locations/",
	}
}

func render(t *testing.T, page geomap.Page) string {
	t.Helper()

	r := Must(New(DefaultAssets()))
	var buf bytes.Buffer
	require.NoError(t, r.Admin(&buf, "Locations", page))
	return buf.String()
}

func TestChangelistEmbedsMapContext(t *testing.T) {
	ma := geomap.NewModelAdmin(newScreen(location("Harbour <east>", 4.5, 51.9)), geomap.DefaultConfig())

	page, err := ma.ChangelistView(httptest.NewRequest(http.MethodGet, "/admin/locations/", nil))
	require.NoError(t, err)

	out := render(t, page)
	require.Contains(t, out, `var geomapContext = {`)
	require.Contains(t, out, `"center_longitude":"0.0"`)
	require.Contains(t, out, `"is_editable":true`)
	require.Contains(t, out, `"longitude":"4.5"`)
	require.Contains(t, out, `id="geomap"`)
	// Labels are escaped in the table and in the popup markup.
	require.Contains(t, out, "Harbour &lt;east&gt;")
	require.NotContains(t, out, "<east>")
}

func TestChangelistWithoutMapMatchesPlainRender(t *testing.T) {
	screen := newScreen(location("Harbour", 4.5, 51.9))
	cfg := geomap.DefaultConfig()
	cfg.ShowMapOnList = false
	ma := geomap.NewModelAdmin(screen, cfg)

	r := httptest.NewRequest(http.MethodGet, "/admin/locations/", nil)
	page, err := ma.ChangelistView(r)
	require.NoError(t, err)
	require.Nil(t, page.Map)

	resp, err := screen.Changelist(r)
	require.NoError(t, err)

	got := render(t, page)
	want := render(t, geomap.Page{Response: resp})
	require.Equal(t, want, got)
	require.NotContains(t, got, "geomapContext")
}

func TestFormRendersErrorsAndReadOnly(t *testing.T) {
	screen := newScreen()

	form := url.Values{"address": {"Main St 1"}, "lon": {"200"}}
	r := httptest.NewRequest(http.MethodPost, "/admin/locations/add/", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := screen.Add(r)
	require.NoError(t, err)

	out := render(t, geomap.Page{Response: resp})
	require.Contains(t, out, `action="/admin/locations/add/"`)
	require.Contains(t, out, `value="Main St 1"`)
	require.Contains(t, out, "This field is required.")
	require.Contains(t, out, `type="submit"`)

	screen.Policy = admin.Policy{ReadOnly: true}
	resp, err = screen.Add(httptest.NewRequest(http.MethodGet, "/admin/locations/add/", nil))
	require.NoError(t, err)

	out = render(t, geomap.Page{Response: resp})
	require.NotContains(t, out, `type="submit"`)
	require.Contains(t, out, "disabled")
}

func TestAdminRequiresTemplateName(t *testing.T) {
	r := Must(New(DefaultAssets()))
	err := r.Admin(&bytes.Buffer{}, "x", geomap.Page{Response: &admin.Redirect{URL: "/"}})
	require.Error(t, err)
}

func TestHomeAndError(t *testing.T) {
	r := Must(New(DefaultAssets()))

	c := geomap.BuildContext([]geomap.Item{location("Depot", 1, 2)}, geomap.WithAutoZoom("10"))
	var buf bytes.Buffer
	require.NoError(t, r.Home(&buf, HomeData{Title: "Map", Total: 3, Located: 1, Map: &c}))
	out := buf.String()
	require.Contains(t, out, "1 of 3 locations")
	require.Contains(t, out, `"auto_zoom":"10"`)
	require.False(t, strings.Contains(out, `"is_editable":`))

	buf.Reset()
	require.NoError(t, r.Error(&buf, "Not found", "No location with that id."))
	require.Contains(t, buf.String(), "No location with that id.")
}
