package geomap

import (
	"context"
	"fmt"
	"net/http"
	"slices"
)

// Response is the result of an underlying admin screen, rendered by the
// template it names.
type Response interface {
	Template() string
}

// FilteredResponse is implemented by list responses that expose the full
// filtered collection (not only the current page).
type FilteredResponse interface {
	Response
	Filtered() []Item
}

type lookedUpKey struct{}

// LookedUp returns the record ChangeView resolved for the current request.
// Screen.Change may use it instead of loading the record a second time.
func LookedUp(ctx context.Context) (Item, bool) {
	item, ok := ctx.Value(lookedUpKey{}).(Item)
	return item, ok && item != nil
}

// Screen is the admin screen ModelAdmin decorates.
type Screen interface {
	Changelist(r *http.Request) (Response, error)
	Change(r *http.Request, id string) (Response, error)
	Add(r *http.Request) (Response, error)
	// Lookup returns the record with id from the set visible to the requesting user.
	Lookup(r *http.Request, id string) (Item, error)
	HasChangePermission(r *http.Request) bool
}

// Page is an admin response with the map context merged in. Map is nil when
// the map is not shown.
type Page struct {
	Response
	Map *Context
}

// Config holds the per-registration map settings.
type Config struct {
	NewFeatureIcon   string
	DefaultLongitude string
	DefaultLatitude  string
	DefaultZoom      string
	ItemZoom         string
	Height           string
	AutoZoom         string
	ShowMapOnList    bool
	// Both set: placing a marker writes into these form inputs.
	FieldLongitude string
	FieldLatitude  string
}

func DefaultConfig() Config {
	return Config{
		NewFeatureIcon:   DefaultIcon,
		DefaultLongitude: DefaultLongitude,
		DefaultLatitude:  DefaultLatitude,
		DefaultZoom:      DefaultZoom,
		ItemZoom:         DefaultItemZoom,
		Height:           DefaultHeight,
		AutoZoom:         DefaultAutoZoom,
		ShowMapOnList:    true,
	}
}

// FormMode reports whether both form field names are configured.
func (c Config) FormMode() bool {
	return c.FieldLongitude != "" && c.FieldLatitude != ""
}

// ModelAdmin injects map context into the list, change and add views of a Screen.
type ModelAdmin struct {
	Config Config
	Screen Screen
}

func NewModelAdmin(screen Screen, cfg Config) *ModelAdmin {
	return &ModelAdmin{Config: cfg, Screen: screen}
}

func (a *ModelAdmin) common(r *http.Request) Context {
	c := BuildContext(nil,
		WithCenter(a.Config.DefaultLongitude, a.Config.DefaultLatitude),
		WithZoom(a.Config.DefaultZoom),
		WithAutoZoom(a.Config.AutoZoom),
		WithHeight(a.Config.Height),
	)
	c.Editing = &Editing{
		IsEditable:     a.Screen.HasChangePermission(r),
		NewMarkerIcon:  a.Config.NewFeatureIcon,
		IsFormMode:     a.Config.FormMode(),
		FieldLongitude: a.Config.FieldLongitude,
		FieldLatitude:  a.Config.FieldLatitude,
	}
	return c
}

// ChangelistView shows every record of the filtered collection on the map.
// A response without a filtered collection is passed through untouched.
func (a *ModelAdmin) ChangelistView(r *http.Request) (Page, error) {
	resp, err := a.Screen.Changelist(r)
	if err != nil {
		return Page{}, fmt.Errorf("changelist view: %w", err)
	}

	if !a.Config.ShowMapOnList {
		return Page{Response: resp}, nil
	}

	filtered, ok := resp.(FilteredResponse)
	if !ok {
		return Page{Response: resp}, nil
	}

	c := a.common(r)
	c.Items = slices.Clone(filtered.Filtered())
	if c.Items == nil {
		c.Items = []Item{}
	}

	return Page{Response: resp, Map: &c}, nil
}

// ChangeView centers the map on the edited record when it has coordinates.
// A record missing from the user's visible set is an error.
func (a *ModelAdmin) ChangeView(r *http.Request, id string) (Page, error) {
	c := a.common(r)

	item, err := a.Screen.Lookup(r, id)
	if err != nil {
		return Page{}, fmt.Errorf("change view: lookup %q: %w", id, err)
	}

	if Locatable(item) {
		c.Items = []Item{item}
		c.CenterLongitude = item.Longitude()
		c.CenterLatitude = item.Latitude()
		c.Zoom = a.Config.ItemZoom
	}

	r = r.WithContext(context.WithValue(r.Context(), lookedUpKey{}, item))
	resp, err := a.Screen.Change(r, id)
	if err != nil {
		return Page{}, fmt.Errorf("change view: %w", err)
	}

	return Page{Response: resp, Map: &c}, nil
}

func (a *ModelAdmin) AddView(r *http.Request) (Page, error) {
	c := a.common(r)

	resp, err := a.Screen.Add(r)
	if err != nil {
		return Page{}, fmt.Errorf("add view: %w", err)
	}

	return Page{Response: resp, Map: &c}, nil
}
