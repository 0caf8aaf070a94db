package geomap

import (
	"encoding/json"
	"html/template"
	"slices"
)

const (
	DefaultLongitude = "0.0"
	DefaultLatitude  = "0.0"
	DefaultZoom      = "1"
	DefaultItemZoom  = "13"
	DefaultAutoZoom  = "-1"
	DefaultHeight    = "500px"
)

// Context is the value set a page template reads to draw the map widget.
// JSON keys are part of the template contract and must stay stable.
//
// Numeric-looking fields are opaque strings; the renderer validates them.
type Context struct {
	CenterLongitude string `json:"center_longitude"`
	CenterLatitude  string `json:"center_latitude"`
	Zoom            string `json:"zoom"`
	AutoZoom        string `json:"auto_zoom"`
	Height          string `json:"height"`
	Items           []Item `json:"-"`

	// Set only by ModelAdmin. Nil means no edit affordances.
	*Editing
}

// Editing holds the admin-only fields of a Context.
type Editing struct {
	IsEditable     bool   `json:"is_editable"`
	NewMarkerIcon  string `json:"new_marker_icon"`
	IsFormMode     bool   `json:"is_form_mode"`
	FieldLongitude string `json:"field_longitude"`
	FieldLatitude  string `json:"field_latitude"`
}

// Marker is the rendered form of an Item.
type Marker struct {
	Label         string        `json:"label"`
	Icon          string        `json:"icon"`
	Longitude     string        `json:"longitude"`
	Latitude      string        `json:"latitude"`
	PopupReadonly template.HTML `json:"popup_readonly"`
	PopupEditable template.HTML `json:"popup_editable"`
}

// Option adjusts the defaults used by BuildContext.
type Option func(*Context)

func WithCenter(longitude, latitude string) Option {
	return func(c *Context) {
		c.CenterLongitude = longitude
		c.CenterLatitude = latitude
	}
}

func WithZoom(zoom string) Option {
	return func(c *Context) { c.Zoom = zoom }
}

// WithAutoZoom sets auto_zoom; any value >= 0 asks the renderer to fit all
// markers instead of using zoom.
func WithAutoZoom(autoZoom string) Option {
	return func(c *Context) { c.AutoZoom = autoZoom }
}

func WithHeight(height string) Option {
	return func(c *Context) { c.Height = height }
}

// BuildContext assembles a map context for any page.
//
// items is copied, never modified; nil becomes an empty slice. The admin-only
// fields are left unset.
func BuildContext(items []Item, opts ...Option) Context {
	c := Context{
		CenterLongitude: DefaultLongitude,
		CenterLatitude:  DefaultLatitude,
		Zoom:            DefaultZoom,
		AutoZoom:        DefaultAutoZoom,
		Height:          DefaultHeight,
		Items:           slices.Clone(items),
	}
	if c.Items == nil {
		c.Items = []Item{}
	}

	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// Markers converts the context items for rendering.
func (c Context) Markers() []Marker {
	out := make([]Marker, 0, len(c.Items))
	for _, item := range c.Items {
		if item == nil {
			continue
		}
		out = append(out, Marker{
			Label:         item.Label(),
			Icon:          IconOf(item),
			Longitude:     item.Longitude(),
			Latitude:      item.Latitude(),
			PopupReadonly: PopupReadonlyOf(item),
			PopupEditable: PopupEditableOf(item),
		})
	}
	return out
}

func (c Context) MarshalJSON() ([]byte, error) {
	type plain Context
	return json.Marshal(struct {
		plain
		Items []Marker `json:"items"`
	}{
		plain: plain(c),
		Items: c.Markers(),
	})
}
