package geomap

import (
	"errors"
	"fmt"
	"html/template"
)

// DefaultIcon is the marker image used when an item does not provide its own.
const DefaultIcon = "https://maps.google.com/mapfiles/ms/micons/red.png"

// ErrNotImplemented is matched by errors returned when a value does not
// provide a coordinate accessor at all.
var ErrNotImplemented = errors.New("not implemented")

// Item is the contract a record implements to be drawn on the map.
// Longitude and Latitude return decimal strings, or "" when the record has no
// coordinates.
type Item interface {
	Label() string
	Longitude() string
	Latitude() string
}

// Iconer overrides DefaultIcon for an item.
type Iconer interface {
	Icon() string
}

// PopupRenderer overrides the default marker popup HTML.
type PopupRenderer interface {
	// Popup shown to users without change permission.
	PopupReadonly() template.HTML
	// Popup shown to users allowed to edit the record.
	PopupEditable() template.HTML
}

// NotImplementedError reports a missing coordinate accessor.
type NotImplementedError struct {
	Type   string
	Method string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("%s.%s: %v", e.Type, e.Method, ErrNotImplemented)
}

func (e *NotImplementedError) Unwrap() error { return ErrNotImplemented }

// Locatable reports whether both coordinates of item are present.
func Locatable(item Item) bool {
	return item != nil && item.Longitude() != "" && item.Latitude() != ""
}

// Coordinates returns the coordinates of an arbitrary value.
//
// A value lacking an accessor yields a *NotImplementedError, which is a
// programming error and differs from a value that has no coordinates
// (empty strings, nil error).
func Coordinates(v any) (lon string, lat string, err error) {
	lonner, ok := v.(interface{ Longitude() string })
	if !ok {
		return "", "", &NotImplementedError{Type: fmt.Sprintf("%T", v), Method: "Longitude"}
	}
	latter, ok := v.(interface{ Latitude() string })
	if !ok {
		return "", "", &NotImplementedError{Type: fmt.Sprintf("%T", v), Method: "Latitude"}
	}

	return lonner.Longitude(), latter.Latitude(), nil
}

// IconOf returns the marker icon URL of item.
func IconOf(item Item) string {
	if i, ok := item.(Iconer); ok {
		if icon := i.Icon(); icon != "" {
			return icon
		}
	}
	return DefaultIcon
}

// DefaultPopup renders the label in bold with HTML escaping.
func DefaultPopup(label string) template.HTML {
	return template.HTML("<strong>" + template.HTMLEscapeString(label) + "</strong>")
}

func PopupReadonlyOf(item Item) template.HTML {
	if p, ok := item.(PopupRenderer); ok {
		return p.PopupReadonly()
	}
	return DefaultPopup(item.Label())
}

func PopupEditableOf(item Item) template.HTML {
	if p, ok := item.(PopupRenderer); ok {
		return p.PopupEditable()
	}
	return PopupReadonlyOf(item)
}
