package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by repositories when a record does not exist.
var ErrNotFound = errors.New("not found")

// Location is a named place shown on the admin map.
// Lon and Lat are nil until the location has been placed or geocoded.
type Location struct {
	ID        uuid.UUID
	Name      string
	Address   string
	Lon       *float64
	Lat       *float64
	CreatedAt time.Time
}

func (l *Location) Label() string { return l.Name }

func (l *Location) Longitude() string {
	if l.Lon == nil {
		return ""
	}
	return FormatDegrees(*l.Lon)
}

func (l *Location) Latitude() string {
	if l.Lat == nil {
		return ""
	}
	return FormatDegrees(*l.Lat)
}

// Place sets both coordinates.
func (l *Location) Place(c Coordinates) {
	lon, lat := c.Lon, c.Lat
	l.Lon = &lon
	l.Lat = &lat
}

// Coordinates returns the location's coordinates, if it has both.
func (l *Location) Coordinates() (Coordinates, bool) {
	if l.Lon == nil || l.Lat == nil {
		return Coordinates{}, false
	}
	return Coordinates{Lon: *l.Lon, Lat: *l.Lat}, true
}
