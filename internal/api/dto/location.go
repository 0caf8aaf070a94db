package dto

import (
	"geomap-admin/internal/geomap"
	"time"
)

// Coordinates are decimal strings, empty when the location is not placed.
type LocationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Longitude string    `json:"longitude"`
	Latitude  string    `json:"latitude"`
	CreatedAt time.Time `json:"created_at"`
}

type ListLocationsResponse struct {
	Count     int                `json:"count"`
	Locations []LocationResponse `json:"locations"`
	Map       geomap.Context     `json:"map"`
}
