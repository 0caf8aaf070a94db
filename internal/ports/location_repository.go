package ports

import (
	"context"
	"geomap-admin/internal/domain"

	"github.com/google/uuid"
)

// Ordering keys accepted by ListFilter.
const (
	OrderByName        = "name"
	OrderByNameDesc    = "-name"
	OrderByCreated     = "created"
	OrderByCreatedDesc = "-created"
)

// ListFilter narrows and orders a location listing.
type ListFilter struct {
	// Case-insensitive substring of name or address.
	Search   string
	Ordering string
}

// Port: a boundary for storing and retrieving Location records.
type LocationRepository interface {
	// Return all locations matching the filter.
	List(ctx context.Context, filter ListFilter) ([]*domain.Location, error)
	// Return one location, or an error wrapping domain.ErrNotFound.
	Get(ctx context.Context, id uuid.UUID) (*domain.Location, error)
	// Insert or update a location. A zero ID is replaced with a new one.
	Save(ctx context.Context, loc *domain.Location) error
}
