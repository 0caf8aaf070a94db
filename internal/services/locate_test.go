package services

import (
	"context"
	"errors"
	"geomap-admin/internal/domain"
	"geomap-admin/internal/ports"
	"sync"
	"testing"

	"github.com/google/uuid"
)

type stubGeocoder struct {
	mu      sync.Mutex
	known   map[string]domain.Coordinates
	lookups int
}

func (g *stubGeocoder) Geocode(_ context.Context, address string) (domain.Coordinates, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lookups++
	c, ok := g.known[address]
	if !ok {
		return domain.Coordinates{}, errors.New("unknown address")
	}
	return c, nil
}

type memoryRepo struct {
	locs  []*domain.Location
	saved []uuid.UUID
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
	r.saved = append(r.saved, loc.ID)
	return nil
}

func TestLocateLocation(t *testing.T) {
	g := &stubGeocoder{known: map[string]domain.Coordinates{"Kazan": {Lon: 49.1, Lat: 55.8}}}

	loc := &domain.Location{Name: "Kremlin", Address: "Kazan"}
	changed, err := LocateLocation(context.Background(), loc, g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Fatalf("expected location to be placed")
	}
	if loc.Longitude() != "49.1" || loc.Latitude() != "55.8" {
		t.Fatalf("coordinates = (%q, %q), want (49.1, 55.8)", loc.Longitude(), loc.Latitude())
	}

	// Placed locations are not geocoded again.
	changed, err = LocateLocation(context.Background(), loc, g)
	if err != nil || changed {
		t.Fatalf("second locate: changed=%v err=%v, want false, nil", changed, err)
	}
	if g.lookups != 1 {
		t.Fatalf("lookups = %d, want 1", g.lookups)
	}
}

func TestLocateMissing(t *testing.T) {
	placed := &domain.Location{ID: uuid.New(), Name: "Placed", Address: "Kazan"}
	placed.Place(domain.Coordinates{Lon: 1, Lat: 2})

	repo := &memoryRepo{locs: []*domain.Location{
		placed,
		{ID: uuid.New(), Name: "Kazan", Address: "Kazan"},
		{ID: uuid.New(), Name: "Samara", Address: "Samara"},
		{ID: uuid.New(), Name: "Lost", Address: "Atlantis"},
		{ID: uuid.New(), Name: "No address"},
	}}
	g := &stubGeocoder{known: map[string]domain.Coordinates{
		"Kazan":  {Lon: 49.1, Lat: 55.8},
		"Samara": {Lon: 50.1, Lat: 53.2},
	}}

	report, err := LocateMissing(context.Background(), repo, g, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Located != 2 {
		t.Fatalf("located = %d, want 2", report.Located)
	}
	if report.Failed != 1 {
		t.Fatalf("failed = %d, want 1", report.Failed)
	}
	if report.Skipped != 2 {
		t.Fatalf("skipped = %d, want 2", report.Skipped)
	}
	if len(repo.saved) != 2 {
		t.Fatalf("saved = %d, want 2", len(repo.saved))
	}
}
