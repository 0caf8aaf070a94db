package services

import (
	"context"
	"errors"
	"fmt"
	"geomap-admin/internal/domain"
	"geomap-admin/internal/ports"
	"log"
	"strings"
	"sync"
)

// LocateLocation fills in missing coordinates from the location's address.
// It reports whether the location was changed; locations that already have
// coordinates or have no address are left alone.
func LocateLocation(ctx context.Context, loc *domain.Location, geocoder ports.Geocoder) (bool, error) {
	if loc == nil {
		return false, errors.New("locate location: location must be non-nil")
	}
	if _, ok := loc.Coordinates(); ok {
		return false, nil
	}

	address := strings.TrimSpace(loc.Address)
	if address == "" || geocoder == nil {
		return false, nil
	}

	c, err := geocoder.Geocode(ctx, address)
	if err != nil {
		return false, fmt.Errorf("locate location %s: %w", loc.ID, err)
	}
	if !c.Valid() {
		return false, fmt.Errorf("locate location %s: geocoder returned out of range coordinates %v", loc.ID, c.CoordsToList())
	}

	loc.Place(c)
	return true, nil
}

// LocateReport summarizes a LocateMissing run.
type LocateReport struct {
	Located int
	Failed  int
	Skipped int
}

type locateResult struct {
	loc     *domain.Location
	changed bool
	err     error
}

// LocateMissing geocodes every stored location that has an address but no
// coordinates, with at most `workers` lookups in flight.
//
// Individual geocode failures are logged and counted; a failed save aborts
// the run.
func LocateMissing(
	ctx context.Context,
	repo ports.LocationRepository,
	geocoder ports.Geocoder,
	workers int,
) (LocateReport, error) {
	var report LocateReport

	if geocoder == nil {
		return report, errors.New("locate missing: geocoder must be non-nil")
	}
	if workers < 1 {
		workers = 1
	}

	all, err := repo.List(ctx, ports.ListFilter{})
	if err != nil {
		return report, fmt.Errorf("locate missing: list locations: %w", err)
	}

	pending := make([]*domain.Location, 0, len(all))
	for _, loc := range all {
		if _, ok := loc.Coordinates(); ok || strings.TrimSpace(loc.Address) == "" {
			report.Skipped++
			continue
		}
		pending = append(pending, loc)
	}

	sem := make(chan struct{}, workers)
	resultsCh := make(chan locateResult, len(pending))
	var wg sync.WaitGroup

	for _, loc := range pending {
		wg.Add(1)
		go func(l *domain.Location) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			changed, err := LocateLocation(ctx, l, geocoder)
			resultsCh <- locateResult{loc: l, changed: changed, err: err}
		}(loc)
	}

	wg.Wait()
	close(resultsCh)

	for res := range resultsCh {
		if res.err != nil {
			log.Printf("locate missing: id=%s err=%v", res.loc.ID, res.err)
			report.Failed++
			continue
		}
		if !res.changed {
			report.Skipped++
			continue
		}
		if err := repo.Save(ctx, res.loc); err != nil {
			return report, fmt.Errorf("locate missing: save %s: %w", res.loc.ID, err)
		}
		report.Located++
	}

	return report, nil
}
