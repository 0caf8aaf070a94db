package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"geomap-admin/internal/domain"
	"geomap-admin/internal/platform/obs"
	"geomap-admin/internal/ports"
	"log"
	"net/http"
	"strings"
	"time"
)

// ErrNoResult is returned when the service knows no place for an address.
var ErrNoResult = errors.New("no geocode result")

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// ORSGeocoder implements ports.Geocoder using OpenRouteService
// (/geocode/search) behind an optional persistent cache.
//
// The geocoder is safe for concurrent use.
type ORSGeocoder struct {
	session     *http.Client
	apiKey      string
	baseURL     string
	country     string
	cache       ports.GeocodeCache
	maxAttempts int
	backoff     time.Duration
}

type Option func(*ORSGeocoder)

// WithBaseURL points the geocoder at another ORS deployment.
func WithBaseURL(u string) Option {
	return func(o *ORSGeocoder) { o.baseURL = strings.TrimSuffix(u, "/") }
}

// WithCountry restricts results to an ISO country code ("" for worldwide).
func WithCountry(code string) Option {
	return func(o *ORSGeocoder) { o.country = code }
}

func WithCache(c ports.GeocodeCache) Option {
	return func(o *ORSGeocoder) { o.cache = c }
}

func WithRetry(maxAttempts int, backoff time.Duration) Option {
	return func(o *ORSGeocoder) {
		o.maxAttempts = max(1, maxAttempts)
		o.backoff = backoff
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *ORSGeocoder) { o.session = c }
}

func NewORSGeocoder(apiKey string, opts ...Option) (*ORSGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	o := &ORSGeocoder{
		session:     &http.Client{Timeout: 10 * time.Second},
		apiKey:      apiKey,
		baseURL:     "https://api.openrouteservice.org",
		maxAttempts: 4,
		backoff:     200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(o)
	}

	return o, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Geocode resolves one address, consulting the cache first.
// Cache failures are logged and never fail the lookup.
func (o *ORSGeocoder) Geocode(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	norm := normalize(address)
	if norm == "" {
		return domain.Coordinates{}, errors.New("geocode: address must be non-empty")
	}

	if o.cache != nil {
		hit, err := o.cache.GetMany(ctx, []string{norm})
		if err != nil {
			log.Printf("geocode cache read failed: address=%q err=%v", norm, err)
		} else if c, ok := hit[norm]; ok {
			return c, nil
		}
	}

	c, err := o.search(ctx, norm)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", norm, err)
	}

	if o.cache != nil {
		if err := o.cache.PutMany(ctx, map[string]domain.Coordinates{norm: c}); err != nil {
			log.Printf("geocode cache write failed: address=%q err=%v", norm, err)
		}
	}

	return c, nil
}

func (o *ORSGeocoder) search(ctx context.Context, text string) (domain.Coordinates, error) {
	endpoint := o.baseURL + "/geocode/search"
	query := map[string]string{
		"text": text,
		"size": "1",
	}
	if o.country != "" {
		query["boundary.country"] = o.country
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, endpoint, query)
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, ErrNoResult
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinates{}, errors.New("invalid coordinate format")
	}

	return domain.Coordinates{Lon: coords[0], Lat: coords[1]}, nil
}
