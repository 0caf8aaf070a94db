package geocode

import (
	"context"
	"errors"
	"geomap-admin/internal/domain"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	m map[string]domain.Coordinates
}

func (c *memoryCache) GetMany(_ context.Context, addresses []string) (map[string]domain.Coordinates, error) {
	out := map[string]domain.Coordinates{}
	for _, a := range addresses {
		if v, ok := c.m[a]; ok {
			out[a] = v
		}
	}
	return out, nil
}

func (c *memoryCache) PutMany(_ context.Context, results map[string]domain.Coordinates) error {
	for k, v := range results {
		c.m[k] = v
	}
	return nil
}

func TestORSGeocoderRetriesAndCaches(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geocode/search", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("Authorization"))
		assert.Equal(t, "Kremlin St, Kazan", r.URL.Query().Get("text"))

		if calls.Add(1) == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"features":[{"geometry":{"coordinates":[49.1063,55.7992]}}]}`))
	}))
	defer srv.Close()

	cache := &memoryCache{m: map[string]domain.Coordinates{}}
	g, err := NewORSGeocoder("secret",
		WithBaseURL(srv.URL),
		WithCache(cache),
		WithRetry(3, time.Millisecond),
	)
	require.NoError(t, err)

	c, err := g.Geocode(context.Background(), "  Kremlin St,   Kazan ")
	require.NoError(t, err)
	require.Equal(t, domain.Coordinates{Lon: 49.1063, Lat: 55.7992}, c)
	require.Equal(t, int32(2), calls.Load())

	// Second lookup is served from the cache.
	c, err = g.Geocode(context.Background(), "Kremlin St, Kazan")
	require.NoError(t, err)
	require.Equal(t, 55.7992, c.Lat)
	require.Equal(t, int32(2), calls.Load())
}

func TestORSGeocoderNoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad key", http.StatusForbidden)
	}))
	defer srv.Close()

	g, err := NewORSGeocoder("secret", WithBaseURL(srv.URL), WithRetry(4, time.Millisecond))
	require.NoError(t, err)

	_, err = g.Geocode(context.Background(), "Anywhere")
	var he *httpStatusError
	require.True(t, errors.As(err, &he))
	require.Equal(t, http.StatusForbidden, he.Code)
	require.Equal(t, int32(1), calls.Load())
}

func TestORSGeocoderNoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"features":[]}`))
	}))
	defer srv.Close()

	g, err := NewORSGeocoder("secret", WithBaseURL(srv.URL), WithCountry("US"))
	require.NoError(t, err)

	_, err = g.Geocode(context.Background(), "Atlantis")
	require.ErrorIs(t, err, ErrNoResult)
}

func TestNewORSGeocoderRequiresKey(t *testing.T) {
	_, err := NewORSGeocoder("")
	require.Error(t, err)
}
