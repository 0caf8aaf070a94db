package config

import (
	"geomap-admin/internal/geomap"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetFallsBackOnBlank(t *testing.T) {
	t.Setenv("GEOMAP_TEST_VALUE", "  ")
	require.Equal(t, "x", Get("GEOMAP_TEST_VALUE", "x"))

	t.Setenv("GEOMAP_TEST_VALUE", " y ")
	require.Equal(t, "y", Get("GEOMAP_TEST_VALUE", "x"))
}

func TestBoolAndInt(t *testing.T) {
	t.Setenv("GEOMAP_TEST_BOOL", "true")
	t.Setenv("GEOMAP_TEST_INT", "25")
	require.True(t, Bool("GEOMAP_TEST_BOOL", false))
	require.Equal(t, 25, Int("GEOMAP_TEST_INT", 20))

	t.Setenv("GEOMAP_TEST_BOOL", "nope")
	t.Setenv("GEOMAP_TEST_INT", "many")
	require.True(t, Bool("GEOMAP_TEST_BOOL", true))
	require.Equal(t, 20, Int("GEOMAP_TEST_INT", 20))
}

func TestMapDefaults(t *testing.T) {
	cfg := Map()

	want := geomap.DefaultConfig()
	want.FieldLongitude = "lon"
	want.FieldLatitude = "lat"
	require.Equal(t, want, cfg)
	require.True(t, cfg.FormMode())
}

func TestMapOverrides(t *testing.T) {
	t.Setenv("GEOMAP_SHOW_MAP_ON_LIST", "false")
	t.Setenv("GEOMAP_AUTO_ZOOM", "10")
	t.Setenv("GEOMAP_HEIGHT", "300px")
	t.Setenv("GEOMAP_FIELD_LATITUDE", "")

	cfg := Map()
	require.False(t, cfg.ShowMapOnList)
	require.Equal(t, "10", cfg.AutoZoom)
	require.Equal(t, "300px", cfg.Height)
	// Blank falls back to the default field name.
	require.Equal(t, "lat", cfg.FieldLatitude)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("ADMIN_READ_ONLY", "1")
	t.Setenv("ADMIN_PAGE_SIZE", "50")
	t.Setenv("GEOCODE_CACHE_TTL_HOURS", "24")
	t.Setenv("PORT", "")

	s := FromEnv()
	require.Equal(t, "postgres", s.DBDriver)
	require.True(t, s.AdminReadOnly)
	require.Equal(t, 50, s.AdminPageSize)
	require.Equal(t, 24*time.Hour, s.GeocodeTTL)
	require.Equal(t, "8080", s.Port)
}
