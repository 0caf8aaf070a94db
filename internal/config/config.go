package config

import (
	"geomap-admin/internal/geomap"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Load reads a .env file from the working directory when there is one.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
}

// Get returns the trimmed value of key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func Bool(key string, fallback bool) bool {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("config: invalid bool key=%s value=%q using=%t", key, v, fallback)
		return fallback
	}
	return b
}

func Int(key string, fallback int) int {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: invalid int key=%s value=%q using=%d", key, v, fallback)
		return fallback
	}
	return n
}

// Map returns the map widget settings from GEOMAP_* variables layered over
// geomap.DefaultConfig. The coordinate form fields default to lon and lat.
func Map() geomap.Config {
	d := geomap.DefaultConfig()
	return geomap.Config{
		NewFeatureIcon:   Get("GEOMAP_NEW_FEATURE_ICON", d.NewFeatureIcon),
		DefaultLongitude: Get("GEOMAP_DEFAULT_LONGITUDE", d.DefaultLongitude),
		DefaultLatitude:  Get("GEOMAP_DEFAULT_LATITUDE", d.DefaultLatitude),
		DefaultZoom:      Get("GEOMAP_DEFAULT_ZOOM", d.DefaultZoom),
		ItemZoom:         Get("GEOMAP_ITEM_ZOOM", d.ItemZoom),
		Height:           Get("GEOMAP_HEIGHT", d.Height),
		AutoZoom:         Get("GEOMAP_AUTO_ZOOM", d.AutoZoom),
		ShowMapOnList:    Bool("GEOMAP_SHOW_MAP_ON_LIST", d.ShowMapOnList),
		FieldLongitude:   Get("GEOMAP_FIELD_LONGITUDE", "lon"),
		FieldLatitude:    Get("GEOMAP_FIELD_LATITUDE", "lat"),
	}
}

// Settings are the process-level settings shared by the server and dbtool.
type Settings struct {
	DBDriver      string
	DBPath        string
	DatabaseURL   string
	SeedPath      string
	Port          string
	ORSAPIKey     string
	ORSCountry    string
	RedisAddr     string
	GeocodeTTL    time.Duration
	AdminReadOnly bool
	AdminPageSize int
}

func FromEnv() Settings {
	return Settings{
		DBDriver:      Get("DB_DRIVER", "sqlite"),
		DBPath:        Get("DB_PATH", "data/app.db"),
		DatabaseURL:   Get("DATABASE_URL", ""),
		SeedPath:      Get("SEED_PATH", "data/seeds/locations.json"),
		Port:          Get("PORT", "8080"),
		ORSAPIKey:     Get("ORS_API_KEY", ""),
		ORSCountry:    Get("ORS_COUNTRY", ""),
		RedisAddr:     Get("REDIS_ADDR", ""),
		GeocodeTTL:    time.Duration(Int("GEOCODE_CACHE_TTL_HOURS", 0)) * time.Hour,
		AdminReadOnly: Bool("ADMIN_READ_ONLY", false),
		AdminPageSize: Int("ADMIN_PAGE_SIZE", 20),
	}
}
