package domain

import (
	"math"
	"testing"

	"geomap-admin/internal/geomap"
)

var _ geomap.Item = (*Location)(nil)

func TestLocationCoordinates(t *testing.T) {
	loc := &Location{Name: "Test location"}

	if loc.Latitude() != "" || loc.Longitude() != "" {
		t.Fatalf("new location coordinates = (%q, %q), want empty", loc.Longitude(), loc.Latitude())
	}
	if icon := geomap.IconOf(loc); icon != geomap.DefaultIcon {
		t.Fatalf("icon = %q, want default", icon)
	}
	if geomap.Locatable(loc) {
		t.Fatalf("location without coordinates must not be locatable")
	}

	loc.Place(Coordinates{Lon: 0.0, Lat: 10.0})

	if loc.Longitude() != "0.0" {
		t.Fatalf("longitude = %q, want %q", loc.Longitude(), "0.0")
	}
	if loc.Latitude() != "10.0" {
		t.Fatalf("latitude = %q, want %q", loc.Latitude(), "10.0")
	}
	if !geomap.Locatable(loc) {
		t.Fatalf("placed location must be locatable")
	}
}

func TestFormatDegrees(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{10, "10.0"},
		{-33.5, "-33.5"},
		{1.25, "1.25"},
		{37.617635, "37.617635"},
	}

	for _, tc := range cases {
		if got := FormatDegrees(tc.in); got != tc.want {
			t.Errorf("FormatDegrees(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCoordinatesValid(t *testing.T) {
	if !(Coordinates{Lon: 180, Lat: -90}).Valid() {
		t.Errorf("edge coordinates should be valid")
	}
	if (Coordinates{Lon: 181, Lat: 0}).Valid() {
		t.Errorf("longitude 181 should be invalid")
	}
	if (Coordinates{Lon: 0, Lat: 91}).Valid() {
		t.Errorf("latitude 91 should be invalid")
	}
	if (Coordinates{Lon: math.NaN(), Lat: 0}).Valid() {
		t.Errorf("NaN longitude should be invalid")
	}
	if (Coordinates{Lon: 0, Lat: math.Inf(-1)}).Valid() {
		t.Errorf("infinite latitude should be invalid")
	}
}

func TestFormatDegreesNonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := FormatDegrees(v); got != "" {
			t.Errorf("FormatDegrees(%v) = %q, want empty", v, got)
		}
	}

	loc := &Location{Name: "Broken"}
	loc.Place(Coordinates{Lon: math.NaN(), Lat: math.NaN()})
	if geomap.Locatable(loc) {
		t.Fatalf("location with NaN coordinates must not be locatable")
	}
}
