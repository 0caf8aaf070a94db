package geomap

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

func TestFeatureCollection(t *testing.T) {
	items := []Item{
		&place{name: "A", lon: "10.0", lat: "50.0"},
		&place{name: "Unlocated"},
		&place{name: "Broken", lon: "east", lat: "1.0"},
		&place{name: "B", lon: "12.5", lat: "48.0"},
	}

	fc, skipped := FeatureCollection(items)
	require.Equal(t, 1, skipped)
	require.Len(t, fc.Features, 2)

	require.Equal(t, orb.Point{10, 50}, fc.Features[0].Geometry)
	require.Equal(t, "A", fc.Features[0].Properties["label"])
	require.Equal(t, DefaultIcon, fc.Features[0].Properties["icon"])
	require.Equal(t, "<strong>B</strong>", fc.Features[1].Properties["popup"])

	require.Equal(t, orb.Bound{Min: orb.Point{10, 48}, Max: orb.Point{12.5, 50}}, fc.BBox.Bound())
}

func TestFeatureCollectionEmpty(t *testing.T) {
	fc, skipped := FeatureCollection(nil)
	require.Zero(t, skipped)
	require.Empty(t, fc.Features)
	require.Nil(t, fc.BBox)
}
