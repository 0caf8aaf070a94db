package geomap

import (
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// FeatureCollection exports the locatable items as GeoJSON points.
// Items whose coordinates are not decimal numbers are skipped and counted.
func FeatureCollection(items []Item) (fc *geojson.FeatureCollection, skipped int) {
	fc = geojson.NewFeatureCollection()

	// Caution: geojson is "lon,lat" order
	points := make(orb.MultiPoint, 0, len(items))
	for _, item := range items {
		if !Locatable(item) {
			continue
		}

		lon, err := strconv.ParseFloat(item.Longitude(), 64)
		if err != nil {
			skipped++
			continue
		}
		lat, err := strconv.ParseFloat(item.Latitude(), 64)
		if err != nil {
			skipped++
			continue
		}

		pt := orb.Point{lon, lat}
		f := geojson.NewFeature(pt)
		f.Properties["label"] = item.Label()
		f.Properties["icon"] = IconOf(item)
		f.Properties["popup"] = string(PopupReadonlyOf(item))
		fc.Append(f)
		points = append(points, pt)
	}

	if len(points) > 0 {
		fc.BBox = geojson.NewBBox(points.Bound())
	}

	return fc, skipped
}
