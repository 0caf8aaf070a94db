package admin

import (
	"geomap-admin/internal/domain"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"
)

// Form input names. The map widget writes placed markers into the
// coordinate inputs when form mode is on.
const (
	FieldName      = "name"
	FieldAddress   = "address"
	FieldLongitude = "lon"
	FieldLatitude  = "lat"
)

// LocationForm holds the raw submitted values of a location form.
type LocationForm struct {
	Name    string
	Address string
	Lon     string
	Lat     string
}

func FormFromLocation(loc *domain.Location) LocationForm {
	return LocationForm{
		Name:    loc.Name,
		Address: loc.Address,
		Lon:     loc.Longitude(),
		Lat:     loc.Latitude(),
	}
}

func ParseLocationForm(r *http.Request) LocationForm {
	return LocationForm{
		Name:    strings.TrimSpace(r.PostFormValue(FieldName)),
		Address: strings.TrimSpace(r.PostFormValue(FieldAddress)),
		Lon:     strings.TrimSpace(r.PostFormValue(FieldLongitude)),
		Lat:     strings.TrimSpace(r.PostFormValue(FieldLatitude)),
	}
}

// Validate returns field errors keyed by input name; empty means valid.
func (f LocationForm) Validate() map[string]string {
	errs := map[string]string{}

	if f.Name == "" {
		errs[FieldName] = "This field is required."
	}

	lon, lonErr := parseDegrees(f.Lon, 180)
	if lonErr != "" {
		errs[FieldLongitude] = lonErr
	}
	lat, latErr := parseDegrees(f.Lat, 90)
	if latErr != "" {
		errs[FieldLatitude] = latErr
	}

	if lonErr == "" && latErr == "" && (lon == nil) != (lat == nil) {
		if lon == nil {
			errs[FieldLongitude] = "Longitude and latitude must be set together."
		} else {
			errs[FieldLatitude] = "Longitude and latitude must be set together."
		}
	}

	return errs
}

// Apply copies the validated values onto loc.
func (f LocationForm) Apply(loc *domain.Location) {
	loc.Name = f.Name
	loc.Address = f.Address

	lon, _ := parseDegrees(f.Lon, 180)
	lat, _ := parseDegrees(f.Lat, 90)
	if lon == nil || lat == nil {
		loc.Lon, loc.Lat = nil, nil
		return
	}
	loc.Place(domain.Coordinates{Lon: *lon, Lat: *lat})
}

// decimalPattern rejects the non-decimal spellings strconv.ParseFloat also
// accepts (NaN, Inf, hex floats, underscores).
var decimalPattern = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?$`)

func parseDegrees(s string, limit float64) (*float64, string) {
	if s == "" {
		return nil, ""
	}
	if !decimalPattern.MatchString(s) {
		return nil, "Enter a number."
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, "Enter a number."
	}
	if v < -limit || v > limit {
		return nil, "Ensure this value is between -" + strconv.Itoa(int(limit)) + " and " + strconv.Itoa(int(limit)) + "."
	}
	return &v, ""
}
