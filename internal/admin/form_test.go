package admin

import (
	"geomap-admin/internal/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocationFormValidate(t *testing.T) {
	tests := []struct {
		name string
		form LocationForm
		want []string
	}{
		{name: "valid", form: LocationForm{Name: "Depot", Lon: "4.5", Lat: "-51.25"}},
		{name: "no coordinates", form: LocationForm{Name: "Depot"}},
		{name: "exponent", form: LocationForm{Name: "Depot", Lon: "1e1", Lat: ".5"}},
		{name: "missing name", form: LocationForm{}, want: []string{FieldName}},
		{name: "not a number", form: LocationForm{Name: "x", Lon: "east", Lat: "1"}, want: []string{FieldLongitude}},
		{name: "out of range", form: LocationForm{Name: "x", Lon: "0", Lat: "90.5"}, want: []string{FieldLatitude}},
		{name: "half pair", form: LocationForm{Name: "x", Lon: "1"}, want: []string{FieldLatitude}},
		{name: "nan", form: LocationForm{Name: "x", Lon: "NaN", Lat: "nan"}, want: []string{FieldLongitude, FieldLatitude}},
		{name: "inf", form: LocationForm{Name: "x", Lon: "Inf", Lat: "-infinity"}, want: []string{FieldLongitude, FieldLatitude}},
		{name: "hex float", form: LocationForm{Name: "x", Lon: "0x1p2", Lat: "1"}, want: []string{FieldLongitude}},
		{name: "underscores", form: LocationForm{Name: "x", Lon: "1_0", Lat: "1"}, want: []string{FieldLongitude}},
		{name: "overflow", form: LocationForm{Name: "x", Lon: "1e400", Lat: "1"}, want: []string{FieldLongitude}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.form.Validate()

			got := make([]string, 0, len(errs))
			for field := range errs {
				got = append(got, field)
			}
			require.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestLocationFormRejectsNaNBeforeApply(t *testing.T) {
	form := LocationForm{Name: "x", Lon: "NaN", Lat: "nan"}
	errs := form.Validate()
	require.Equal(t, "Enter a number.", errs[FieldLongitude])
	require.Equal(t, "Enter a number.", errs[FieldLatitude])

	// Apply on an unvalidated form must not place the record either.
	loc := &domain.Location{}
	form.Apply(loc)
	_, located := loc.Coordinates()
	require.False(t, located)
	require.Equal(t, "", loc.Longitude())
}
