package geomap

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestBuildContextDefaults(t *testing.T) {
	c := BuildContext(nil)

	require.Equal(t, "0.0", c.CenterLongitude)
	require.Equal(t, "0.0", c.CenterLatitude)
	require.Equal(t, "1", c.Zoom)
	require.Equal(t, "-1", c.AutoZoom)
	require.Equal(t, "500px", c.Height)
	require.NotNil(t, c.Items)
	require.Empty(t, c.Items)
	require.Nil(t, c.Editing)
}

func TestBuildContextOptions(t *testing.T) {
	items := []Item{&place{name: "A", lon: "1.5", lat: "2.5"}}
	c := BuildContext(items,
		WithCenter("30.1", "59.9"),
		WithZoom("5"),
		WithAutoZoom("0"),
		WithHeight("300px"),
	)

	require.Equal(t, "30.1", c.CenterLongitude)
	require.Equal(t, "59.9", c.CenterLatitude)
	require.Equal(t, "5", c.Zoom)
	require.Equal(t, "0", c.AutoZoom)
	require.Equal(t, "300px", c.Height)
	require.Equal(t, items, c.Items)
}

func TestBuildContextIsPure(t *testing.T) {
	a := &place{name: "A", lon: "1.0", lat: "2.0"}
	b := &place{name: "B"}
	items := []Item{a, b}

	first := BuildContext(items, WithZoom("3"))
	second := BuildContext(items, WithZoom("3"))

	if diff := cmp.Diff(first, second, cmp.AllowUnexported(place{})); diff != "" {
		t.Fatalf("BuildContext not deterministic (-first +second):\n%s", diff)
	}

	first.Items[0] = b
	require.Same(t, a, items[0], "input slice must not be shared")
}

func TestContextJSONWireNames(t *testing.T) {
	c := BuildContext([]Item{&place{name: "A & B", lon: "1.0", lat: "2.0"}})

	raw, err := json.Marshal(c)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))

	for _, key := range []string{"center_longitude", "center_latitude", "zoom", "auto_zoom", "height", "items"} {
		require.Contains(t, got, key)
	}
	for _, key := range []string{"is_editable", "new_marker_icon", "is_form_mode", "field_longitude", "field_latitude"} {
		require.NotContains(t, got, key)
	}

	items := got["items"].([]any)
	require.Len(t, items, 1)
	marker := items[0].(map[string]any)
	require.Equal(t, "A & B", marker["label"])
	require.Equal(t, "<strong>A &amp; B</strong>", marker["popup_readonly"])
	require.Equal(t, DefaultIcon, marker["icon"])
}

func TestContextJSONEditing(t *testing.T) {
	c := BuildContext(nil)
	c.Editing = &Editing{IsEditable: true, NewMarkerIcon: DefaultIcon, IsFormMode: true, FieldLongitude: "lon", FieldLatitude: "lat"}

	raw, err := json.Marshal(&c)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Equal(t, true, got["is_editable"])
	require.Equal(t, true, got["is_form_mode"])
	require.Equal(t, "lon", got["field_longitude"])
	require.Equal(t, "lat", got["field_latitude"])
	require.Equal(t, []any{}, got["items"])
}
