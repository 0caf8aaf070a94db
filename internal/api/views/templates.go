package views

var headerTemplate = `
{{ define "header" }}<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>{{ .Title }} | {{ .SiteTitle }}</title>
    <link rel="stylesheet" href="{{ .LeafletCSS }}">
    <script src="{{ .LeafletJS }}"></script>
    <style>
        body {font-family: sans-serif; margin: 0 2em 2em;}
        table {border-collapse: collapse; width: 100%;}
        th, td {text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd;}
        .errorlist {color: #ba2121;}
        .geomap_container {margin: 1em 0;}
    </style>
</head>
<body>
<header><h1><a href="/">{{ .SiteTitle }}</a></h1></header>
<main>
{{ end }}
`

var footerTemplate = `
{{ define "footer" }}
</main>
</body>
</html>
{{ end }}
`

// The widget reads geomapContext only; nothing else on the page is consulted.
var mapTemplate = `
{{ define "map" }}{{ if .Map }}
<div class="geomap_container">
    <div id="geomap" style="width:100%;height:{{ .Map.Height }};"></div>
</div>
<script type="text/javascript">
    "use strict";
    var geomapContext = {{ .Map }};
    (function (ctx) {
        var center = [parseFloat(ctx.center_latitude), parseFloat(ctx.center_longitude)];
        var map = L.map("geomap").setView(center, parseInt(ctx.zoom, 10));
        L.tileLayer({{ .TileURL }}, {
            maxZoom: 19,
            attribution: "&copy; OpenStreetMap contributors"
        }).addTo(map);

        function icon(url) {
            return L.icon({iconUrl: url, iconSize: [32, 32], iconAnchor: [16, 32], popupAnchor: [0, -32]});
        }

        var bounds = [];
        var current = null;
        ctx.items.forEach(function (item) {
            if (item.longitude === "" || item.latitude === "") {
                return;
            }
            var point = [parseFloat(item.latitude), parseFloat(item.longitude)];
            var marker = L.marker(point, {icon: icon(item.icon)}).addTo(map);
            marker.bindPopup(ctx.is_editable ? item.popup_editable : item.popup_readonly);
            bounds.push(point);
            current = marker;
        });

        var autoZoom = parseInt(ctx.auto_zoom, 10);
        if (autoZoom >= 0 && bounds.length === 1) {
            map.setView(bounds[0], autoZoom);
        } else if (autoZoom >= 0 && bounds.length > 1) {
            map.fitBounds(bounds, {maxZoom: autoZoom > 0 ? autoZoom : 18});
        }

        if (!ctx.is_editable || !ctx.is_form_mode) {
            return;
        }
        var lonInput = document.querySelector("[name='" + ctx.field_longitude + "']");
        var latInput = document.querySelector("[name='" + ctx.field_latitude + "']");
        if (!lonInput || !latInput) {
            return;
        }
        map.on("click", function (e) {
            if (current === null) {
                current = L.marker(e.latlng, {icon: icon(ctx.new_marker_icon)}).addTo(map);
            } else {
                current.setLatLng(e.latlng);
            }
            lonInput.value = e.latlng.lng.toFixed(6);
            latInput.value = e.latlng.lat.toFixed(6);
        });
    })(geomapContext);
</script>
{{ end }}{{ end }}
`

var homeTemplate = `
{{ define "home" }}{{ template "header" . }}
<h2>{{ .Title }}</h2>
<p>{{ .Located }} of {{ .Total }} locations on the map. <a href="/admin/locations/">Manage locations</a></p>
{{ template "map" . }}
{{ template "footer" . }}{{ end }}
`

var changelistTemplate = `
{{ define "changelist" }}{{ template "header" . }}
{{ with .Response }}
<h2>{{ .Title }}</h2>
{{ if .CanAdd }}<p><a href="{{ .BasePath }}add/">Add location</a></p>{{ end }}
<form method="get" action="{{ .BasePath }}">
    <input type="text" name="q" value="{{ .Query }}">
    {{ if .Ordering }}<input type="hidden" name="o" value="{{ .Ordering }}">{{ end }}
    <input type="submit" value="Search">
</form>
{{ end }}
{{ template "map" . }}
{{ with .Response }}
<table>
    <thead>
    <tr>
        <th><a href="{{ .OrderURL (toggle .Ordering "name") }}">Name</a></th>
        <th>Address</th>
        <th>Longitude</th>
        <th>Latitude</th>
        <th><a href="{{ .OrderURL (toggle .Ordering "created") }}">Created</a></th>
    </tr>
    </thead>
    <tbody>
    {{ $cl := . }}
    {{ range .Rows }}
    <tr>
        <td><a href="{{ $cl.ChangeURL . }}">{{ .Label }}</a></td>
        <td>{{ .Address }}</td>
        <td>{{ .Longitude }}</td>
        <td>{{ .Latitude }}</td>
        <td>{{ .CreatedAt.Format "2006-01-02 15:04" }}</td>
    </tr>
    {{ else }}
    <tr><td colspan="5">No locations.</td></tr>
    {{ end }}
    </tbody>
</table>
<p>
    {{ if .HasPrev }}<a href="{{ .PageURL (dec .Page) }}">previous</a>{{ end }}
    Page {{ .Page }} of {{ .NumPages }} ({{ .Total }} locations)
    {{ if .HasNext }}<a href="{{ .PageURL (inc .Page) }}">next</a>{{ end }}
</p>
{{ end }}
{{ template "footer" . }}{{ end }}
`

var formTemplate = `
{{ define "form" }}
{{ with .Response }}
<h2>{{ .Title }}</h2>
<form method="post" action="{{ .Action }}">
    {{ $errs := .Errors }}
    {{ $ro := .ReadOnly }}
    <p>
        <label for="id_name">Name</label>
        <input id="id_name" type="text" name="name" value="{{ .Form.Name }}"{{ if $ro }} disabled{{ end }}>
        {{ with index $errs "name" }}<span class="errorlist">{{ . }}</span>{{ end }}
    </p>
    <p>
        <label for="id_address">Address</label>
        <input id="id_address" type="text" name="address" value="{{ .Form.Address }}"{{ if $ro }} disabled{{ end }}>
        {{ with index $errs "address" }}<span class="errorlist">{{ . }}</span>{{ end }}
    </p>
    <p>
        <label for="id_lon">Longitude</label>
        <input id="id_lon" type="text" name="lon" value="{{ .Form.Lon }}"{{ if $ro }} disabled{{ end }}>
        {{ with index $errs "lon" }}<span class="errorlist">{{ . }}</span>{{ end }}
    </p>
    <p>
        <label for="id_lat">Latitude</label>
        <input id="id_lat" type="text" name="lat" value="{{ .Form.Lat }}"{{ if $ro }} disabled{{ end }}>
        {{ with index $errs "lat" }}<span class="errorlist">{{ . }}</span>{{ end }}
    </p>
    {{ if not $ro }}<input type="submit" value="Save">{{ end }}
    <a href="{{ .BasePath }}">Back to list</a>
</form>
{{ end }}
{{ template "map" . }}
{{ end }}

{{ define "add_form" }}{{ template "header" . }}{{ template "form" . }}{{ template "footer" . }}{{ end }}

{{ define "change_form" }}{{ template "header" . }}{{ template "form" . }}{{ template "footer" . }}{{ end }}
`

var errorTemplate = `
{{ define "error" }}{{ template "header" . }}
<h2>{{ .Title }}</h2>
<p>{{ .Message }}</p>
{{ template "footer" . }}{{ end }}
`
