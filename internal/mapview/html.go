package mapview

import (
	"html/template"
	"io"
)

// RenderHTML writes the view as a self-contained Leaflet page with a
// markercluster layer, the browser-side equivalent of the JSON document.
func RenderHTML(w io.Writer, view View) error {
	return pageTemplate.Execute(w, view)
}

var pageTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Nearby Addresses</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<link rel="stylesheet" href="https://unpkg.com/leaflet.markercluster@1.5.3/dist/MarkerCluster.css">
<link rel="stylesheet" href="https://unpkg.com/leaflet.markercluster@1.5.3/dist/MarkerCluster.Default.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<script src="https://unpkg.com/leaflet.markercluster@1.5.3/dist/leaflet.markercluster.js"></script>
<style>
  html, body, #map { height: 100%; margin: 0; }
  .warning { position: absolute; top: 10px; right: 10px; z-index: 1000;
             background: #fff3cd; padding: 6px 12px; border: 1px solid #ffe69c; }
</style>
</head>
<body>
{{if .Warning}}<div class="warning">{{.Warning}}</div>{{end}}
<div id="map"></div>
<script>
const view = {{.}};

const map = L.map("map").setView([view.center.lat, view.center.lng], view.zoom);
L.tileLayer(view.tiles.url, { attribution: view.tiles.attribution }).addTo(map);

L.marker([view.primary.coord.lat, view.primary.coord.lng])
  .bindPopup("<b>Main Address:</b><br>" + view.primary.popup)
  .addTo(map);

L.circle([view.circle.center.lat, view.circle.center.lng], {
  radius: view.circle.radiusMeters,
  color: view.circle.color,
  fill: view.circle.fill,
}).bindPopup("Search Radius").addTo(map);

const cluster = L.markerClusterGroup();
for (const m of view.cluster) {
  cluster.addLayer(L.marker([m.coord.lat, m.coord.lng]).bindPopup(m.popup));
}
map.addLayer(cluster);
</script>
</body>
</html>
`))
