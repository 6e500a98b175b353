package webmap

import "html/template"

type pageData struct {
	Groups     template.JS
	HavePoints bool
	CenterLat  float64
	CenterLon  float64
	Zoom       int
	MinLat     float64
	MinLon     float64
	MaxLat     float64
	MaxLon     float64
}

var pageTemplate = template.Must(template.New("map").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Aeródromos</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/font-awesome/4.7.0/css/font-awesome.min.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>
html, body, #map { height: 100%; margin: 0; }
.plane-icon { position: relative; width: 22px; height: 22px; }
.plane-icon i { position: absolute; left: 0; top: 0; font-size: 20px; }
#filter-sidebar {
  position: absolute; top: 10px; left: 10px; z-index: 9999;
  background: #ffffff; padding: 12px 14px;
  border: 1px solid #d0d0d0; border-radius: 8px;
  box-shadow: 0 2px 8px rgba(0, 0, 0, 0.15);
  width: 230px; font-family: "Segoe UI", Arial, sans-serif; font-size: 13px;
}
#filter-sidebar h4 { margin: 0 0 8px 0; font-size: 14px; }
#filter-sidebar label {
  display: flex; align-items: center; gap: 8px; margin: 6px 0; cursor: pointer;
}
#filter-sidebar .swatch {
  width: 12px; height: 12px; border-radius: 50%;
  border: 1px solid #555; flex: 0 0 12px;
}
</style>
</head>
<body>
<div id="map"></div>
<div id="filter-sidebar"><h4>Filtros</h4></div>
<script>
var groups = {{.Groups}} || [];

var map = L.map('map', { zoomControl: true }).setView([{{.CenterLat}}, {{.CenterLon}}], {{.Zoom}});
L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
  maxZoom: 19,
  attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);

function planeIcon(color, showX) {
  var html = "<div class='plane-icon'><i class='fa fa-plane' style='color:" + color + "'></i>";
  if (showX) {
    html += "<i class='fa fa-times' style='color:#D32F2F'></i>";
  }
  html += "</div>";
  return L.divIcon({ html: html, className: '', iconSize: [22, 22], iconAnchor: [11, 11] });
}

var sidebar = document.getElementById('filter-sidebar');
groups.forEach(function (g) {
  var layer = L.featureGroup();
  (g.markers || []).forEach(function (m) {
    L.marker([m.lat, m.lon], { icon: planeIcon(m.color, m.x) })
      .bindPopup(m.popup, { maxWidth: 350 })
      .addTo(layer);
  });
  layer.addTo(map);

  var label = document.createElement('label');
  var cb = document.createElement('input');
  cb.type = 'checkbox';
  cb.checked = true;
  cb.addEventListener('change', function () {
    if (cb.checked) { map.addLayer(layer); } else { map.removeLayer(layer); }
  });
  var swatch = document.createElement('span');
  swatch.className = 'swatch';
  swatch.style.background = g.color;
  label.appendChild(cb);
  label.appendChild(swatch);
  label.appendChild(document.createTextNode(g.label));
  sidebar.appendChild(label);
});

{{if .HavePoints}}
map.fitBounds([[{{.MinLat}}, {{.MinLon}}], [{{.MaxLat}}, {{.MaxLon}}]]);
{{end}}
</script>
</body>
</html>
`))
