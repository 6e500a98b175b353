// Package webmap renders cleaned aerodrome tables as a self-contained
// interactive HTML map.
package webmap

import (
	"encoding/json"
	"fmt"
	"html"
	"html/template"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/aerodados/aeromapa/internal/column"
	"github.com/aerodados/aeromapa/internal/dataset"
	"github.com/aerodados/aeromapa/internal/pipeline"
	"github.com/aerodados/aeromapa/internal/table"
)

// BrazilCenter is the initial viewpoint when there is nothing to plot.
var BrazilCenter = [2]float64{-14.235, -51.925}

// Settings controls the initial viewpoint. The zero value falls back to the
// Brazil-wide view.
type Settings struct {
	CenterLat float64
	CenterLon float64
	Zoom      int
}

func (s Settings) withDefaults() Settings {
	if s.CenterLat == 0 && s.CenterLon == 0 {
		s.CenterLat, s.CenterLon = BrazilCenter[0], BrazilCenter[1]
	}
	if s.Zoom <= 0 {
		s.Zoom = 4
	}
	return s
}

// labelRenames maps normalized popup labels to their display names.
var labelRenames = map[string]string{
	column.Normalize("Nome"):         "Aeroporto",
	column.Normalize("UF"):           "Estado",
	column.Normalize("Superfície 1"): "Superfície",
}

var linkLabelNorm = column.Normalize("Link Portaria")

// Layer pairs a dataset config with its cleaned table.
type Layer struct {
	Config dataset.Config
	Table  *table.Table
}

// marker is one plotted point, serialized into the page script.
type marker struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Color string  `json:"color"`
	X     bool    `json:"x"`
	Popup string  `json:"popup"`
}

// group is one toggleable marker set with its sidebar entry.
type group struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Color   string   `json:"color"`
	Markers []marker `json:"markers"`
}

// WriteMap renders all layers into a single HTML file with the default
// viewpoint. Rows without an "ok" status are skipped; each dataset
// contributes a base group and an IFR group so night-operation aerodromes
// can be toggled separately.
func WriteMap(layers []Layer, path string) error {
	return WriteMapWith(layers, path, Settings{})
}

// WriteMapWith renders all layers into a single HTML file.
func WriteMapWith(layers []Layer, path string, settings Settings) error {
	settings = settings.withDefaults()
	var groups []group
	var minLat, minLon, maxLat, maxLon float64
	havePoints := false

	for _, layer := range layers {
		base := group{
			ID:    layer.Config.Key,
			Label: layer.Config.Label,
			Color: layer.Config.DefaultColor,
		}
		ifr := group{
			ID:    layer.Config.Key + "_ifr",
			Label: layer.Config.Label + " com IFR",
			Color: layer.Config.AltColor,
		}

		t := layer.Table
		resolver := column.NewResolver(t.Columns, column.DefaultOptions())
		fields := resolveFields(resolver, layer.Config.PopupFields)

		nightCol, _ := resolver.Resolve(layer.Config.NightOpsField)
		interdictedCol := ""
		if layer.Config.InterdictedField != "" {
			interdictedCol, _ = resolver.Resolve(layer.Config.InterdictedField)
		}

		for i := 0; i < t.Len(); i++ {
			lat, lon, ok := rowPoint(t, i)
			if !ok {
				continue
			}

			isIFR := nightCol != "" && HasVFRIFR(t.Cell(i, nightCol))
			showX := interdictedCol != "" && HasToken(t.Cell(i, interdictedCol), layer.Config.InterdictedToken)

			color := layer.Config.DefaultColor
			target := &base
			if isIFR {
				color = layer.Config.AltColor
				target = &ifr
			}

			target.Markers = append(target.Markers, marker{
				Lat:   lat,
				Lon:   lon,
				Color: color,
				X:     showX,
				Popup: buildPopup(t, i, fields),
			})

			if !havePoints {
				minLat, maxLat, minLon, maxLon = lat, lat, lon, lon
				havePoints = true
			} else {
				minLat, maxLat = minf(minLat, lat), maxf(maxLat, lat)
				minLon, maxLon = minf(minLon, lon), maxf(maxLon, lon)
			}
		}

		if len(base.Markers) == 0 && len(ifr.Markers) == 0 {
			zap.L().Warn("webmap: no valid points for dataset", zap.String("dataset", layer.Config.Label))
			continue
		}
		groups = append(groups, base, ifr)
	}

	if !havePoints {
		zap.L().Warn("webmap: no valid points to plot; centering on Brazil without markers")
	}

	groupsJSON, err := json.Marshal(groups)
	if err != nil {
		return eris.Wrap(err, "webmap: marshal groups")
	}

	data := pageData{
		Groups:     template.JS(groupsJSON),
		HavePoints: havePoints,
		CenterLat:  settings.CenterLat,
		CenterLon:  settings.CenterLon,
		Zoom:       settings.Zoom,
		MinLat:     minLat,
		MinLon:     minLon,
		MaxLat:     maxLat,
		MaxLon:     maxLon,
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "webmap: create %s", path)
	}
	defer f.Close()

	if err := pageTemplate.Execute(f, data); err != nil {
		return eris.Wrap(err, "webmap: render")
	}

	zap.L().Info("webmap: map written",
		zap.String("path", path),
		zap.Int("groups", len(groups)),
	)
	return nil
}

// resolvedField pairs a requested popup label with the actual column.
type resolvedField struct {
	label string
	col   string
}

func resolveFields(r *column.Resolver, labels []string) []resolvedField {
	var out []resolvedField
	for _, label := range labels {
		if col, ok := r.Resolve(label); ok {
			out = append(out, resolvedField{label: label, col: col})
		}
	}
	return out
}

// buildPopup renders the popup table for one row. Values are HTML-escaped;
// the "Link Portaria" field becomes a link instead of raw URL text.
func buildPopup(t *table.Table, row int, fields []resolvedField) string {
	var b strings.Builder
	b.WriteString("<table style='border-collapse:collapse; white-space:nowrap;'>")
	for _, f := range fields {
		val := FixText(t.Cell(row, f.col))
		if val == "" {
			continue
		}

		norm := column.Normalize(f.label)
		display := f.label
		if renamed, ok := labelRenames[norm]; ok {
			display = renamed
		}

		if norm == linkLabelNorm {
			fmt.Fprintf(&b,
				"<tr><th style='text-align:left;padding-right:6px'>%s</th>"+
					"<td><a href=\"%s\" target=\"_blank\" rel=\"noopener\" title=\"%s\">Abrir link</a></td></tr>",
				html.EscapeString(display), html.EscapeString(val), html.EscapeString(val))
			continue
		}
		fmt.Fprintf(&b,
			"<tr><th style='text-align:left;padding-right:6px'>%s</th><td>%s</td></tr>",
			html.EscapeString(display), html.EscapeString(val))
	}
	b.WriteString("</table>")
	return b.String()
}

func rowPoint(t *table.Table, i int) (lat, lon float64, ok bool) {
	if t.Cell(i, pipeline.StatusColumn) != "ok" {
		return 0, 0, false
	}
	var err error
	if lat, err = parseFloat(t.Cell(i, pipeline.LatColumn)); err != nil {
		return 0, 0, false
	}
	if lon, err = parseFloat(t.Cell(i, pipeline.LonColumn)); err != nil {
		return 0, 0, false
	}
	return lat, lon, true
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
