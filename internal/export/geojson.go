package export

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/aerodados/aeromapa/internal/table"
)

// WriteGeoJSON writes the ok rows of t as a GeoJSON FeatureCollection, one
// point feature per row with all table columns as string properties.
func WriteGeoJSON(t *table.Table, path string) error {
	idxs := okRows(t)
	if len(idxs) == 0 {
		return eris.Errorf("export: no valid records for %s", path)
	}

	fc := geojson.FeatureCollection{}
	for _, i := range idxs {
		lat, lon, ok := rowPoint(t, i)
		if !ok {
			continue
		}

		props := make(map[string]interface{}, len(t.Columns))
		for _, col := range t.Columns {
			if v := t.Cell(i, col); v != "" {
				props[col] = v
			}
		}

		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry:   geom.NewPointFlat(geom.XY, []float64{lon, lat}).SetSRID(4326),
			Properties: props,
		})
	}

	data, err := json.Marshal(&fc)
	if err != nil {
		return eris.Wrap(err, "export: marshal geojson")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "export: write %s", path)
	}

	zap.L().Info("export: geojson written",
		zap.String("path", path),
		zap.Int("features", len(fc.Features)),
	)
	return nil
}
