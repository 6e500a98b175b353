// Package export writes cleaned aerodrome tables to geographic vector
// formats. Only rows whose status is "ok" carry usable geometry; everything
// else is filtered out here.
package export

import (
	"strconv"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/aerodados/aeromapa/internal/coords"
	"github.com/aerodados/aeromapa/internal/pipeline"
	"github.com/aerodados/aeromapa/internal/table"
)

// dbfFieldLen is the attribute value width; DBF strings are fixed-size.
const dbfFieldLen = 254

// WriteShapefile writes the ok rows of t as a point shapefile with every
// table column as a DBF string attribute. It fails when no row is valid.
func WriteShapefile(t *table.Table, path string) error {
	if !strings.HasSuffix(strings.ToLower(path), ".shp") {
		path += ".shp"
	}

	idxs := okRows(t)
	if len(idxs) == 0 {
		return eris.Errorf("export: no valid records for %s", path)
	}

	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		return eris.Wrapf(err, "export: create shapefile %s", path)
	}
	defer w.Close()

	fields := make([]shp.Field, len(t.Columns))
	for i := range t.Columns {
		fields[i] = shp.StringField(dbfFieldName(t.Columns, i), dbfFieldLen)
	}
	w.SetFields(fields)

	// The attribute record index must track the geometry index assigned by
	// Write, so it only advances on rows that were actually written.
	written := 0
	for _, i := range idxs {
		lat, lon, ok := rowPoint(t, i)
		if !ok {
			continue
		}
		w.Write(&shp.Point{X: lon, Y: lat})
		for f, col := range t.Columns {
			if err := w.WriteAttribute(written, f, t.Cell(i, col)); err != nil {
				return eris.Wrapf(err, "export: write attribute %s", col)
			}
		}
		written++
	}

	zap.L().Info("export: shapefile written",
		zap.String("path", path),
		zap.Int("points", written),
	)
	return nil
}

// dbfFieldName truncates a column name to the 10-character DBF limit and
// disambiguates collisions among earlier columns with a numeric suffix.
func dbfFieldName(columns []string, idx int) string {
	name := truncate10(columns[idx])
	for prev := 0; prev < idx; prev++ {
		if truncate10(columns[prev]) == name {
			suffix := strconv.Itoa(idx)
			if len(name)+len(suffix) > 10 {
				name = name[:10-len(suffix)]
			}
			return name + suffix
		}
	}
	return name
}

func truncate10(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

// okRows returns the indexes of rows with status ok.
func okRows(t *table.Table) []int {
	var idxs []int
	for i := 0; i < t.Len(); i++ {
		if t.Cell(i, pipeline.StatusColumn) == string(coords.StatusOK) {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// rowPoint reads the reconciled coordinate of one row.
func rowPoint(t *table.Table, i int) (lat, lon float64, ok bool) {
	lat, errLat := strconv.ParseFloat(t.Cell(i, pipeline.LatColumn), 64)
	lon, errLon := strconv.ParseFloat(t.Cell(i, pipeline.LonColumn), 64)
	if errLat != nil || errLon != nil {
		return 0, 0, false
	}
	return lat, lon, true
}
