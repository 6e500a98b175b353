// Package pipeline wires column resolution, coordinate cleaning, and result
// assembly for whole tables.
package pipeline

import (
	"context"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aerodados/aeromapa/internal/column"
	"github.com/aerodados/aeromapa/internal/coords"
	"github.com/aerodados/aeromapa/internal/table"
)

// Added output column names. Downstream consumers (shapefile, geojson, map)
// select rows on StatusColumn == "ok".
const (
	LatColumn    = "LAT_DEC"
	LonColumn    = "LON_DEC"
	StatusColumn = "STATUS"
)

// LatCandidates and LonCandidates are the priority-ordered label lists used
// to discover coordinate columns when the caller does not name them.
var (
	LatCandidates = []string{"latgeopoint", "latitude", "lat", "latgeo"}
	LonCandidates = []string{"longeopoint", "longgeopoint", "longitude", "lon", "lng", "long", "longeo"}
)

// Options configures one table cleaning pass.
type Options struct {
	LatColumn   string // explicit override; discovered when empty
	LonColumn   string
	Concurrency int             // workers for the per-row cleaning; 1 when <= 0
	Resolver    *column.Options // fuzzy-match tuning; defaults when nil
}

// Summary tallies the outcome of one table for observability.
type Summary struct {
	Total     int            `json:"total"`
	OK        int            `json:"ok"`
	Swapped   int            `json:"swapped"`
	Scaled    int            `json:"scaled"`
	ByStatus  map[string]int `json:"by_status"`
	LatColumn string         `json:"lat_column"`
	LonColumn string         `json:"lon_column"`
}

// ResolveCoordinateColumns finds the latitude and longitude columns of a
// table, honoring explicit overrides. Failing to find either is the one hard
// error this pipeline owns: without coordinate columns the table cannot be
// processed at all.
func ResolveCoordinateColumns(t *table.Table, opts Options) (latCol, lonCol string, err error) {
	ropts := column.DefaultOptions()
	if opts.Resolver != nil {
		ropts = *opts.Resolver
	}
	r := column.NewResolver(t.Columns, ropts)

	latCol = opts.LatColumn
	if latCol == "" {
		latCol, _ = r.ResolveFirst(LatCandidates)
	}
	lonCol = opts.LonColumn
	if lonCol == "" {
		lonCol, _ = r.ResolveFirst(LonCandidates)
	}

	if latCol == "" || lonCol == "" {
		return "", "", eris.New("pipeline: could not find latitude/longitude columns; use --lat-col and --lon-col")
	}
	return latCol, lonCol, nil
}

// CleanTable cleans every row of t, appends the LAT_DEC, LON_DEC and STATUS
// columns in place, and returns the per-row results plus a summary. Rows are
// processed concurrently; each result is written back by row index, so output
// order always matches input order.
func CleanTable(ctx context.Context, t *table.Table, cleaner *coords.Cleaner, opts Options) ([]coords.Result, Summary, error) {
	latCol, lonCol, err := ResolveCoordinateColumns(t, opts)
	if err != nil {
		return nil, Summary{}, err
	}
	zap.L().Info("pipeline: coordinate columns resolved",
		zap.String("lat", latCol),
		zap.String("lon", lonCol),
	)

	results := make([]coords.Result, t.Len())

	g, _ := errgroup.WithContext(ctx)
	workers := opts.Concurrency
	if workers <= 0 {
		workers = 1
	}
	g.SetLimit(workers)

	for i := 0; i < t.Len(); i++ {
		g.Go(func() error {
			results[i] = cleaner.Clean(t.Cell(i, latCol), t.Cell(i, lonCol))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Summary{}, eris.Wrap(err, "pipeline: clean rows")
	}

	lats := make([]string, t.Len())
	lons := make([]string, t.Len())
	statuses := make([]string, t.Len())
	summary := Summary{
		Total:     t.Len(),
		ByStatus:  make(map[string]int),
		LatColumn: latCol,
		LonColumn: lonCol,
	}
	for i, res := range results {
		summary.ByStatus[string(res.Status)]++
		if res.OK() {
			summary.OK++
			if res.Swapped {
				summary.Swapped++
			}
			if res.ScaleLat > 0 || res.ScaleLon > 0 {
				summary.Scaled++
			}
			lats[i] = strconv.FormatFloat(res.Lat, 'f', -1, 64)
			lons[i] = strconv.FormatFloat(res.Lon, 'f', -1, 64)
		}
		statuses[i] = string(res.Status)
	}

	t.AddColumn(LatColumn, lats)
	t.AddColumn(LonColumn, lons)
	t.AddColumn(StatusColumn, statuses)

	zap.L().Info("pipeline: table cleaned",
		zap.Int("total", summary.Total),
		zap.Int("ok", summary.OK),
		zap.Int("swapped", summary.Swapped),
		zap.Int("scaled", summary.Scaled),
	)
	return results, summary, nil
}
