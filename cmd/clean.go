package main

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aerodados/aeromapa/internal/coords"
	"github.com/aerodados/aeromapa/internal/dataset"
	"github.com/aerodados/aeromapa/internal/export"
	"github.com/aerodados/aeromapa/internal/pipeline"
	"github.com/aerodados/aeromapa/internal/table"
	"github.com/aerodados/aeromapa/internal/webmap"
)

var (
	cleanIn          string
	cleanInDir       string
	cleanOutDir      string
	cleanSep         string
	cleanEncoding    string
	cleanLatCol      string
	cleanLonCol      string
	cleanConcurrency int
	cleanNoMap       bool
	cleanNoShapefile bool
	cleanNoZip       bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean coordinate columns and export map-ready files",
	Long:  "Reads one file or a directory of CSV/XLSX files, normalizes the coordinate columns, and writes cleaned CSVs, shapefiles, GeoJSON, a combined HTML map, and a zip bundle.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		inputs, err := collectInputs(cleanIn, cleanInDir)
		if err != nil {
			return err
		}

		_, err = cleanAll(ctx, inputs, cleanOutDir)
		return err
	},
}

// cleanAll runs the whole pipeline over inputs into outdir and returns the
// per-file summaries keyed by dataset.
func cleanAll(ctx context.Context, inputs []string, outdir string) (map[string]pipeline.Summary, error) {
	if err := os.MkdirAll(outdir, 0o755); err != nil {
		return nil, eris.Wrap(err, "create output directory")
	}

	cleaner := coords.NewCleaner(cfg.Bounds.Bounds(), cfg.Clean.MaxScaleExponent)

	var (
		layers    []webmap.Layer
		outputs   []string
		summaries = make(map[string]pipeline.Summary, len(inputs))
	)
	for _, in := range inputs {
		layer, summary, files, err := processFile(ctx, in, cleaner, outdir)
		if err != nil {
			return nil, eris.Wrapf(err, "clean %s", filepath.Base(in))
		}
		layers = append(layers, layer)
		outputs = append(outputs, files...)
		summaries[layer.Config.Key] = summary
	}

	if !cleanNoMap && len(layers) > 0 {
		mapPath := filepath.Join(outdir, MapFileName)
		settings := webmap.Settings{
			CenterLat: cfg.Map.CenterLat,
			CenterLon: cfg.Map.CenterLon,
			Zoom:      cfg.Map.Zoom,
		}
		if err := webmap.WriteMapWith(layers, mapPath, settings); err != nil {
			return nil, err
		}
		outputs = append(outputs, mapPath)
		zap.L().Info("map written", zap.String("path", mapPath))
	}

	if !cleanNoZip && len(outputs) > 0 {
		zipPath := filepath.Join(outdir, BundleFileName)
		if err := zipFiles(zipPath, outputs); err != nil {
			return nil, err
		}
		zap.L().Info("bundle written", zap.String("path", zipPath))
	}

	return summaries, nil
}

// collectInputs resolves a single file or an input directory into an
// ordered file list.
func collectInputs(in, inDir string) ([]string, error) {
	if in != "" && inDir != "" {
		return nil, eris.New("--in and --in-dir are mutually exclusive")
	}
	if in != "" {
		return []string{in}, nil
	}
	if inDir == "" {
		return nil, eris.New("either --in or --in-dir is required")
	}

	entries, err := os.ReadDir(inDir)
	if err != nil {
		return nil, eris.Wrap(err, "read input directory")
	}
	var inputs []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".csv", ".xlsx":
			inputs = append(inputs, filepath.Join(inDir, e.Name()))
		}
	}
	sort.Strings(inputs)
	if len(inputs) == 0 {
		return nil, eris.Errorf("no CSV or XLSX files in %s", inDir)
	}
	return inputs, nil
}

// Canonical output names inside the output directory.
const (
	MapFileName    = "mapa_aerodromos.html"
	BundleFileName = "aeromapa_outputs.zip"
)

// processFile cleans a single input and writes its per-file outputs. It
// returns the map layer, the run summary, and the paths of the files it
// wrote.
func processFile(ctx context.Context, path string, cleaner *coords.Cleaner, outdir string) (webmap.Layer, pipeline.Summary, []string, error) {
	tbl, err := readInput(path)
	if err != nil {
		return webmap.Layer{}, pipeline.Summary{}, nil, err
	}

	ds, ok := dataset.Match(path)
	if !ok {
		ds = dataset.Generic(path)
	}

	ropts := cfg.Resolver.Options()
	opts := pipeline.Options{
		LatColumn:   cleanLatCol,
		LonColumn:   cleanLonCol,
		Concurrency: cleanConcurrency,
		Resolver:    &ropts,
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = cfg.Clean.Concurrency
	}

	_, summary, err := pipeline.CleanTable(ctx, tbl, cleaner, opts)
	if err != nil {
		return webmap.Layer{}, pipeline.Summary{}, nil, err
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var outputs []string

	csvPath := filepath.Join(outdir, base+"_clean.csv")
	if err := table.WriteCSV(tbl, csvPath, sepRune()); err != nil {
		return webmap.Layer{}, pipeline.Summary{}, nil, err
	}
	outputs = append(outputs, csvPath)

	if !cleanNoShapefile && summary.OK > 0 {
		shpPath := filepath.Join(outdir, base+".shp")
		if err := export.WriteShapefile(tbl, shpPath); err != nil {
			return webmap.Layer{}, pipeline.Summary{}, nil, err
		}
		outputs = append(outputs, shpPath,
			strings.TrimSuffix(shpPath, ".shp")+".shx",
			strings.TrimSuffix(shpPath, ".shp")+".dbf",
		)

		geoPath := filepath.Join(outdir, base+".geojson")
		if err := export.WriteGeoJSON(tbl, geoPath); err != nil {
			return webmap.Layer{}, pipeline.Summary{}, nil, err
		}
		outputs = append(outputs, geoPath)
	}

	persistRun(ctx, ds.Key, summary)

	zap.L().Info("file cleaned",
		zap.String("file", filepath.Base(path)),
		zap.String("dataset", ds.Key),
		zap.Int("rows", summary.Total),
		zap.Int("ok", summary.OK),
	)

	return webmap.Layer{Config: ds, Table: tbl}, summary, outputs, nil
}

func readInput(path string) (*table.Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return table.ReadXLSX(path, table.XLSXOptions{})
	}
	enc := cleanEncoding
	if enc == "" {
		enc = cfg.IO.Encoding
	}
	return table.ReadCSV(path, table.CSVOptions{
		Delimiter: sepRune(),
		Encoding:  enc,
	})
}

func sepRune() rune {
	sep := cleanSep
	if sep == "" {
		sep = cfg.IO.Separator
	}
	if sep == "" {
		return 0
	}
	return []rune(sep)[0]
}

// persistRun records the summary when a store is configured. Run history is
// auxiliary: a broken store logs a warning but never fails the cleaning.
func persistRun(ctx context.Context, ds string, summary pipeline.Summary) {
	st, err := initStore(ctx)
	if err != nil {
		zap.L().Warn("store unavailable, skipping run history", zap.Error(err))
		return
	}
	defer st.Close() //nolint:errcheck

	if _, err := st.CreateRun(ctx, ds, summary); err != nil {
		zap.L().Warn("record run", zap.Error(err))
	}
}

func zipFiles(path string, files []string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "create zip")
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, file := range files {
		if err := addToZip(zw, file); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return eris.Wrap(err, "close zip")
	}
	return nil
}

func addToZip(zw *zip.Writer, file string) error {
	src, err := os.Open(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return eris.Wrapf(err, "open %s", file)
	}
	defer src.Close()

	w, err := zw.Create(filepath.Base(file))
	if err != nil {
		return eris.Wrap(err, "zip entry")
	}
	if _, err := io.Copy(w, src); err != nil {
		return eris.Wrapf(err, "zip %s", file)
	}
	return nil
}

func init() {
	cleanCmd.Flags().StringVar(&cleanIn, "in", "", "input CSV or XLSX file")
	cleanCmd.Flags().StringVar(&cleanInDir, "in-dir", "", "directory of input files")
	cleanCmd.Flags().StringVar(&cleanOutDir, "outdir", "saida", "output directory")
	cleanCmd.Flags().StringVar(&cleanSep, "sep", "", "CSV delimiter (default: sniffed)")
	cleanCmd.Flags().StringVar(&cleanEncoding, "encoding", "", "input encoding (utf-8, latin1, cp1252; default: detected)")
	cleanCmd.Flags().StringVar(&cleanLatCol, "lat-col", "", "latitude column name (default: discovered)")
	cleanCmd.Flags().StringVar(&cleanLonCol, "lon-col", "", "longitude column name (default: discovered)")
	cleanCmd.Flags().IntVar(&cleanConcurrency, "concurrency", 0, "cleaning workers (default from config)")
	cleanCmd.Flags().BoolVar(&cleanNoMap, "no-map", false, "skip the combined HTML map")
	cleanCmd.Flags().BoolVar(&cleanNoShapefile, "no-shapefile", false, "skip shapefile and GeoJSON outputs")
	cleanCmd.Flags().BoolVar(&cleanNoZip, "no-zip", false, "skip the zip bundle")
	rootCmd.AddCommand(cleanCmd)
}
