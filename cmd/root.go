package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aerodados/aeromapa/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "aeromapa",
	Short: "Coordinate cleaning and mapping for Brazilian aerodrome registries",
	Long:  "Normalizes malformed latitude/longitude columns in ANAC aerodrome exports, validates them against the Brazil bounding box, and emits cleaned CSVs, shapefiles, GeoJSON, and an interactive map.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
