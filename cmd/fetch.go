package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/aerodados/aeromapa/internal/fetcher"
)

var fetchDir string

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the current ANAC aerodrome registries",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		f := fetcher.New(fetcher.Options{
			UserAgent:  cfg.Fetch.UserAgent,
			Timeout:    time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
			MaxRetries: cfg.Fetch.MaxRetries,
			RateLimit:  rate.Limit(cfg.Fetch.RatePerSec),
		})

		paths, err := f.Download(ctx, fetcher.DefaultSources(), fetchDir)
		if err != nil {
			return err
		}

		zap.L().Info("fetch complete", zap.Int("files", len(paths)), zap.Strings("paths", paths))
		return nil
	},
}

func init() {
	fetchCmd.Flags().StringVar(&fetchDir, "outdir", "dados", "download directory")
	rootCmd.AddCommand(fetchCmd)
}
