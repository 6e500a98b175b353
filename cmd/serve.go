package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort   int
	serveOutDir string
	serveInDir  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the generated map and run history over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST"},
		}))

		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Get("/map", func(w http.ResponseWriter, req *http.Request) {
			http.ServeFile(w, req, filepath.Join(serveOutDir, MapFileName))
		})

		r.Get("/outputs.zip", func(w http.ResponseWriter, req *http.Request) {
			http.ServeFile(w, req, filepath.Join(serveOutDir, BundleFileName))
		})

		r.Get("/runs", func(w http.ResponseWriter, req *http.Request) {
			st, err := initStore(req.Context())
			if err != nil {
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
				return
			}
			defer st.Close() //nolint:errcheck

			runs, err := st.ListRuns(req.Context(), 50)
			if err != nil {
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
				return
			}
			writeJSON(w, http.StatusOK, runs)
		})

		r.Post("/clean", func(w http.ResponseWriter, req *http.Request) {
			var body struct {
				InDir string `json:"in_dir"`
			}
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
				return
			}
			inDir := body.InDir
			if inDir == "" {
				inDir = serveInDir
			}
			if inDir == "" {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "in_dir is required"})
				return
			}

			inputs, err := collectInputs("", inDir)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}

			summaries, err := cleanAll(req.Context(), inputs, serveOutDir)
			if err != nil {
				zap.L().Error("clean request failed", zap.Error(err))
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
				return
			}
			writeJSON(w, http.StatusOK, summaries)
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	serveCmd.Flags().StringVar(&serveOutDir, "outdir", "saida", "directory served and written to")
	serveCmd.Flags().StringVar(&serveInDir, "in-dir", "dados", "default input directory for /clean")
	rootCmd.AddCommand(serveCmd)
}
