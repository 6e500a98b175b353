// Package store persists cleaning run summaries for history and the serve
// endpoint. Two backends exist: SQLite for single-user local use (the
// default) and Postgres for shared deployments.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/aerodados/aeromapa/internal/pipeline"
)

// Run is one recorded cleaning pass over one dataset file.
type Run struct {
	ID        string           `json:"id"`
	Dataset   string           `json:"dataset"`
	Summary   pipeline.Summary `json:"summary"`
	CreatedAt time.Time        `json:"created_at"`
}

// Store records and lists cleaning runs.
type Store interface {
	CreateRun(ctx context.Context, dataset string, summary pipeline.Summary) (*Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Open builds a store for the configured driver and runs migrations.
func Open(ctx context.Context, driver, dsn string) (Store, error) {
	var (
		s   Store
		err error
	)
	switch driver {
	case "", "sqlite":
		s, err = NewSQLite(dsn)
	case "postgres":
		s, err = NewPostgres(ctx, dsn)
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}
