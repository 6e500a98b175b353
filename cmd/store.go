package main

import (
	"context"

	"github.com/aerodados/aeromapa/internal/store"
)

func initStore(ctx context.Context) (store.Store, error) {
	return store.Open(ctx, cfg.Store.Driver, cfg.Store.DSN)
}
