package main

import (
	"context"
	"fmt"

	"github.com/rogerio-castellano/inventory-sheets/internal/config"
	"github.com/rogerio-castellano/inventory-sheets/internal/db"
	"github.com/rogerio-castellano/inventory-sheets/internal/rowstore"
)

// openStore opens the configured backend and makes sure every table exists.
func openStore(ctx context.Context, cfg config.Config) (rowstore.Store, error) {
	var (
		store rowstore.Store
		err   error
	)
	switch cfg.StoreDriver {
	case config.DriverMemory:
		store = rowstore.NewMemoryStore()
	case config.DriverXLSX:
		store, err = rowstore.OpenXLSXStore(cfg.XLSXPath)
	case config.DriverPostgres:
		database, derr := db.Connect(ctx, cfg.DatabaseURL)
		if derr != nil {
			return nil, derr
		}
		store = rowstore.NewPostgresStore(database)
	default:
		err = fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	if err != nil {
		return nil, err
	}

	if err := rowstore.Provision(ctx, store); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("provision tables: %w", err)
	}
	return store, nil
}
