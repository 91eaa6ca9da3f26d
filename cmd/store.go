package main

import (
	"github.com/rotisserie/eris"

	"github.com/farewatch/farewatch-cli/internal/config"
	"github.com/farewatch/farewatch-cli/internal/history"
	"github.com/farewatch/farewatch-cli/internal/model"
)

func initStore() (history.Store, error) {
	switch cfg.Store.Driver {
	case "json", "":
		path := cfg.Store.Path
		if path == "" {
			path = "price_history.json"
		}
		return history.NewJSON(path), nil
	case "sqlite":
		dsn := cfg.Store.Path
		if dsn == "" {
			dsn = "farewatch.db"
		}
		return history.NewSQLite(dsn)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

func loadRoutes() ([]model.RouteTask, error) {
	return config.LoadRoutes(cfg.Routes.File)
}
