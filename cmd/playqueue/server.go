package main

import (
	"context"
	"database/sql"
	"net/http"

	"playqueue/internal/app/queues"
	"playqueue/internal/app/settings"
	"playqueue/internal/csync"
	"playqueue/internal/http/middleware"
	"playqueue/internal/httpapi"
	"playqueue/internal/store"
	"playqueue/internal/store/memory"
	"playqueue/shared/go/config"
	sharedmw "playqueue/shared/go/middleware"
)

type catalogStore interface {
	queues.TrackCatalog
	trackSeeder
}

// dependencies holds the storage backends selected by configuration.
type dependencies struct {
	db       *sql.DB
	queue    queues.Store
	settings settings.Store
	catalog  catalogStore
}

func newDependencies(ctx context.Context, cfg *config.Config) (*dependencies, error) {
	deps := &dependencies{}

	switch cfg.Queue.Store {
	case config.StoreMemory:
		deps.queue = memory.NewQueueRepository()
		deps.settings = memory.NewSettingsRepository()
		deps.catalog = memory.NewCatalog()
	default:
		if cfg.Queue.MigrateOnStart {
			if err := migrateDatabase(ctx, cfg.Database.URL); err != nil {
				return nil, err
			}
		}

		db, err := openDatabase(ctx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		dataStore := store.New(db)
		deps.db = db
		deps.queue = dataStore
		deps.settings = dataStore
		deps.catalog = store.NewCatalog(db)
	}

	if cfg.Queue.SeedCatalog {
		if err := bootstrapCatalog(ctx, deps.db, deps.catalog); err != nil {
			deps.Close()
			return nil, err
		}
	}

	return deps, nil
}

func (d *dependencies) Close() {
	if d.db != nil {
		_ = d.db.Close()
	}
}

func newHTTPHandler(cfg *config.Config, deps *dependencies) http.Handler {
	locks := csync.NewKeyedRWMutex[string]()

	manager := queues.NewManager(deps.queue, deps.catalog, locks)
	queueSvc := queues.New(manager, settings.New(deps.settings, locks))

	api := httpapi.New(queueSvc, middleware.NewAuthenticator(cfg.Security.JWTSecret))

	var handler http.Handler = api.Routes()
	handler = middleware.CORS(cfg.CORS.AllowedOrigins)(handler)
	handler = sharedmw.RequestLogging()(handler)
	handler = sharedmw.Recovery()(handler)
	return handler
}
