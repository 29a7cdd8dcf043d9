package app

import (
	"context"
	"fmt"
	"net/http"

	"catalogo-tienda/app/controller"
	"catalogo-tienda/app/router"
	"catalogo-tienda/config"
	"catalogo-tienda/db"
	"catalogo-tienda/logx"
	"catalogo-tienda/repository"
	"catalogo-tienda/service"
	"catalogo-tienda/storage"
)

// App is the wired HTTP service
type App struct {
	Handler http.Handler
	closers []func() error
}

// Close releases the database, Redis and page store resources
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Initialize initializes the application. The database, Drive and Redis are
// optional: without a database only POST /admin/catalog works, without
// Drive drive:// images become placeholders, and without Redis PNG pages
// are kept in memory.
func Initialize(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	defaults, err := config.LoadSettings(cfg.SettingsFile)
	if err != nil {
		return nil, err
	}

	var products repository.ProductRepositoryInterface
	var store repository.StoreRepositoryInterface
	if cfg.DatabaseURL != "" {
		if err := db.InitDB(cfg.DatabaseURL); err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		a.closers = append(a.closers, db.CloseDB)
		products = repository.NewProductRepository(db.DB)
		store = repository.NewStoreRepository(db.DB)
	} else {
		logx.Warn().Msg("⚠️  CATALOG_DATABASE_URL not set, GET /admin/catalog is disabled")
	}

	var drive service.DriveOpener
	if cfg.GoogleCredsPath != "" {
		driveService, err := service.NewDriveService(ctx, cfg.GoogleCredsPath)
		if err != nil {
			a.Close()
			return nil, err
		}
		drive = driveService
	}

	fetcher := service.NewSourceFetcher(&http.Client{}, cfg.BaseURL, cfg.Images.MaxBytes, drive)
	preloader := service.NewImagePreloader(fetcher,
		service.NewImageOptimizer(cfg.Images.MaxDimension, cfg.Images.JPEGQuality),
		service.WithWorkers(cfg.Images.Workers),
		service.WithFetchTimeout(cfg.Images.FetchTimeout),
	)
	catalogService := service.NewCatalogService(preloader)

	var pages storage.PageStore
	if cfg.RedisURL != "" {
		client, err := storage.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		pages = storage.NewRedisStore(client, storage.DefaultPageTTL)
	} else {
		memory := storage.NewMemoryStore(storage.DefaultPageTTL)
		a.closers = append(a.closers, func() error { memory.Close(); return nil })
		pages = memory
	}

	controllers := &router.Controllers{
		Catalog: controller.NewCatalogController(
			catalogService,
			products,
			store,
			service.NewChromePageExporter(cfg.ChromePath),
			pages,
			defaults,
		),
	}
	a.Handler = router.New(controllers)
	return a, nil
}
