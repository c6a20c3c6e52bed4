package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/stackadvisor-backend/internal/data/db"
	"github.com/yungbote/stackadvisor-backend/internal/data/seed"
	httpserver "github.com/yungbote/stackadvisor-backend/internal/http"
	"github.com/yungbote/stackadvisor-backend/internal/observability"
	"github.com/yungbote/stackadvisor-backend/internal/platform/logger"
	"github.com/yungbote/stackadvisor-backend/internal/services"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Clients  Clients
	Services Services

	otelShutdown func(context.Context) error
}

// base is what every command needs: config, logger and a migrated database.
type base struct {
	log *logger.Logger
	cfg Config
	db  *gorm.DB
}

func newBase() (*base, error) {
	envErr := loadEnvFile()

	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if envErr != nil {
		log.Debug("No .env file loaded", "error", envErr)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)
	if err := cfg.Validate(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	theDB, err := db.Open(log, cfg.DB)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := db.Migrate(theDB, log); err != nil {
		_ = db.Close(theDB)
		log.Sync()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &base{log: log, cfg: cfg, db: theDB}, nil
}

func (b *base) close() {
	_ = db.Close(b.db)
	b.log.Sync()
}

func New(ctx context.Context) (*App, error) {
	b, err := newBase()
	if err != nil {
		return nil, err
	}
	log, cfg, theDB := b.log, b.cfg, b.db

	shutdown := observability.InitOTel(ctx, log, cfg.Otel)

	reposet := wireRepos(theDB, log)
	if cfg.SeedOnBoot {
		if _, err := seedCatalog(ctx, theDB, log, reposet); err != nil {
			_ = shutdown(ctx)
			b.close()
			return nil, err
		}
	}

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		_ = shutdown(ctx)
		b.close()
		return nil, err
	}

	serviceset := wireServices(theDB, log, cfg, reposet, clients)
	if cfg.SeedOnBoot {
		// the catalog may have changed under a warm cache
		if err := serviceset.Catalog.Invalidate(ctx); err != nil {
			log.Warn("catalog cache invalidation failed", "error", err)
		}
	}

	handlerset := wireHandlers(log, theDB, clients.Cache, serviceset)
	middleware := wireMiddleware(log, serviceset)
	router := wireRouter(log, cfg, handlerset, middleware)

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       router,
		Cfg:          cfg,
		Repos:        reposet,
		Clients:      clients,
		Services:     serviceset,
		otelShutdown: shutdown,
	}, nil
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	addr := ":" + a.Cfg.Port
	a.Log.Info("Server listening", "addr", addr)
	return httpserver.NewServer(a.Router).Run(ctx, addr, 10*time.Second)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	a.Clients.Close()
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.otelShutdown(ctx); err != nil && a.Log != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
	}
	if a.DB != nil {
		_ = db.Close(a.DB)
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}

// Migrate creates or updates the schema and exits.
func Migrate() error {
	b, err := newBase()
	if err != nil {
		return err
	}
	defer b.close()
	b.log.Info("Migration complete")
	return nil
}

// Seed upserts the embedded catalog and exits.
func Seed(ctx context.Context) error {
	b, err := newBase()
	if err != nil {
		return err
	}
	defer b.close()
	return seedAndInvalidate(ctx, b.db, b.log, b.cfg)
}

// seedAndInvalidate upserts the catalog and drops cached catalog reads so a
// running server sees the new rows without waiting for the TTL.
func seedAndInvalidate(ctx context.Context, theDB *gorm.DB, log *logger.Logger, cfg Config) error {
	reposet := wireRepos(theDB, log)
	res, err := seedCatalog(ctx, theDB, log, reposet)
	if err != nil {
		return err
	}

	cache, err := newCache(log, cfg)
	if err != nil {
		return err
	}
	if cache != nil {
		defer func() { _ = cache.Close() }()
		catalog := services.NewCatalogService(theDB, log, reposet.Technology, cache, cfg.CatalogCacheTTL)
		if err := catalog.Invalidate(ctx); err != nil {
			return fmt.Errorf("invalidate catalog cache: %w", err)
		}
	}
	log.Info("Seed complete", "categories", res.Categories, "technologies", res.Technologies, "tags", res.Tags)
	return nil
}

func seedCatalog(ctx context.Context, theDB *gorm.DB, log *logger.Logger, repos Repos) (seed.Result, error) {
	f, err := seed.DefaultCatalog()
	if err != nil {
		return seed.Result{}, fmt.Errorf("load catalog: %w", err)
	}
	res, err := seed.NewSeeder(theDB, log, repos.Category, repos.Technology, repos.Tag).Run(ctx, f)
	if err != nil {
		return seed.Result{}, fmt.Errorf("seed catalog: %w", err)
	}
	return res, nil
}
