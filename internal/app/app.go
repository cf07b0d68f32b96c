package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/competence-backend/internal/data/db"
	httpx "github.com/yungbote/competence-backend/internal/http"
	"github.com/yungbote/competence-backend/internal/observability"
	"github.com/yungbote/competence-backend/internal/platform/logger"
	"github.com/yungbote/competence-backend/internal/realtime/bus"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Cfg      Config
	Repos    Repos
	Services Services
	Metrics  *observability.Metrics
	Server   *httpx.Server

	dbService     *db.Service
	events        bus.Bus
	traceShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	return NewWithConfig(ctx, cfg, log)
}

// NewWithConfig wires the application from an already loaded config.
func NewWithConfig(ctx context.Context, cfg Config, log *logger.Logger) (*App, error) {
	a := &App{Log: log, Cfg: cfg}
	a.traceShutdown = observability.InitTracing(ctx, log, cfg.Tracing)

	dbService, err := db.Open(cfg.DB, log)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("init database: %w", err)
	}
	a.dbService = dbService
	a.DB = dbService.DB()

	a.Metrics = observability.NewMetrics(cfg.Metrics)

	events, err := bus.New(log, cfg.Redis)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("init entity bus: %w", err)
	}
	if a.Metrics != nil {
		events = bus.Instrumented(events, a.Metrics)
	}
	a.events = events

	a.Repos = wireRepos(a.DB, log)
	a.Services = wireServices(a.DB, log, a.Repos, a.events)
	handlerset := wireHandlers(a.DB, log, cfg.AppName, a.Services)
	a.Server = wireServer(cfg, log, handlerset, a.Metrics)

	return a, nil
}

// Run serves HTTP until ctx is cancelled or the server fails.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	g, gctx := errgroup.WithContext(ctx)

	if a.Metrics != nil {
		g.Go(func() error {
			return a.Metrics.RunDBCollector(gctx, a.Log, a.DB)
		})
	}

	g.Go(func() error {
		a.Log.Info("HTTP server listening", "addr", a.Cfg.HTTP.Addr)
		return a.Server.Run(gctx)
	})

	err := g.Wait()
	a.Log.Info("HTTP server stopped")
	return err
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.events != nil {
		if err := a.events.Close(); err != nil {
			a.Log.Warn("entity bus close failed", "error", err)
		}
	}
	if a.traceShutdown != nil {
		timeout := a.Cfg.HTTP.ShutdownTimeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		if err := a.traceShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
	}
	if a.dbService != nil {
		if err := a.dbService.Close(); err != nil {
			a.Log.Warn("database close failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
