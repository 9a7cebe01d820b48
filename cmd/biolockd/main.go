package main

import (
	"fmt"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/getkayan/biolock/api"
	"github.com/getkayan/biolock/cache"
	"github.com/getkayan/biolock/config"
	"github.com/getkayan/biolock/events"
	"github.com/getkayan/biolock/flow"
	"github.com/getkayan/biolock/internal/logger"
	"github.com/getkayan/biolock/persistence"
	"github.com/getkayan/biolock/provider"
)

// Version is set at build time.
var Version = "dev"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger.InitLogger(cfg.LogLevel)
	defer logger.Log.Sync()

	logger.Log.Info("Starting BioLock observability daemon",
		zap.Int("port", cfg.Port),
		zap.String("store", cfg.StoreType),
		zap.String("provider", cfg.Provider),
	)

	store, err := newStore(cfg)
	if err != nil {
		logger.Log.Fatal("failed to initialize cache store", zap.Error(err))
	}

	var p provider.Provider
	switch cfg.Provider {
	case "demo":
		p = provider.NewDemoStub()
	default:
		p = provider.Unsupported()
	}

	bus := events.NewBus()
	bus.SetLogger(logger.Log)
	recorder := api.NewRecorder(bus, 256)

	c := cache.New(cache.SystemClock(), store)
	orch := flow.NewOrchestrator(p, c, bus)
	orch.SetLogger(logger.Log)
	orch.SetDefaultTTL(time.Duration(cfg.DefaultTTLMillis) * time.Millisecond)

	h := api.NewHandler(orch, c, recorder, Version)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	g := e.Group("/api/v1")
	h.RegisterRoutes(g)

	logger.Log.Info("Server is starting", zap.Int("port", cfg.Port))
	if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		logger.Log.Fatal("server stopped", zap.Error(err))
	}
}

func newStore(cfg *config.Config) (cache.Store, error) {
	if cfg.StoreType == "file" {
		return persistence.NewFileStore(cfg.CachePath, []byte(cfg.CacheSecret)), nil
	}
	return persistence.NewStore(cfg.StoreType, cfg.DSN)
}
