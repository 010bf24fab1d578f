package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Victor-armando18/menu-customizer/internal/config"
	"github.com/Victor-armando18/menu-customizer/internal/infrastructure"
	"github.com/Victor-armando18/menu-customizer/internal/infrastructure/catalog"
	"github.com/Victor-armando18/menu-customizer/internal/infrastructure/postgres"
	"github.com/Victor-armando18/menu-customizer/internal/infrastructure/sink"
	"github.com/Victor-armando18/menu-customizer/internal/interfaces"
	"github.com/Victor-armando18/menu-customizer/internal/logging"
	"github.com/Victor-armando18/menu-customizer/internal/usecase"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := logging.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	products, orders, cleanup, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to open stores", zap.Error(err))
	}
	defer cleanup()

	svc := usecase.NewCustomizationService(products, orders, usecase.Options{
		RulesVersion: cfg.RulesVersion,
		Loader:       infrastructure.NewFileRuleLoader(cfg.RulesDir),
		Executor:     infrastructure.NewJsonLogicExecutor(),
		Logger:       log,

		SessionIdleTimeout: cfg.SessionIdleTimeout,
	})
	go svc.SweepIdle(ctx, time.Minute)

	e := newServer(svc, log)

	go func() {
		log.Info("starting server", zap.String("port", cfg.Port), zap.String("store", cfg.StoreDriver), zap.String("rules", cfg.RulesVersion))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

func newServer(svc CustomizationFacade, log *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAccept},
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			log.Info("request", fields...)
			return nil
		},
	}))

	h := &handlers{svc: svc, log: log}
	e.GET("/health", h.health)
	e.GET("/products", h.listProducts)
	e.GET("/products/:id", h.getProduct)
	e.POST("/quotes", h.quote)
	e.PATCH("/quotes", h.patchQuote)
	e.POST("/order-lines", h.submitSelection)
	e.POST("/sessions", h.openSession)
	e.GET("/sessions/:id", h.getSession)
	e.POST("/sessions/:id/actions", h.applyAction)
	e.POST("/sessions/:id/submit", h.submitSession)
	e.DELETE("/sessions/:id", h.closeSession)
	return e
}

// openStores wires the catalog and order sink for the configured driver.
func openStores(ctx context.Context, cfg config.Config, log *zap.Logger) (interfaces.ProductCatalog, interfaces.OrderSink, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, nil, nil, err
		}
		pg := postgres.NewCatalog(pool)
		if cfg.SeedCatalog {
			if err := seedCatalog(ctx, pg, catalog.NewFileCatalog(cfg.CatalogDir), log); err != nil {
				pool.Close()
				return nil, nil, nil, err
			}
		}
		return pg, postgres.NewOrderSink(pool), pool.Close, nil
	default:
		return catalog.NewFileCatalog(cfg.CatalogDir), sink.NewFileSink(cfg.OrdersFile), func() {}, nil
	}
}

func seedCatalog(ctx context.Context, dst *postgres.Catalog, src interfaces.ProductCatalog, log *zap.Logger) error {
	products, err := src.List(ctx)
	if err != nil {
		return fmt.Errorf("read seed catalog: %w", err)
	}
	for _, p := range products {
		if err := dst.Upsert(ctx, p); err != nil {
			return fmt.Errorf("seed product %s: %w", p.ID, err)
		}
	}
	log.Info("catalog seeded", zap.Int("products", len(products)))
	return nil
}
