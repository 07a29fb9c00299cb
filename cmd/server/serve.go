package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/iliyamo/drill-inventory/internal/config"
	"github.com/iliyamo/drill-inventory/internal/handler"
	"github.com/iliyamo/drill-inventory/internal/middleware"
	"github.com/iliyamo/drill-inventory/internal/repository"
	"github.com/iliyamo/drill-inventory/internal/router"
	"github.com/iliyamo/drill-inventory/internal/service"
	"github.com/iliyamo/drill-inventory/web"
)

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, db, _, err := setup(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	renderer, err := handler.NewRenderer(web.Templates, web.TemplateDir)
	if err != nil {
		return err
	}

	rdb := config.NewRedisClient()
	if rdb != nil {
		defer rdb.Close()
	}

	pub := service.NewPublisher(config.LoadEventsConfig())
	if ap, ok := pub.(*service.AMQPPublisher); ok {
		defer ap.Close()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(reg)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.HTTPErrorHandler = handler.HTTPErrorHandler
	e.Use(echomw.RequestID(), middleware.RequestLogger(), echomw.Recover(), metrics.Middleware())

	h := handler.NewCatalogHandler(
		repository.NewDesignRepo(db),
		repository.NewDrillRepo(db),
		repository.NewRecordRepo(db),
		pub,
	)
	router.RegisterRoutes(e, metrics)
	router.RegisterCatalog(e, h,
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
	)

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
