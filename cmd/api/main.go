package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/tiendastsgt/agencia/internal/bootstrap"
	"github.com/tiendastsgt/agencia/internal/config"
	"github.com/tiendastsgt/agencia/internal/infra/cache"
	"github.com/tiendastsgt/agencia/internal/infra/db"
	"github.com/tiendastsgt/agencia/internal/modules/handler"
	"github.com/tiendastsgt/agencia/internal/router"
	"github.com/tiendastsgt/agencia/internal/telemetry"
)

//	@title			Agencia API
//	@version		1.0
//	@description	Marketing agency backend: client profiles, social platform credentials, consolidated metrics and AI content generation.
//	@BasePath		/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	defer log.Sync() //nolint:errcheck

	gormDB := do.MustInvoke[*gorm.DB](inj)
	rdb := do.MustInvoke[*redis.Client](inj)

	if cfg.Telemetry.Enabled && cfg.Telemetry.OtlpEndpoint != "" {
		tp, err := telemetry.SetupTracing(cfg)
		if err != nil {
			log.Fatal("failed to set up tracing", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = tp.Shutdown(ctx)
		}()

		if err := db.RegisterOpenTelemetryPlugin(gormDB); err != nil {
			log.Warn("failed to register gorm otel plugin", zap.Error(err))
		}
		if err := cache.RegisterOpenTelemetryPlugin(rdb); err != nil {
			log.Warn("failed to register redis otel plugin", zap.Error(err))
		}
	}

	engine := router.NewRouter(router.RouterDeps{
		Config:             cfg,
		DB:                 gormDB,
		Cache:              rdb,
		Log:                log,
		CredentialsHandler: do.MustInvoke[*handler.CredentialsHandler](inj),
		MetricsHandler:     do.MustInvoke[*handler.MetricsHandler](inj),
		ClientHandler:      do.MustInvoke[*handler.ClientHandler](inj),
		ContentHandler:     do.MustInvoke[*handler.ContentHandler](inj),
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server starting", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case sig := <-quit:
			log.Info("received signal, shutting down", zap.String("signal", sig.String()))
			cancel()
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("http server shutdown failed", zap.Error(err))
		}
		_ = cache.Close(rdb)
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("app exited with error", zap.Error(err))
		os.Exit(1)
	}
	log.Info("app exited")
}
