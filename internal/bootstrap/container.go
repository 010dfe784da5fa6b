package bootstrap

import (
	"context"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tiendastsgt/agencia/internal/config"
	"github.com/tiendastsgt/agencia/internal/infra/cache"
	"github.com/tiendastsgt/agencia/internal/infra/db"
	"github.com/tiendastsgt/agencia/internal/infra/httpclient"
	"github.com/tiendastsgt/agencia/internal/infra/logger"
	"github.com/tiendastsgt/agencia/internal/modules/handler"
	"github.com/tiendastsgt/agencia/internal/modules/model"
	"github.com/tiendastsgt/agencia/internal/modules/repo"
	"github.com/tiendastsgt/agencia/internal/modules/service"
	"github.com/tiendastsgt/agencia/internal/platform"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Database.AutoMigrate {
			_ = d.AutoMigrate(
				&model.Agency{},
				&model.Client{},
				&model.APICredential{},
				&model.AnalyticsMetric{},
				&model.GeneratedContent{},
			)
		}

		// ensure default agency exists
		if err := EnsureDefaultAgencyExists(context.Background(), d, cfg, log); err != nil {
			return nil, err
		}

		return d, nil
	})

	// Redis
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return cache.New(cfg)
	})

	// Platform API HTTP client
	do.Provide(inj, func(i *do.Injector) (*httpclient.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		log := do.MustInvoke[*zap.Logger](i)
		return httpclient.New(cfg, log), nil
	})

	// Platform adapter registry
	do.Provide(inj, func(i *do.Injector) (*platform.Registry, error) {
		return platform.NewRegistry(
			do.MustInvoke[*httpclient.Client](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	// OpenAI
	do.Provide(inj, func(i *do.Injector) (openai.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return openai.NewClient(option.WithAPIKey(cfg.OpenAI.APIKey)), nil
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.AgencyRepo, error) {
		return repo.NewAgencyRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ClientRepo, error) {
		return repo.NewClientRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.CredentialRepo, error) {
		return repo.NewCredentialRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.AnalyticsRepo, error) {
		return repo.NewAnalyticsRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ContentRepo, error) {
		return repo.NewContentRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.ClientService, error) {
		return service.NewClientService(
			do.MustInvoke[repo.ClientRepo](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.CredentialService, error) {
		return service.NewCredentialService(
			do.MustInvoke[repo.CredentialRepo](i),
			do.MustInvoke[repo.ClientRepo](i),
			do.MustInvoke[*platform.Registry](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.MetricsService, error) {
		return service.NewMetricsService(
			do.MustInvoke[repo.ClientRepo](i),
			do.MustInvoke[repo.CredentialRepo](i),
			do.MustInvoke[repo.AnalyticsRepo](i),
			do.MustInvoke[*platform.Registry](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ContentService, error) {
		return service.NewContentService(
			do.MustInvoke[repo.ClientRepo](i),
			do.MustInvoke[repo.ContentRepo](i),
			do.MustInvoke[openai.Client](i),
			do.MustInvoke[*config.Config](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.CredentialsHandler, error) {
		return handler.NewCredentialsHandler(do.MustInvoke[service.CredentialService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.MetricsHandler, error) {
		return handler.NewMetricsHandler(do.MustInvoke[service.MetricsService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ClientHandler, error) {
		return handler.NewClientHandler(do.MustInvoke[service.ClientService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ContentHandler, error) {
		return handler.NewContentHandler(do.MustInvoke[service.ContentService](i)), nil
	})

	return inj
}
