package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tiendastsgt/agencia/internal/config"
	"github.com/tiendastsgt/agencia/internal/middleware"
	"github.com/tiendastsgt/agencia/internal/modules/handler"
	"github.com/tiendastsgt/agencia/internal/modules/serializer"
	"github.com/tiendastsgt/agencia/internal/telemetry"

	_ "github.com/tiendastsgt/agencia/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	Config             *config.Config
	DB                 *gorm.DB
	Cache              *redis.Client
	Log                *zap.Logger
	CredentialsHandler *handler.CredentialsHandler
	MetricsHandler     *handler.MetricsHandler
	ClientHandler      *handler.ClientHandler
	ContentHandler     *handler.ContentHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	// Initialize logger for serializer package
	serializer.SetLogger(d.Log)

	r := gin.New()
	r.Use(middleware.Recovery(d.Log))

	// Add OpenTelemetry middleware if enabled (using configuration system)
	if d.Config.Telemetry.Enabled && d.Config.Telemetry.OtlpEndpoint != "" {
		r.Use(telemetry.GinMiddleware(d.Config.App.Name))
		// Add trace ID to response header
		r.Use(telemetry.TraceIDMiddleware())
	}

	r.Use(middleware.ZapLogger(d.Log))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		v1.Use(middleware.AgencyAuth(d.Config, d.DB, d.Cache, d.Log))

		// ping endpoint
		v1.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "pong"}) })

		// single action-dispatch endpoint, mirrors the dashboard contract
		v1.POST("/credentials", d.CredentialsHandler.Manage)

		metrics := v1.Group("/metrics")
		{
			metrics.POST("/consolidated", d.MetricsHandler.Consolidated)
			metrics.POST("/fetch", d.MetricsHandler.Fetch)
			metrics.POST("/:platform", d.MetricsHandler.Platform)
		}

		clients := v1.Group("/clients")
		{
			clients.POST("", d.ClientHandler.Create)
			clients.GET("", d.ClientHandler.List)
			clients.GET("/:id", d.ClientHandler.Get)
			clients.PATCH("/:id", d.ClientHandler.Update)
			clients.DELETE("/:id", d.ClientHandler.Delete)
		}

		content := v1.Group("/content")
		{
			content.POST("/generate", d.ContentHandler.Generate)
			content.GET("", d.ContentHandler.History)
		}
	}
	return r
}
