package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"address-registry/docs"
	"address-registry/internal/config"
	"address-registry/internal/handler"
	"address-registry/internal/middleware"
	"address-registry/internal/repository"
	"address-registry/internal/service"
	"address-registry/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Address Registry API
//	@version		1.0
//	@description	Validates, normalizes and stores unique US postal addresses.
//	@BasePath		/

func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	setupLogger(config)

	repo, closeStore, err := repository.Open(context.Background(), config)
	if err != nil {
		log.Fatal().Err(err).Str("driver", config.StoreDriver).Msg("cannot open store")
	}
	defer closeStore()

	if config.StoreDriver == "memory" {
		log.Warn().Msg("using in-memory store, addresses are lost on restart")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := setupRouter(repo, registry, config.MetricsNamespace, log.Logger)

	log.Info().
		Str("address", config.ServerAddress).
		Str("store", config.StoreDriver).
		Msg("starting server")

	if err := r.Run(config.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func setupLogger(cfg config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
}

func setupRouter(repo service.AddressRepository, registry *prometheus.Registry, namespace string, logger zerolog.Logger) *gin.Engine {
	// Initialize layers
	addressMetrics := telemetry.NewAddressMetrics(registry, namespace)
	httpMetrics := middleware.NewMetrics(registry, namespace)

	addressService := service.NewAddressService(repo, addressMetrics, logger)
	addressHandler := handler.NewAddressHandler(addressService)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		httpMetrics.Middleware(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	docs.SwaggerInfo.BasePath = "/"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	addressHandler.RegisterRoutes(r)

	return r
}
