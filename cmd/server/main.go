// Package main is the REST entry point for the flight finder service.
//
//	@title						Flight Finder API
//	@version					1.0.0
//	@description				A flight search aggregation service that queries multiple providers and returns unified, deduplicated results.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/flight-search/flight-finder/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/api/v1
//
//	@schemes					http https
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

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/flight-search/flight-finder/docs"
	flighthttp "github.com/flight-search/flight-finder/internal/adapter/http"
	"github.com/flight-search/flight-finder/internal/adapter/http/middleware"
	"github.com/flight-search/flight-finder/internal/adapter/provider"
	"github.com/flight-search/flight-finder/internal/config"
	"github.com/flight-search/flight-finder/internal/infrastructure/httpclient"
	"github.com/flight-search/flight-finder/internal/infrastructure/logger"
	"github.com/flight-search/flight-finder/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "flight-finder",
	})

	log.Info().
		Int("port", cfg.Server.Port).
		Bool("cache_enabled", cfg.Cache.Enabled).
		Msg("configuration_loaded")

	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = cfg.HTTP.Timeout()
	httpCfg.MaxRetries = cfg.HTTP.MaxRetries

	factory := provider.NewFactory(provider.FactoryConfig{
		Keys: provider.Keys{
			Skyscanner: cfg.Providers.SkyscannerAPIKey,
			SearchAPI:  cfg.Providers.SearchAPIKey,
			RapidAPI:   cfg.Providers.RapidAPIKey,
			Kiwi:       cfg.Providers.KiwiAPIKey,
		},
		CacheSize: cfg.Cache.MaxSize,
		CacheTTL:  cfg.Cache.TTL(),
		WithCache: cfg.Cache.Enabled,
		HTTP:      httpCfg,
	}, log)
	defer factory.Close()

	aggregator := factory.CreateAggregator()
	searchUC := usecase.NewSearchUseCase(aggregator, cfg.Search.MaxResults, log)
	cacheUC := usecase.NewCacheUseCase(factory.Cache(), log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.Setup(e, log)

	handler := flighthttp.NewFlightHandler(searchUC, cacheUC, log)
	flighthttp.RegisterRoutes(e, handler)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().
			Str("address", addr).
			Strs("providers", aggregator.ProviderNames()).
			Msg("server_starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server_start_failed")
		}
	}()

	gracefulShutdown(e, log)
}

// gracefulShutdown blocks until an interrupt signal and drains in-flight
// requests before exiting.
func gracefulShutdown(e *echo.Echo, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("server_shutting_down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server_shutdown_error")
	}

	log.Info().Msg("server_stopped")
}
