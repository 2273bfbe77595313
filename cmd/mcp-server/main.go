// Package main is the stdio tool server entry point. It exposes flight
// search, cache stats, and cache clear as tool operations for an LLM host.
package main

import (
	"fmt"
	"os"

	"github.com/flight-search/flight-finder/internal/adapter/provider"
	"github.com/flight-search/flight-finder/internal/adapter/tool"
	"github.com/flight-search/flight-finder/internal/config"
	"github.com/flight-search/flight-finder/internal/infrastructure/httpclient"
	"github.com/flight-search/flight-finder/internal/infrastructure/logger"
	"github.com/flight-search/flight-finder/internal/usecase"
)

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

	handler := tool.NewHandler(searchUC, cacheUC, log)
	server := tool.NewServer(handler)

	log.Info().
		Strs("providers", aggregator.ProviderNames()).
		Bool("cache_enabled", cfg.Cache.Enabled).
		Msg("tool_server_starting")

	if err := tool.ServeStdio(server); err != nil {
		log.Error().Err(err).Msg("tool_server_stopped")
		os.Exit(1)
	}
}
