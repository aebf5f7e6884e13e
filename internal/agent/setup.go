package agent

import (
	"context"
	"fmt"
	"log/slog"

	"datachat/internal/capabilities"
	"datachat/internal/config"
	"datachat/internal/database"
	"datachat/internal/flight"
	"datachat/internal/llm/anthropic"
	"datachat/internal/weather"
)

// Data source names, as exposed to entrypoints.
const (
	SourceFlights  = "flights"
	SourceWeather  = "weather"
	SourceDatabase = "database"
)

// SetupRegistry builds one orchestrator per configured data source. The
// flight source is always available; weather and database require their
// credentials. The returned cleanup function releases provider resources.
func SetupRegistry(
	ctx context.Context,
	cfg *config.Config,
	caps *capabilities.Registry,
	logger *slog.Logger,
) (*Registry, func(), error) {
	provider, err := anthropic.NewProvider(cfg.AnthropicAPIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM provider: %w", err)
	}

	if !caps.SupportsTools(provider.Name(), cfg.Model) {
		return nil, nil, fmt.Errorf("model %s does not support tool use", cfg.Model)
	}
	maxTokens := caps.MaxOutputTokens(provider.Name(), cfg.Model, cfg.MaxTokens)

	registry := NewRegistry()
	cleanup := func() {}

	registry.Register(SourceFlights,
		New(provider, flight.NewTool(flight.NewClient()), cfg.Model, maxTokens, logger))

	if cfg.OpenWeatherAPIKey != "" {
		weatherClient, err := weather.NewClient(cfg.OpenWeatherAPIKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create weather client: %w", err)
		}
		registry.Register(SourceWeather,
			New(provider, weather.NewTool(weatherClient), cfg.Model, maxTokens, logger))
	} else {
		logger.Info("weather source disabled", "reason", "OPENWEATHER_API_KEY not set")
	}

	if cfg.DatabaseURL != "" {
		store, err := database.NewStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		cleanup = store.Close
		registry.Register(SourceDatabase,
			New(provider, database.NewTool(store), cfg.Model, maxTokens, logger))
		logger.Info("database source enabled",
			"tables", store.Schema().TableNames(),
		)
	} else {
		logger.Info("database source disabled", "reason", "DATABASE_URL not set")
	}

	return registry, cleanup, nil
}
