package config

import (
	"os"
)

// Config holds all settings, loaded from environment variables.
type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	// LLM configuration
	AnthropicAPIKey string
	Model           string
	MaxTokens       int
	// Data sources
	OpenWeatherAPIKey string
	DatabaseURL       string
	DefaultSource     string
}

// Load reads configuration from the environment, applying defaults.
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		// LLM configuration
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		Model:           getEnv("MODEL", "claude-3-5-sonnet-20241022"),
		MaxTokens:       1024,
		// Data sources
		OpenWeatherAPIKey: getEnv("OPENWEATHER_API_KEY", ""),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		DefaultSource:     getEnv("DEFAULT_SOURCE", "flights"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
