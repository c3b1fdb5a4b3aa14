package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Input/output locations
	SourceFile string
	OutputDir  string

	// Battery static spec file (YAML); empty means built-in datasheet
	BatterySpecFile string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string

	// LLM configuration
	LLM LLMConfig

	// Pricing configuration
	Pricing PricingConfig
}

// LLMConfig holds generation service configuration
type LLMConfig struct {
	Endpoint       string
	APIKey         string
	Model          string
	TimeoutSeconds int
}

// PricingConfig holds pricing pipeline parameters
type PricingConfig struct {
	Workers          int // pricing pool width
	ForecastVehicles int // comparison chart fan-out cap
	MarketNews       bool
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		SourceFile:      os.Getenv("TELEMETRY_FILE"),
		OutputDir:       getEnvOrDefault("AGGR_OUTPUT_DIR", "aggr_data"),
		BatterySpecFile: os.Getenv("BATTERY_SPEC_FILE"),

		// Redis configuration
		RedisHost:     getEnvOrDefault("REDIS_HOST", "localhost"),
		RedisPort:     getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),

		// LLM configuration
		LLM: LLMConfig{
			Endpoint:       getEnvOrDefault("LLM_ENDPOINT", "http://localhost:11434/v1"),
			APIKey:         getEnvOrDefault("LLM_API_KEY", ""),
			Model:          getEnvOrDefault("LLM_MODEL", "mistral"),
			TimeoutSeconds: getEnvInt("LLM_TIMEOUT_SECONDS", 45),
		},

		// Pricing configuration
		Pricing: PricingConfig{
			Workers:          getEnvInt("PRICING_WORKERS", 5),
			ForecastVehicles: getEnvInt("PRICING_FORECAST_VEHICLES", 5),
			MarketNews:       getEnvOrDefault("PRICING_MARKET_NEWS", "false") == "true",
		},
	}
}

// getEnvInt gets environment variable as int or returns default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var intValue int
	if _, err := fmt.Sscanf(value, "%d", &intValue); err != nil {
		return defaultValue
	}
	return intValue
}

// getEnvOrDefault gets environment variable or returns default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
