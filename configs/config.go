package config

import (
	"os"
)

// Config holds the application configuration
type Config struct {
	Port            string
	GeminiAPIKey    string
	GeminiModel     string
	CatalogFilePath string
	DefaultLocation string
	Environment     string
	APIKey          string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		CatalogFilePath: getEnv("CATALOG_FILE_PATH", "data/nexusinv_products.json"),
		DefaultLocation: getEnv("DEFAULT_LOCATION", "Chennai"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		APIKey:          getEnv("API_KEY", ""),
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
