// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
// A .env file in the working directory is honored for development.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"sustudio/internal/ai"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// Fallback provider credentials. Empty keys drop the provider from the
	// fallback chain; Gemini and ElevenLabs keys live on the brand profile.
	GroqAPIKey        string
	OpenRouterAPIKey  string
	MistralAPIKey     string
	OpenAIAPIKey      string
	HuggingFaceAPIKey string
	FalAPIKey         string
	ReplicateAPIToken string
	StabilityAPIKey   string

	// S3-compatible object storage for captured artifacts (optional)
	S3Endpoint      string
	S3Region        string
	S3AccessKey     string
	S3SecretKey     string
	S3PublicBucket  string
	S3PrivateBucket string
	S3PublicURL     string

	// Image processing
	VipsConcurrency int
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	// Best-effort: production deploys configure the environment directly.
	godotenv.Load()

	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "sustudio"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "sustudio"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		GroqAPIKey:        os.Getenv("GROQ_API_KEY"),
		OpenRouterAPIKey:  os.Getenv("OPENROUTER_API_KEY"),
		MistralAPIKey:     os.Getenv("MISTRAL_API_KEY"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		HuggingFaceAPIKey: os.Getenv("HUGGINGFACE_API_KEY"),
		FalAPIKey:         os.Getenv("FAL_API_KEY"),
		ReplicateAPIToken: os.Getenv("REPLICATE_API_TOKEN"),
		StabilityAPIKey:   os.Getenv("STABILITY_API_KEY"),

		S3Endpoint:      os.Getenv("S3_ENDPOINT"),
		S3Region:        envOrDefault("S3_REGION", "eu-central"),
		S3AccessKey:     os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:     os.Getenv("S3_SECRET_KEY"),
		S3PublicBucket:  envOrDefault("S3_PUBLIC_BUCKET", "sustudio-public"),
		S3PrivateBucket: envOrDefault("S3_PRIVATE_BUCKET", "sustudio-private"),
		S3PublicURL:     os.Getenv("S3_PUBLIC_URL"),

		VipsConcurrency: envOrDefaultInt("VIPS_CONCURRENCY", 2),
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// Providers assembles the per-provider configs the fallback engine is built
// from. Providers without keys are skipped by the registry.
func (c *Config) Providers() map[string]ai.ProviderConfig {
	return map[string]ai.ProviderConfig{
		"groq":        {APIKey: c.GroqAPIKey},
		"openrouter":  {APIKey: c.OpenRouterAPIKey},
		"mistral":     {APIKey: c.MistralAPIKey},
		"openai":      {APIKey: c.OpenAIAPIKey},
		"huggingface": {APIKey: c.HuggingFaceAPIKey},
		"fal":         {APIKey: c.FalAPIKey},
		"replicate":   {APIKey: c.ReplicateAPIToken},
		"stability":   {APIKey: c.StabilityAPIKey},
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envOrDefaultInt reads an integer environment variable with a fallback.
func envOrDefaultInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
