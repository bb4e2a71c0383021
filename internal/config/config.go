// README: Config loader with env defaults for HTTP, providers, CORS, and logging.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	Places struct {
		APIKey string
	}
	Gemini struct {
		APIKey string
	}
	// BaseURL is this service's public address, used to build self-referential
	// photo-proxy links.
	BaseURL     string
	CORSOrigins []string
	Environment string
	LogLevel    string
}

func Load() (Config, error) {
	// Optional .env for local development; env vars win in deployment.
	_ = godotenv.Load()

	var cfg Config
	cfg.HTTP.Addr = envOrDefault("HTTP_ADDR", ":8000")
	cfg.Places.APIKey = envOrError("GOOGLE_PLACES_API_KEY")
	cfg.Gemini.APIKey = envOrError("GEMINI_API_KEY")
	cfg.BaseURL = strings.TrimRight(envOrDefault("BASE_URL", "http://localhost:8000"), "/")
	cfg.CORSOrigins = splitCSV(envOrDefault("CORS_ORIGINS", "http://localhost:4200,http://localhost:3000"))
	cfg.Environment = envOrDefault("ENVIRONMENT", "development")
	cfg.LogLevel = envOrDefault("LOG_LEVEL", "info")
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrError(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	panic("environment variable " + key + " is required")
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
