package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	Env              string
	BrawlhallaAPIKey string `validate:"required"`
	SteamAPIKey      string `validate:"required"`
	DBPath           string `validate:"required"`
	ServerPort       string `validate:"required"`
	LogLevel         string
	CacheTTL         time.Duration
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	env := getEnv("APP_ENV", "prod")

	cfg := &Config{
		Env:              env,
		BrawlhallaAPIKey: getCredential(env, "BRAWLHALLA_API_KEY"),
		SteamAPIKey:      getCredential(env, "STEAM_API_KEY"),
		DBPath:           getEnv("DB_PATH", "brawlhalla.db"),
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		CacheTTL:         5 * time.Minute,
	}

	if ttl := os.Getenv("CACHE_TTL"); ttl != "" {
		parsed, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid CACHE_TTL %q: %w", ttl, err)
		}
		cfg.CacheTTL = parsed
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Info().
		Str("env", cfg.Env).
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("configuration loaded")

	return cfg, nil
}

// getCredential prefers a DEV_-prefixed variable when running in the dev
// environment, so the dev credential set can live next to the prod one.
func getCredential(env, key string) string {
	if env == "dev" {
		if v := os.Getenv("DEV_" + key); v != "" {
			return v
		}
	}
	return os.Getenv(key)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
