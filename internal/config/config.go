package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config captures the runtime configuration for the platform.
type Config struct {
	DatabaseDriver    string `validate:"oneof=postgres pgx sqlite"`
	DatabaseURL       string `validate:"required"`
	DefaultPageSize   int    `validate:"gte=1,ltefield=MaxPageSize"`
	MaxPageSize       int    `validate:"gte=1"`
	AllowReenrollment bool
	LogLevel          string `validate:"oneof=debug info warn error"`
	Environment       string `validate:"oneof=development production"`
}

// Development reports whether the process runs with developer tooling.
func (c Config) Development() bool {
	return c.Environment == "development"
}

// Load reads configuration from the environment with sensible defaults.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Config{
		DatabaseDriver: strings.ToLower(valueOrDefault(getenv("DATABASE_DRIVER"), "postgres")),
		DatabaseURL:    getenv("DATABASE_URL"),
		LogLevel:       strings.ToLower(valueOrDefault(getenv("LOG_LEVEL"), "info")),
		Environment:    strings.ToLower(valueOrDefault(getenv("APP_ENV"), "production")),
	}

	var err error
	if cfg.DefaultPageSize, err = intOrDefault(getenv, "DEFAULT_PAGE_SIZE", 10); err != nil {
		return cfg, err
	}
	if cfg.MaxPageSize, err = intOrDefault(getenv, "MAX_PAGE_SIZE", 100); err != nil {
		return cfg, err
	}
	if v := getenv("ALLOW_REENROLLMENT"); v != "" {
		if cfg.AllowReenrollment, err = strconv.ParseBool(v); err != nil {
			return cfg, fmt.Errorf("ALLOW_REENROLLMENT: %w", err)
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func valueOrDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func intOrDefault(getenv func(string) string, key string, fallback int) (int, error) {
	v := getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
