// Package config loads process configuration from the environment.
//
// A .env file in the working directory is read first when present; variables already
// set in the environment take precedence over it.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment keys.
const (
	EnvSpannerDatabase = "SPANNER_DATABASE"
	EnvGRPCPort        = "GRPC_PORT"
	EnvHTTPPort        = "HTTP_PORT"
	EnvRemoteAddr      = "CART_REMOTE_ADDR"
	EnvRemoteTimeout   = "CART_REMOTE_TIMEOUT"
	EnvLocalStore      = "CART_LOCAL_STORE"
	EnvLocalSlot       = "CART_LOCAL_SLOT"
	EnvUserID          = "CART_USER_ID"
	EnvCatalog         = "CART_CATALOG"
	EnvEventBuffer     = "CART_EVENT_BUFFER"
	EnvLogLevel        = "LOG_LEVEL"
)

// Config holds application configuration.
type Config struct {
	SpannerDB string
	GRPCPort  string
	HTTPPort  string

	// Client side
	RemoteAddr    string // empty disables the Remote Cart Service
	RemoteTimeout time.Duration
	LocalStore    string // SQLite file path, ":memory:" for a throwaway store
	LocalSlot     string // empty uses the default slot
	UserID        string // empty means an anonymous session
	Catalog       string
	EventBuffer   int

	LogLevel string
}

// Load reads .env (if any) and the environment, applying defaults for local development.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to read .env: %w", err)
	}
	return FromEnv()
}

// FromEnv reads the environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		// Default for local development with emulator
		SpannerDB:  getEnvOrDefault(EnvSpannerDatabase, "projects/test-project/instances/dev-instance/databases/cart-db"),
		GRPCPort:   getEnvOrDefault(EnvGRPCPort, "9090"),
		HTTPPort:   getEnvOrDefault(EnvHTTPPort, "8080"),
		RemoteAddr: os.Getenv(EnvRemoteAddr),
		LocalStore: getEnvOrDefault(EnvLocalStore, "cart.db"),
		LocalSlot:  os.Getenv(EnvLocalSlot),
		UserID:     os.Getenv(EnvUserID),
		Catalog:    getEnvOrDefault(EnvCatalog, "catalog.yaml"),
		LogLevel:   getEnvOrDefault(EnvLogLevel, "info"),
	}

	timeout, err := time.ParseDuration(getEnvOrDefault(EnvRemoteTimeout, "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", EnvRemoteTimeout, err)
	}
	cfg.RemoteTimeout = timeout

	buffer, err := strconv.Atoi(getEnvOrDefault(EnvEventBuffer, "256"))
	if err != nil || buffer < 1 {
		return Config{}, fmt.Errorf("invalid %s: %q", EnvEventBuffer, os.Getenv(EnvEventBuffer))
	}
	cfg.EventBuffer = buffer

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
