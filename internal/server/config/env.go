package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv. PING_MESSAGE keeps the name the
// web frontend already uses.
const (
	EnvHTTPAddr             = "HOTEL_HTTP_ADDR"
	EnvGRPCAddr             = "HOTEL_GRPC_ADDR"
	EnvStorageBackend       = "HOTEL_STORAGE"
	EnvDatabaseDSN          = "HOTEL_DATABASE_DSN"
	EnvSQLitePath           = "HOTEL_SQLITE_PATH"
	EnvSessionTTL           = "HOTEL_SESSION_TTL"
	EnvSessionSweepInterval = "HOTEL_SESSION_SWEEP_INTERVAL"
	EnvBcryptCost           = "HOTEL_BCRYPT_COST"
	EnvAuthRateLimit        = "HOTEL_AUTH_RATE_LIMIT"
	EnvAllowedOrigins       = "HOTEL_ALLOWED_ORIGINS"
	EnvEnvironment          = "HOTEL_ENVIRONMENT"
	EnvLogLevel             = "HOTEL_LOG_LEVEL"
	EnvPingMessage          = "PING_MESSAGE"
)

// parseEnv loads an optional .env file from the working directory and then
// overlays HOTEL_* variables. Variables already set in the process
// environment win over the .env file.
func parseEnv(config *Config) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Errorf("load .env: %w", err))
	}
	if err := applyEnv(config, os.LookupEnv); err != nil {
		panic(err)
	}
}

func applyEnv(config *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str(EnvHTTPAddr, &config.EndpointAddrHTTP)
	str(EnvGRPCAddr, &config.EndpointAddrGRPC)
	str(EnvStorageBackend, &config.StorageBackend)
	str(EnvDatabaseDSN, &config.DatabaseDSN)
	str(EnvSQLitePath, &config.SQLitePath)
	str(EnvAuthRateLimit, &config.AuthRateLimit)
	str(EnvEnvironment, &config.Environment)
	str(EnvLogLevel, &config.LogLevel)
	str(EnvPingMessage, &config.PingMessage)

	for key, dst := range map[string]*time.Duration{
		EnvSessionTTL:           &config.SessionTTL,
		EnvSessionSweepInterval: &config.SessionSweepInterval,
	} {
		if v, ok := lookup(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = d
		}
	}

	if v, ok := lookup(EnvBcryptCost); ok && v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvBcryptCost, err)
		}
		config.BcryptCost = cost
	}

	if v, ok := lookup(EnvAllowedOrigins); ok && v != "" {
		config.AllowedOrigins = splitList(v)
	}

	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
