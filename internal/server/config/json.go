package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/hotelbook/internal/flagx"
	"github.com/dmitrijs2005/hotelbook/internal/timex"
)

// JsonConfig mirrors Config for JSON files. Durations use timex.Duration so
// both "720h" and integer nanoseconds are accepted.
type JsonConfig struct {
	EndpointAddrHTTP     string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC     string         `json:"endpoint_addr_grpc"`
	StorageBackend       string         `json:"storage_backend"`
	DatabaseDSN          string         `json:"database_dsn"`
	SQLitePath           string         `json:"sqlite_path"`
	SessionTTL           timex.Duration `json:"session_ttl"`
	SessionSweepInterval timex.Duration `json:"session_sweep_interval"`
	BcryptCost           int            `json:"bcrypt_cost"`
	AuthRateLimit        string         `json:"auth_rate_limit"`
	AllowedOrigins       []string       `json:"allowed_origins"`
	Environment          string         `json:"environment"`
	LogLevel             string         `json:"log_level"`
	PingMessage          string         `json:"ping_message"`
}

// parseJson overlays values from the JSON file named by -c/-config.
// Keys absent from the file keep their current value. An unreadable file
// or invalid JSON panics, like invalid flags do.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SQLitePath, c.SQLitePath)
	setString(&config.AuthRateLimit, c.AuthRateLimit)
	setString(&config.Environment, c.Environment)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.PingMessage, c.PingMessage)

	if c.SessionTTL.Duration > 0 {
		config.SessionTTL = c.SessionTTL.Duration
	}
	if c.SessionSweepInterval.Duration > 0 {
		config.SessionSweepInterval = c.SessionSweepInterval.Duration
	}
	if c.BcryptCost > 0 {
		config.BcryptCost = c.BcryptCost
	}
	if len(c.AllowedOrigins) > 0 {
		config.AllowedOrigins = c.AllowedOrigins
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
