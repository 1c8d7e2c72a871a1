package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/hotelbook/internal/flagx"
	"github.com/dmitrijs2005/hotelbook/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	ServerURL           string         `json:"server_url"`
	StatePath           string         `json:"state_path"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Fields missing from the file keep their current values.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.StatePath != "" {
		cfg.StatePath = jc.StatePath
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
}
