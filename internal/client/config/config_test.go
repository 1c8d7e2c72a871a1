package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", c.ServerURL)
	assert.Equal(t, "hotelbook-cli.db", c.StatePath)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, 5*time.Second, c.OnlineCheckInterval)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()
	require.NotNil(t, cfg, "LoadConfig must not return nil")

	assert.Equal(t, "http://127.0.0.1:8080", cfg.ServerURL)
	assert.Equal(t, 5*time.Second, cfg.OnlineCheckInterval)
}
