package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/hotelbook/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-t", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the API server")
	fs.StringVar(&cfg.StatePath, "s", cfg.StatePath, "local state file")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
