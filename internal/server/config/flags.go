package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/hotelbook/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-g string   gRPC health bind address (e.g., ":50051")
//	-b string   storage backend: postgres or sqlite
//	-d string   PostgreSQL DSN
//	-f string   SQLite database file
//	-t int      session TTL, hours
//	-i int      expired session sweep interval, minutes (0 disables)
//	-k int      bcrypt cost
//	-l string   register/login rate limit, e.g. "20-M"
//	-o string   comma separated CORS origins
//	-e string   environment: development or production
//	-v string   log level
//	-m string   ping message
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-g", "-b", "-d", "-f", "-t", "-i", "-k", "-l", "-o", "-e", "-v", "-m",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC health address and port")
	fs.StringVar(&config.StorageBackend, "b", config.StorageBackend, "storage backend (postgres|sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SQLitePath, "f", config.SQLitePath, "sqlite database file")

	sessionTTL := fs.Int("t", int(config.SessionTTL.Hours()), "session ttl (in hours)")
	sweepInterval := fs.Int("i", int(config.SessionSweepInterval.Minutes()), "expired session sweep interval (in minutes)")

	fs.IntVar(&config.BcryptCost, "k", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.AuthRateLimit, "l", config.AuthRateLimit, "register/login rate limit")
	origins := fs.String("o", strings.Join(config.AllowedOrigins, ","), "allowed CORS origins")
	fs.StringVar(&config.Environment, "e", config.Environment, "environment")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")
	fs.StringVar(&config.PingMessage, "m", config.PingMessage, "ping message")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionTTL = time.Duration(*sessionTTL) * time.Hour
	config.SessionSweepInterval = time.Duration(*sweepInterval) * time.Minute
	config.AllowedOrigins = splitList(*origins)
}
