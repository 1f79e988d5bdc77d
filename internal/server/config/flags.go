package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/auctionhouse/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN for pinned keys
//	-s string   session token HMAC secret
//	-t int      replication timeout, milliseconds
//	-r          require a session token for mutating calls
//	-m string   metrics address (e.g., ":9090")
//	-l string   log level
//	-b string   log backend (slog, zap)
//	-n int      replicas to spawn at startup
func parseFlags(config *Config, osArgs []string) {
	args := flagx.FilterArgs(osArgs, []string{"-a", "-d", "-s", "-t", "-m", "-l", "-b", "-n"}, "-r")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	replicationTimeout := fs.Int("t", int(config.ReplicationTimeout.Milliseconds()), "replication timeout (in milliseconds)")

	fs.BoolVar(&config.RequireSession, "r", config.RequireSession, "require session token for mutating calls")
	fs.StringVar(&config.MetricsAddr, "m", config.MetricsAddr, "metrics address")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogBackend, "b", config.LogBackend, "log backend (slog, zap)")
	fs.IntVar(&config.InitialReplicas, "n", config.InitialReplicas, "replicas to spawn at startup")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.ReplicationTimeout = time.Duration(*replicationTimeout) * time.Millisecond
}
