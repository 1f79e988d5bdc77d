// Package config handles configuration for the primary server,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the primary.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the gRPC endpoint (clients and replicas).
//   - DatabaseDSN: PostgreSQL DSN for pinned keys; empty keeps keys in memory.
//   - SecretKey: HMAC secret for session tokens (HS256).
//   - SessionTokenValidityDuration: lifetime of a session token.
//   - ReplicationTimeout: how long a multicast waits for acknowledgements.
//   - RequireSession: reject mutating calls without a session token.
//   - ChallengeTTL / ChallengeRate / ChallengeBurst: login challenge limits.
//   - MetricsAddr: address of the Prometheus endpoint; empty disables it.
//   - LogLevel / LogBackend: logger settings ("slog" or "zap").
//   - InitialReplicas: in-process replicas spawned at startup.
type Config struct {
	EndpointAddrGRPC             string
	DatabaseDSN                  string
	SecretKey                    string
	SessionTokenValidityDuration time.Duration
	ReplicationTimeout           time.Duration
	RequireSession               bool
	ChallengeTTL                 time.Duration
	ChallengeRate                float64
	ChallengeBurst               int
	MetricsAddr                  string
	LogLevel                     string
	LogBackend                   string
	InitialReplicas              int
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey must be overridden outside development.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.SessionTokenValidityDuration = 30 * time.Minute
	c.ReplicationTimeout = 5 * time.Second
	c.RequireSession = false
	c.ChallengeTTL = time.Minute
	c.ChallengeRate = 100
	c.ChallengeBurst = 200
	c.MetricsAddr = ""
	c.LogLevel = "info"
	c.LogBackend = "slog"
	c.InitialReplicas = 0
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
