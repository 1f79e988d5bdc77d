package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/auctionhouse/internal/flagx"
	"github.com/dmitrijs2005/auctionhouse/internal/timex"
)

// JsonConfig is the on-disk form of Config. Duration fields accept strings
// such as "5s" as well as integer nanoseconds.
type JsonConfig struct {
	EndpointAddrGRPC             string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	SessionTokenValidityDuration timex.Duration `json:"session_token_validity_duration"`
	ReplicationTimeout           timex.Duration `json:"replication_timeout"`
	RequireSession               *bool          `json:"require_session"`
	ChallengeTTL                 timex.Duration `json:"challenge_ttl"`
	ChallengeRate                float64        `json:"challenge_rate"`
	ChallengeBurst               int            `json:"challenge_burst"`
	MetricsAddr                  string         `json:"metrics_addr"`
	LogLevel                     string         `json:"log_level"`
	LogBackend                   string         `json:"log_backend"`
	InitialReplicas              int            `json:"initial_replicas"`
}

// parseJson overlays values from the file named by -c/-config. Fields
// missing from the file keep their current values. A file that cannot be
// read or parsed panics.
func parseJson(config *Config, args []string) {
	jsonConfigFile := flagx.ConfigPath(args)
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

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.MetricsAddr, c.MetricsAddr)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogBackend, c.LogBackend)

	if c.SessionTokenValidityDuration.Duration > 0 {
		config.SessionTokenValidityDuration = c.SessionTokenValidityDuration.Duration
	}
	if c.ReplicationTimeout.Duration > 0 {
		config.ReplicationTimeout = c.ReplicationTimeout.Duration
	}
	if c.ChallengeTTL.Duration > 0 {
		config.ChallengeTTL = c.ChallengeTTL.Duration
	}
	if c.RequireSession != nil {
		config.RequireSession = *c.RequireSession
	}
	if c.ChallengeRate > 0 {
		config.ChallengeRate = c.ChallengeRate
	}
	if c.ChallengeBurst > 0 {
		config.ChallengeBurst = c.ChallengeBurst
	}
	if c.InitialReplicas > 0 {
		config.InitialReplicas = c.InitialReplicas
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
