package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the CLI.
type Config struct {
	ServerEndpointAddr string
	KeyDir             string
	Username           string
	RequestTimeout     time.Duration
}

// FlagsWithValues lists the flags of this package that take a value, so the
// CLI can tell commands apart from flag values.
var FlagsWithValues = []string{"-a", "-k", "-u", "-t", "-c", "-config"}

func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.KeyDir = ".auctionhouse"
	c.Username = ""
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present).
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
