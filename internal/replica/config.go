package replica

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/auctionhouse/internal/flagx"
)

// Config holds the settings of a replica node.
type Config struct {
	// ID defaults to a random uuid.
	ID string
	// ListenAddr defaults to an ephemeral loopback port.
	ListenAddr string
	// PrimaryAddr is only used by standalone replicas.
	PrimaryAddr string
	LogLevel    string
	LogBackend  string
}

func (c *Config) LoadDefaults() {
	c.ListenAddr = "127.0.0.1:0"
	c.PrimaryAddr = "127.0.0.1:50051"
	c.LogLevel = "info"
	c.LogBackend = "slog"
}

// LoadConfig applies defaults and then command-line flags:
//
//	-a string   listen address
//	-p string   primary address
//	-i string   member id
//	-l string   log level
//	-b string   log backend (slog, zap)
func LoadConfig() *Config {
	return loadConfig(os.Args[1:])
}

func loadConfig(osArgs []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()

	args := flagx.FilterArgs(osArgs, []string{"-a", "-p", "-i", "-l", "-b"})

	fs := flag.NewFlagSet("replica", flag.ContinueOnError)
	fs.StringVar(&cfg.ListenAddr, "a", cfg.ListenAddr, "address to listen on")
	fs.StringVar(&cfg.PrimaryAddr, "p", cfg.PrimaryAddr, "primary address")
	fs.StringVar(&cfg.ID, "i", cfg.ID, "member id")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogBackend, "b", cfg.LogBackend, "log backend (slog, zap)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	return cfg
}
