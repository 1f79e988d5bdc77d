package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/auctionhouse/internal/flagx"
)

func parseFlags(cfg *Config, osArgs []string) {
	args := flagx.FilterArgs(osArgs, []string{"-a", "-k", "-u", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port of the primary")
	fs.StringVar(&cfg.KeyDir, "k", cfg.KeyDir, "key file directory")
	fs.StringVar(&cfg.Username, "u", cfg.Username, "username to log in as")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
