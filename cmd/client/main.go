package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/auctionhouse/internal/client/cli"
	"github.com/dmitrijs2005/auctionhouse/internal/client/client"
	"github.com/dmitrijs2005/auctionhouse/internal/client/config"
)

func main() {

	cfg := config.LoadConfig()

	app, err := cli.NewApp(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, client.ErrServerAuthenticationFailed) {
			os.Exit(2)
		}
		os.Exit(1)
	}

}
