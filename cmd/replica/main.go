package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/auctionhouse/internal/logging"
	"github.com/dmitrijs2005/auctionhouse/internal/replica"
)

func main() {

	cfg := replica.LoadConfig()

	logger, err := logging.New(cfg.LogBackend, cfg.LogLevel, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}

	joiner, err := replica.NewRemoteJoiner(cfg.PrimaryAddr)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer joiner.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	node := replica.New(*cfg, joiner, logger)
	if err := node.Start(ctx); err != nil {
		log.Fatalf("%v", err)
	}

	<-node.Done()

}
