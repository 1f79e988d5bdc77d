// Package server wires the primary: ledger, pinned key store, authenticator,
// replication coordinator, gRPC front end, metrics endpoint and the replicas
// it spawns in-process.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/auctionhouse/internal/logging"
	"github.com/dmitrijs2005/auctionhouse/internal/replica"
	"github.com/dmitrijs2005/auctionhouse/internal/server/auth"
	"github.com/dmitrijs2005/auctionhouse/internal/server/config"
	"github.com/dmitrijs2005/auctionhouse/internal/server/keys"
	"github.com/dmitrijs2005/auctionhouse/internal/server/ledger"
	"github.com/dmitrijs2005/auctionhouse/internal/server/metrics"
	"github.com/dmitrijs2005/auctionhouse/internal/server/replication"
	"golang.org/x/time/rate"

	gs "github.com/dmitrijs2005/auctionhouse/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	ledger      *ledger.Ledger
	metrics     *metrics.Metrics
	coordinator *replication.Coordinator
	auth        *auth.Authenticator

	replicaCtx    context.Context
	replicaCancel context.CancelFunc

	mu       sync.Mutex
	replicas []*replica.Node

	shutdownOnce sync.Once
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogBackend, c.LogLevel, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}
	return newApp(ctx, c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	app := &App{config: c, logger: logger, ledger: ledger.New(), metrics: metrics.New()}

	store, err := app.initKeyStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("key store init error: %w", err)
	}

	app.coordinator = replication.NewCoordinator(app.ledger, logger,
		replication.WithTimeout(c.ReplicationTimeout),
		replication.WithRecorder(app.metrics))

	issuer := auth.NewSessionIssuer([]byte(c.SecretKey), c.SessionTokenValidityDuration, nil)
	app.auth, err = auth.New(store, app.ledger, issuer, logger, auth.Options{
		ChallengeTTL:   c.ChallengeTTL,
		ChallengeRate:  rate.Limit(c.ChallengeRate),
		ChallengeBurst: c.ChallengeBurst,
	})
	if err != nil {
		app.closeDB()
		return nil, fmt.Errorf("auth init error: %w", err)
	}

	app.replicaCtx, app.replicaCancel = context.WithCancel(context.Background())

	return app, nil
}

func (app *App) initKeyStore(ctx context.Context) (keys.Store, error) {
	if app.config.DatabaseDSN == "" {
		app.logger.Info(ctx, "Pinned keys are kept in memory")
		return keys.NewMemoryStore(), nil
	}

	db, err := keys.OpenPostgres(ctx, app.config.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	store := keys.NewPostgresStore(db)
	if err := store.RunMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	app.db = db
	app.logger.Info(ctx, "Pinned keys are kept in PostgreSQL")
	return store, nil
}

func (app *App) closeDB() {
	if app.db != nil {
		_ = app.db.Close()
	}
}

// SpawnReplica starts a replica in this process and adds it to the group.
func (app *App) SpawnReplica(ctx context.Context) (string, string, error) {
	n := replica.New(replica.Config{}, replica.LocalJoiner{Coordinator: app.coordinator}, app.logger)

	// The node outlives the request that created it.
	if err := n.Start(app.replicaCtx); err != nil {
		return "", "", err
	}

	app.mu.Lock()
	app.replicas = append(app.replicas, n)
	app.mu.Unlock()

	app.logger.Info(ctx, "Replica started", "member_id", n.ID(), "address", n.Addr())
	return n.ID(), n.Addr(), nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled, a signal arrives or a client sends
// Close, then stops the replicas and the server.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	server := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.coordinator, app.auth, gs.Options{
		RequireSession: app.config.RequireSession,
		Spawner:        app,
		OnClose:        cancelFunc,
		Requests:       app.metrics,
	})

	var wg sync.WaitGroup
	errCh := make(chan error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.Run(ctx); err != nil {
			app.logger.Error(ctx, "gRPC server failed", "error", err)
			errCh <- err
			cancelFunc()
		}
	}()

	if app.config.MetricsAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.logger.Info(ctx, "Serving metrics", "address", app.config.MetricsAddr)
			if err := app.metrics.Serve(ctx, app.config.MetricsAddr); err != nil {
				app.logger.Error(ctx, "metrics server failed", "error", err)
				errCh <- err
				cancelFunc()
			}
		}()
	}

	for i := 0; i < app.config.InitialReplicas; i++ {
		if _, _, err := app.SpawnReplica(ctx); err != nil {
			app.logger.Warn(ctx, "initial replica failed", "error", err)
		}
	}

	<-ctx.Done()
	app.Shutdown()
	wg.Wait()

	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}

// Shutdown stops every replica and releases resources. It is safe to call
// more than once.
func (app *App) Shutdown() {
	app.shutdownOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), app.coordinator.Timeout()+time.Second)
		defer cancel()

		app.logger.Info(ctx, "Stopping replicas...")
		if err := app.coordinator.Shutdown(ctx); err != nil {
			app.logger.Warn(ctx, "replica shutdown incomplete", "error", err)
		}

		app.replicaCancel()

		app.mu.Lock()
		nodes := append([]*replica.Node(nil), app.replicas...)
		app.mu.Unlock()

		for _, n := range nodes {
			select {
			case <-n.Done():
			case <-ctx.Done():
				app.logger.Warn(ctx, "replica did not stop in time", "member_id", n.ID())
			}
		}

		app.closeDB()
	})
}

func (app *App) Ledger() *ledger.Ledger { return app.ledger }

func (app *App) Coordinator() *replication.Coordinator { return app.coordinator }
