// Package grpc is the network front end of the primary. It serves the
// client-facing AuctionService, the ReplicationService replicas join
// through, and the standard health service.
package grpc

import (
	"context"
	"crypto/ed25519"
	"net"

	"github.com/dmitrijs2005/auctionhouse/internal/logging"
	"github.com/dmitrijs2005/auctionhouse/internal/proto"
	"github.com/dmitrijs2005/auctionhouse/internal/server/ledger"
	"github.com/dmitrijs2005/auctionhouse/internal/server/replication"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type auctionSvc interface {
	RegisterUser(ctx context.Context, name, email, username string) (ledger.User, replication.MulticastReport, error)
	CreateAuction(ctx context.Context, description string, owner ledger.User, startingPrice, reservePrice float64) (ledger.Auction, replication.MulticastReport, error)
	Bid(ctx context.Context, auctionID int64, bidder ledger.User, amount float64) (ledger.Auction, replication.MulticastReport, error)
	CloseAuction(ctx context.Context, auctionID int64, requester ledger.User) (ledger.CloseResult, replication.MulticastReport, error)
	GetUser(ctx context.Context, username string) (ledger.User, bool, error)
	User(username string) (ledger.User, bool)
	ListUsers(ctx context.Context) ([]ledger.User, error)
	ListAuctions(ctx context.Context) ([]ledger.Auction, error)
	Join(ctx context.Context, id, address string) error
	Leave(ctx context.Context, id string) bool
	Members() []string
}

type authSvc interface {
	PublicKey() ed25519.PublicKey
	PinKey(ctx context.Context, username string, key []byte) error
	ResetKey(ctx context.Context, username string) error
	SignChallenge(nonce []byte) ([]byte, error)
	IssueChallenge(ctx context.Context) (string, []byte, error)
	VerifyChallenge(ctx context.Context, sessionID, username string, sig []byte) (string, bool)
	Subject(token string) (string, error)
}

// ReplicaSpawner starts a replica in this process and returns its id and
// address once it has joined.
type ReplicaSpawner interface {
	SpawnReplica(ctx context.Context) (id, address string, err error)
}

type requestRecorder interface {
	ObserveRequest(method, code string)
}

type Options struct {
	// RequireSession rejects mutating calls without a valid session token.
	RequireSession bool
	Spawner        ReplicaSpawner
	// OnClose is invoked after replying to a Close request.
	OnClose  func()
	Requests requestRecorder
}

type GRPCServer struct {
	proto.UnimplementedAuctionServiceServer
	proto.UnimplementedReplicationServiceServer

	address  string
	auctions auctionSvc
	auth     authSvc
	opts     Options
	logger   logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, auctions auctionSvc, auth authSvc, opts Options) *GRPCServer {
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		auctions: auctions,
		auth:     auth,
		opts:     opts,
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve serves on lis until ctx is done.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.requestInterceptor, s.sessionInterceptor))

	proto.RegisterAuctionServiceServer(srv, s)
	proto.RegisterReplicationServiceServer(srv, s)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	hs.SetServingStatus(proto.AuctionServiceName, healthpb.HealthCheckResponse_SERVING)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		hs.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
