// Package replica implements a passive replica: a private ledger that only
// applies mutations delivered by the primary's coordinator and answers its
// queries. Replicas never serve clients.
package replica

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/dmitrijs2005/auctionhouse/internal/logging"
	"github.com/dmitrijs2005/auctionhouse/internal/proto"
	"github.com/dmitrijs2005/auctionhouse/internal/server/ledger"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// Joiner enters and leaves the primary's replication group.
type Joiner interface {
	Join(ctx context.Context, id, address string) error
	Leave(ctx context.Context, id string) error
}

type Node struct {
	id         string
	listenAddr string
	ledger     *ledger.Ledger
	joiner     Joiner
	logger     logging.Logger

	server *grpc.Server
	health *health.Server
	addr   string

	stopOnce sync.Once
	done     chan struct{}
}

func New(cfg Config, joiner Joiner, logger logging.Logger) *Node {
	id := cfg.ID
	if id == "" {
		id = uuid.NewString()
	}
	listen := cfg.ListenAddr
	if listen == "" {
		listen = "127.0.0.1:0"
	}

	return &Node{
		id:         id,
		listenAddr: listen,
		ledger:     ledger.New(),
		joiner:     joiner,
		logger:     logger.With("module", "replica", "member_id", id),
		done:       make(chan struct{}),
	}
}

func (n *Node) ID() string { return n.id }

// Addr is the address the node listens on; empty before Start.
func (n *Node) Addr() string { return n.addr }

func (n *Node) Ledger() *ledger.Ledger { return n.ledger }

// Done is closed once the node has stopped serving.
func (n *Node) Done() <-chan struct{} { return n.done }

// Start begins serving and joins the primary. When ctx is cancelled the node
// leaves the group (best effort) and stops.
func (n *Node) Start(ctx context.Context) error {
	lis, err := net.Listen("tcp", n.listenAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", n.listenAddr, err)
	}
	n.addr = lis.Addr().String()

	n.server = grpc.NewServer()
	n.health = health.NewServer()
	proto.RegisterReplicaServiceServer(n.server, &service{node: n})
	healthpb.RegisterHealthServer(n.server, n.health)
	n.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	go func() {
		defer close(n.done)
		if err := n.server.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			n.logger.Error(ctx, "replica server failed", "error", err)
		}
	}()

	n.logger.Info(ctx, "replica listening", "address", n.addr)

	if err := n.joiner.Join(ctx, n.id, n.addr); err != nil {
		n.Stop()
		<-n.done
		return fmt.Errorf("join primary: %w", err)
	}
	n.logger.Info(ctx, "joined primary")

	go func() {
		select {
		case <-ctx.Done():
			leaveCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := n.joiner.Leave(leaveCtx, n.id); err != nil {
				n.logger.Warn(leaveCtx, "leave primary", "error", err)
			}
			n.Stop()
		case <-n.done:
		}
	}()

	return nil
}

// Stop shuts the server down. It is safe to call more than once.
func (n *Node) Stop() {
	n.stopOnce.Do(func() {
		if n.server == nil {
			close(n.done)
			return
		}
		n.health.Shutdown()
		n.server.GracefulStop()
	})
}

// service is the ReplicaService endpoint of a node.
type service struct {
	proto.UnimplementedReplicaServiceServer
	node *Node
}

func (s *service) Apply(ctx context.Context, req *proto.ApplyRequest) (*proto.ApplyResponse, error) {
	if err := s.node.ledger.Apply(req.Mutation); err != nil {
		s.node.logger.Warn(ctx, "apply failed", "mutation", req.Mutation.String(), "error", err)
		return nil, toStatus(err)
	}
	s.node.logger.Debug(ctx, "applied", "mutation", req.Mutation.String())
	return &proto.ApplyResponse{}, nil
}

func (s *service) Query(_ context.Context, req *proto.QueryRequest) (*proto.QueryResponse, error) {
	res, err := s.node.ledger.Query(req.Query)
	if err != nil {
		return nil, toStatus(err)
	}
	return &proto.QueryResponse{Result: res}, nil
}

// Stop replies first and shuts the node down afterwards.
func (s *service) Stop(ctx context.Context, _ *proto.StopRequest) (*proto.StopResponse, error) {
	s.node.logger.Info(ctx, "stop requested by primary")
	go s.node.Stop()
	return &proto.StopResponse{}, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, ledger.ErrAuctionNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, ledger.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
