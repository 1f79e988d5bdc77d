package replication

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/auctionhouse/internal/proto"
	"github.com/dmitrijs2005/auctionhouse/internal/server/ledger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// LocalID is the member id of the primary's own ledger.
const LocalID = "primary"

// Member is one ledger in the replication group.
type Member interface {
	ID() string
	// Apply delivers an already validated mutation.
	Apply(ctx context.Context, m ledger.Mutation) error
	Query(ctx context.Context, q ledger.Query) (ledger.QueryResult, error)
	// Stop asks the member process to shut down.
	Stop(ctx context.Context) error
	// Close releases the connection to the member.
	Close() error
}

// Dialer connects to the replica listening on address.
type Dialer func(ctx context.Context, id, address string) (Member, error)

// LocalMember exposes the primary's ledger as a group member.
type LocalMember struct {
	ledger *ledger.Ledger
}

func NewLocalMember(l *ledger.Ledger) *LocalMember {
	return &LocalMember{ledger: l}
}

func (m *LocalMember) ID() string { return LocalID }

func (m *LocalMember) Apply(_ context.Context, mut ledger.Mutation) error {
	return m.ledger.Apply(mut)
}

func (m *LocalMember) Query(_ context.Context, q ledger.Query) (ledger.QueryResult, error) {
	return m.ledger.Query(q)
}

func (m *LocalMember) Stop(context.Context) error { return nil }

func (m *LocalMember) Close() error { return nil }

// RemoteMember is a replica reached over gRPC.
type RemoteMember struct {
	id      string
	address string
	conn    *grpc.ClientConn
	client  proto.ReplicaServiceClient
}

// DialMember opens a connection to a replica and checks that it reports
// SERVING on the standard health service.
func DialMember(ctx context.Context, id, address string) (Member, error) {
	conn, err := grpc.NewClient(address, proto.DialOptions()...)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", address, err)
	}

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{},
		grpc.CallContentSubtype("proto"))
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("health check %s: %w", address, err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		_ = conn.Close()
		return nil, fmt.Errorf("replica %s at %s is %s", id, address, resp.GetStatus())
	}

	return &RemoteMember{
		id:      id,
		address: address,
		conn:    conn,
		client:  proto.NewReplicaServiceClient(conn),
	}, nil
}

func (m *RemoteMember) ID() string { return m.id }

func (m *RemoteMember) Address() string { return m.address }

func (m *RemoteMember) Apply(ctx context.Context, mut ledger.Mutation) error {
	_, err := m.client.Apply(ctx, &proto.ApplyRequest{Mutation: mut})
	return mapError(err)
}

func (m *RemoteMember) Query(ctx context.Context, q ledger.Query) (ledger.QueryResult, error) {
	resp, err := m.client.Query(ctx, &proto.QueryRequest{Query: q})
	if err != nil {
		return ledger.QueryResult{}, mapError(err)
	}
	return resp.Result, nil
}

func (m *RemoteMember) Stop(ctx context.Context) error {
	_, err := m.client.Stop(ctx, &proto.StopRequest{})
	return mapError(err)
}

func (m *RemoteMember) Close() error {
	return m.conn.Close()
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrReplicationTimeout
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.DeadlineExceeded:
		return ErrReplicationTimeout
	case codes.NotFound:
		return ledger.ErrAuctionNotFound
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ledger.ErrValidation, st.Message())
	case codes.Unavailable:
		return fmt.Errorf("%w: %s", ErrMemberUnavailable, st.Message())
	default:
		return err
	}
}
