package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/auctionhouse/internal/logging"
	"github.com/dmitrijs2005/auctionhouse/internal/proto"
	"github.com/dmitrijs2005/auctionhouse/internal/server/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:0", logging.Nop(), &brokenAuctions{}, nil, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err, "Run returned error on graceful stop")
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:99999", logging.Nop(), &brokenAuctions{}, nil, Options{})
	require.Error(t, srv.Run(context.Background()))
}

func serve(t *testing.T, s *GRPCServer) *grpc.ClientConn {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.Serve(ctx, lis)
	}()

	conn, err := grpc.NewClient(lis.Addr().String(), proto.DialOptions()...)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		<-done
	})
	return conn
}

func TestServe_JSONOverTheWire(t *testing.T) {
	s, _ := newServer(t, Options{RequireSession: true})
	conn := serve(t, s)
	client := proto.NewAuctionServiceClient(conn)
	ctx := context.Background()

	reg, err := client.RegisterUser(ctx, &proto.RegisterUserRequest{Name: "Alice", Email: "alice@example.com", Username: "alice"})
	require.NoError(t, err)
	require.True(t, reg.Status.OK)

	_, err = client.CreateAuction(ctx, &proto.CreateAuctionRequest{Description: "Bike", Owner: alice, StartingPrice: 10, ReservePrice: 30})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	ctx = metadata.AppendToOutgoingContext(ctx, "session_token", issueToken(t, "alice"))
	created, err := client.CreateAuction(ctx, &proto.CreateAuctionRequest{Description: "Bike", Owner: alice, StartingPrice: 10, ReservePrice: 30})
	require.NoError(t, err)
	require.True(t, created.Status.OK)

	list, err := client.ListAuctions(ctx, &proto.ListAuctionsRequest{})
	require.NoError(t, err)
	require.Len(t, list.Auctions, 1)
	assert.Equal(t, "Bike", list.Auctions[0].Description)
	assert.Equal(t, alice, list.Auctions[0].Owner)

	_, err = client.BidOnAuction(ctx, &proto.BidRequest{AuctionID: 1, Bidder: ledger.User{Username: "bob"}, Amount: 20})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	ping, err := client.Ping(ctx, &proto.PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", ping.Status)
}

func TestServe_Health(t *testing.T) {
	s, _ := newServer(t, Options{})
	conn := serve(t, s)

	hc := healthpb.NewHealthClient(conn)
	req := &healthpb.HealthCheckRequest{Service: proto.AuctionServiceName}

	// The default JSON subtype carries protobuf messages too.
	for _, subtype := range []string{proto.ContentSubtype, "proto"} {
		resp, err := hc.Check(context.Background(), req, grpc.CallContentSubtype(subtype))
		require.NoError(t, err, subtype)
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus(), subtype)
	}
}
