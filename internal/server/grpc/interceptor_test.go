package grpc

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/auctionhouse/internal/common"
	"github.com/dmitrijs2005/auctionhouse/internal/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func withToken(token string) context.Context {
	md := metadata.New(map[string]string{common.SessionTokenHeaderName: token})
	return metadata.NewIncomingContext(context.Background(), md)
}

func issueToken(t *testing.T, username string) string {
	t.Helper()
	tok, err := testIssuer().Issue(username)
	require.NoError(t, err)
	return tok
}

var bidInfo = &grpc.UnaryServerInfo{FullMethod: proto.AuctionService_BidOnAuction_FullMethodName}

func TestInterceptor_NonSessionMethodPasses(t *testing.T) {
	s, _ := newServer(t, Options{RequireSession: true})
	info := &grpc.UnaryServerInfo{FullMethod: proto.AuctionService_ListAuctions_FullMethodName}
	called := false

	resp, err := s.sessionInterceptor(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		called = true
		return "ok", nil
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "ok", resp)
}

func TestInterceptor_RequireSession_MissingToken(t *testing.T) {
	s, _ := newServer(t, Options{RequireSession: true})

	_, err := s.sessionInterceptor(context.Background(), nil, bidInfo, func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not be called when token missing")
		return nil, nil
	})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, "missing session token", status.Convert(err).Message())
}

func TestInterceptor_RequireSession_InvalidToken(t *testing.T) {
	s, _ := newServer(t, Options{RequireSession: true})

	_, err := s.sessionInterceptor(withToken("not-a-jwt"), nil, bidInfo, func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not be called with an invalid token")
		return nil, nil
	})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestInterceptor_ValidTokenSetsUser(t *testing.T) {
	s, _ := newServer(t, Options{RequireSession: true})
	tok := issueToken(t, "alice")

	var got string
	_, err := s.sessionInterceptor(withToken(tok), nil, bidInfo, func(ctx context.Context, req any) (any, error) {
		got, _ = sessionUser(ctx)
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", got)
}

func TestInterceptor_Advisory(t *testing.T) {
	s, _ := newServer(t, Options{})

	for _, ctx := range []context.Context{context.Background(), withToken("garbage")} {
		called := false
		_, err := s.sessionInterceptor(ctx, nil, bidInfo, func(ctx context.Context, req any) (any, error) {
			called = true
			_, ok := sessionUser(ctx)
			assert.False(t, ok)
			return nil, nil
		})
		require.NoError(t, err)
		assert.True(t, called)
	}
}

func TestCheckActor_PermissionDenied(t *testing.T) {
	s, _ := newServer(t, Options{})
	register(t, s, alice)
	register(t, s, bob)
	a := createAuction(t, s, alice, 10, 30)

	ctx := context.WithValue(context.Background(), usernameKey, "mallory")
	_, err := s.BidOnAuction(ctx, &proto.BidRequest{AuctionID: a.ID, Bidder: bob, Amount: 20})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = s.CreateAuction(ctx, &proto.CreateAuctionRequest{Description: "x", Owner: alice, StartingPrice: 1, ReservePrice: 2})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = s.CloseAuction(ctx, &proto.CloseAuctionRequest{AuctionID: a.ID, Requester: alice})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	ctx = context.WithValue(context.Background(), usernameKey, "bob")
	resp, err := s.BidOnAuction(ctx, &proto.BidRequest{AuctionID: a.ID, Bidder: bob, Amount: 20})
	require.NoError(t, err)
	assert.True(t, resp.Status.OK)
}

func TestRequestInterceptor_Records(t *testing.T) {
	rec := &fakeRequests{}
	s, _ := newServer(t, Options{Requests: rec})
	info := &grpc.UnaryServerInfo{FullMethod: proto.AuctionService_Ping_FullMethodName}

	_, _ = s.requestInterceptor(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		return nil, nil
	})
	_, _ = s.requestInterceptor(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		return nil, status.Error(codes.Internal, "x")
	})

	assert.Equal(t, []string{
		proto.AuctionService_Ping_FullMethodName + " OK",
		proto.AuctionService_Ping_FullMethodName + " Internal",
	}, rec.calls)
}
