package grpc

import (
	"context"

	"github.com/dmitrijs2005/auctionhouse/internal/common"
	"github.com/dmitrijs2005/auctionhouse/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const usernameKey ctxKey = "username"

// sessionMethods change state on behalf of a user or the whole system.
var sessionMethods = map[string]bool{
	proto.AuctionService_CreateAuction_FullMethodName: true,
	proto.AuctionService_BidOnAuction_FullMethodName:  true,
	proto.AuctionService_CloseAuction_FullMethodName:  true,
	proto.AuctionService_Replicate_FullMethodName:     true,
	proto.AuctionService_Close_FullMethodName:         true,
}

// sessionInterceptor attaches the session's username to the context. With
// RequireSession, session methods without a valid token are rejected.
func (s *GRPCServer) sessionInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if !sessionMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	var token string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.SessionTokenHeaderName); len(values) > 0 {
			token = values[0]
		}
	}

	if token == "" {
		if s.opts.RequireSession {
			return nil, status.Error(codes.Unauthenticated, "missing session token")
		}
		return handler(ctx, req)
	}

	username, err := s.auth.Subject(token)
	if err != nil {
		if s.opts.RequireSession {
			return nil, status.Error(codes.Unauthenticated, err.Error())
		}
		s.logger.Debug(ctx, "ignoring invalid session token", "method", info.FullMethod, "error", err)
		return handler(ctx, req)
	}

	return handler(context.WithValue(ctx, usernameKey, username), req)
}

// requestInterceptor counts requests by method and resulting code.
func (s *GRPCServer) requestInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	resp, err := handler(ctx, req)
	if s.opts.Requests != nil {
		s.opts.Requests.ObserveRequest(info.FullMethod, status.Code(err).String())
	}
	return resp, err
}

func sessionUser(ctx context.Context) (string, bool) {
	u, ok := ctx.Value(usernameKey).(string)
	return u, ok
}

// checkActor refuses to act for a user other than the session's.
func checkActor(ctx context.Context, actor string) error {
	if u, ok := sessionUser(ctx); ok && u != actor {
		return status.Errorf(codes.PermissionDenied, "session belongs to %q, not %q", u, actor)
	}
	return nil
}
