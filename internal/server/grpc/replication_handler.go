package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/auctionhouse/internal/proto"
	"github.com/dmitrijs2005/auctionhouse/internal/server/replication"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Replicate(ctx context.Context, _ *proto.ReplicateRequest) (*proto.ReplicateResponse, error) {
	if s.opts.Spawner == nil {
		return nil, status.Error(codes.FailedPrecondition, "replica spawning is disabled")
	}

	id, addr, err := s.opts.Spawner.SpawnReplica(ctx)
	if err != nil {
		return nil, s.internal(ctx, "spawn replica", err)
	}

	s.logger.Info(ctx, "replica spawned", "member_id", id, "address", addr)
	return &proto.ReplicateResponse{MemberID: id, Address: addr}, nil
}

// Close replies and then stops the primary and its replicas.
func (s *GRPCServer) Close(ctx context.Context, _ *proto.CloseRequest) (*proto.CloseResponse, error) {
	s.logger.Info(ctx, "shutdown requested")
	if s.opts.OnClose != nil {
		go s.opts.OnClose()
	}
	return &proto.CloseResponse{}, nil
}

func (s *GRPCServer) Join(ctx context.Context, req *proto.JoinRequest) (*proto.JoinResponse, error) {
	err := s.auctions.Join(ctx, req.MemberID, req.Address)
	switch {
	case err == nil:
		return &proto.JoinResponse{Members: len(s.auctions.Members())}, nil
	case errors.Is(err, replication.ErrInvalidMember):
		return nil, status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, replication.ErrShutdown):
		return nil, status.Error(codes.FailedPrecondition, err.Error())
	default:
		s.logger.Warn(ctx, "join failed", "member_id", req.MemberID, "address", req.Address, "error", err)
		return nil, status.Error(codes.Unavailable, err.Error())
	}
}

func (s *GRPCServer) Leave(ctx context.Context, req *proto.LeaveRequest) (*proto.LeaveResponse, error) {
	if !s.auctions.Leave(ctx, req.MemberID) {
		return nil, status.Errorf(codes.NotFound, "member %q is not in the group", req.MemberID)
	}
	return &proto.LeaveResponse{}, nil
}
