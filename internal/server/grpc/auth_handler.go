package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/auctionhouse/internal/common"
	"github.com/dmitrijs2005/auctionhouse/internal/proto"
	"github.com/dmitrijs2005/auctionhouse/internal/server/auth"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) GetChallenge(ctx context.Context, _ *proto.GetChallengeRequest) (*proto.GetChallengeResponse, error) {
	id, nonce, err := s.auth.IssueChallenge(ctx)
	if err != nil {
		if errors.Is(err, common.ErrorRateLimited) {
			return nil, status.Error(codes.ResourceExhausted, "too many challenges, retry later")
		}
		return nil, s.internal(ctx, "issue challenge", err)
	}
	return &proto.GetChallengeResponse{SessionID: id, Nonce: nonce}, nil
}

func (s *GRPCServer) ChallengeServer(ctx context.Context, req *proto.ChallengeServerRequest) (*proto.ChallengeServerResponse, error) {
	sig, err := s.auth.SignChallenge(req.Nonce)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidNonce) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return nil, s.internal(ctx, "sign challenge", err)
	}
	return &proto.ChallengeServerResponse{Signature: sig}, nil
}

func (s *GRPCServer) ReturnChallenge(ctx context.Context, req *proto.ReturnChallengeRequest) (*proto.ReturnChallengeResponse, error) {
	token, ok := s.auth.VerifyChallenge(ctx, req.SessionID, req.Username, req.Signature)
	return &proto.ReturnChallengeResponse{Verified: ok, SessionToken: token}, nil
}

func (s *GRPCServer) GetPublicKey(ctx context.Context, _ *proto.GetPublicKeyRequest) (*proto.GetPublicKeyResponse, error) {
	return &proto.GetPublicKeyResponse{PublicKey: s.auth.PublicKey()}, nil
}

func (s *GRPCServer) SendPublicKey(ctx context.Context, req *proto.SendPublicKeyRequest) (*proto.SendPublicKeyResponse, error) {
	err := s.auth.PinKey(ctx, req.Username, req.PublicKey)
	switch {
	case err == nil:
		return &proto.SendPublicKeyResponse{}, nil
	case errors.Is(err, auth.ErrUnknownUser):
		return nil, status.Error(codes.NotFound, err.Error())
	case errors.Is(err, auth.ErrMalformedKey):
		return nil, status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, auth.ErrKeyAlreadyPinned):
		return nil, status.Error(codes.AlreadyExists, err.Error())
	default:
		return nil, s.internal(ctx, "pin key", err)
	}
}
