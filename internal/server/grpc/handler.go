package grpc

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/auctionhouse/internal/proto"
	"github.com/dmitrijs2005/auctionhouse/internal/server/ledger"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) internal(ctx context.Context, op string, err error) error {
	s.logger.Error(ctx, op+" failed", "error", err)
	return status.Error(codes.Internal, "internal error")
}

var noSuchUser = proto.Status{Reason: proto.ReasonUserNotFound, Message: "No such user"}

// actor checks the claimed user against the session and swaps it for the
// record the primary registered, so names and emails never come from the
// request. The bool is false when the username is not registered.
func (s *GRPCServer) actor(ctx context.Context, claimed ledger.User) (ledger.User, bool, error) {
	if err := checkActor(ctx, claimed.Username); err != nil {
		return ledger.User{}, false, err
	}
	u, ok := s.auctions.User(claimed.Username)
	return u, ok, nil
}

func (s *GRPCServer) RegisterUser(ctx context.Context, req *proto.RegisterUserRequest) (*proto.RegisterUserResponse, error) {
	s.logger.Info(ctx, "Registration request", "username", req.Username)

	u, rep, err := s.auctions.RegisterUser(ctx, req.Name, req.Email, req.Username)
	if err != nil {
		if st, ok := domainStatus(err); ok {
			return &proto.RegisterUserResponse{Status: st}, nil
		}
		return nil, s.internal(ctx, "register user", err)
	}

	if s.auth != nil {
		if err := s.auth.ResetKey(ctx, u.Username); err != nil {
			return nil, s.internal(ctx, "reset key", err)
		}
	}

	return &proto.RegisterUserResponse{User: &u, Status: okStatus, Replication: replicationOf(rep)}, nil
}

func (s *GRPCServer) GetUser(ctx context.Context, req *proto.GetUserRequest) (*proto.GetUserResponse, error) {
	u, ok, err := s.auctions.GetUser(ctx, req.Username)
	if err != nil {
		return nil, s.internal(ctx, "get user", err)
	}
	if !ok {
		return &proto.GetUserResponse{Status: noSuchUser}, nil
	}

	st := okStatus
	st.Message = fmt.Sprintf("Welcome back, %s", u.Name)
	return &proto.GetUserResponse{User: &u, Status: st}, nil
}

func (s *GRPCServer) ListUsers(ctx context.Context, _ *proto.ListUsersRequest) (*proto.ListUsersResponse, error) {
	users, err := s.auctions.ListUsers(ctx)
	if err != nil {
		return nil, s.internal(ctx, "list users", err)
	}
	return &proto.ListUsersResponse{Users: users}, nil
}

func (s *GRPCServer) CreateAuction(ctx context.Context, req *proto.CreateAuctionRequest) (*proto.CreateAuctionResponse, error) {
	owner, ok, err := s.actor(ctx, req.Owner)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &proto.CreateAuctionResponse{Status: noSuchUser}, nil
	}

	a, rep, err := s.auctions.CreateAuction(ctx, req.Description, owner, req.StartingPrice, req.ReservePrice)
	if err != nil {
		if st, ok := domainStatus(err); ok {
			return &proto.CreateAuctionResponse{Status: st}, nil
		}
		return nil, s.internal(ctx, "create auction", err)
	}

	return &proto.CreateAuctionResponse{Auction: &a, Status: okStatus, Replication: replicationOf(rep)}, nil
}

func (s *GRPCServer) BidOnAuction(ctx context.Context, req *proto.BidRequest) (*proto.BidResponse, error) {
	bidder, ok, err := s.actor(ctx, req.Bidder)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &proto.BidResponse{Status: noSuchUser}, nil
	}

	a, rep, err := s.auctions.Bid(ctx, req.AuctionID, bidder, req.Amount)
	if err != nil {
		st, ok := domainStatus(err)
		if !ok {
			return nil, s.internal(ctx, "bid", err)
		}
		resp := &proto.BidResponse{Status: st}
		if a.ID != 0 {
			resp.Auction = &a
		}
		return resp, nil
	}

	return &proto.BidResponse{Auction: &a, Status: okStatus, Replication: replicationOf(rep)}, nil
}

func (s *GRPCServer) CloseAuction(ctx context.Context, req *proto.CloseAuctionRequest) (*proto.CloseAuctionResponse, error) {
	requester, ok, err := s.actor(ctx, req.Requester)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &proto.CloseAuctionResponse{Status: noSuchUser}, nil
	}

	res, rep, err := s.auctions.CloseAuction(ctx, req.AuctionID, requester)
	if err != nil {
		if st, ok := domainStatus(err); ok {
			return &proto.CloseAuctionResponse{Status: st}, nil
		}
		return nil, s.internal(ctx, "close auction", err)
	}

	return &proto.CloseAuctionResponse{
		Auction:     &res.Auction,
		Sold:        res.Sold,
		Winner:      res.Winner,
		Status:      okStatus,
		Replication: replicationOf(rep),
	}, nil
}

func (s *GRPCServer) ListAuctions(ctx context.Context, _ *proto.ListAuctionsRequest) (*proto.ListAuctionsResponse, error) {
	auctions, err := s.auctions.ListAuctions(ctx)
	if err != nil {
		return nil, s.internal(ctx, "list auctions", err)
	}
	return &proto.ListAuctionsResponse{Auctions: auctions}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *proto.PingRequest) (*proto.PingResponse, error) {
	return &proto.PingResponse{Status: "OK"}, nil
}
