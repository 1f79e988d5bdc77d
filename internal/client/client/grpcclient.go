package client

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/auctionhouse/internal/common"
	"github.com/dmitrijs2005/auctionhouse/internal/cryptox"
	"github.com/dmitrijs2005/auctionhouse/internal/models"
	pb "github.com/dmitrijs2005/auctionhouse/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// ReplicationWarning describes a mutation that was accepted by the primary
// but not acknowledged by every replica.
type ReplicationWarning struct {
	Method string
	pb.Replication
}

var _ Client = (*GRPCClient)(nil)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.AuctionServiceClient

	mu           sync.RWMutex
	sessionToken string

	onWarning func(ReplicationWarning)
}

// Option configures a GRPCClient.
type Option func(*GRPCClient)

// WithReplicationWarnings registers fn to be called whenever a mutating
// call reports incomplete replication.
func WithReplicationWarnings(fn func(ReplicationWarning)) Option {
	return func(c *GRPCClient) { c.onWarning = fn }
}

func NewAuctionClient(endpointURL string, opts ...Option) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	for _, o := range opts {
		o(c)
	}

	conn, err := grpc.NewClient(endpointURL, pb.DialOptions(grpc.WithUnaryInterceptor(c.sessionTokenInterceptor))...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = pb.NewAuctionServiceClient(conn)
	return c, nil
}

func withSessionToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.SessionTokenHeaderName, token)
	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) sessionTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if token := s.token(); token != "" {
		ctx = withSessionToken(ctx, token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func (s *GRPCClient) token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionToken
}

func (s *GRPCClient) setToken(token string) {
	s.mu.Lock()
	s.sessionToken = token
	s.mu.Unlock()
}

// LoggedIn reports whether a session token is held.
func (s *GRPCClient) LoggedIn() bool {
	return s.token() != ""
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &pb.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) RegisterUser(ctx context.Context, name, email, username string) (models.User, error) {
	resp, err := s.client.RegisterUser(ctx, &pb.RegisterUserRequest{Name: name, Email: email, Username: username})
	if err != nil {
		return models.User{}, s.mapError(err)
	}
	s.warn(pb.AuctionService_RegisterUser_FullMethodName, resp.Status, resp.Replication)
	if err := statusError(resp.Status); err != nil {
		return models.User{}, err
	}
	return derefUser(resp.User), nil
}

func (s *GRPCClient) GetUser(ctx context.Context, username string) (models.User, error) {
	resp, err := s.client.GetUser(ctx, &pb.GetUserRequest{Username: username})
	if err != nil {
		return models.User{}, s.mapError(err)
	}
	if err := statusError(resp.Status); err != nil {
		return models.User{}, err
	}
	return derefUser(resp.User), nil
}

func (s *GRPCClient) ListUsers(ctx context.Context) ([]models.User, error) {
	resp, err := s.client.ListUsers(ctx, &pb.ListUsersRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Users, nil
}

// Enroll pins pub as the user's key on the server and returns the server's
// public key, which the caller should store for later logins.
func (s *GRPCClient) Enroll(ctx context.Context, username string, pub ed25519.PublicKey) (ed25519.PublicKey, error) {
	if _, err := s.client.SendPublicKey(ctx, &pb.SendPublicKeyRequest{Username: username, PublicKey: pub}); err != nil {
		return nil, s.mapError(err)
	}

	resp, err := s.client.GetPublicKey(ctx, &pb.GetPublicKeyRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	key, err := cryptox.ParsePublicKey(resp.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("server key: %w", err)
	}
	return key, nil
}

// Login runs Handshake and keeps the issued session token for later calls.
func (s *GRPCClient) Login(ctx context.Context, username string, priv ed25519.PrivateKey, serverKey ed25519.PublicKey) error {
	token, err := Handshake(ctx, s, username, priv, serverKey)
	if err != nil {
		return err
	}
	s.setToken(token)
	return nil
}

func (s *GRPCClient) Logout() {
	s.setToken("")
}

func (s *GRPCClient) ChallengeServer(ctx context.Context, nonce []byte) ([]byte, error) {
	resp, err := s.client.ChallengeServer(ctx, &pb.ChallengeServerRequest{Nonce: nonce})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Signature, nil
}

func (s *GRPCClient) GetChallenge(ctx context.Context) (string, []byte, error) {
	resp, err := s.client.GetChallenge(ctx, &pb.GetChallengeRequest{})
	if err != nil {
		return "", nil, s.mapError(err)
	}
	return resp.SessionID, resp.Nonce, nil
}

func (s *GRPCClient) ReturnChallenge(ctx context.Context, sessionID, username string, signature []byte) (string, bool, error) {
	resp, err := s.client.ReturnChallenge(ctx, &pb.ReturnChallengeRequest{SessionID: sessionID, Username: username, Signature: signature})
	if err != nil {
		return "", false, s.mapError(err)
	}
	return resp.SessionToken, resp.Verified, nil
}

func (s *GRPCClient) CreateAuction(ctx context.Context, description string, owner models.User, startingPrice, reservePrice float64) (models.Auction, error) {
	resp, err := s.client.CreateAuction(ctx, &pb.CreateAuctionRequest{
		Description:   description,
		Owner:         owner,
		StartingPrice: startingPrice,
		ReservePrice:  reservePrice,
	})
	if err != nil {
		return models.Auction{}, s.mapError(err)
	}
	s.warn(pb.AuctionService_CreateAuction_FullMethodName, resp.Status, resp.Replication)
	if err := statusError(resp.Status); err != nil {
		return models.Auction{}, err
	}
	return derefAuction(resp.Auction), nil
}

// Bid places a bid. A bid that is too low returns models.ErrBidTooLow along
// with the auction as it currently stands.
func (s *GRPCClient) Bid(ctx context.Context, auctionID int64, bidder models.User, amount float64) (models.Auction, error) {
	resp, err := s.client.BidOnAuction(ctx, &pb.BidRequest{AuctionID: auctionID, Bidder: bidder, Amount: amount})
	if err != nil {
		return models.Auction{}, s.mapError(err)
	}
	s.warn(pb.AuctionService_BidOnAuction_FullMethodName, resp.Status, resp.Replication)
	return derefAuction(resp.Auction), statusError(resp.Status)
}

func (s *GRPCClient) CloseAuction(ctx context.Context, auctionID int64, requester models.User) (models.CloseResult, error) {
	resp, err := s.client.CloseAuction(ctx, &pb.CloseAuctionRequest{AuctionID: auctionID, Requester: requester})
	if err != nil {
		return models.CloseResult{}, s.mapError(err)
	}
	s.warn(pb.AuctionService_CloseAuction_FullMethodName, resp.Status, resp.Replication)
	if err := statusError(resp.Status); err != nil {
		return models.CloseResult{}, err
	}
	return models.CloseResult{Auction: derefAuction(resp.Auction), Sold: resp.Sold, Winner: resp.Winner}, nil
}

func (s *GRPCClient) ListAuctions(ctx context.Context) ([]models.Auction, error) {
	resp, err := s.client.ListAuctions(ctx, &pb.ListAuctionsRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Auctions, nil
}

// Replicate asks the primary to start another replica and returns its
// member id and address.
func (s *GRPCClient) Replicate(ctx context.Context) (string, string, error) {
	resp, err := s.client.Replicate(ctx, &pb.ReplicateRequest{})
	if err != nil {
		return "", "", s.mapError(err)
	}
	return resp.MemberID, resp.Address, nil
}

// Shutdown asks the primary to stop its replicas and exit.
func (s *GRPCClient) Shutdown(ctx context.Context) error {
	if _, err := s.client.Close(ctx, &pb.CloseRequest{}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) warn(method string, st pb.Status, r pb.Replication) {
	if s.onWarning == nil || !st.OK {
		return
	}
	if r.Warning == "" && len(r.Failed) == 0 {
		return
	}
	s.onWarning(ReplicationWarning{Method: method, Replication: r})
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.ResourceExhausted:
		return ErrRateLimited
	case codes.NotFound:
		return ErrUserNotFound
	case codes.AlreadyExists:
		return ErrKeyAlreadyPinned
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidArgument, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

var reasonErrors = map[string]error{
	pb.ReasonValidation:      models.ErrValidation,
	pb.ReasonNotOwner:        models.ErrNotOwner,
	pb.ReasonAuctionNotFound: models.ErrAuctionNotFound,
	pb.ReasonBidTooLow:       models.ErrBidTooLow,
	pb.ReasonUsernameTaken:   models.ErrUsernameTaken,
	pb.ReasonUserNotFound:    ErrUserNotFound,
}

// statusError turns a rejection status into the matching sentinel error.
func statusError(st pb.Status) error {
	if st.OK {
		return nil
	}
	if err, ok := reasonErrors[st.Reason]; ok {
		if st.Message == "" || st.Message == err.Error() {
			return err
		}
		return fmt.Errorf("%w: %s", err, st.Message)
	}
	if st.Message == "" {
		return errors.New(st.Reason)
	}
	return errors.New(st.Message)
}

func derefUser(u *models.User) models.User {
	if u == nil {
		return models.User{}
	}
	return *u
}

func derefAuction(a *models.Auction) models.Auction {
	if a == nil {
		return models.Auction{}
	}
	return *a
}
