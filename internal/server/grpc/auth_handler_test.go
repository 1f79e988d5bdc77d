package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/auctionhouse/internal/common"
	"github.com/dmitrijs2005/auctionhouse/internal/cryptox"
	"github.com/dmitrijs2005/auctionhouse/internal/logging"
	"github.com/dmitrijs2005/auctionhouse/internal/proto"
	"github.com/dmitrijs2005/auctionhouse/internal/server/auth"
	"github.com/dmitrijs2005/auctionhouse/internal/server/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestHandshake_ThroughHandlers(t *testing.T) {
	ctx := context.Background()
	s, _ := newServer(t, Options{})
	register(t, s, alice)

	pub, priv, err := cryptox.GenerateSigningKey()
	require.NoError(t, err)

	_, err = s.SendPublicKey(ctx, &proto.SendPublicKeyRequest{Username: "alice", PublicKey: pub})
	require.NoError(t, err)

	serverKey, err := s.GetPublicKey(ctx, &proto.GetPublicKeyRequest{})
	require.NoError(t, err)

	// Client challenges the server first.
	nonce := common.GenerateRandByteArray(32)
	sc, err := s.ChallengeServer(ctx, &proto.ChallengeServerRequest{Nonce: nonce})
	require.NoError(t, err)
	assert.True(t, cryptox.Verify(serverKey.PublicKey, nonce, sc.Signature))

	ch, err := s.GetChallenge(ctx, &proto.GetChallengeRequest{})
	require.NoError(t, err)
	require.Len(t, ch.Nonce, common.ChallengeSize)

	sig, err := cryptox.Sign(priv, ch.Nonce)
	require.NoError(t, err)

	rc, err := s.ReturnChallenge(ctx, &proto.ReturnChallengeRequest{SessionID: ch.SessionID, Username: "alice", Signature: sig})
	require.NoError(t, err)
	assert.True(t, rc.Verified)
	assert.NotEmpty(t, rc.SessionToken)

	// Replay fails as a result, not an error.
	rc, err = s.ReturnChallenge(ctx, &proto.ReturnChallengeRequest{SessionID: ch.SessionID, Username: "alice", Signature: sig})
	require.NoError(t, err)
	assert.False(t, rc.Verified)
	assert.Empty(t, rc.SessionToken)
}

func TestSendPublicKey_Codes(t *testing.T) {
	ctx := context.Background()
	s, _ := newServer(t, Options{})
	register(t, s, alice)

	pub, _, _ := cryptox.GenerateSigningKey()
	other, _, _ := cryptox.GenerateSigningKey()

	_, err := s.SendPublicKey(ctx, &proto.SendPublicKeyRequest{Username: "ghost", PublicKey: pub})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = s.SendPublicKey(ctx, &proto.SendPublicKeyRequest{Username: "alice", PublicKey: []byte{1, 2, 3}})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.SendPublicKey(ctx, &proto.SendPublicKeyRequest{Username: "alice", PublicKey: pub})
	require.NoError(t, err)
	_, err = s.SendPublicKey(ctx, &proto.SendPublicKeyRequest{Username: "alice", PublicKey: pub})
	require.NoError(t, err)

	_, err = s.SendPublicKey(ctx, &proto.SendPublicKeyRequest{Username: "alice", PublicKey: other})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))
}

func TestChallengeServer_InvalidNonce(t *testing.T) {
	s, _ := newServer(t, Options{})

	_, err := s.ChallengeServer(context.Background(), &proto.ChallengeServerRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.ChallengeServer(context.Background(), &proto.ChallengeServerRequest{Nonce: make([]byte, auth.MaxClientNonce+1)})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGetChallenge_RateLimited(t *testing.T) {
	opts := auth.DefaultOptions()
	opts.ChallengeRate = rate.Every(time.Hour)
	opts.ChallengeBurst = 1

	l := ledger.New()
	s := NewGRPCServer("", logging.Nop(), &brokenAuctions{}, newAuthenticator(t, l, opts), Options{})

	_, err := s.GetChallenge(context.Background(), &proto.GetChallengeRequest{})
	require.NoError(t, err)
	_, err = s.GetChallenge(context.Background(), &proto.GetChallengeRequest{})
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))
}
