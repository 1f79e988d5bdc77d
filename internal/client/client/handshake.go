package client

import (
	"context"
	"crypto/ed25519"

	"github.com/dmitrijs2005/auctionhouse/internal/common"
	"github.com/dmitrijs2005/auctionhouse/internal/cryptox"
)

// challenger is the part of the RPC surface the handshake needs.
type challenger interface {
	ChallengeServer(ctx context.Context, nonce []byte) ([]byte, error)
	GetChallenge(ctx context.Context) (string, []byte, error)
	ReturnChallenge(ctx context.Context, sessionID, username string, signature []byte) (string, bool, error)
}

// Handshake authenticates the server with serverKey and then the user with
// priv. It returns the session token issued by the server.
func Handshake(ctx context.Context, c challenger, username string, priv ed25519.PrivateKey, serverKey ed25519.PublicKey) (string, error) {
	nonce := common.GenerateRandByteArray(common.ChallengeSize)

	sig, err := c.ChallengeServer(ctx, nonce)
	if err != nil {
		return "", err
	}
	if !cryptox.Verify(serverKey, nonce, sig) {
		return "", ErrServerAuthenticationFailed
	}

	sessionID, challenge, err := c.GetChallenge(ctx)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(challenge)

	answer, err := cryptox.Sign(priv, challenge)
	if err != nil {
		return "", err
	}

	token, ok, err := c.ReturnChallenge(ctx, sessionID, username, answer)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrAuthenticationFailed
	}
	return token, nil
}
