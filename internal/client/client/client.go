package client

import (
	"context"
	"crypto/ed25519"

	"github.com/dmitrijs2005/auctionhouse/internal/models"
)

// Client is the API the CLI needs from the primary.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	RegisterUser(ctx context.Context, name, email, username string) (models.User, error)
	GetUser(ctx context.Context, username string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)

	Enroll(ctx context.Context, username string, pub ed25519.PublicKey) (ed25519.PublicKey, error)
	Login(ctx context.Context, username string, priv ed25519.PrivateKey, serverKey ed25519.PublicKey) error
	Logout()

	CreateAuction(ctx context.Context, description string, owner models.User, startingPrice, reservePrice float64) (models.Auction, error)
	Bid(ctx context.Context, auctionID int64, bidder models.User, amount float64) (models.Auction, error)
	CloseAuction(ctx context.Context, auctionID int64, requester models.User) (models.CloseResult, error)
	ListAuctions(ctx context.Context) ([]models.Auction, error)

	Replicate(ctx context.Context) (string, string, error)
	Shutdown(ctx context.Context) error
}
