package ledger

import "github.com/dmitrijs2005/auctionhouse/internal/models"

// The ledger works on the shared records in models; these aliases keep
// server code reading in ledger terms.
type (
	User         = models.User
	Auction      = models.Auction
	CloseResult  = models.CloseResult
	State        = models.State
	Mutation     = models.Mutation
	MutationKind = models.MutationKind
	Query        = models.Query
	QueryKind    = models.QueryKind
	QueryResult  = models.QueryResult
)

const (
	ReservedUsername = models.ReservedUsername

	MutationCreateAuction = models.MutationCreateAuction
	MutationBid           = models.MutationBid
	MutationRemoveAuction = models.MutationRemoveAuction
	MutationCreateUser    = models.MutationCreateUser

	QueryListAuctions = models.QueryListAuctions
	QueryGetUser      = models.QueryGetUser
	QueryListUsers    = models.QueryListUsers
)

var (
	NoWinner = models.NoWinner

	ErrValidation      = models.ErrValidation
	ErrNotOwner        = models.ErrNotOwner
	ErrAuctionNotFound = models.ErrAuctionNotFound
	ErrBidTooLow       = models.ErrBidTooLow
	ErrUsernameTaken   = models.ErrUsernameTaken

	CreateAuctionMutation = models.CreateAuctionMutation
	BidMutation           = models.BidMutation
	RemoveAuctionMutation = models.RemoveAuctionMutation
	CreateUserMutation    = models.CreateUserMutation
)
