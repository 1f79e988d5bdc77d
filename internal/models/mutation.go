package models

import "fmt"

type MutationKind string

const (
	MutationCreateAuction MutationKind = "create_auction"
	MutationBid           MutationKind = "bid"
	MutationRemoveAuction MutationKind = "remove_auction"
	MutationCreateUser    MutationKind = "create_user"
)

// Mutation is an already validated state change. It carries concrete values
// (the assigned auction id, the accepted amount) so every ledger applying it
// ends up in the same state.
type Mutation struct {
	Kind      MutationKind `json:"kind"`
	Auction   *Auction     `json:"auction,omitempty"`
	User      *User        `json:"user,omitempty"`
	AuctionID int64        `json:"auction_id,omitempty"`
	Bidder    *User        `json:"bidder,omitempty"`
	Amount    float64      `json:"amount,omitempty"`
}

func CreateAuctionMutation(a Auction) Mutation {
	a = a.Clone()
	return Mutation{Kind: MutationCreateAuction, Auction: &a}
}

func BidMutation(auctionID int64, bidder User, amount float64) Mutation {
	return Mutation{Kind: MutationBid, AuctionID: auctionID, Bidder: &bidder, Amount: amount}
}

func RemoveAuctionMutation(auctionID int64) Mutation {
	return Mutation{Kind: MutationRemoveAuction, AuctionID: auctionID}
}

func CreateUserMutation(u User) Mutation {
	return Mutation{Kind: MutationCreateUser, User: &u}
}

func (m Mutation) String() string {
	switch m.Kind {
	case MutationCreateAuction:
		if m.Auction != nil {
			return fmt.Sprintf("%s(%d)", m.Kind, m.Auction.ID)
		}
	case MutationCreateUser:
		if m.User != nil {
			return fmt.Sprintf("%s(%s)", m.Kind, m.User.Username)
		}
	case MutationBid, MutationRemoveAuction:
		return fmt.Sprintf("%s(%d)", m.Kind, m.AuctionID)
	}
	return string(m.Kind)
}

type QueryKind string

const (
	QueryListAuctions QueryKind = "list_auctions"
	QueryGetUser      QueryKind = "get_user"
	QueryListUsers    QueryKind = "list_users"
)

// Query is a read-only request answered by any ledger.
type Query struct {
	Kind     QueryKind `json:"kind"`
	Username string    `json:"username,omitempty"`
}

type QueryResult struct {
	Auctions []Auction `json:"auctions,omitempty"`
	Users    []User    `json:"users,omitempty"`
	User     *User     `json:"user,omitempty"`
}
