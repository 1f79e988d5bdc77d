// Package models holds the auction domain records shared by the primary, the
// replicas and the client: users, auctions, close results and the
// replication mutations and queries that travel between ledgers.
package models

import "time"

// ReservedUsername can never be registered. A user with this username stands
// for "no winning bidder" in close results.
const ReservedUsername = "server"

// NoWinner is returned as the winner of an auction that closed below its
// reserve price.
var NoWinner = User{Name: "err", Email: "err", Username: ReservedUsername}

// User is immutable once registered.
type User struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// IsNoWinner reports whether u is the no-winner sentinel.
func (u User) IsNoWinner() bool {
	return u.Username == ReservedUsername
}

type Auction struct {
	ID            int64     `json:"id"`
	Description   string    `json:"description"`
	Owner         User      `json:"owner"`
	CurrentPrice  float64   `json:"current_price"`
	ReservePrice  float64   `json:"reserve_price"`
	HighestBidder *User     `json:"highest_bidder,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Sold reports whether the auction would be sold if it closed now.
func (a Auction) Sold() bool {
	return a.CurrentPrice >= a.ReservePrice
}

// Clone returns a copy that shares no pointers with a.
func (a Auction) Clone() Auction {
	if a.HighestBidder != nil {
		b := *a.HighestBidder
		a.HighestBidder = &b
	}
	return a
}

// CloseResult describes a successfully closed auction.
//
// When the reserve was not met Sold is false and Winner points to NoWinner.
// When it was met Winner is the highest bidder, or nil if the auction sold at
// its starting price without any bid.
type CloseResult struct {
	Auction Auction
	Sold    bool
	Winner  *User
}

// State is a point-in-time copy of a ledger.
type State struct {
	Auctions []Auction `json:"auctions"`
	Users    []User    `json:"users"`
}
