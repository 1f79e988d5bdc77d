package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuction_CloneDetachesBidder(t *testing.T) {
	bob := User{Name: "Bob", Email: "bob@example.com", Username: "bob"}
	a := Auction{ID: 1, CurrentPrice: 12, ReservePrice: 10, HighestBidder: &bob}

	c := a.Clone()
	c.HighestBidder.Name = "Robert"

	assert.Equal(t, "Bob", a.HighestBidder.Name)
	assert.True(t, a.Sold())
	assert.Nil(t, Auction{}.Clone().HighestBidder)
}

func TestNoWinner(t *testing.T) {
	assert.True(t, NoWinner.IsNoWinner())
	assert.False(t, User{Username: "alice"}.IsNoWinner())
}

func TestMutation_String(t *testing.T) {
	bob := User{Username: "bob"}
	tests := map[string]Mutation{
		"create_auction(7)": CreateAuctionMutation(Auction{ID: 7}),
		"bid(7)":            BidMutation(7, bob, 20),
		"remove_auction(7)": RemoveAuctionMutation(7),
		"create_user(bob)":  CreateUserMutation(bob),
		"create_auction":    {Kind: MutationCreateAuction},
	}
	for want, m := range tests {
		assert.Equal(t, want, m.String())
	}
}
