// Package ledger holds the in-memory auction and user state of one process
// and enforces the bidding state machine:
//
//	Open --bid(amount > price)--> Open --close(owner)--> Closed (removed)
//
// Every exported method takes the ledger lock, so each read-modify-write
// (next id, price check then write) is atomic with respect to concurrent
// callers. The primary uses the validating operations; replicas use Apply.
package ledger

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/benbjohnson/clock"
)

type Ledger struct {
	mu       sync.RWMutex
	clock    clock.Clock
	auctions map[int64]*Auction
	users    map[string]User
}

type Option func(*Ledger)

// WithClock overrides the clock used to stamp new auctions.
func WithClock(c clock.Clock) Option {
	return func(l *Ledger) {
		l.clock = c
	}
}

func New(opts ...Option) *Ledger {
	l := &Ledger{
		clock:    clock.New(),
		auctions: make(map[int64]*Auction),
		users:    make(map[string]User),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CreateAuction inserts a new open auction priced at startingPrice and
// returns it with its assigned id (max id + 1, or 1 for an empty ledger).
func (l *Ledger) CreateAuction(description string, owner User, startingPrice, reservePrice float64) (Auction, error) {
	if strings.TrimSpace(description) == "" {
		return Auction{}, fmt.Errorf("%w: empty description", ErrValidation)
	}
	if owner.Username == "" {
		return Auction{}, fmt.Errorf("%w: missing owner", ErrValidation)
	}
	if !validPrice(startingPrice) || !validPrice(reservePrice) {
		return Auction{}, fmt.Errorf("%w: invalid price", ErrValidation)
	}
	if reservePrice < startingPrice {
		return Auction{}, fmt.Errorf("%w: reserve price below starting price", ErrValidation)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	a := &Auction{
		ID:           l.nextID(),
		Description:  description,
		Owner:        owner,
		CurrentPrice: startingPrice,
		ReservePrice: reservePrice,
		CreatedAt:    l.clock.Now().UTC(),
	}
	l.auctions[a.ID] = a

	return a.Clone(), nil
}

// Bid raises the price of an open auction. It succeeds iff amount is
// strictly greater than the current price; a rejected bid changes nothing.
func (l *Ledger) Bid(id int64, bidder User, amount float64) (Auction, error) {
	if bidder.Username == "" {
		return Auction{}, fmt.Errorf("%w: missing bidder", ErrValidation)
	}
	if !validPrice(amount) {
		return Auction{}, fmt.Errorf("%w: invalid amount", ErrValidation)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.auctions[id]
	if !ok {
		return Auction{}, ErrAuctionNotFound
	}
	if amount <= a.CurrentPrice {
		return a.Clone(), ErrBidTooLow
	}

	a.CurrentPrice = amount
	a.HighestBidder = &bidder

	return a.Clone(), nil
}

// Close removes the auction if requester owns it. See CloseResult for how
// the winner is reported.
func (l *Ledger) Close(id int64, requester User) (CloseResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.auctions[id]
	if !ok {
		return CloseResult{}, ErrAuctionNotFound
	}
	if a.Owner.Username != requester.Username {
		return CloseResult{}, ErrNotOwner
	}

	delete(l.auctions, id)

	return closeResult(a.Clone()), nil
}

func closeResult(a Auction) CloseResult {
	res := CloseResult{Auction: a, Sold: a.Sold()}
	if !res.Sold {
		w := NoWinner
		res.Winner = &w
		return res
	}
	res.Winner = a.HighestBidder
	return res
}

// RegisterUser creates a user. Usernames are unique and "server" is reserved.
func (l *Ledger) RegisterUser(name, email, username string) (User, error) {
	if strings.TrimSpace(username) == "" {
		return User{}, fmt.Errorf("%w: empty username", ErrValidation)
	}
	if username == ReservedUsername {
		return User{}, ErrUsernameTaken
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.users[username]; ok {
		return User{}, ErrUsernameTaken
	}

	u := User{Name: name, Email: email, Username: username}
	l.users[username] = u

	return u, nil
}

func (l *Ledger) User(username string) (User, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	u, ok := l.users[username]
	return u, ok
}

func (l *Ledger) Auction(id int64) (Auction, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	a, ok := l.auctions[id]
	if !ok {
		return Auction{}, false
	}
	return a.Clone(), true
}

// Auctions lists open auctions ordered by id.
func (l *Ledger) Auctions() []Auction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Auction, 0, len(l.auctions))
	for _, a := range l.auctions {
		out = append(out, a.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Users lists registered users ordered by username.
func (l *Ledger) Users() []User {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]User, 0, len(l.users))
	for _, u := range l.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

func (l *Ledger) Snapshot() State {
	return State{Auctions: l.Auctions(), Users: l.Users()}
}

// Apply installs an already validated mutation without re-checking prices or
// ownership. Bids and removals for unknown auctions fail with
// ErrAuctionNotFound, which is what a replica that joined late reports.
func (l *Ledger) Apply(m Mutation) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch m.Kind {
	case MutationCreateAuction:
		if m.Auction == nil || m.Auction.ID <= 0 {
			return fmt.Errorf("%w: create_auction without auction", ErrValidation)
		}
		a := m.Auction.Clone()
		l.auctions[a.ID] = &a

	case MutationBid:
		if m.Bidder == nil {
			return fmt.Errorf("%w: bid without bidder", ErrValidation)
		}
		a, ok := l.auctions[m.AuctionID]
		if !ok {
			return ErrAuctionNotFound
		}
		bidder := *m.Bidder
		a.CurrentPrice = m.Amount
		a.HighestBidder = &bidder

	case MutationRemoveAuction:
		if _, ok := l.auctions[m.AuctionID]; !ok {
			return ErrAuctionNotFound
		}
		delete(l.auctions, m.AuctionID)

	case MutationCreateUser:
		if m.User == nil || m.User.Username == "" {
			return fmt.Errorf("%w: create_user without user", ErrValidation)
		}
		l.users[m.User.Username] = *m.User

	default:
		return fmt.Errorf("%w: unknown mutation %q", ErrValidation, m.Kind)
	}

	return nil
}

// Query answers a read-only request from local state.
func (l *Ledger) Query(q Query) (QueryResult, error) {
	switch q.Kind {
	case QueryListAuctions:
		return QueryResult{Auctions: l.Auctions()}, nil
	case QueryListUsers:
		return QueryResult{Users: l.Users()}, nil
	case QueryGetUser:
		u, ok := l.User(q.Username)
		if !ok {
			return QueryResult{}, nil
		}
		return QueryResult{User: &u}, nil
	default:
		return QueryResult{}, fmt.Errorf("%w: unknown query %q", ErrValidation, q.Kind)
	}
}

// nextID must be called with l.mu held.
func (l *Ledger) nextID() int64 {
	var max int64
	for id := range l.auctions {
		if id > max {
			max = id
		}
	}
	return max + 1
}

func validPrice(p float64) bool {
	return p >= 0 && !math.IsNaN(p) && !math.IsInf(p, 0)
}
