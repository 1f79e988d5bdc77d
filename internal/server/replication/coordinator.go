// Package replication implements the primary's side of passive replication.
//
// Every accepted mutation is validated and applied on the primary's ledger
// first, then multicast to all joined replicas. The coordinator waits for
// every acknowledgement or the replication timeout, whichever comes first.
// Member failures never change the result returned to the caller: they are
// logged, counted and reported in a MulticastReport. There is no rollback,
// no retry and no eviction.
//
// Reads are sent to every member, the primary included, and the first
// successful answer wins.
package replication

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/dmitrijs2005/auctionhouse/internal/logging"
	"github.com/dmitrijs2005/auctionhouse/internal/server/ledger"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

const DefaultTimeout = 5 * time.Second

// Recorder receives multicast measurements.
type Recorder interface {
	ObserveMulticast(op string, d time.Duration, failed int)
	SetMembers(n int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveMulticast(string, time.Duration, int) {}
func (nopRecorder) SetMembers(int)                              {}

// MulticastReport describes the delivery of one mutation to the remote
// members.
type MulticastReport struct {
	Members int
	Acked   []string
	Failed  map[string]error
	// Err aggregates all member failures; nil when every member acked.
	Err error
}

func (r MulticastReport) OK() bool {
	return r.Err == nil
}

// TimedOut reports whether at least one member missed the deadline.
func (r MulticastReport) TimedOut() bool {
	return errors.Is(r.Err, ErrReplicationTimeout)
}

// FailedIDs returns the ids of members that failed, sorted.
func (r MulticastReport) FailedIDs() []string {
	ids := make([]string, 0, len(r.Failed))
	for id := range r.Failed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

type Coordinator struct {
	// submit serializes mutations so every member sees them in the order
	// the primary applied them.
	submit sync.Mutex

	mu      sync.RWMutex
	members map[string]Member
	closed  bool

	ledger   *ledger.Ledger
	local    *LocalMember
	timeout  time.Duration
	clock    clock.Clock
	dial     Dialer
	recorder Recorder
	logger   logging.Logger
}

type Option func(*Coordinator)

func WithTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithClock(cl clock.Clock) Option {
	return func(c *Coordinator) {
		c.clock = cl
	}
}

func WithDialer(d Dialer) Option {
	return func(c *Coordinator) {
		c.dial = d
	}
}

func WithRecorder(r Recorder) Option {
	return func(c *Coordinator) {
		c.recorder = r
	}
}

func NewCoordinator(l *ledger.Ledger, logger logging.Logger, opts ...Option) *Coordinator {
	c := &Coordinator{
		members:  make(map[string]Member),
		ledger:   l,
		local:    NewLocalMember(l),
		timeout:  DefaultTimeout,
		clock:    clock.New(),
		dial:     DialMember,
		recorder: nopRecorder{},
		logger:   logger.With("module", "replication"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Coordinator) Timeout() time.Duration {
	return c.timeout
}

// Join dials a replica and adds it to the group. A member joining again with
// the same id replaces its previous connection.
func (c *Coordinator) Join(ctx context.Context, id, address string) error {
	if id == "" || id == LocalID || address == "" {
		return fmt.Errorf("%w: id %q address %q", ErrInvalidMember, id, address)
	}

	m, err := c.dial(ctx, id, address)
	if err != nil {
		return err
	}

	if err := c.Add(m); err != nil {
		_ = m.Close()
		return err
	}

	c.logger.Info(ctx, "replica joined", "member_id", id, "address", address)
	return nil
}

// Add puts an already connected member into the group.
func (c *Coordinator) Add(m Member) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrShutdown
	}
	old := c.members[m.ID()]
	c.members[m.ID()] = m
	n := len(c.members)
	c.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}
	c.recorder.SetMembers(n)
	return nil
}

// Leave removes a member. It reports whether the member was present.
func (c *Coordinator) Leave(ctx context.Context, id string) bool {
	c.mu.Lock()
	m, ok := c.members[id]
	delete(c.members, id)
	n := len(c.members)
	c.mu.Unlock()

	if !ok {
		return false
	}

	_ = m.Close()
	c.recorder.SetMembers(n)
	c.logger.Info(ctx, "replica left", "member_id", id)
	return true
}

// Members lists the ids of the remote members, sorted.
func (c *Coordinator) Members() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]string, 0, len(c.members))
	for id := range c.members {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (c *Coordinator) remotes() []Member {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Member, 0, len(c.members))
	for _, m := range c.members {
		out = append(out, m)
	}
	return out
}

func (c *Coordinator) CreateAuction(ctx context.Context, description string, owner ledger.User, startingPrice, reservePrice float64) (ledger.Auction, MulticastReport, error) {
	c.submit.Lock()
	defer c.submit.Unlock()

	a, err := c.ledger.CreateAuction(description, owner, startingPrice, reservePrice)
	if err != nil {
		return ledger.Auction{}, MulticastReport{}, err
	}

	c.logger.Info(ctx, "auction created", "auction_id", a.ID, "owner", owner.Username)
	return a, c.multicast(ctx, ledger.CreateAuctionMutation(a)), nil
}

func (c *Coordinator) Bid(ctx context.Context, auctionID int64, bidder ledger.User, amount float64) (ledger.Auction, MulticastReport, error) {
	c.submit.Lock()
	defer c.submit.Unlock()

	a, err := c.ledger.Bid(auctionID, bidder, amount)
	if err != nil {
		return a, MulticastReport{}, err
	}

	c.logger.Info(ctx, "bid accepted", "auction_id", auctionID, "bidder", bidder.Username, "amount", amount)
	return a, c.multicast(ctx, ledger.BidMutation(auctionID, bidder, amount)), nil
}

func (c *Coordinator) CloseAuction(ctx context.Context, auctionID int64, requester ledger.User) (ledger.CloseResult, MulticastReport, error) {
	c.submit.Lock()
	defer c.submit.Unlock()

	res, err := c.ledger.Close(auctionID, requester)
	if err != nil {
		return ledger.CloseResult{}, MulticastReport{}, err
	}

	c.logger.Info(ctx, "auction closed", "auction_id", auctionID, "sold", res.Sold)
	return res, c.multicast(ctx, ledger.RemoveAuctionMutation(auctionID)), nil
}

func (c *Coordinator) RegisterUser(ctx context.Context, name, email, username string) (ledger.User, MulticastReport, error) {
	c.submit.Lock()
	defer c.submit.Unlock()

	u, err := c.ledger.RegisterUser(name, email, username)
	if err != nil {
		return ledger.User{}, MulticastReport{}, err
	}

	c.logger.Info(ctx, "user registered", "username", username)
	return u, c.multicast(ctx, ledger.CreateUserMutation(u)), nil
}

type delivery struct {
	id  string
	err error
}

// multicast sends m to every remote member and waits for all of them or
// the replication timeout. Members that do not answer in time are reported
// with ErrReplicationTimeout even if they ignore cancellation.
//
// The mutation is already applied on the primary, so the wait is detached
// from the caller: a client deadline or disconnect does not cut it short.
func (c *Coordinator) multicast(ctx context.Context, m ledger.Mutation) MulticastReport {
	members := c.remotes()
	report := MulticastReport{Members: len(members), Failed: make(map[string]error)}
	if len(members) == 0 {
		return report
	}

	start := c.clock.Now()
	ctx, cancel := c.clock.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	results := make(chan delivery, len(members))
	var g errgroup.Group
	for _, mem := range members {
		g.Go(func() error {
			results <- delivery{id: mem.ID(), err: mem.Apply(ctx, m)}
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(results)
	}()

	pending := make(map[string]struct{}, len(members))
	for _, mem := range members {
		pending[mem.ID()] = struct{}{}
	}

collect:
	for len(pending) > 0 {
		select {
		case d, ok := <-results:
			if !ok {
				break collect
			}
			delete(pending, d.id)
			if d.err != nil {
				if errors.Is(d.err, context.DeadlineExceeded) {
					d.err = ErrReplicationTimeout
				}
				report.Failed[d.id] = d.err
				continue
			}
			report.Acked = append(report.Acked, d.id)
		case <-ctx.Done():
			for id := range pending {
				report.Failed[id] = ErrReplicationTimeout
			}
			break collect
		}
	}

	sort.Strings(report.Acked)
	for _, id := range report.FailedIDs() {
		report.Err = multierr.Append(report.Err, fmt.Errorf("member %s: %w", id, report.Failed[id]))
	}

	c.recorder.ObserveMulticast(string(m.Kind), c.clock.Since(start), len(report.Failed))
	if report.Err != nil {
		c.logger.Warn(ctx, "multicast incomplete",
			"mutation", m.String(),
			"members", report.Members,
			"acked", len(report.Acked),
			"error", report.Err)
	}

	return report
}

type answer struct {
	id     string
	result ledger.QueryResult
	err    error
}

// Query polls every member, the primary included, and returns the first
// successful answer.
func (c *Coordinator) Query(ctx context.Context, q ledger.Query) (ledger.QueryResult, error) {
	return c.queryMembers(ctx, append([]Member{c.local}, c.remotes()...), q)
}

func (c *Coordinator) queryMembers(ctx context.Context, members []Member, q ledger.Query) (ledger.QueryResult, error) {
	ctx, cancel := c.clock.WithTimeout(ctx, c.timeout)
	defer cancel()

	answers := make(chan answer, len(members))
	for _, mem := range members {
		go func() {
			res, err := mem.Query(ctx, q)
			answers <- answer{id: mem.ID(), result: res, err: err}
		}()
	}

	var errs error
	for range members {
		select {
		case a := <-answers:
			if a.err == nil {
				return a.result, nil
			}
			errs = multierr.Append(errs, fmt.Errorf("member %s: %w", a.id, a.err))
		case <-ctx.Done():
			return ledger.QueryResult{}, multierr.Append(errs, ErrReplicationTimeout)
		}
	}

	return ledger.QueryResult{}, errs
}

func (c *Coordinator) ListAuctions(ctx context.Context) ([]ledger.Auction, error) {
	res, err := c.Query(ctx, ledger.Query{Kind: ledger.QueryListAuctions})
	if err != nil {
		return nil, err
	}
	return res.Auctions, nil
}

func (c *Coordinator) ListUsers(ctx context.Context) ([]ledger.User, error) {
	res, err := c.Query(ctx, ledger.Query{Kind: ledger.QueryListUsers})
	if err != nil {
		return nil, err
	}
	return res.Users, nil
}

// User looks username up on the primary's own ledger.
func (c *Coordinator) User(username string) (ledger.User, bool) {
	return c.ledger.User(username)
}

// GetUser returns the user and whether the answering member knows it.
func (c *Coordinator) GetUser(ctx context.Context, username string) (ledger.User, bool, error) {
	res, err := c.Query(ctx, ledger.Query{Kind: ledger.QueryGetUser, Username: username})
	if err != nil {
		return ledger.User{}, false, err
	}
	if res.User == nil {
		return ledger.User{}, false, nil
	}
	return *res.User, true, nil
}

// Shutdown asks every remote member to stop, closes the connections and
// empties the group. Further joins are refused.
func (c *Coordinator) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	members := make([]Member, 0, len(c.members))
	for _, m := range c.members {
		members = append(members, m)
	}
	c.members = make(map[string]Member)
	c.closed = true
	c.mu.Unlock()

	c.recorder.SetMembers(0)
	if len(members) == 0 {
		return nil
	}

	ctx, cancel := c.clock.WithTimeout(ctx, c.timeout)
	defer cancel()

	var (
		mu   sync.Mutex
		errs error
	)
	var g errgroup.Group
	for _, m := range members {
		g.Go(func() error {
			err := m.Stop(ctx)
			if cerr := m.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				mu.Lock()
				errs = multierr.Append(errs, fmt.Errorf("stop %s: %w", m.ID(), err))
				mu.Unlock()
			}
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		mu.Lock()
		errs = multierr.Append(errs, fmt.Errorf("stop members: %w", ErrReplicationTimeout))
		mu.Unlock()
	}

	mu.Lock()
	defer mu.Unlock()
	c.logger.Info(ctx, "replication group shut down", "members", len(members), "error", errs)
	return errs
}
