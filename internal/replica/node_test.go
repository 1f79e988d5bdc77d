package replica

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/auctionhouse/internal/logging"
	"github.com/dmitrijs2005/auctionhouse/internal/proto"
	"github.com/dmitrijs2005/auctionhouse/internal/server/ledger"
	"github.com/dmitrijs2005/auctionhouse/internal/server/replication"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	alice = ledger.User{Name: "Alice", Email: "alice@example.com", Username: "alice"}
	bob   = ledger.User{Name: "Bob", Email: "bob@example.com", Username: "bob"}
)

type fakeJoiner struct {
	mu      sync.Mutex
	joinErr error
	joined  []string
	left    []string
}

func (f *fakeJoiner) Join(_ context.Context, id, address string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.joinErr != nil {
		return f.joinErr
	}
	f.joined = append(f.joined, id+"@"+address)
	return nil
}

func (f *fakeJoiner) Leave(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.left = append(f.left, id)
	return nil
}

func (f *fakeJoiner) leftIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.left...)
}

func waitDone(t *testing.T, n *Node) {
	t.Helper()
	select {
	case <-n.Done():
	case <-time.After(5 * time.Second):
		t.Fatalf("node %s did not stop", n.ID())
	}
}

func startNode(t *testing.T, j Joiner, id string) *Node {
	t.Helper()
	n := New(Config{ID: id}, j, logging.Nop())
	require.NoError(t, n.Start(context.Background()))
	t.Cleanup(func() {
		n.Stop()
		waitDone(t, n)
	})
	return n
}

func TestNode_StartJoinsWithItsAddress(t *testing.T) {
	j := &fakeJoiner{}
	n := startNode(t, j, "r1")

	require.NotEmpty(t, n.Addr())
	assert.Equal(t, []string{"r1@" + n.Addr()}, j.joined)
}

func TestNode_DefaultID(t *testing.T) {
	n := New(Config{}, &fakeJoiner{}, logging.Nop())
	assert.NotEmpty(t, n.ID())
}

func TestNode_JoinFailureStopsNode(t *testing.T) {
	j := &fakeJoiner{joinErr: errors.New("primary down")}
	n := New(Config{ID: "r1"}, j, logging.Nop())

	err := n.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "primary down")
	waitDone(t, n)
}

func TestNode_ContextCancelLeavesAndStops(t *testing.T) {
	j := &fakeJoiner{}
	n := New(Config{ID: "r1"}, j, logging.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, n.Start(ctx))

	cancel()
	waitDone(t, n)
	assert.Equal(t, []string{"r1"}, j.leftIDs())
}

func TestNode_ServiceOverGRPC(t *testing.T) {
	n := startNode(t, &fakeJoiner{}, "r1")

	conn, err := grpc.NewClient(n.Addr(), proto.DialOptions()...)
	require.NoError(t, err)
	defer conn.Close()
	client := proto.NewReplicaServiceClient(conn)
	ctx := context.Background()

	_, err = client.Apply(ctx, &proto.ApplyRequest{Mutation: ledger.CreateUserMutation(alice)})
	require.NoError(t, err)

	resp, err := client.Query(ctx, &proto.QueryRequest{Query: ledger.Query{Kind: ledger.QueryListUsers}})
	require.NoError(t, err)
	assert.Equal(t, []ledger.User{alice}, resp.Result.Users)

	_, err = client.Apply(ctx, &proto.ApplyRequest{Mutation: ledger.BidMutation(7, bob, 10)})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.Apply(ctx, &proto.ApplyRequest{Mutation: ledger.Mutation{Kind: "bogus"}})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.Stop(ctx, &proto.StopRequest{})
	require.NoError(t, err)
	waitDone(t, n)
}

func TestReplication_EndToEnd(t *testing.T) {
	ctx := context.Background()
	primary := ledger.New()
	c := replication.NewCoordinator(primary, logging.Nop(), replication.WithTimeout(2*time.Second))
	j := LocalJoiner{Coordinator: c}

	r1 := startNode(t, j, "r1")
	r2 := startNode(t, j, "r2")
	require.Equal(t, []string{"r1", "r2"}, c.Members())

	_, rep, err := c.RegisterUser(ctx, alice.Name, alice.Email, alice.Username)
	require.NoError(t, err)
	require.True(t, rep.OK(), "%v", rep.Err)

	a, rep, err := c.CreateAuction(ctx, "Bike", alice, 10, 30)
	require.NoError(t, err)
	require.True(t, rep.OK(), "%v", rep.Err)

	_, rep, err = c.Bid(ctx, a.ID, bob, 35)
	require.NoError(t, err)
	require.True(t, rep.OK(), "%v", rep.Err)

	for _, n := range []*Node{r1, r2} {
		if diff := cmp.Diff(primary.Snapshot(), n.Ledger().Snapshot()); diff != "" {
			t.Fatalf("replica %s diverged (-primary +replica):\n%s", n.ID(), diff)
		}
	}

	// A late joiner starts empty and reports bids on unknown auctions.
	late := startNode(t, j, "late")
	assert.Empty(t, late.Ledger().Auctions())

	_, rep, err = c.Bid(ctx, a.ID, bob, 40)
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2"}, rep.Acked)
	assert.ErrorIs(t, rep.Failed["late"], ledger.ErrAuctionNotFound)

	_, err = c.ListUsers(ctx)
	require.NoError(t, err)

	require.NoError(t, c.Shutdown(ctx))
	for _, n := range []*Node{r1, r2, late} {
		waitDone(t, n)
	}
	assert.Empty(t, c.Members())
}
