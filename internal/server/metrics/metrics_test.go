package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveMulticast(t *testing.T) {
	m := New()

	m.ObserveMulticast("bid", 10*time.Millisecond, 0)
	m.ObserveMulticast("bid", 20*time.Millisecond, 2)
	m.ObserveMulticast("create_auction", time.Millisecond, 1)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.memberFailures.WithLabelValues("bid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.memberFailures.WithLabelValues("create_auction")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.multicastDuration))
}

func TestSetMembersAndRequests(t *testing.T) {
	m := New()

	m.SetMembers(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.members))

	m.ObserveRequest("/auction.AuctionService/Ping", "OK")
	m.ObserveRequest("/auction.AuctionService/Ping", "OK")
	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("/auction.AuctionService/Ping", "OK")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.SetMembers(1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "auction_replication_members 1"), body)
}
