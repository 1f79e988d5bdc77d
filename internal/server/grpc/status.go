package grpc

import (
	"errors"

	"github.com/dmitrijs2005/auctionhouse/internal/proto"
	"github.com/dmitrijs2005/auctionhouse/internal/server/ledger"
	"github.com/dmitrijs2005/auctionhouse/internal/server/replication"
)

var okStatus = proto.Status{OK: true, Reason: proto.ReasonOK}

// domainStatus turns a ledger rejection into a response status. It returns
// false for errors that are not rejections.
func domainStatus(err error) (proto.Status, bool) {
	var reason string
	switch {
	case errors.Is(err, ledger.ErrValidation):
		reason = proto.ReasonValidation
	case errors.Is(err, ledger.ErrNotOwner):
		reason = proto.ReasonNotOwner
	case errors.Is(err, ledger.ErrAuctionNotFound):
		reason = proto.ReasonAuctionNotFound
	case errors.Is(err, ledger.ErrBidTooLow):
		reason = proto.ReasonBidTooLow
	case errors.Is(err, ledger.ErrUsernameTaken):
		reason = proto.ReasonUsernameTaken
	default:
		return proto.Status{}, false
	}
	return proto.Status{Reason: reason, Message: err.Error()}, true
}

func replicationOf(r replication.MulticastReport) proto.Replication {
	out := proto.Replication{
		Members: r.Members,
		Acked:   len(r.Acked),
		Failed:  r.FailedIDs(),
	}
	switch {
	case r.TimedOut():
		out.Warning = proto.ReasonReplicationTimeout
	case r.Err != nil:
		out.Warning = r.Err.Error()
	}
	return out
}
