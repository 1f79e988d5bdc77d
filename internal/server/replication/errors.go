package replication

import "errors"

var (
	// ErrReplicationTimeout marks a member that did not acknowledge a
	// delivery before the replication timeout.
	ErrReplicationTimeout = errors.New("replication timeout")
	ErrMemberUnavailable  = errors.New("member unavailable")
	ErrInvalidMember      = errors.New("invalid member")
	ErrShutdown           = errors.New("coordinator is shut down")
)
