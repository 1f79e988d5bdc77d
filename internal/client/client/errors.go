package client

import "errors"

var (
	ErrUnavailable      = errors.New("server unavailable")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrRateLimited      = errors.New("too many login attempts")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrUserNotFound     = errors.New("user not found")
	ErrKeyAlreadyPinned = errors.New("a different key is already registered for this user")

	// ErrServerAuthenticationFailed means the server could not prove
	// possession of the pinned server key. The client must not continue.
	ErrServerAuthenticationFailed = errors.New("server authentication failed")
	// ErrAuthenticationFailed means the server did not accept our signature.
	ErrAuthenticationFailed = errors.New("authentication failed")
)
