// Package common defines shared constants and sentinel errors used across
// the client, the primary server and the replicas. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	ErrorRateLimited = errors.New("rate limited")

	// Session token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
