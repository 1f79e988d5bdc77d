// Package keys pins user public keys on first use. Once a key is pinned for a
// username it can only be replaced after Forget; re-pinning the same key is a
// no-op.
package keys

import (
	"context"
	"crypto/ed25519"
	"errors"
)

var (
	ErrNotPinned     = errors.New("no public key pinned for user")
	ErrAlreadyPinned = errors.New("a different public key is already pinned for user")
)

type Store interface {
	// Pin stores key for username unless one is already pinned. It returns
	// ErrAlreadyPinned if the stored key differs from key.
	Pin(ctx context.Context, username string, key ed25519.PublicKey) error
	// Get returns the key pinned for username or ErrNotPinned.
	Get(ctx context.Context, username string) (ed25519.PublicKey, error)
	// Forget drops the key pinned for username, if any.
	Forget(ctx context.Context, username string) error
}
