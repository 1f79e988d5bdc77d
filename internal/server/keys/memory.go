package keys

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"sync"
)

type MemoryStore struct {
	mu   sync.RWMutex
	keys map[string]ed25519.PublicKey
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{keys: make(map[string]ed25519.PublicKey)}
}

func (s *MemoryStore) Pin(_ context.Context, username string, key ed25519.PublicKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.keys[username]; ok {
		if bytes.Equal(existing, key) {
			return nil
		}
		return ErrAlreadyPinned
	}

	s.keys[username] = bytes.Clone(key)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, username string) (ed25519.PublicKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	k, ok := s.keys[username]
	if !ok {
		return nil, ErrNotPinned
	}
	return bytes.Clone(k), nil
}

func (s *MemoryStore) Forget(_ context.Context, username string) error {
	s.mu.Lock()
	delete(s.keys, username)
	s.mu.Unlock()
	return nil
}
