// Package store keeps per-user OAuth credentials in memory.
package store

import (
	"sync"
	"time"

	"golang.org/x/oauth2"
)

const credentialTTL = 7 * 24 * time.Hour

// CredentialStore holds OAuth tokens keyed by user identifier.
type CredentialStore interface {
	Put(userUUID string, token *oauth2.Token)
	Get(userUUID string) (*oauth2.Token, bool)
	Delete(userUUID string)
}

type entry struct {
	token     *oauth2.Token
	expiresAt time.Time
}

type memoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore builds an in-memory credential store. Entries expire
// after a week so stale grants do not linger.
func NewMemoryStore() CredentialStore {
	return &memoryStore{
		entries: make(map[string]entry),
		ttl:     credentialTTL,
		now:     time.Now,
	}
}

func (s *memoryStore) Put(userUUID string, token *oauth2.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[userUUID] = entry{
		token:     token,
		expiresAt: s.now().Add(s.ttl),
	}
}

func (s *memoryStore) Get(userUUID string) (*oauth2.Token, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[userUUID]
	if !ok {
		return nil, false
	}
	if s.now().After(e.expiresAt) {
		delete(s.entries, userUUID)
		return nil, false
	}
	return e.token, true
}

func (s *memoryStore) Delete(userUUID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, userUUID)
}
