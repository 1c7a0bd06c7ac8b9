// Package session holds the client's authentication token. A Store keeps the
// token in one of two tiers: durable (survives a browser or machine restart)
// when the user asked to be remembered, ephemeral (gone when the browser
// session ends) otherwise.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Storage keys. The durable and ephemeral tiers never share a key.
const (
	DurableKey   = "capsule_auth"
	EphemeralKey = "capsule_auth_session"
)

// ErrNoToken is returned by a Tier that holds nothing.
var ErrNoToken = errors.New("no token stored")

// Tier is one place a token can live.
type Tier interface {
	// Load returns the stored token or ErrNoToken.
	Load() (string, error)
	// Save replaces the stored token.
	Save(token string) error
	// Clear removes the stored token. Clearing an empty tier is not an error.
	Clear() error
}

// Store is the single owner of the authentication token. Only Login and
// Logout mutate it. At most one tier holds a token at any time.
type Store struct {
	mu        sync.Mutex
	durable   Tier
	ephemeral Tier
}

// NewStore creates a Store over the two tiers.
func NewStore(durable, ephemeral Tier) *Store {
	return &Store{durable: durable, ephemeral: ephemeral}
}

// Login writes token to the durable tier when remember is set, to the
// ephemeral tier otherwise, and empties the other tier.
func (s *Store) Login(token string, remember bool) error {
	if token == "" {
		return fmt.Errorf("session: refusing to store an empty token")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	target, other := s.ephemeral, s.durable
	if remember {
		target, other = s.durable, s.ephemeral
	}
	// Clear first so a failed save never leaves the stale copy behind.
	if err := other.Clear(); err != nil {
		return fmt.Errorf("session: clear stale tier: %w", err)
	}
	if err := target.Save(token); err != nil {
		return fmt.Errorf("session: save token: %w", err)
	}
	return nil
}

// Logout clears both tiers unconditionally.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return errors.Join(s.durable.Clear(), s.ephemeral.Clear())
}

// Token returns the durable token if present, else the ephemeral one.
func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tier := range []Tier{s.durable, s.ephemeral} {
		token, err := tier.Load()
		if err == nil && token != "" {
			return token, true
		}
		if err != nil && !errors.Is(err, ErrNoToken) {
			slog.Warn("Failed to read session tier, treating it as empty", "error", err)
		}
	}
	return "", false
}

// IsAuthenticated reports whether a token is present in either tier.
func (s *Store) IsAuthenticated() bool {
	_, ok := s.Token()
	return ok
}
