// Package session holds the current credential and identity for the life of
// the process. There is no persistence: the session is re-established by a
// silent refresh at startup and replaced on a fixed interval after that.
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"verdant/internal/api"
)

// RefreshInterval is how often an active session silently refreshes its
// credential. A failed scheduled refresh is terminal for the session.
const RefreshInterval = 14 * time.Minute

// Store is the single owner of the session state.
type Store struct {
	mu     sync.Mutex
	token  string
	user   api.User
	active bool
}

func NewStore() *Store {
	return &Store{}
}

// Login replaces the current session unconditionally.
func (s *Store) Login(token string, user api.User) {
	s.mu.Lock()
	s.token = token
	s.user = user
	s.active = true
	s.mu.Unlock()
}

// Clear drops the session state unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	s.token = ""
	s.user = api.User{}
	s.active = false
	s.mu.Unlock()
}

// Token returns the current access credential, or "" when unauthenticated.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns the current identity and whether a session is active.
func (s *Store) User() (api.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user, s.active
}

// Logout best-effort notifies the backend, then clears local state whether or
// not the request succeeded.
func (s *Store) Logout(ctx context.Context, client *api.Client) {
	if err := client.Logout(ctx); err != nil {
		log.Printf("logout request failed: %v", err)
	}
	s.Clear()
}

// Refresh attempts a silent refresh. Success replaces the session; failure
// clears it, so the caller must route the user back to authentication. There
// is no retry before the next scheduled interval.
func (s *Store) Refresh(ctx context.Context, client *api.Client) error {
	creds, err := client.RefreshToken(ctx)
	if err != nil {
		s.Clear()
		return err
	}
	s.Login(creds.AccessToken, creds.User)
	return nil
}
