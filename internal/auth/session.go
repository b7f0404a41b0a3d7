// Package auth holds the session credential state machine: a single
// mutex-guarded Credentials slot per API instance, serialized the way
// the teacher's ConfigTokenManager serializes token reads against
// refreshes.
package auth

import (
	"context"
	"sync"

	"github.com/dehesa/finance-ig-sub001/pkg/ig"
)

// SwitchFunc performs the session-switch HTTP call. Session calls it
// while holding no lock, then applies the resulting account id under
// lock only once the call has succeeded — mirroring
// ConfigTokenManager.persistToken's "mutate shared state only after a
// confirmed round trip" discipline.
type SwitchFunc func(ctx context.Context, accountID string) (*ig.SwitchResult, error)

// Session holds at most one set of Credentials on behalf of an API
// instance. Reads take the read lock; Update/Remove/Switch take the
// write lock, so credential read/update/remove operations are mutually
// exclusive relative to each other (§5) without serializing unrelated
// endpoint calls against one another.
type Session struct {
	mu    sync.RWMutex
	creds *ig.Credentials
}

// New returns an empty Session.
func New() *Session {
	return &Session{}
}

// Credentials returns the currently stored Credentials, or
// ErrorKindInvalidCredentials when none are set.
func (s *Session) Credentials() (ig.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.creds == nil {
		return ig.Credentials{}, ig.NewInvalidCredentials("no credentials are currently held")
	}

	return *s.creds, nil
}

// Update atomically replaces the stored Credentials.
func (s *Session) Update(creds ig.Credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := creds
	s.creds = &c
}

// Remove clears the stored Credentials. It is a no-op when none are
// set.
func (s *Session) Remove() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds = nil
}

// HasCredentials reports whether credentials are currently held, without
// constructing an Error for the common "logout with nothing held" path.
func (s *Session) HasCredentials() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.creds != nil
}

// RequestHeaders assembles the credential headers for the currently
// stored Credentials.
func (s *Session) RequestHeaders() (map[ig.HeaderKey]string, error) {
	creds, err := s.Credentials()
	if err != nil {
		return nil, err
	}

	return creds.RequestHeaders(), nil
}

// Switch requires a non-empty accountID, invokes call, and on success
// mutates only the active account id on the stored Credentials, leaving
// every other field (token, API key, streamer URL, timezone) untouched.
// Switching to the currently active account is a semantic error the
// server reports and this method surfaces verbatim.
func (s *Session) Switch(ctx context.Context, accountID string, call SwitchFunc) (*ig.SwitchResult, error) {
	if accountID == "" {
		return nil, ig.NewInvalidRequest("account identifier cannot be empty", nil)
	}

	result, err := call(ctx, accountID)
	if err != nil {
		return nil, err
	}

	id, err := ig.NewAccountID(accountID)
	if err != nil {
		return nil, ig.NewInvalidRequest("account identifier invalid", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.creds == nil {
		return nil, ig.NewInvalidCredentials("no credentials are currently held")
	}

	updated := *s.creds
	updated.AccountID = id
	s.creds = &updated

	return result, nil
}
