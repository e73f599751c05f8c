package client

import (
	"encoding/json"
	"sync"
)

const sessionKey = "session"

// SessionUser is the client-side identity projection.
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// sessionRecord is the single persisted document. Tokens and identity live
// together so storage can never hold a half-written session.
type sessionRecord struct {
	User         *SessionUser `json:"user,omitempty"`
	Token        string       `json:"token,omitempty"`
	RefreshToken string       `json:"refreshToken,omitempty"`
}

// SessionStore holds the authenticated session in memory, backed by one
// storage record. Reads are undefined until Hydrate resolves; callers gate
// on Resolved before trusting IsAuthenticated.
type SessionStore struct {
	mu       sync.RWMutex
	storage  Storage
	record   sessionRecord
	resolved bool
}

// NewSessionStore builds an unresolved store over the given storage.
func NewSessionStore(storage Storage) *SessionStore {
	return &SessionStore{storage: storage}
}

// Hydrate loads the persisted session, if any, and marks the store
// resolved. A corrupt or missing record resolves to the signed-out state.
func (s *SessionStore) Hydrate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.record = sessionRecord{}
	s.resolved = true

	data, err := s.storage.Read(sessionKey)
	if err != nil {
		if err == ErrNotFound {
			return nil
		}
		return err
	}

	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		_ = s.storage.Remove(sessionKey)
		return nil
	}
	if rec.Token == "" || rec.User == nil {
		_ = s.storage.Remove(sessionKey)
		return nil
	}
	s.record = rec
	return nil
}

// Resolved reports whether hydration has completed.
func (s *SessionStore) Resolved() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolved
}

// IsAuthenticated reports whether a session is present. Meaningless before
// Resolved returns true.
func (s *SessionStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.record.Token != "" && s.record.User != nil
}

// User returns a copy of the session identity, or nil when signed out.
func (s *SessionStore) User() *SessionUser {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.record.User == nil {
		return nil
	}
	u := *s.record.User
	return &u
}

// AccessToken returns the current access token.
func (s *SessionStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.record.Token
}

// RefreshToken returns the current refresh token.
func (s *SessionStore) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.record.RefreshToken
}

// SetAuth installs a full session atomically and persists it.
func (s *SessionStore) SetAuth(user SessionUser, token, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = sessionRecord{User: &user, Token: token, RefreshToken: refreshToken}
	s.resolved = true
	return s.persistLocked()
}

// SetAccessToken swaps the access token after a refresh, keeping the rest
// of the session intact.
func (s *SessionStore) SetAccessToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record.Token = token
	return s.persistLocked()
}

// UpdateUser patches the stored identity fields that are non-nil.
func (s *SessionStore) UpdateUser(patch func(u *SessionUser)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.record.User == nil {
		return nil
	}
	patch(s.record.User)
	return s.persistLocked()
}

// ClearAuth drops the session from memory and storage.
func (s *SessionStore) ClearAuth() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = sessionRecord{}
	s.resolved = true
	return s.storage.Remove(sessionKey)
}

func (s *SessionStore) persistLocked() error {
	data, err := json.Marshal(s.record)
	if err != nil {
		return err
	}
	return s.storage.Write(sessionKey, data)
}
