package session

import (
	"context"
	"sync"
)

// Canonical keys written by login.
const (
	KeyUser  = "user"
	KeyToken = "token"
)

// Legacy keys written by older profile edit flows. They are read as a fallback and removed on the next write.
const (
	LegacyKeyUsername = "Username"
	LegacyKeyPassword = "Password"
)

// Keys lists every key the session may occupy.
var Keys = []string{KeyUser, KeyToken, LegacyKeyUsername, LegacyKeyPassword}

// State is the tagged login state.
type State int

const (
	LoggedOut State = iota
	LoggedIn
)

func (s State) String() string {
	if s == LoggedIn {
		return "logged in"
	}
	return "logged out"
}

// Session is the current login.
type Session struct {
	Username string
	Token    string
}

// State reports LoggedIn only when both the username and token are present.
func (s Session) State() State {
	if s.Username != "" && s.Token != "" {
		return LoggedIn
	}
	return LoggedOut
}

func (s Session) IsLoggedIn() bool {
	return s.State() == LoggedIn
}

// Store is a persistent string key/value store.
//
// Concurrent writers are last-write-wins.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// MemoryStore is an in-process [Store].
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.entries)
	return nil
}

// Len returns the number of stored entries.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
