package session

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/myflix/internal/shared"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// Manager reads and writes the session through a [Store].
type Manager struct {
	store Store
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

func (m *Manager) get(ctx context.Context, key string) (string, error) {
	v, ok, err := m.store.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", shared.ErrSessionStore, key, err)
	}
	if !ok {
		return "", nil
	}
	return v, nil
}

// Load returns the stored session. A missing "user" key falls back to the legacy "Username" key.
func (m *Manager) Load(ctx context.Context) (Session, error) {
	username, err := m.get(ctx, KeyUser)
	if err != nil {
		return Session{}, err
	}
	if username == "" {
		if username, err = m.get(ctx, LegacyKeyUsername); err != nil {
			return Session{}, err
		}
	}

	token, err := m.get(ctx, KeyToken)
	if err != nil {
		return Session{}, err
	}
	return Session{Username: username, Token: token}, nil
}

// Require loads the session and returns [shared.ErrNotAuthenticated] when no username is stored.
//
// A missing token is not checked here. Requests then go out without an Authorization header and
// the server rejects them.
func (m *Manager) Require(ctx context.Context) (Session, error) {
	s, err := m.Load(ctx)
	if err != nil {
		return Session{}, err
	}
	if s.Username == "" {
		return Session{}, shared.ErrNotAuthenticated
	}
	return s, nil
}

// Save writes both canonical keys and removes the legacy ones.
func (m *Manager) Save(ctx context.Context, s Session) error {
	if err := m.set(ctx, KeyUser, s.Username); err != nil {
		return err
	}
	if err := m.set(ctx, KeyToken, s.Token); err != nil {
		return err
	}
	return m.dropLegacy(ctx)
}

// SetUsername overwrites only the username, keeping the token.
func (m *Manager) SetUsername(ctx context.Context, username string) error {
	if err := m.set(ctx, KeyUser, username); err != nil {
		return err
	}
	return m.dropLegacy(ctx)
}

// Clear removes every entry in the store.
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("%w: clear: %v", shared.ErrSessionStore, err)
	}
	return nil
}

func (m *Manager) set(ctx context.Context, key, value string) error {
	if value == "" {
		return m.delete(ctx, key)
	}
	if err := m.store.Set(ctx, key, value); err != nil {
		return fmt.Errorf("%w: write %s: %v", shared.ErrSessionStore, key, err)
	}
	return nil
}

func (m *Manager) delete(ctx context.Context, key string) error {
	if err := m.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("%w: delete %s: %v", shared.ErrSessionStore, key, err)
	}
	return nil
}

func (m *Manager) dropLegacy(ctx context.Context) error {
	for _, key := range []string{LegacyKeyUsername, LegacyKeyPassword} {
		if err := m.delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// Token implements [oauth2.TokenSource]. It reads the store on every call.
func (m *Manager) Token() (*oauth2.Token, error) {
	token, err := m.get(context.Background(), KeyToken)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, shared.ErrNotAuthenticated
	}

	t := &oauth2.Token{AccessToken: token, TokenType: "Bearer"}
	if c, err := ParseClaims(token); err == nil && !c.ExpiresAt.IsZero() {
		t.Expiry = c.ExpiresAt
	}
	return t, nil
}

var _ oauth2.TokenSource = (*Manager)(nil)

// Claims is the display subset of a JWT bearer token.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token has an expiry that is in the past.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// Claims decodes the stored token without verifying its signature. Only the server can verify it.
func (m *Manager) Claims(ctx context.Context) (Claims, error) {
	s, err := m.Load(ctx)
	if err != nil {
		return Claims{}, err
	}
	if s.Token == "" {
		return Claims{}, shared.ErrNotAuthenticated
	}
	return ParseClaims(s.Token)
}

// ParseClaims reads subject and timestamps from an unverified JWT.
func ParseClaims(token string) (Claims, error) {
	var rc jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &rc); err != nil {
		return Claims{}, fmt.Errorf("%w: token is not a JWT: %v", shared.ErrInvalidInput, err)
	}

	c := Claims{Subject: rc.Subject}
	if rc.IssuedAt != nil {
		c.IssuedAt = rc.IssuedAt.Time
	}
	if rc.ExpiresAt != nil {
		c.ExpiresAt = rc.ExpiresAt.Time
	}
	return c, nil
}
