package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"mlhub-go/internal/config"
	"mlhub-go/internal/models"
	"mlhub-go/internal/utils"
	"mlhub-go/pkg/session_store"
)

// Identity is the authenticated user resolved for one request.
type Identity struct {
	UserID uint
	Name   string
}

// SessionManager issues, resolves and revokes session cookies. The
// cookie value is a signed token carrying a random session id; the id
// must also be live in the server-side store, so logout takes effect
// immediately even for unexpired tokens.
type SessionManager struct {
	store       session_store.Store
	tokens      *utils.TokenManager
	ttl         time.Duration
	rememberTTL time.Duration
}

// NewSessionManager creates a session manager.
func NewSessionManager(store session_store.Store, tokens *utils.TokenManager, cfg *config.Config) *SessionManager {
	return &SessionManager{
		store:       store,
		tokens:      tokens,
		ttl:         cfg.Session.GetExpireDuration(),
		rememberTTL: cfg.Session.GetRememberDuration(),
	}
}

// Login establishes a session for a user. It returns the cookie value
// and the cookie Max-Age in seconds; zero Max-Age means a session
// cookie that the browser drops on exit.
func (m *SessionManager) Login(ctx context.Context, user *models.User, remember bool) (string, int, error) {
	sessionID, err := newSessionID()
	if err != nil {
		return "", 0, fmt.Errorf("generating session id: %w", err)
	}

	ttl := m.ttl
	maxAge := 0
	if remember {
		ttl = m.rememberTTL
		maxAge = int(ttl.Seconds())
	}

	if err := m.store.Put(ctx, sessionID, user.ID, ttl); err != nil {
		return "", 0, fmt.Errorf("registering session: %w", err)
	}

	token, err := m.tokens.GenerateToken(user.ID, user.Name, sessionID, ttl)
	if err != nil {
		return "", 0, fmt.Errorf("signing session token: %w", err)
	}

	return token, maxAge, nil
}

// Resolve validates a cookie value and returns the identity it carries,
// or nil when the request is unauthenticated.
func (m *SessionManager) Resolve(ctx context.Context, cookieValue string) (*Identity, error) {
	claims, err := m.tokens.ValidateToken(cookieValue)
	if err != nil {
		return nil, err
	}

	userID, err := m.store.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if userID != claims.UserID {
		return nil, session_store.ErrSessionNotFound
	}

	return &Identity{UserID: claims.UserID, Name: claims.Username}, nil
}

// Logout revokes the session a cookie value refers to. An already
// invalid cookie is ignored.
func (m *SessionManager) Logout(ctx context.Context, cookieValue string) error {
	claims, err := m.tokens.ValidateToken(cookieValue)
	if err != nil {
		return nil
	}
	return m.store.Delete(ctx, claims.SessionID)
}

func newSessionID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
