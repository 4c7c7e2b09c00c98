package service

import (
	"context"
	"testing"

	"mlhub-go/internal/models"
	"mlhub-go/internal/utils"
	"mlhub-go/pkg/session_store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionManager() *SessionManager {
	return NewSessionManager(
		session_store.NewMemoryStore(),
		utils.NewTokenManager("test-secret"),
		testSessionConfig(),
	)
}

func TestSessionLoginResolve(t *testing.T) {
	m := newTestSessionManager()
	ctx := context.Background()
	user := &models.User{ID: 5, Name: "alice"}

	cookie, maxAge, err := m.Login(ctx, user, false)
	require.NoError(t, err)
	assert.Zero(t, maxAge, "a non-remembered session uses a browser session cookie")

	identity, err := m.Resolve(ctx, cookie)
	require.NoError(t, err)
	assert.Equal(t, uint(5), identity.UserID)
	assert.Equal(t, "alice", identity.Name)
}

func TestSessionRememberSetsMaxAge(t *testing.T) {
	m := newTestSessionManager()

	_, maxAge, err := m.Login(context.Background(), &models.User{ID: 1, Name: "alice"}, true)
	require.NoError(t, err)
	assert.Equal(t, 30*24*60*60, maxAge)
}

func TestSessionLogoutInvalidates(t *testing.T) {
	m := newTestSessionManager()
	ctx := context.Background()

	cookie, _, err := m.Login(ctx, &models.User{ID: 5, Name: "alice"}, false)
	require.NoError(t, err)

	require.NoError(t, m.Logout(ctx, cookie))

	_, err = m.Resolve(ctx, cookie)
	assert.Error(t, err, "a revoked session token must not resolve")
}

func TestSessionResolveGarbage(t *testing.T) {
	m := newTestSessionManager()

	_, err := m.Resolve(context.Background(), "garbage")
	assert.Error(t, err)
}
