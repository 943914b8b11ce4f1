package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quicksplit/quicksplit/internal/models"
)

func TestSessionRoundTrip(t *testing.T) {
	sessionFile := filepath.Join(t.TempDir(), "session")
	manager := NewSessionManager("test-secret", time.Hour, sessionFile)

	user := &models.User{ID: "user-1", Username: "alice"}
	require.NoError(t, manager.Login(user))

	claims, err := manager.CurrentSession()
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "alice", claims.Username)

	require.NoError(t, manager.Logout())

	_, err = manager.CurrentSession()
	require.ErrorIs(t, err, ErrNotLoggedIn)

	// Logging out twice is fine.
	require.NoError(t, manager.Logout())
}

func TestSessionExpiry(t *testing.T) {
	sessionFile := filepath.Join(t.TempDir(), "session")
	manager := NewSessionManager("test-secret", -time.Minute, sessionFile)

	require.NoError(t, manager.Login(&models.User{ID: "user-1", Username: "alice"}))

	_, err := manager.CurrentSession()
	require.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionRejectsForeignToken(t *testing.T) {
	sessionFile := filepath.Join(t.TempDir(), "session")

	issuer := NewSessionManager("secret-a", time.Hour, sessionFile)
	require.NoError(t, issuer.Login(&models.User{ID: "user-1", Username: "alice"}))

	verifier := NewSessionManager("secret-b", time.Hour, sessionFile)
	_, err := verifier.CurrentSession()
	require.ErrorIs(t, err, ErrInvalidSession)
}
