package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/quicksplit/quicksplit/internal/models"
)

var (
	ErrInvalidSession = errors.New("invalid or expired session, log in again")
	ErrNotLoggedIn    = errors.New("not logged in")
)

// SessionManager issues and validates signed session tokens, persisting
// the active token to a file so consecutive CLI invocations stay logged
// in.
type SessionManager struct {
	secretKey     []byte
	tokenDuration time.Duration
	sessionFile   string
}

// Claims represents the custom JWT claims for a user session.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// NewSessionManager creates a session manager. secretKey should be a
// strong random string; tokenDuration is how long a login remains
// valid; sessionFile is where the active token is stored.
func NewSessionManager(secretKey string, tokenDuration time.Duration, sessionFile string) *SessionManager {
	return &SessionManager{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
		sessionFile:   sessionFile,
	}
}

// Login generates a session token for the user and persists it.
func (m *SessionManager) Login(user *models.User) error {
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return fmt.Errorf("failed to sign session token: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.sessionFile), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(m.sessionFile, []byte(tokenString), 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Logout discards the active session. Logging out while not logged in
// is not an error.
func (m *SessionManager) Logout() error {
	err := os.Remove(m.sessionFile)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// CurrentSession reads and validates the persisted token, returning its
// claims. Returns ErrNotLoggedIn when no session file exists and
// ErrInvalidSession when the token fails validation.
func (m *SessionManager) CurrentSession() (*Claims, error) {
	data, err := os.ReadFile(m.sessionFile)
	if os.IsNotExist(err) {
		return nil, ErrNotLoggedIn
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	token, err := jwt.ParseWithClaims(
		string(data),
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			// Verify the signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSession
	}

	return claims, nil
}
