// Package cli implements the quicksplit command line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/quicksplit/quicksplit/internal/auth"
	"github.com/quicksplit/quicksplit/internal/config"
	"github.com/quicksplit/quicksplit/internal/ledger"
	"github.com/quicksplit/quicksplit/internal/models"
	"github.com/quicksplit/quicksplit/internal/storage"
)

// App bundles the collaborators every command needs.
type App struct {
	Config   *config.Config
	Store    storage.Store
	Ledger   *ledger.Service
	Auth     auth.Authenticator
	Sessions *auth.SessionManager
}

// NewApp wires an App over an opened store.
func NewApp(cfg *config.Config, store storage.Store) *App {
	return &App{
		Config:   cfg,
		Store:    store,
		Ledger:   ledger.New(store),
		Auth:     auth.NewPasswordAuthenticator(store),
		Sessions: auth.NewSessionManager(cfg.SessionSecret, cfg.SessionTTL, cfg.SessionFile),
	}
}

// currentUser resolves the logged-in user from the persisted session.
func (a *App) currentUser(ctx context.Context) (*models.User, error) {
	claims, err := a.Sessions.CurrentSession()
	if err != nil {
		return nil, err
	}

	user, err := a.Store.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		// The session outlived the database (e.g. a fresh db file).
		return nil, auth.ErrInvalidSession
	}

	return user, nil
}
