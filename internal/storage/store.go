// Package storage provides abstractions for persistent ledger storage.
package storage

import (
	"context"

	"github.com/quicksplit/quicksplit/internal/models"
)

// Store defines the interface the ledger requires from its backing
// store. This abstraction allows swapping storage backends (SQLite,
// PostgreSQL, etc.) without changing the ledger or CLI layers.
type Store interface {
	// CreateUser persists a new user. The user.ID and user.CreatedAt
	// fields are populated by the store if unset.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves a user by username.
	// Returns (nil, nil) if no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns (nil, nil) if no such user exists.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// CreateExpense persists an expense together with its attached
	// splits in a single transaction: either all rows are written or
	// none are. IDs and CreatedAt are populated if unset.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// DeleteExpense removes an expense; its splits go with it.
	DeleteExpense(ctx context.Context, expenseID string) error

	// GetSplitsForExpense retrieves the splits of one expense, with
	// participant usernames attached.
	GetSplitsForExpense(ctx context.Context, expenseID string) ([]models.Split, error)

	// ListExpensesByCreator retrieves the expenses a user created,
	// newest first, each with its splits attached.
	ListExpensesByCreator(ctx context.Context, userID string) ([]*models.Expense, error)

	// SumUnpaidSplitsByParticipant sums unpaid splits of expenses the
	// given user created, grouped by participant username. The
	// creator's own splits are excluded.
	SumUnpaidSplitsByParticipant(ctx context.Context, creatorID string) (map[string]float64, error)

	// SumUnpaidSplitsByCreator sums the given user's unpaid splits on
	// other users' expenses, grouped by creator username.
	SumUnpaidSplitsByCreator(ctx context.Context, participantID string) (map[string]float64, error)

	// ListSettlementsForUser retrieves settlements where the user is
	// payer or receiver, newest first.
	ListSettlementsForUser(ctx context.Context, userID string) ([]*models.Settlement, error)

	// InTx runs fn inside a single transaction. If fn returns an error
	// the transaction is rolled back and the error returned; otherwise
	// it is committed. The transaction is released on every exit path.
	InTx(ctx context.Context, fn func(ctx context.Context, tx SettlementTx) error) error

	// Close releases any resources held by the store.
	Close() error
}

// SettlementTx is the write surface available inside a settlement
// transaction. Both writes commit or roll back together.
type SettlementTx interface {
	// InsertSettlement appends a settlement audit row. The ID and
	// SettledAt fields are populated if unset.
	InsertSettlement(ctx context.Context, settlement *models.Settlement) error

	// MarkSplitsPaid flips every unpaid split owed by participantID on
	// expenses created by creatorID to paid, returning the number of
	// splits affected.
	MarkSplitsPaid(ctx context.Context, participantID, creatorID string) (int64, error)
}
