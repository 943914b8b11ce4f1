// Package ledger implements the expense and settlement core: recording
// expenses with their splits, aggregating net pairwise balances, and
// settling debts atomically.
package ledger

import (
	"context"
	"fmt"

	"github.com/quicksplit/quicksplit/internal/models"
	"github.com/quicksplit/quicksplit/internal/storage"
)

// Service exposes the ledger operations to the presentation layer.
type Service struct {
	store  storage.Store
	policy SettlementPolicy
}

// New creates a Service with the default settlement policy, which
// clears the payer's entire outstanding balance toward the receiver.
func New(store storage.Store) *Service {
	return NewWithPolicy(store, ClearPairPolicy{})
}

// NewWithPolicy creates a Service with an explicit settlement policy.
func NewWithPolicy(store storage.Store, policy SettlementPolicy) *Service {
	return &Service{store: store, policy: policy}
}

// ExpenseHistory returns the expenses the user created, newest first,
// each with its splits attached.
func (s *Service) ExpenseHistory(ctx context.Context, user *models.User) ([]*models.Expense, error) {
	expenses, err := s.store.ListExpensesByCreator(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load expense history: %w", err)
	}
	return expenses, nil
}

// SettlementHistory returns the settlements involving the user, newest
// first.
func (s *Service) SettlementHistory(ctx context.Context, user *models.User) ([]*models.Settlement, error) {
	settlements, err := s.store.ListSettlementsForUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settlement history: %w", err)
	}
	return settlements, nil
}

// DeleteExpense removes one of the user's own expenses along with its
// splits. Expenses created by other users are reported as not found.
func (s *Service) DeleteExpense(ctx context.Context, user *models.User, expenseID string) error {
	expenses, err := s.store.ListExpensesByCreator(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to check expense ownership: %w", err)
	}

	owned := false
	for _, expense := range expenses {
		if expense.ID == expenseID {
			owned = true
			break
		}
	}
	if !owned {
		return &ValidationError{Reason: fmt.Sprintf("expense %s not found among your expenses", expenseID)}
	}

	if err := s.store.DeleteExpense(ctx, expenseID); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}

// resolveUser looks up a username, translating absence into NotFoundError.
func (s *Service) resolveUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user %q: %w", username, err)
	}
	if user == nil {
		return nil, &NotFoundError{Username: username}
	}
	return user, nil
}
