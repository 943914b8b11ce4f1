package ledger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quicksplit/quicksplit/internal/models"
	"github.com/quicksplit/quicksplit/internal/storage"
	"github.com/quicksplit/quicksplit/internal/storage/sqlite"
)

func newTestLedger(t *testing.T) (*Service, storage.Store) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return New(store), store
}

func createUser(t *testing.T, store storage.Store, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "irrelevant",
	}
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

func TestExpenseHistory(t *testing.T) {
	svc, store := newTestLedger(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")

	_, err := svc.RecordExpense(ctx, alice, ExpenseInput{
		Description: "Lunch",
		Amount:      20,
		Mode:        SplitEqual,
		Shares:      []Share{{Username: "alice"}, {Username: "bob"}},
	})
	require.NoError(t, err)

	_, err = svc.RecordExpense(ctx, alice, ExpenseInput{
		Description: "Coffee",
		Amount:      6,
		Mode:        SplitEqual,
		Shares:      []Share{{Username: "alice"}, {Username: "bob"}},
	})
	require.NoError(t, err)

	expenses, err := svc.ExpenseHistory(ctx, alice)
	require.NoError(t, err)
	require.Len(t, expenses, 2)
	for _, expense := range expenses {
		require.Equal(t, "alice", expense.CreatedByName)
		require.Len(t, expense.Splits, 1)
		require.Equal(t, "bob", expense.Splits[0].Username)
	}

	// Bob created nothing.
	expenses, err = svc.ExpenseHistory(ctx, bob)
	require.NoError(t, err)
	require.Empty(t, expenses)
}

func TestDeleteExpense(t *testing.T) {
	svc, store := newTestLedger(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")

	expense, err := svc.RecordExpense(ctx, alice, ExpenseInput{
		Description: "Dinner",
		Amount:      30,
		Mode:        SplitEqual,
		Shares:      []Share{{Username: "alice"}, {Username: "bob"}},
	})
	require.NoError(t, err)

	// Only the creator may delete it.
	err = svc.DeleteExpense(ctx, bob, expense.ID)
	require.Error(t, err)
	require.True(t, IsValidation(err))

	require.NoError(t, svc.DeleteExpense(ctx, alice, expense.ID))

	// The splits went with it.
	balances, err := svc.Balances(ctx, alice)
	require.NoError(t, err)
	require.Empty(t, balances)

	expenses, err := svc.ExpenseHistory(ctx, alice)
	require.NoError(t, err)
	require.Empty(t, expenses)
}
