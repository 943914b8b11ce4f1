package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quicksplit/quicksplit/internal/models"
	"github.com/quicksplit/quicksplit/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func mustCreateUser(t *testing.T, store *SQLiteStore, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
	}
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := mustCreateUser(t, store, "alice")
	require.NotEmpty(t, user.ID)
	require.NotZero(t, user.CreatedAt)

	t.Run("lookup by username and id", func(t *testing.T) {
		byName, err := store.GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, byName)
		require.Equal(t, user.ID, byName.ID)

		byID, err := store.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, byID)
		require.Equal(t, "alice", byID.Username)
	})

	t.Run("missing user is nil, not an error", func(t *testing.T) {
		missing, err := store.GetUserByUsername(ctx, "nobody")
		require.NoError(t, err)
		require.Nil(t, missing)
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		err := store.CreateUser(ctx, &models.User{
			Username: "alice", Email: "other@example.com", PasswordHash: "hash",
		})
		require.Error(t, err)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		err := store.CreateUser(ctx, &models.User{
			Username: "alice2", Email: "alice@example.com", PasswordHash: "hash",
		})
		require.Error(t, err)
	})
}

func TestCreateExpenseWithSplits(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice")
	bob := mustCreateUser(t, store, "bob")

	expense := &models.Expense{
		Description: "Dinner",
		Amount:      30,
		CreatedByID: alice.ID,
		Splits: []models.Split{
			{UserID: bob.ID, Amount: 15},
		},
	}
	require.NoError(t, store.CreateExpense(ctx, expense))
	require.NotEmpty(t, expense.ID)
	require.NotZero(t, expense.CreatedAt)
	require.Equal(t, expense.ID, expense.Splits[0].ExpenseID)

	splits, err := store.GetSplitsForExpense(ctx, expense.ID)
	require.NoError(t, err)
	require.Len(t, splits, 1)
	require.Equal(t, "bob", splits[0].Username)
	require.InDelta(t, 15, splits[0].Amount, 1e-9)
	require.False(t, splits[0].IsPaid)

	expenses, err := store.ListExpensesByCreator(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	require.Equal(t, "alice", expenses[0].CreatedByName)
	require.Len(t, expenses[0].Splits, 1)
}

func TestCreateExpenseRollsBackOnBadSplit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice")

	// The second split references a nonexistent user, violating the
	// foreign key; the expense row must not survive either.
	expense := &models.Expense{
		Description: "Broken",
		Amount:      30,
		CreatedByID: alice.ID,
		Splits: []models.Split{
			{UserID: alice.ID, Amount: 15},
			{UserID: "no-such-user", Amount: 15},
		},
	}
	require.Error(t, store.CreateExpense(ctx, expense))

	expenses, err := store.ListExpensesByCreator(ctx, alice.ID)
	require.NoError(t, err)
	require.Empty(t, expenses)
}

func TestDeleteExpenseCascades(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice")
	bob := mustCreateUser(t, store, "bob")

	expense := &models.Expense{
		Description: "Dinner",
		Amount:      30,
		CreatedByID: alice.ID,
		Splits:      []models.Split{{UserID: bob.ID, Amount: 15}},
	}
	require.NoError(t, store.CreateExpense(ctx, expense))
	require.NoError(t, store.DeleteExpense(ctx, expense.ID))

	splits, err := store.GetSplitsForExpense(ctx, expense.ID)
	require.NoError(t, err)
	require.Empty(t, splits)

	require.Error(t, store.DeleteExpense(ctx, expense.ID))
}

func TestUnpaidSums(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice")
	bob := mustCreateUser(t, store, "bob")
	carol := mustCreateUser(t, store, "carol")

	// Alice's expense: Bob owes 10 over two splits, Carol owes 7,
	// and Alice's own custom share of 3 must never be counted.
	require.NoError(t, store.CreateExpense(ctx, &models.Expense{
		Description: "Dinner", Amount: 20, CreatedByID: alice.ID,
		Splits: []models.Split{
			{UserID: bob.ID, Amount: 6},
			{UserID: carol.ID, Amount: 7},
			{UserID: alice.ID, Amount: 3},
		},
	}))
	require.NoError(t, store.CreateExpense(ctx, &models.Expense{
		Description: "Coffee", Amount: 4, CreatedByID: alice.ID,
		Splits: []models.Split{
			{UserID: bob.ID, Amount: 4},
		},
	}))

	owed, err := store.SumUnpaidSplitsByParticipant(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, owed, 2)
	require.InDelta(t, 10, owed["bob"], 1e-9)
	require.InDelta(t, 7, owed["carol"], 1e-9)

	owes, err := store.SumUnpaidSplitsByCreator(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, owes, 1)
	require.InDelta(t, 10, owes["alice"], 1e-9)

	// Paid splits drop out of both sums.
	err = store.InTx(ctx, func(ctx context.Context, tx storage.SettlementTx) error {
		_, err := tx.MarkSplitsPaid(ctx, bob.ID, alice.ID)
		return err
	})
	require.NoError(t, err)

	owed, err = store.SumUnpaidSplitsByParticipant(ctx, alice.ID)
	require.NoError(t, err)
	require.NotContains(t, owed, "bob")
	require.InDelta(t, 7, owed["carol"], 1e-9)
}

func TestInTx(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice")
	bob := mustCreateUser(t, store, "bob")

	require.NoError(t, store.CreateExpense(ctx, &models.Expense{
		Description: "Dinner", Amount: 20, CreatedByID: alice.ID,
		Splits: []models.Split{{UserID: bob.ID, Amount: 10}},
	}))

	t.Run("commit applies both writes", func(t *testing.T) {
		err := store.InTx(ctx, func(ctx context.Context, tx storage.SettlementTx) error {
			if err := tx.InsertSettlement(ctx, &models.Settlement{
				PayerID: bob.ID, ReceiverID: alice.ID, Amount: 10,
			}); err != nil {
				return err
			}
			cleared, err := tx.MarkSplitsPaid(ctx, bob.ID, alice.ID)
			if err != nil {
				return err
			}
			require.EqualValues(t, 1, cleared)
			return nil
		})
		require.NoError(t, err)

		settlements, err := store.ListSettlementsForUser(ctx, bob.ID)
		require.NoError(t, err)
		require.Len(t, settlements, 1)
		require.Equal(t, "bob", settlements[0].PayerName)
		require.Equal(t, "alice", settlements[0].ReceiverName)
		require.NotZero(t, settlements[0].SettledAt)
	})

	t.Run("error rolls back every write", func(t *testing.T) {
		sentinel := errors.New("boom")
		err := store.InTx(ctx, func(ctx context.Context, tx storage.SettlementTx) error {
			if err := tx.InsertSettlement(ctx, &models.Settlement{
				PayerID: bob.ID, ReceiverID: alice.ID, Amount: 99,
			}); err != nil {
				return err
			}
			return sentinel
		})
		require.ErrorIs(t, err, sentinel)

		settlements, err := store.ListSettlementsForUser(ctx, bob.ID)
		require.NoError(t, err)
		require.Len(t, settlements, 1) // still only the committed one
	})
}

func TestMarkSplitsPaidIsScopedToThePair(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := mustCreateUser(t, store, "alice")
	bob := mustCreateUser(t, store, "bob")
	carol := mustCreateUser(t, store, "carol")

	require.NoError(t, store.CreateExpense(ctx, &models.Expense{
		Description: "Dinner", Amount: 30, CreatedByID: alice.ID,
		Splits: []models.Split{
			{UserID: bob.ID, Amount: 10},
			{UserID: carol.ID, Amount: 10},
		},
	}))

	err := store.InTx(ctx, func(ctx context.Context, tx storage.SettlementTx) error {
		cleared, err := tx.MarkSplitsPaid(ctx, bob.ID, alice.ID)
		require.EqualValues(t, 1, cleared)
		return err
	})
	require.NoError(t, err)

	// Carol's split is untouched; repeating the flip affects nothing.
	err = store.InTx(ctx, func(ctx context.Context, tx storage.SettlementTx) error {
		cleared, err := tx.MarkSplitsPaid(ctx, bob.ID, alice.ID)
		require.EqualValues(t, 0, cleared)
		return err
	})
	require.NoError(t, err)

	owed, err := store.SumUnpaidSplitsByParticipant(ctx, alice.ID)
	require.NoError(t, err)
	require.InDelta(t, 10, owed["carol"], 1e-9)
}
