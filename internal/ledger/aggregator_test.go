package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeBalances(t *testing.T) {
	tests := []struct {
		name       string
		owedToUser map[string]float64
		userOwes   map[string]float64
		want       map[string]float64
	}{
		{
			name:       "both empty",
			owedToUser: map[string]float64{},
			userOwes:   map[string]float64{},
			want:       map[string]float64{},
		},
		{
			name:       "only owed to user",
			owedToUser: map[string]float64{"bob": 10, "carol": 5},
			userOwes:   map[string]float64{},
			want:       map[string]float64{"bob": 10, "carol": 5},
		},
		{
			name:       "only user owes",
			owedToUser: map[string]float64{},
			userOwes:   map[string]float64{"bob": 7.5},
			want:       map[string]float64{"bob": -7.5},
		},
		{
			name:       "nets per counterparty",
			owedToUser: map[string]float64{"bob": 10, "carol": 5},
			userOwes:   map[string]float64{"bob": 4, "dave": 2},
			want:       map[string]float64{"bob": 6, "carol": 5, "dave": -2},
		},
		{
			name:       "exact offset stays present as zero",
			owedToUser: map[string]float64{"bob": 10},
			userOwes:   map[string]float64{"bob": 10},
			want:       map[string]float64{"bob": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mergeBalances(tt.owedToUser, tt.userOwes)
			require.Len(t, got, len(tt.want))
			for username, amount := range tt.want {
				require.Contains(t, got, username)
				require.InDelta(t, amount, got[username], 1e-9)
			}
		})
	}
}

func TestBalances_PairConservation(t *testing.T) {
	svc, store := newTestLedger(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")

	// Alice paid 30 split with Bob; Bob paid 10 split with Alice.
	_, err := svc.RecordExpense(ctx, alice, ExpenseInput{
		Description: "Dinner", Amount: 30, Mode: SplitEqual,
		Shares: []Share{{Username: "alice"}, {Username: "bob"}},
	})
	require.NoError(t, err)

	_, err = svc.RecordExpense(ctx, bob, ExpenseInput{
		Description: "Coffee", Amount: 10, Mode: SplitEqual,
		Shares: []Share{{Username: "bob"}, {Username: "alice"}},
	})
	require.NoError(t, err)

	aliceView, err := svc.Balances(ctx, alice)
	require.NoError(t, err)
	bobView, err := svc.Balances(ctx, bob)
	require.NoError(t, err)

	// 15 owed minus 5 owed back: one signed net per counterparty.
	require.InDelta(t, 10, aliceView["bob"], 1e-9)
	require.InDelta(t, -aliceView["bob"], bobView["alice"], 1e-9)
}

func TestBalances_AbsentCounterpartiesNeverAppear(t *testing.T) {
	svc, store := newTestLedger(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice")
	createUser(t, store, "bob")
	carol := createUser(t, store, "carol")

	_, err := svc.RecordExpense(ctx, alice, ExpenseInput{
		Description: "Dinner", Amount: 20, Mode: SplitEqual,
		Shares: []Share{{Username: "alice"}, {Username: "bob"}},
	})
	require.NoError(t, err)

	balances, err := svc.Balances(ctx, alice)
	require.NoError(t, err)
	require.Contains(t, balances, "bob")
	require.NotContains(t, balances, "carol")

	// Carol has no unpaid activity at all: genuinely empty, not a
	// zero-padded map of all known users.
	balances, err = svc.Balances(ctx, carol)
	require.NoError(t, err)
	require.Empty(t, balances)
}

func TestBalances_ReflectsLatestState(t *testing.T) {
	svc, store := newTestLedger(t)
	ctx := context.Background()

	alice := createUser(t, store, "alice")
	bob := createUser(t, store, "bob")

	_, err := svc.RecordExpense(ctx, alice, ExpenseInput{
		Description: "Dinner", Amount: 30, Mode: SplitEqual,
		Shares: []Share{{Username: "alice"}, {Username: "bob"}},
	})
	require.NoError(t, err)

	before, err := svc.Balances(ctx, bob)
	require.NoError(t, err)
	require.InDelta(t, -15, before["alice"], 1e-9)

	_, err = svc.Settle(ctx, bob, alice, 15)
	require.NoError(t, err)

	// No caching: the next read sees the settlement.
	after, err := svc.Balances(ctx, bob)
	require.NoError(t, err)
	require.Empty(t, after)
}
