package ledger

import (
	"context"
	"fmt"

	"github.com/quicksplit/quicksplit/internal/models"
)

// Balances computes the user's net position against every counterparty
// with unpaid activity: positive means the counterparty owes the user,
// negative means the user owes the counterparty.
//
// The result is built fresh on every call from the committed state;
// nothing is cached. A counterparty appears only if it has an unpaid
// split on one side or the other, so an empty map means there is
// genuinely nothing outstanding.
func (s *Service) Balances(ctx context.Context, user *models.User) (map[string]float64, error) {
	owedToUser, err := s.store.SumUnpaidSplitsByParticipant(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate amounts owed to user: %w", err)
	}

	userOwes, err := s.store.SumUnpaidSplitsByCreator(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate amounts user owes: %w", err)
	}

	return mergeBalances(owedToUser, userOwes), nil
}

// mergeBalances folds the two grouped sums into one signed mapping:
// balance[counterparty] = owedToUser[counterparty] - userOwes[counterparty].
// Debts in both directions with the same counterparty net into a single
// value, which may be zero.
func mergeBalances(owedToUser, userOwes map[string]float64) map[string]float64 {
	balances := make(map[string]float64, len(owedToUser)+len(userOwes))
	for username, amount := range owedToUser {
		balances[username] = amount
	}
	for username, amount := range userOwes {
		balances[username] -= amount
	}
	return balances
}
