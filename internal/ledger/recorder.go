package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/quicksplit/quicksplit/internal/models"
)

// splitTolerance is the maximum difference between an expense amount
// and the sum of its custom shares before the mismatch policy applies.
const splitTolerance = 0.01

// SplitMode selects how an expense is divided among participants.
type SplitMode int

const (
	// SplitEqual divides the amount evenly. The creator's own share is
	// not persisted as a split row; splits exist only for the other
	// participants' obligations, which is what the balance aggregation
	// queries assume.
	SplitEqual SplitMode = iota

	// SplitCustom uses the per-share amounts supplied by the caller,
	// including a row for the creator's own share.
	SplitCustom
)

// MismatchResolution selects what happens when custom shares do not
// sum to the expense amount.
type MismatchResolution int

const (
	// ResolveAbort rejects the expense with a SplitMismatchError.
	// Nothing is written.
	ResolveAbort MismatchResolution = iota

	// ResolveScale rescales every share by amount/total, rounds to
	// cents, and assigns the leftover cents to the creator's share so
	// the final sum equals the expense amount exactly.
	ResolveScale
)

// Share is one participant's part of an expense. The creator's share
// comes first in an ExpenseInput.
type Share struct {
	Username string
	Amount   float64
}

// ExpenseInput describes an expense to be recorded.
type ExpenseInput struct {
	Description string
	Amount      float64

	// Shares lists the participants, creator first. For SplitEqual the
	// share amounts are ignored and computed from Amount.
	Shares []Share

	Mode       SplitMode
	OnMismatch MismatchResolution
}

// RecordExpense validates the input, resolves every participant, and
// persists the expense with its splits atomically. On any failure no
// rows are written.
func (s *Service) RecordExpense(ctx context.Context, creator *models.User, in ExpenseInput) (*models.Expense, error) {
	if in.Amount <= 0 {
		return nil, &ValidationError{Reason: fmt.Sprintf("amount must be positive, got %.2f", in.Amount)}
	}
	if len(in.Shares) < 2 {
		return nil, &ValidationError{Reason: "at least 2 participants are required"}
	}
	if in.Shares[0].Username != creator.Username {
		return nil, &ValidationError{Reason: "the first share must belong to the expense creator"}
	}

	seen := make(map[string]bool, len(in.Shares))
	for _, share := range in.Shares {
		if seen[share.Username] {
			return nil, &ValidationError{Reason: fmt.Sprintf("duplicate participant: %s", share.Username)}
		}
		seen[share.Username] = true
	}

	// Resolve all participants before writing anything.
	participants := make([]*models.User, len(in.Shares))
	participants[0] = creator
	for i := 1; i < len(in.Shares); i++ {
		user, err := s.resolveUser(ctx, in.Shares[i].Username)
		if err != nil {
			return nil, err
		}
		participants[i] = user
	}

	amounts, err := shareAmounts(in)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		Description:   in.Description,
		Amount:        in.Amount,
		CreatedByID:   creator.ID,
		CreatedByName: creator.Username,
	}

	for i, user := range participants {
		// An equal split never materializes the creator's own share.
		if in.Mode == SplitEqual && i == 0 {
			continue
		}
		expense.Splits = append(expense.Splits, models.Split{
			UserID:   user.ID,
			Username: user.Username,
			Amount:   amounts[i],
		})
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to record expense: %w", err)
	}

	slog.Info("Expense recorded",
		"expense_id", expense.ID,
		"description", expense.Description,
		"amount", expense.Amount,
		"splits", len(expense.Splits),
		"created_by", creator.Username,
	)

	return expense, nil
}

// shareAmounts computes the final per-share amounts for the input,
// applying the mismatch policy for custom splits.
func shareAmounts(in ExpenseInput) ([]float64, error) {
	n := len(in.Shares)
	amounts := make([]float64, n)

	if in.Mode == SplitEqual {
		perHead := in.Amount / float64(n)
		for i := range amounts {
			amounts[i] = perHead
		}
		return amounts, nil
	}

	total := 0.0
	for i, share := range in.Shares {
		amounts[i] = share.Amount
		total += share.Amount
	}

	if math.Abs(total-in.Amount) <= splitTolerance {
		return amounts, nil
	}
	if in.OnMismatch != ResolveScale {
		return nil, &SplitMismatchError{Total: total, Amount: in.Amount}
	}
	return scaleShares(amounts, in.Amount, total), nil
}

// scaleShares rescales amounts by target/total, rounding each share to
// cents. Leftover cents from rounding go to the first (creator's)
// share, so the result sums to target exactly.
func scaleShares(amounts []float64, target, total float64) []float64 {
	factor := target / total
	scaled := make([]float64, len(amounts))

	sum := 0.0
	for i, amount := range amounts {
		scaled[i] = roundCents(amount * factor)
		sum += scaled[i]
	}

	leftover := roundCents(target - sum)
	if leftover != 0 {
		scaled[0] = roundCents(scaled[0] + leftover)
	}

	return scaled
}

func roundCents(x float64) float64 {
	return math.Round(x*100) / 100
}
