package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quicksplit/quicksplit/internal/models"
	"github.com/quicksplit/quicksplit/internal/storage"
)

// SettlementPolicy decides which of the payer's splits a settlement
// clears. It runs inside the settlement transaction, after the audit
// row has been inserted, so its writes commit or roll back together
// with the settlement itself.
type SettlementPolicy interface {
	Apply(ctx context.Context, tx storage.SettlementTx, payerID, receiverID string) error
}

// ClearPairPolicy marks paid every unpaid split the payer owes the
// receiver, regardless of the settled amount. An over- or underpayment
// still clears the pair completely; only the audit row remembers the
// actual figure. An amount-aware policy (oldest-first, proportional)
// can replace this without touching the transaction wiring.
type ClearPairPolicy struct{}

// Apply implements SettlementPolicy.
func (ClearPairPolicy) Apply(ctx context.Context, tx storage.SettlementTx, payerID, receiverID string) error {
	cleared, err := tx.MarkSplitsPaid(ctx, payerID, receiverID)
	if err != nil {
		return err
	}
	slog.Debug("Splits cleared by settlement", "payer_id", payerID, "receiver_id", receiverID, "count", cleared)
	return nil
}

// Settle records a settlement from payer to receiver and applies the
// settlement policy, as one atomic unit: if either write fails, both
// are rolled back and neither is observable.
func (s *Service) Settle(ctx context.Context, payer, receiver *models.User, amount float64) (*models.Settlement, error) {
	if amount <= 0 {
		return nil, &ValidationError{Reason: fmt.Sprintf("settlement amount must be positive, got %.2f", amount)}
	}
	if payer.ID == receiver.ID {
		return nil, &ValidationError{Reason: "payer and receiver must differ"}
	}

	settlement := &models.Settlement{
		PayerID:      payer.ID,
		PayerName:    payer.Username,
		ReceiverID:   receiver.ID,
		ReceiverName: receiver.Username,
		Amount:       amount,
	}

	err := s.store.InTx(ctx, func(ctx context.Context, tx storage.SettlementTx) error {
		if err := tx.InsertSettlement(ctx, settlement); err != nil {
			return err
		}
		return s.policy.Apply(ctx, tx, payer.ID, receiver.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to settle debt: %w", err)
	}

	slog.Info("Debt settled",
		"settlement_id", settlement.ID,
		"payer", payer.Username,
		"receiver", receiver.Username,
		"amount", amount,
	)

	return settlement, nil
}
