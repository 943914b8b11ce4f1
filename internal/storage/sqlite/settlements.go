package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quicksplit/quicksplit/internal/models"
)

// settlementTx implements storage.SettlementTx over an open transaction.
type settlementTx struct {
	tx *sql.Tx
}

// InsertSettlement appends a settlement audit row.
func (t *settlementTx) InsertSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.SettledAt == 0 {
		settlement.SettledAt = time.Now().Unix()
	}

	_, err := t.tx.ExecContext(ctx,
		"INSERT INTO settlements (id, payer_id, receiver_id, amount, settled_at) VALUES (?, ?, ?, ?, ?)",
		settlement.ID, settlement.PayerID, settlement.ReceiverID, settlement.Amount, settlement.SettledAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}

	return nil
}

// MarkSplitsPaid flips every unpaid split owed by participantID on
// expenses created by creatorID to paid.
func (t *settlementTx) MarkSplitsPaid(ctx context.Context, participantID, creatorID string) (int64, error) {
	result, err := t.tx.ExecContext(ctx,
		`UPDATE splits SET is_paid = 1
		 WHERE user_id = ?
		   AND expense_id IN (SELECT id FROM expenses WHERE created_by = ?)
		   AND is_paid = 0`,
		participantID, creatorID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark splits paid: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count marked splits: %w", err)
	}

	return rows, nil
}

// ListSettlementsForUser retrieves settlements where the user is payer
// or receiver, newest first, with usernames attached.
func (s *SQLiteStore) ListSettlementsForUser(ctx context.Context, userID string) ([]*models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT t.id, t.payer_id, p.username, t.receiver_id, r.username, t.amount, t.settled_at
		 FROM settlements t
		 JOIN users p ON t.payer_id = p.id
		 JOIN users r ON t.receiver_id = r.id
		 WHERE t.payer_id = ? OR t.receiver_id = ?
		 ORDER BY t.settled_at DESC, t.id`,
		userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*models.Settlement
	for rows.Next() {
		settlement := &models.Settlement{}
		if err := rows.Scan(
			&settlement.ID,
			&settlement.PayerID,
			&settlement.PayerName,
			&settlement.ReceiverID,
			&settlement.ReceiverName,
			&settlement.Amount,
			&settlement.SettledAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, settlement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	return settlements, nil
}
