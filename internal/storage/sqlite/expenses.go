package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quicksplit/quicksplit/internal/models"
)

// CreateExpense persists an expense and its splits in one transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	// Generate IDs if not set
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO expenses (id, description, amount, created_by, created_at) VALUES (?, ?, ?, ?, ?)",
		expense.ID, expense.Description, expense.Amount, expense.CreatedByID, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i := range expense.Splits {
		split := &expense.Splits[i]
		if split.ID == "" {
			split.ID = uuid.New().String()
		}
		split.ExpenseID = expense.ID

		_, err = tx.ExecContext(ctx,
			"INSERT INTO splits (id, expense_id, user_id, amount, is_paid) VALUES (?, ?, ?, ?, 0)",
			split.ID, split.ExpenseID, split.UserID, split.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteExpense removes an expense. Splits are removed by the
// ON DELETE CASCADE constraint.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("expense not found: %s", expenseID)
	}

	return nil
}

// GetSplitsForExpense retrieves an expense's splits with participant
// usernames attached.
func (s *SQLiteStore) GetSplitsForExpense(ctx context.Context, expenseID string) ([]models.Split, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.id, s.expense_id, s.user_id, u.username, s.amount, s.is_paid
		 FROM splits s JOIN users u ON s.user_id = u.id
		 WHERE s.expense_id = ?
		 ORDER BY u.username`,
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	return scanSplits(rows)
}

// ListExpensesByCreator retrieves the expenses a user created, newest
// first, each with its splits attached.
func (s *SQLiteStore) ListExpensesByCreator(ctx context.Context, userID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT e.id, e.description, e.amount, e.created_by, u.username, e.created_at
		 FROM expenses e JOIN users u ON e.created_by = u.id
		 WHERE e.created_by = ?
		 ORDER BY e.created_at DESC, e.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		if err := rows.Scan(
			&expense.ID,
			&expense.Description,
			&expense.Amount,
			&expense.CreatedByID,
			&expense.CreatedByName,
			&expense.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		splits, err := s.GetSplitsForExpense(ctx, expense.ID)
		if err != nil {
			return nil, err
		}
		expense.Splits = splits
	}

	return expenses, nil
}

// SumUnpaidSplitsByParticipant sums unpaid splits of expenses created
// by creatorID, grouped by participant username. The creator's own
// splits are excluded.
func (s *SQLiteStore) SumUnpaidSplitsByParticipant(ctx context.Context, creatorID string) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT u.username, SUM(s.amount)
		 FROM splits s
		 JOIN expenses e ON s.expense_id = e.id
		 JOIN users u ON s.user_id = u.id
		 WHERE e.created_by = ? AND s.user_id != ? AND s.is_paid = 0
		 GROUP BY s.user_id`,
		creatorID, creatorID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to sum splits by participant: %w", err)
	}
	defer rows.Close()

	return scanSums(rows)
}

// SumUnpaidSplitsByCreator sums participantID's unpaid splits on other
// users' expenses, grouped by creator username.
func (s *SQLiteStore) SumUnpaidSplitsByCreator(ctx context.Context, participantID string) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT u.username, SUM(s.amount)
		 FROM splits s
		 JOIN expenses e ON s.expense_id = e.id
		 JOIN users u ON e.created_by = u.id
		 WHERE s.user_id = ? AND e.created_by != ? AND s.is_paid = 0
		 GROUP BY e.created_by`,
		participantID, participantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to sum splits by creator: %w", err)
	}
	defer rows.Close()

	return scanSums(rows)
}

func scanSplits(rows *sql.Rows) ([]models.Split, error) {
	var splits []models.Split
	for rows.Next() {
		var split models.Split
		if err := rows.Scan(
			&split.ID,
			&split.ExpenseID,
			&split.UserID,
			&split.Username,
			&split.Amount,
			&split.IsPaid,
		); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}
	return splits, nil
}

func scanSums(rows *sql.Rows) (map[string]float64, error) {
	sums := make(map[string]float64)
	for rows.Next() {
		var username string
		var amount float64
		if err := rows.Scan(&username, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan sum: %w", err)
		}
		sums[username] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sums: %w", err)
	}
	return sums, nil
}
