package models

// Expense represents a shared cost recorded by one user.
// It is created atomically with its splits; deleting an expense
// cascades to them.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Description is the human-readable label (e.g. "Dinner").
	Description string

	// Amount is the full expense amount. Always positive.
	Amount float64

	// CreatedByID is the ID of the user who paid and recorded the expense.
	CreatedByID string

	// CreatedByName is the creator's username, attached on reads for display.
	CreatedByName string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64

	// Splits are the per-participant shares owed to the creator.
	// For an equal split the creator's own share is not materialized;
	// splits exist only for the other participants.
	Splits []Split
}
