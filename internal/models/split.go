package models

// Split represents one participant's share of an expense, owed to the
// expense's creator.
//
// A split moves from unpaid to paid exactly once, when a settlement
// between the participant and the creator is recorded. It never reverts.
type Split struct {
	// ID is the unique identifier for the split (UUID format).
	ID string

	// ExpenseID is the owning expense.
	ExpenseID string

	// UserID is the participant who owes this share.
	UserID string

	// Username is the participant's username, attached on reads for display.
	Username string

	// Amount is this participant's share of the expense.
	Amount float64

	// IsPaid reports whether this share has been settled.
	IsPaid bool
}
