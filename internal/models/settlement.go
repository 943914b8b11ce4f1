package models

// Settlement represents a payment between two users to clear debts.
// Settlement rows are append-only: never updated, never deleted.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// PayerID is the user who paid (debtor settling up).
	PayerID string

	// PayerName is the payer's username, attached on reads for display.
	PayerName string

	// ReceiverID is the user who received payment (creditor being paid).
	ReceiverID string

	// ReceiverName is the receiver's username, attached on reads for display.
	ReceiverName string

	// Amount is the payment amount as reported by the payer. It is
	// recorded verbatim even when it does not match the outstanding
	// balance between the pair.
	Amount float64

	// SettledAt is the Unix timestamp when the settlement was recorded.
	SettledAt int64
}
