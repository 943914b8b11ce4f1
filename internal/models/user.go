package models

// User represents a registered account.
//
// Users are created at registration and immutable afterwards; there are
// no update or delete operations.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Username is the unique handle used to log in and to identify
	// counterparties in balances.
	Username string

	// Email is the user's email address (unique).
	Email string

	// PasswordHash is the bcrypt hash of the user's password.
	// Never the plaintext password.
	PasswordHash string

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64
}
