package ledger

import (
	"errors"
	"fmt"
)

// ValidationError indicates the caller supplied input the ledger
// refuses to record: a non-positive amount, too few participants, a
// duplicated participant. Recoverable by correcting the input.
type ValidationError struct {
	// Reason is a human-readable description.
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid expense: %s", e.Reason)
}

// SplitMismatchError indicates custom split amounts do not sum to the
// expense amount within tolerance. The caller can resolve it by
// re-entering the shares or requesting proportional rescaling.
type SplitMismatchError struct {
	// Total is the sum of the supplied share amounts.
	Total float64

	// Amount is the expense amount the shares must add up to.
	Amount float64
}

// Error implements the error interface.
func (e *SplitMismatchError) Error() string {
	return fmt.Sprintf("split total %.2f does not match expense amount %.2f", e.Total, e.Amount)
}

// NotFoundError indicates a referenced username does not exist.
type NotFoundError struct {
	// Username is the unresolved username.
	Username string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("user not found: %s", e.Username)
}

// IsValidation returns true if the error is a ValidationError.
// Uses errors.As to handle wrapped errors.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsSplitMismatch returns true if the error is a SplitMismatchError.
func IsSplitMismatch(err error) bool {
	var me *SplitMismatchError
	return errors.As(err, &me)
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}
