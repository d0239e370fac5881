package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthorized is returned by Login when the email is not on the allow-list.
	ErrNotAuthorized = errors.New("access denied: this email is not authorized")
	// ErrMissingField is returned when a required input is empty.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidRole is returned for a role outside admin, logistics and cadet.
	ErrInvalidRole = errors.New("invalid role")
	// ErrDuplicateEmail is returned when adding an email that is already authorized.
	ErrDuplicateEmail = errors.New("email already authorized")
	// ErrNotFound is returned when the addressed record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConfirmationRequired is returned by destructive operations called
	// without an explicit confirmation.
	ErrConfirmationRequired = errors.New("confirmation required")
	// ErrInsufficientStock is returned when a checkout exceeds available stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrPersist marks a failed write to the key-value store. The in-memory
	// change that triggered it has already been applied and is kept.
	ErrPersist = errors.New("changes not saved")
)

// Confirmation must be Confirmed for a destructive operation to proceed.
type Confirmation bool

// Confirmed is the affirmative Confirmation.
const Confirmed Confirmation = true

func persistErr(err error) error {
	return fmt.Errorf("%w: %w", ErrPersist, err)
}
