package catalog

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a referenced state, venue, artist or show
// does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError lists the form fields that were missing or malformed.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid or missing fields: " + strings.Join(e.Fields, ", ")
}

// PersistenceError wraps a failure reported by the database.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Kind names the category of err for logging.
func Kind(err error) string {
	var validationErr *ValidationError
	var persistenceErr *PersistenceError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.As(err, &validationErr):
		return "validation"
	case errors.As(err, &persistenceErr):
		return "persistence"
	default:
		return "unknown"
	}
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// lookupError converts a gorm lookup failure into ErrNotFound or a
// PersistenceError.
func lookupError(what string, key any, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %v: %w", what, key, ErrNotFound)
	}
	return &PersistenceError{Op: "find " + what, Err: err}
}

// txError keeps typed errors returned from inside a transaction and wraps
// everything else (begin/commit failures) as a PersistenceError.
func txError(op string, err error) error {
	if err == nil {
		return nil
	}
	if Kind(err) != "unknown" {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
