package todo

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Name length bounds, counted in characters.
const (
	MinNameLength = 1
	MaxNameLength = 100
)

var (
	// ErrInvalidLength is wrapped by validation errors for names outside
	// [MinNameLength, MaxNameLength].
	ErrInvalidLength = errors.New("invalid name length")

	// ErrDuplicateName is wrapped by validation errors for a list name that
	// is already taken in the session.
	ErrDuplicateName = errors.New("duplicate list name")

	// ErrNotFound is returned when an id does not address an existing entity.
	ErrNotFound = errors.New("not found")

	// ErrListNotFound and ErrTodoNotFound wrap ErrNotFound and name the
	// missing entity.
	ErrListNotFound = fmt.Errorf("list %w", ErrNotFound)
	ErrTodoNotFound = fmt.Errorf("todo %w", ErrNotFound)
)

// ValidationError is a user-correctable rejection of a submitted name.
// Error returns the message meant for the user; Unwrap exposes the sentinel.
type ValidationError struct {
	Field   string
	Err     error
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap returns the underlying sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Reason returns a short machine-readable label for the failure.
func (e *ValidationError) Reason() string {
	switch {
	case errors.Is(e.Err, ErrInvalidLength):
		return "invalid_length"
	case errors.Is(e.Err, ErrDuplicateName):
		return "duplicate_name"
	default:
		return "invalid"
	}
}

// NormalizeName trims surrounding whitespace from a submitted name.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

func validLength(name string) bool {
	n := utf8.RuneCountInString(name)
	return n >= MinNameLength && n <= MaxNameLength
}

// ValidateListName checks name against the length rule and against the
// names already present in lists. The list identified by except, if any, is
// left out of the uniqueness check so a list may keep its own name.
func ValidateListName(name string, lists *Lists, except ListID) error {
	if !validLength(name) {
		return &ValidationError{
			Field:   "list_name",
			Err:     ErrInvalidLength,
			Message: "List name must be between 1 and 100 characters.",
		}
	}
	if lists != nil {
		for _, l := range lists.items {
			if l.ID != except && l.Name == name {
				return &ValidationError{
					Field:   "list_name",
					Err:     ErrDuplicateName,
					Message: "List name must be unique",
				}
			}
		}
	}
	return nil
}

// ValidateTodoName checks name against the length rule.
func ValidateTodoName(name string) error {
	if !validLength(name) {
		return &ValidationError{
			Field:   "todo",
			Err:     ErrInvalidLength,
			Message: "Todo name must be between 1 and 100 characters.",
		}
	}
	return nil
}
