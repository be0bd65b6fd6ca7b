package flashcard

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation        = errors.New("flashcard: validation failed")
	ErrInvalidDifficulty = errors.New("flashcard: invalid difficulty")
	ErrNotFound          = errors.New("flashcard: not found")
)

// ValidationError lists the fields a draft or edit was rejected for.
// It matches ErrValidation under errors.Is.
type ValidationError struct {
	Fields []FieldError
}

// FieldError describes one rejected field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + " " + f.Reason
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// PersistError wraps a store failure on create or update. The local view
// of the card may no longer match what is stored.
type PersistError struct {
	Op     string
	CardID string
	Err    error
}

func (e *PersistError) Error() string {
	if e.CardID == "" {
		return fmt.Sprintf("flashcard: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("flashcard: %s %s: %v", e.Op, e.CardID, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
