package flashcard

import (
	"encoding"
	"fmt"
	"strings"
)

// Difficulty is the self-assessed recall rating of a review. A card keeps
// the rating of its most recent review.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// DefaultDifficulty is held by a card until its first review.
const DefaultDifficulty = Medium

var (
	_ fmt.Stringer             = Difficulty("")
	_ encoding.TextUnmarshaler = (*Difficulty)(nil)
)

// AllDifficulties returns the ratings in button order.
func AllDifficulties() []Difficulty {
	return []Difficulty{Hard, Medium, Easy}
}

// ParseDifficulty accepts the rating names case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidDifficulty, s)
	}
	return d, nil
}

// IsValid reports whether d is one of easy, medium, hard.
func (d Difficulty) IsValid() bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	}
	return false
}

func (d Difficulty) String() string {
	return string(d)
}

// Label returns the capitalised button label.
func (d Difficulty) Label() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	default:
		return fmt.Sprintf("Difficulty(%s)", string(d))
	}
}

func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
