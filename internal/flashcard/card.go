package flashcard

import (
	"github.com/kokostudy/koko/internal/store"
)

// Card is a question/answer pair with its review schedule.
type Card struct {
	ID           string
	CourseID     string
	Question     string
	Answer       string
	Difficulty   Difficulty
	NextReview   Date
	ReviewCount  int
	LastReviewed *Date
}

// IsDue reports whether the card should be reviewed on today.
func (c Card) IsDue(today Date) bool {
	return c.NextReview <= today
}

// Draft is the user input for a new card.
type Draft struct {
	CourseID string `validate:"required"`
	Question string `validate:"required,notblank"`
	Answer   string `validate:"required,notblank"`
}

// Edit changes the content of a card. Nil fields are left unchanged.
// Scheduling fields cannot be edited.
type Edit struct {
	Question   *string     `validate:"omitnil,notblank"`
	Answer     *string     `validate:"omitnil,notblank"`
	Difficulty *Difficulty `validate:"omitnil,oneof=easy medium hard"`
}

// IsEmpty reports whether the edit changes nothing.
func (e Edit) IsEmpty() bool {
	return e.Question == nil && e.Answer == nil && e.Difficulty == nil
}

func fromRecord(r store.CardRecord) Card {
	c := Card{
		ID:          r.ID,
		CourseID:    r.CourseID,
		Question:    r.Question,
		Answer:      r.Answer,
		Difficulty:  Difficulty(r.Difficulty),
		NextReview:  Date(r.NextReview),
		ReviewCount: r.ReviewCount,
	}
	if r.LastReviewed != nil {
		d := Date(*r.LastReviewed)
		c.LastReviewed = &d
	}
	return c
}

// schedulePatch carries the fields a review changes.
func schedulePatch(c Card) store.CardPatch {
	difficulty := string(c.Difficulty)
	next := string(c.NextReview)
	count := c.ReviewCount
	patch := store.CardPatch{
		Difficulty:  &difficulty,
		NextReview:  &next,
		ReviewCount: &count,
	}
	if c.LastReviewed != nil {
		last := string(*c.LastReviewed)
		patch.LastReviewed = &last
	}
	return patch
}

func editPatch(e Edit) store.CardPatch {
	var patch store.CardPatch
	patch.Question = e.Question
	patch.Answer = e.Answer
	if e.Difficulty != nil {
		d := string(*e.Difficulty)
		patch.Difficulty = &d
	}
	return patch
}
