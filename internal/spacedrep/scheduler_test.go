package spacedrep

import (
	"errors"
	"testing"

	"github.com/kokostudy/koko/internal/flashcard"
)

func d(s string) flashcard.Date { return flashcard.MustParseDate(s) }

func newCard(id, next string) flashcard.Card {
	return flashcard.Card{
		ID:         id,
		CourseID:   "course",
		Question:   "q-" + id,
		Answer:     "a-" + id,
		Difficulty: flashcard.DefaultDifficulty,
		NextReview: d(next),
	}
}

func ids(cards []flashcard.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

func TestDueSet_ExactlyCardsOnOrBeforeToday(t *testing.T) {
	cards := []flashcard.Card{
		newCard("a", "2024-01-05"),
		newCard("b", "2023-12-31"),
		newCard("c", "2024-01-01"),
		newCard("d", "2024-01-02"),
		newCard("e", "2023-06-15"),
	}
	today := d("2024-01-01")

	got := DueSet(cards, today)
	want := []string{"b", "c", "e"}
	if len(got) != len(want) {
		t.Fatalf("DueSet = %v, want %v", ids(got), want)
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Errorf("DueSet[%d] = %s, want %s (input order)", i, got[i].ID, want[i])
		}
	}

	// Membership holds for every card in both directions.
	in := map[string]bool{}
	for _, c := range got {
		in[c.ID] = true
	}
	for _, c := range cards {
		if in[c.ID] != (c.NextReview <= today) {
			t.Errorf("card %s next=%s: in due set = %v", c.ID, c.NextReview, in[c.ID])
		}
	}
}

func TestDueSet_Empty(t *testing.T) {
	tests := []struct {
		name  string
		cards []flashcard.Card
	}{
		{"nil collection", nil},
		{"empty collection", []flashcard.Card{}},
		{"nothing due", []flashcard.Card{newCard("a", "2024-02-01")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DueSet(tt.cards, d("2024-01-01"))
			if got == nil {
				t.Fatal("DueSet returned nil, want empty slice")
			}
			if len(got) != 0 {
				t.Errorf("DueSet = %v, want empty", ids(got))
			}
		})
	}
}

func TestDueSet_DoesNotMutateInput(t *testing.T) {
	cards := []flashcard.Card{newCard("a", "2024-01-01"), newCard("b", "2024-01-09")}
	_ = DueSet(cards, d("2024-01-01"))
	if cards[0].ID != "a" || cards[1].ID != "b" || len(cards) != 2 {
		t.Errorf("input modified: %v", ids(cards))
	}
}

func TestReview_FixedTable(t *testing.T) {
	s := NewScheduler(nil)
	today := d("2024-03-10")

	tests := []struct {
		rating flashcard.Difficulty
		want   string
	}{
		{flashcard.Easy, "2024-03-17"},
		{flashcard.Medium, "2024-03-13"},
		{flashcard.Hard, "2024-03-11"},
	}
	for _, tt := range tests {
		t.Run(string(tt.rating), func(t *testing.T) {
			before := newCard("x", "2024-03-01")
			before.ReviewCount = 4

			got, err := s.Review(before, tt.rating, today)
			if err != nil {
				t.Fatalf("Review: %v", err)
			}
			if got.NextReview != d(tt.want) {
				t.Errorf("NextReview = %s, want %s", got.NextReview, tt.want)
			}
			if got.ReviewCount != 5 {
				t.Errorf("ReviewCount = %d, want 5", got.ReviewCount)
			}
			if got.LastReviewed == nil || *got.LastReviewed != today {
				t.Errorf("LastReviewed = %v, want %s", got.LastReviewed, today)
			}
			if got.Difficulty != tt.rating {
				t.Errorf("Difficulty = %s, want %s", got.Difficulty, tt.rating)
			}
			if before.ReviewCount != 4 || before.LastReviewed != nil {
				t.Error("input card was modified")
			}
			if got.Question != before.Question || got.Answer != before.Answer || got.ID != before.ID {
				t.Error("content fields must be preserved")
			}
		})
	}
}

func TestReview_InvalidRating(t *testing.T) {
	s := NewScheduler(FixedStrategy{})
	for _, r := range []flashcard.Difficulty{"", "trivial", "EASY"} {
		_, err := s.Review(newCard("x", "2024-01-01"), r, d("2024-01-01"))
		if !errors.Is(err, ErrInvalidRating) {
			t.Errorf("Review(%q) err = %v, want ErrInvalidRating", r, err)
		}
	}
}

func TestReview_TwiceIncrementsByTwo(t *testing.T) {
	s := NewScheduler(nil)
	c := newCard("x", "2024-01-01")

	c, err := s.Review(c, flashcard.Medium, d("2024-01-01"))
	if err != nil {
		t.Fatal(err)
	}
	c, err = s.Review(c, flashcard.Easy, d("2024-01-04"))
	if err != nil {
		t.Fatal(err)
	}
	if c.ReviewCount != 2 {
		t.Errorf("ReviewCount = %d, want 2", c.ReviewCount)
	}
}

func TestScenario_CreatedThenEasy(t *testing.T) {
	s := NewScheduler(nil)
	card := newCard("x", "2024-01-01")
	cards := []flashcard.Card{card}

	if got := DueSet(cards, d("2024-01-01")); len(got) != 1 {
		t.Fatalf("new card must be due on its creation date, got %v", ids(got))
	}

	card, err := s.Review(card, flashcard.Easy, d("2024-01-01"))
	if err != nil {
		t.Fatal(err)
	}
	if card.NextReview != d("2024-01-08") {
		t.Errorf("NextReview = %s, want 2024-01-08", card.NextReview)
	}
	if card.ReviewCount != 1 {
		t.Errorf("ReviewCount = %d, want 1", card.ReviewCount)
	}

	cards = []flashcard.Card{card}
	if got := DueSet(cards, d("2024-01-05")); len(got) != 0 {
		t.Errorf("card must not be due on 2024-01-05, got %v", ids(got))
	}
	if got := DueSet(cards, d("2024-01-08")); len(got) != 1 {
		t.Errorf("card must be due on 2024-01-08, got %v", ids(got))
	}
}

func TestScenario_HardTwice(t *testing.T) {
	s := NewScheduler(nil)
	day := d("2024-05-20")
	card := newCard("x", "2024-05-20")

	card, err := s.Review(card, flashcard.Hard, day)
	if err != nil {
		t.Fatal(err)
	}
	if card.NextReview != day.AddDays(1) {
		t.Errorf("after first hard: NextReview = %s, want %s", card.NextReview, day.AddDays(1))
	}

	card, err = s.Review(card, flashcard.Hard, day.AddDays(1))
	if err != nil {
		t.Fatal(err)
	}
	if card.NextReview != day.AddDays(2) {
		t.Errorf("after second hard: NextReview = %s, want %s", card.NextReview, day.AddDays(2))
	}
	if card.ReviewCount != 2 {
		t.Errorf("ReviewCount = %d, want 2", card.ReviewCount)
	}
}

func TestStatus(t *testing.T) {
	today := d("2024-01-10")
	reviewed := newCard("r", "2024-01-10")
	reviewed.ReviewCount = 2

	tests := []struct {
		name string
		card flashcard.Card
		want ReviewStatus
	}{
		{"new card", newCard("n", "2024-01-10"), ReviewNew},
		{"due today", reviewed, ReviewDue},
		{"overdue", func() flashcard.Card { c := reviewed; c.NextReview = d("2024-01-07"); return c }(), ReviewOverdue},
		{"not due", func() flashcard.Card { c := reviewed; c.NextReview = d("2024-01-12"); return c }(), ReviewNotDue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Status(tt.card, today); got != tt.want {
				t.Errorf("Status = %s, want %s", got, tt.want)
			}
		})
	}

	if got := DaysUntilReview(tests[3].card, today); got != 2 {
		t.Errorf("DaysUntilReview = %d, want 2", got)
	}
	if got := OverdueDays(tests[2].card, today); got != 3 {
		t.Errorf("OverdueDays = %d, want 3", got)
	}
}
