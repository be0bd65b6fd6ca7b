package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

var cardColumns = []string{
	"id", "user_id", "course_id", "question", "answer", "difficulty",
	"next_review", "review_count", "last_reviewed", "created_at", "updated_at",
}

type cardRepo struct {
	s *Store
}

func (r *cardRepo) ListCards(ctx context.Context, userID string) ([]CardRecord, error) {
	query, args := r.s.sql().
		Select(cardColumns...).
		From(r.s.sql().Table(tableFlashcards)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy("created_at", "id").
		Query()

	cards := []CardRecord{}
	if err := r.s.db.SelectContext(ctx, &cards, query, args...); err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	return cards, nil
}

func (r *cardRepo) GetCard(ctx context.Context, userID, id string) (CardRecord, error) {
	query, args := r.s.sql().
		Select(cardColumns...).
		From(r.s.sql().Table(tableFlashcards)).
		Where(entsql.And(entsql.EQ("user_id", userID), entsql.EQ("id", id))).
		Query()

	var card CardRecord
	if err := r.s.db.GetContext(ctx, &card, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CardRecord{}, fmt.Errorf("card %s: %w", id, ErrNotFound)
		}
		return CardRecord{}, fmt.Errorf("get card %s: %w", id, err)
	}
	return card, nil
}

func (r *cardRepo) CreateCard(ctx context.Context, userID string, card NewCard) (CardRecord, error) {
	now := r.s.now()
	rec := CardRecord{
		ID:          uuid.NewString(),
		UserID:      userID,
		CourseID:    card.CourseID,
		Question:    card.Question,
		Answer:      card.Answer,
		Difficulty:  card.Difficulty,
		NextReview:  card.NextReview,
		ReviewCount: 0,
		CreatedAt:   now.UTC(),
		UpdatedAt:   now.UTC(),
	}
	if rec.NextReview == "" {
		rec.NextReview = now.Format(dateLayout)
	}

	query, args, err := r.s.sql().
		Insert(tableFlashcards).
		Columns(cardColumns...).
		Values(rec.ID, rec.UserID, rec.CourseID, rec.Question, rec.Answer, rec.Difficulty,
			rec.NextReview, rec.ReviewCount, rec.LastReviewed, rec.CreatedAt, rec.UpdatedAt).
		QueryErr()
	if err != nil {
		return CardRecord{}, fmt.Errorf("build insert card: %w", err)
	}
	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return CardRecord{}, fmt.Errorf("insert card: %w", err)
	}
	return rec, nil
}

func (r *cardRepo) UpdateCard(ctx context.Context, userID, id string, patch CardPatch) (CardRecord, error) {
	upd := r.s.sql().
		Update(tableFlashcards).
		Set("updated_at", r.s.now().UTC()).
		Where(entsql.And(entsql.EQ("user_id", userID), entsql.EQ("id", id)))

	if patch.Question != nil {
		upd.Set("question", *patch.Question)
	}
	if patch.Answer != nil {
		upd.Set("answer", *patch.Answer)
	}
	if patch.Difficulty != nil {
		upd.Set("difficulty", *patch.Difficulty)
	}
	if patch.NextReview != nil {
		upd.Set("next_review", *patch.NextReview)
	}
	if patch.ReviewCount != nil {
		upd.Set("review_count", *patch.ReviewCount)
	}
	if patch.LastReviewed != nil {
		upd.Set("last_reviewed", *patch.LastReviewed)
	}

	query, args := upd.Query()
	res, err := r.s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return CardRecord{}, fmt.Errorf("update card %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return CardRecord{}, fmt.Errorf("update card %s: %w", id, err)
	}
	if n == 0 {
		return CardRecord{}, fmt.Errorf("card %s: %w", id, ErrNotFound)
	}
	return r.GetCard(ctx, userID, id)
}

func (r *cardRepo) CountDue(ctx context.Context, userID, today string) (int, error) {
	query, args := r.s.sql().
		Select(entsql.Count("*")).
		From(r.s.sql().Table(tableFlashcards)).
		Where(entsql.And(entsql.EQ("user_id", userID), entsql.LTE("next_review", today))).
		Query()

	var n int
	if err := r.s.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("count due cards: %w", err)
	}
	return n, nil
}
