package rewards

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/kokostudy/koko/internal/flashcard"
	"github.com/kokostudy/koko/internal/store"
)

// Companion is the companion's persisted state.
type Companion struct {
	Funds           int
	BusTickets      int
	Mood            Mood
	LastInteraction *time.Time

	Outfits       []string // owned outfit IDs in purchase order
	CurrentOutfit string   // empty when no outfit is worn
}

// Owns reports whether the companion has bought outfit id.
func (c Companion) Owns(id string) bool {
	return slices.Contains(c.Outfits, id)
}

// Service tracks rewards, the study streak and the companion of one user.
type Service struct {
	userID     string
	events     store.EventRepo
	companions store.CompanionRepo
	stats      store.StatsRepo
	log        *zap.Logger
	now        func() time.Time
	catalog    []Outfit

	// SessionAwards accumulates awards given during the current session.
	SessionAwards []Award
}

// NewService creates a rewards service for userID.
func NewService(userID string, events store.EventRepo, companions store.CompanionRepo, stats store.StatsRepo, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		userID:     userID,
		events:     events,
		companions: companions,
		stats:      stats,
		log:        log.With(zap.String("component", "rewards")),
		now:        time.Now,
	}
}

// Companion returns the stored companion, or a fresh sleepy one.
func (s *Service) Companion(ctx context.Context) (Companion, error) {
	rec, err := s.companions.GetCompanion(ctx, s.userID)
	if errors.Is(err, store.ErrNotFound) {
		return Companion{Mood: MoodSleepy}, nil
	}
	if err != nil {
		return Companion{}, fmt.Errorf("load companion: %w", err)
	}
	return Companion{
		Funds:           rec.Funds,
		BusTickets:      rec.BusTickets,
		Mood:            Mood(rec.Mood),
		LastInteraction: rec.LastInteraction,
		Outfits:         []string(rec.Outfits),
		CurrentOutfit:   rec.CurrentOutfit,
	}, nil
}

// Stats returns the stored streak and counters, or zero stats.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	rec, err := s.stats.GetStats(ctx, s.userID)
	if errors.Is(err, store.ErrNotFound) {
		return Stats{}, nil
	}
	if err != nil {
		return Stats{}, fmt.Errorf("load stats: %w", err)
	}
	st := Stats{
		CurrentStreak: rec.CurrentStreak,
		LongestStreak: rec.LongestStreak,
		TotalReviews:  rec.TotalReviews,
		TotalSessions: rec.TotalSessions,
		StudyMinutes:  rec.StudyMinutes,
	}
	if rec.LastStudyDate != nil {
		d := flashcard.Date(*rec.LastStudyDate)
		st.LastStudyDate = &d
	}
	return st, nil
}

// Mood derives the current mood without changing anything.
func (s *Service) Mood(ctx context.Context, today flashcard.Date, dueToday int) (Mood, error) {
	st, err := s.Stats(ctx)
	if err != nil {
		return "", err
	}
	return MoodFor(st, today, dueToday), nil
}

// StartSession records the start of a review session and clears the
// session award accumulator.
func (s *Service) StartSession(ctx context.Context, sessionID string, due int) error {
	s.SessionAwards = nil
	err := s.events.AppendSessionEvent(ctx, store.SessionEventData{
		UserID:    s.userID,
		SessionID: sessionID,
		Action:    "start",
		CardsDue:  due,
	})
	if err != nil {
		return fmt.Errorf("log session start: %w", err)
	}
	return nil
}

// RecordReview rewards one rated card: a coin, plus a bus ticket when the
// first study activity of today reaches a streak milestone.
func (s *Service) RecordReview(ctx context.Context, sessionID string, today flashcard.Date) ([]Award, error) {
	st, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}
	comp, err := s.Companion(ctx)
	if err != nil {
		return nil, err
	}

	awards := []Award{s.newAward(AwardReview, CoinsPerReview, sessionID, "Card reviewed")}
	comp.Funds += CoinsPerReview

	st, counted := RecordStudyDay(st, today)
	if counted && IsStreakMilestone(st.CurrentStreak) {
		awards = append(awards, s.newAward(AwardStreak, TicketsPerMilestone, sessionID,
			fmt.Sprintf("%d-day study streak!", st.CurrentStreak)))
		comp.BusTickets += TicketsPerMilestone
	}
	st.TotalReviews++

	if err := s.saveStats(ctx, st); err != nil {
		return nil, err
	}
	if err := s.saveCompanion(ctx, comp); err != nil {
		return nil, err
	}
	if err := s.persist(ctx, awards); err != nil {
		return nil, err
	}
	return awards, nil
}

// CompleteSession records the end of a session and, when at least one card
// was reviewed, awards the session bonus. The companion's mood is refreshed
// from dueLeft, the number of cards still due today.
func (s *Service) CompleteSession(ctx context.Context, sum SessionResult, today flashcard.Date, dueLeft int) (*Award, error) {
	err := s.events.AppendSessionEvent(ctx, store.SessionEventData{
		UserID:        s.userID,
		SessionID:     sum.SessionID,
		Action:        "end",
		CardsDue:      sum.Due,
		CardsReviewed: sum.Reviewed,
		DurationSecs:  int(sum.Duration.Seconds()),
	})
	if err != nil {
		return nil, fmt.Errorf("log session end: %w", err)
	}

	st, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}
	comp, err := s.Companion(ctx)
	if err != nil {
		return nil, err
	}

	var award *Award
	if sum.Reviewed > 0 {
		a := s.newAward(AwardSession, CoinsPerSession, sum.SessionID,
			fmt.Sprintf("Session complete (%d cards)", sum.Reviewed))
		award = &a
		comp.Funds += CoinsPerSession
		st.TotalSessions++
		if err := s.saveStats(ctx, st); err != nil {
			return nil, err
		}
		if err := s.persist(ctx, []Award{a}); err != nil {
			return nil, err
		}
	}

	comp.Mood = MoodFor(st, today, dueLeft)
	if err := s.saveCompanion(ctx, comp); err != nil {
		return nil, err
	}
	return award, nil
}

// RecordStudy rewards a logged study session of minutes: study coins,
// the session's time toward the totals, and a bus ticket when the session
// is the first study activity of today and reaches a streak milestone.
func (s *Service) RecordStudy(ctx context.Context, sessionID string, minutes int, today flashcard.Date) ([]Award, error) {
	if minutes <= 0 {
		return nil, fmt.Errorf("record study: minutes must be positive, got %d", minutes)
	}
	st, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}
	comp, err := s.Companion(ctx)
	if err != nil {
		return nil, err
	}

	coins := StudyCoins(minutes)
	awards := []Award{s.newAward(AwardStudy, coins, sessionID, fmt.Sprintf("Studied %d min", minutes))}
	comp.Funds += coins

	st, counted := RecordStudyDay(st, today)
	if counted && IsStreakMilestone(st.CurrentStreak) {
		awards = append(awards, s.newAward(AwardStreak, TicketsPerMilestone, sessionID,
			fmt.Sprintf("%d-day study streak!", st.CurrentStreak)))
		comp.BusTickets += TicketsPerMilestone
	}
	st.StudyMinutes += minutes

	if err := s.saveStats(ctx, st); err != nil {
		return nil, err
	}
	if err := s.saveCompanion(ctx, comp); err != nil {
		return nil, err
	}
	if err := s.persist(ctx, awards); err != nil {
		return nil, err
	}
	return awards, nil
}

// SessionResult is what CompleteSession needs to know about a session.
type SessionResult struct {
	SessionID string
	Due       int
	Reviewed  int
	Duration  time.Duration
}

// History returns recent awards, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]Award, error) {
	recs, err := s.events.QueryRewardEvents(ctx, s.userID, store.QueryOpts{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("reward history: %w", err)
	}
	awards := make([]Award, len(recs))
	for i, r := range recs {
		awards[i] = Award{
			Type:      AwardType(r.AwardType),
			Amount:    r.Amount,
			SessionID: r.SessionID,
			Reason:    r.Reason,
			AwardedAt: r.Timestamp,
		}
	}
	return awards, nil
}

// Totals sums all awards per type.
func (s *Service) Totals(ctx context.Context) (map[AwardType]int, error) {
	raw, err := s.events.RewardTotals(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("reward totals: %w", err)
	}
	totals := make(map[AwardType]int, len(raw))
	for k, v := range raw {
		totals[AwardType(k)] = v
	}
	return totals, nil
}

func (s *Service) newAward(t AwardType, amount int, sessionID, reason string) Award {
	return Award{
		Type:      t,
		Amount:    amount,
		SessionID: sessionID,
		Reason:    reason,
		AwardedAt: s.now(),
	}
}

func (s *Service) persist(ctx context.Context, awards []Award) error {
	for _, a := range awards {
		err := s.events.AppendRewardEvent(ctx, store.RewardEventData{
			UserID:    s.userID,
			SessionID: a.SessionID,
			AwardType: string(a.Type),
			Amount:    a.Amount,
			Reason:    a.Reason,
		})
		if err != nil {
			return fmt.Errorf("log %s award: %w", a.Type, err)
		}
		s.SessionAwards = append(s.SessionAwards, a)
		s.log.Info("award", zap.String("type", string(a.Type)), zap.Int("amount", a.Amount), zap.String("reason", a.Reason))
	}
	return nil
}

func (s *Service) saveStats(ctx context.Context, st Stats) error {
	rec := store.StatsRecord{
		UserID:        s.userID,
		CurrentStreak: st.CurrentStreak,
		LongestStreak: st.LongestStreak,
		TotalReviews:  st.TotalReviews,
		TotalSessions: st.TotalSessions,
		StudyMinutes:  st.StudyMinutes,
	}
	if st.LastStudyDate != nil {
		d := string(*st.LastStudyDate)
		rec.LastStudyDate = &d
	}
	if err := s.stats.SaveStats(ctx, rec); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	return nil
}

func (s *Service) saveCompanion(ctx context.Context, c Companion) error {
	at := s.now().UTC()
	err := s.companions.SaveCompanion(ctx, store.CompanionRecord{
		UserID:          s.userID,
		Funds:           c.Funds,
		BusTickets:      c.BusTickets,
		Mood:            string(c.Mood),
		LastInteraction: &at,
		Outfits:         store.StringList(c.Outfits),
		CurrentOutfit:   c.CurrentOutfit,
	})
	if err != nil {
		return fmt.Errorf("save companion: %w", err)
	}
	return nil
}

// Overview is what dashboards show about the companion and streak.
type Overview struct {
	Companion Companion
	Stats     Stats
	Streak    int // streak as it stands today
	Mood      Mood
}

// Overview loads the companion and stats and derives today's mood.
func (s *Service) Overview(ctx context.Context, today flashcard.Date, dueToday int) (Overview, error) {
	comp, err := s.Companion(ctx)
	if err != nil {
		return Overview{}, err
	}
	st, err := s.Stats(ctx)
	if err != nil {
		return Overview{}, err
	}
	return Overview{
		Companion: comp,
		Stats:     st,
		Streak:    ActiveStreak(st, today),
		Mood:      MoodFor(st, today, dueToday),
	}, nil
}

// SessionEntry is a finished review session.
type SessionEntry struct {
	SessionID string
	EndedAt   time.Time
	Due       int
	Reviewed  int
	Duration  time.Duration
	Awards    []Award
}

// Sessions returns recent finished sessions, newest first, each with the
// awards earned during it.
func (s *Service) Sessions(ctx context.Context, limit int) ([]SessionEntry, error) {
	recs, err := s.events.QuerySessionSummaries(ctx, s.userID, store.QueryOpts{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("session history: %w", err)
	}
	awards, err := s.History(ctx, 0)
	if err != nil {
		return nil, err
	}
	bySession := make(map[string][]Award)
	for _, a := range awards {
		bySession[a.SessionID] = append(bySession[a.SessionID], a)
	}

	out := make([]SessionEntry, len(recs))
	for i, r := range recs {
		out[i] = SessionEntry{
			SessionID: r.SessionID,
			EndedAt:   r.Timestamp,
			Due:       r.CardsDue,
			Reviewed:  r.CardsReviewed,
			Duration:  time.Duration(r.DurationSecs) * time.Second,
			Awards:    bySession[r.SessionID],
		}
	}
	return out, nil
}
