// Package reminder nudges the user once a day when cards are waiting.
package reminder

//go:generate mockgen -source=reminder.go -destination=mock/mock_reminder.go

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/kokostudy/koko/internal/flashcard"
	"github.com/kokostudy/koko/internal/ui/theme"
)

// checkTimeout bounds one scheduled due-count query.
const checkTimeout = 30 * time.Second

// ErrAlreadyStarted is returned by Schedule after Start.
var ErrAlreadyStarted = errors.New("reminder: scheduler already started")

// DueCounter counts the cards due on a day.
type DueCounter interface {
	Today() flashcard.Date
	CountDue(ctx context.Context, today flashcard.Date) (int, error)
}

// Notifier delivers a reminder to the user.
type Notifier interface {
	Notify(ctx context.Context, r Reminder) error
}

// Reminder is one nudge.
type Reminder struct {
	Due     int
	Message string
	SentAt  time.Time
}

// Service checks for due cards on a daily gocron schedule.
type Service struct {
	cards    DueCounter
	th       theme.Theme
	notifier Notifier
	log      *zap.Logger
	sched    *gocron.Scheduler
	started  bool
}

// New creates a reminder service in the local time zone.
func New(cards DueCounter, th theme.Theme, notifier Notifier, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	sched := gocron.NewScheduler(time.Local)
	sched.SingletonModeAll()
	return &Service{
		cards:    cards,
		th:       th,
		notifier: notifier,
		log:      log.With(zap.String("component", "reminder")),
		sched:    sched,
	}
}

// Message is the reminder text for due waiting cards.
func Message(th theme.Theme, due int) string {
	if due == 1 {
		return th.Labels.Companion + ": 1 card is waiting for you!"
	}
	return fmt.Sprintf("%s: %d cards are waiting for you!", th.Labels.Companion, due)
}

// Check counts today's due cards and sends a reminder if there are any.
// It reports whether a reminder was sent.
func (s *Service) Check(ctx context.Context) (bool, error) {
	today := s.cards.Today()
	due, err := s.cards.CountDue(ctx, today)
	if err != nil {
		return false, fmt.Errorf("count due cards: %w", err)
	}
	if due == 0 {
		s.log.Debug("nothing due, no reminder", zap.String("today", today.String()))
		return false, nil
	}

	r := Reminder{Due: due, Message: Message(s.th, due), SentAt: time.Now()}
	if err := s.notifier.Notify(ctx, r); err != nil {
		return false, fmt.Errorf("send reminder: %w", err)
	}
	s.log.Info("reminder sent", zap.Int("due", due), zap.String("today", today.String()))
	return true, nil
}

// Schedule registers the daily check at the given HH:MM local time.
func (s *Service) Schedule(at string) error {
	if s.started {
		return ErrAlreadyStarted
	}
	if _, err := s.sched.Every(1).Day().At(at).Do(s.run); err != nil {
		return fmt.Errorf("schedule reminder at %s: %w", at, err)
	}
	return nil
}

// NextRun returns when the scheduled check fires next.
func (s *Service) NextRun() time.Time {
	_, next := s.sched.NextRun()
	return next
}

// Start runs the scheduler in the background.
func (s *Service) Start() {
	s.started = true
	s.sched.StartAsync()
}

// Stop halts the scheduler.
func (s *Service) Stop() {
	s.sched.Stop()
}

func (s *Service) run() {
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()
	if _, err := s.Check(ctx); err != nil {
		s.log.Error("reminder check failed", zap.Error(err))
	}
}

// WriterNotifier prints reminders as lines on W.
type WriterNotifier struct {
	W io.Writer
}

func (n WriterNotifier) Notify(_ context.Context, r Reminder) error {
	_, err := fmt.Fprintf(n.W, "[%s] %s\n", r.SentAt.Format("15:04"), r.Message)
	return err
}
