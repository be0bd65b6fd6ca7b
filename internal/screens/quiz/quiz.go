// Package quiz runs a multiple choice quiz over one course's cards.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/kokostudy/koko/internal/course"
	"github.com/kokostudy/koko/internal/quiz"
	"github.com/kokostudy/koko/internal/router"
	"github.com/kokostudy/koko/internal/screen"
	"github.com/kokostudy/koko/internal/ui/components"
	"github.com/kokostudy/koko/internal/ui/layout"
	"github.com/kokostudy/koko/internal/ui/theme"
)

type coursesLoadedMsg struct {
	Courses []course.Course
	Err     error
}

type quizBuiltMsg struct {
	Quiz quiz.Quiz
	Err  error
}

// QuizScreen picks a course, builds a quiz and asks it.
type QuizScreen struct {
	deps    screen.Deps
	courses []course.Course
	menu    components.Menu
	loaded  bool

	building bool
	attempt  *quiz.Attempt
	choice   components.MultiChoice

	notice string
	errMsg string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

func New(deps screen.Deps) *QuizScreen {
	return &QuizScreen{deps: deps}
}

func (s *QuizScreen) Init() tea.Cmd {
	svc := s.deps.Courses
	return func() tea.Msg {
		courses, err := svc.List(context.Background())
		return coursesLoadedMsg{Courses: courses, Err: err}
	}
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.attempt == nil:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Course"},
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	case s.attempt.Done():
		return []layout.KeyHint{{Key: "Enter", Description: "Done"}}
	case s.choice.Submitted:
		return []layout.KeyHint{{Key: "Enter", Description: "Next"}, {Key: "Esc", Description: "Quit"}}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "1-4", Description: "Answer"},
			{Key: "Esc", Description: "Quit"},
		}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case coursesLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.courses = msg.Courses
		items := make([]components.MenuItem, len(msg.Courses))
		for i, c := range msg.Courses {
			items[i] = components.MenuItem{Label: c.Name, Action: s.buildAction(c)}
		}
		s.menu = components.NewMenu(items)
		return s, nil

	case quizBuiltMsg:
		s.building = false
		if msg.Err != nil {
			s.notice = describe(msg.Err)
			return s, nil
		}
		s.notice = ""
		s.attempt = quiz.NewAttempt(msg.Quiz)
		s.deps.Log.Info("quiz started",
			zap.String("course_id", msg.Quiz.CourseID),
			zap.String("source", msg.Quiz.Source),
			zap.Int("questions", len(msg.Quiz.Questions)))
		s.loadQuestion()
		return s, nil

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) buildAction(c course.Course) func() tea.Cmd {
	return func() tea.Cmd {
		if s.building {
			return nil
		}
		s.building = true
		s.notice = ""
		svc := s.deps.Quiz
		return func() tea.Msg {
			q, err := svc.Build(context.Background(), c.ID, 0, "")
			return quizBuiltMsg{Quiz: q, Err: err}
		}
	}
}

func describe(err error) string {
	if errors.Is(err, quiz.ErrNoMaterial) {
		return "Add a few cards with different answers first!"
	}
	return err.Error()
}

func (s *QuizScreen) loadQuestion() {
	if q, ok := s.attempt.Current(); ok {
		s.choice = components.NewMultiChoice(q.Prompt, q.Options, q.Correct)
	}
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if s.attempt == nil {
		if key.Matches(msg, components.KeyBack) {
			return router.Pop()
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return cmd
	}

	if s.attempt.Done() {
		if key.Matches(msg, components.KeySelect) || key.Matches(msg, components.KeyBack) {
			return router.Pop()
		}
		return nil
	}
	if key.Matches(msg, components.KeyBack) {
		return router.Pop()
	}
	if s.choice.Submitted {
		if key.Matches(msg, components.KeySelect) {
			s.attempt.Answer(s.choice.ChosenIndex)
			if s.attempt.Done() {
				s.deps.Log.Info("quiz finished", zap.Int("score", s.attempt.Score()))
			}
			s.loadQuestion()
		}
		return nil
	}

	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	return cmd
}

func (s *QuizScreen) View(width, height int) string {
	th := s.deps.Theme
	if s.errMsg != "" {
		return theme.Centered(th.Bad(), width, fmt.Sprintf("\n\nError: %s\n\nPress esc to go back.", s.errMsg))
	}
	if !s.loaded {
		return theme.Centered(th.Dim(), width, "\n\n  Loading courses...")
	}

	cw := components.ContentWidth(width)
	var body string
	switch {
	case s.attempt == nil:
		body = s.viewPick(th, cw)
	case s.attempt.Done():
		body = s.viewScore(th, cw)
	default:
		body = s.viewQuestion(th, cw)
	}
	return "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}

func (s *QuizScreen) viewPick(th theme.Theme, cw int) string {
	if len(s.courses) == 0 {
		return theme.Centered(th.Dim().Italic(true), cw, "No courses yet. Add a card to start one!")
	}
	parts := []string{
		theme.Centered(th.Title(), cw, "Quiz yourself on..."),
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(s.menu.View(th, min(cw-4, 36))),
	}
	switch {
	case s.building:
		parts = append(parts, theme.Centered(th.Dim(), cw, "Writing questions..."))
	case s.notice != "":
		parts = append(parts, theme.Centered(th.Bad(), cw, s.notice))
	}
	return strings.Join(parts, "\n\n")
}

func (s *QuizScreen) viewQuestion(th theme.Theme, cw int) string {
	q := s.attempt.Quiz
	header := th.Dim().Render(fmt.Sprintf("%s · question %d of %d", q.CourseName, s.attempt.Index()+1, len(q.Questions)))
	parts := []string{header, s.choice.View(th)}

	if s.choice.Submitted {
		verdict := th.Good().Render("Correct!")
		if !s.choice.IsCorrect() {
			cur, _ := s.attempt.Current()
			verdict = th.Bad().Render("Not quite. It was " + cur.Options[cur.Correct])
		}
		parts = append(parts, verdict)
		if cur, _ := s.attempt.Current(); cur.Explanation != "" {
			parts = append(parts, th.Hint().Render(cur.Explanation))
		}
	}
	return components.ArcadeCard(th, strings.Join(parts, "\n\n"), cw)
}

func (s *QuizScreen) viewScore(th theme.Theme, cw int) string {
	a := s.attempt
	score := a.Score()
	cheer := "Keep going, every quiz makes it stick."
	switch {
	case score == 100:
		cheer = "Perfect score!"
	case score >= 60:
		cheer = "Nice work!"
	}
	lines := []string{
		th.Title().Render(fmt.Sprintf("%d%%", score)),
		th.Body().Render(fmt.Sprintf("%d of %d correct", a.CorrectCount(), len(a.Quiz.Questions))),
		th.Highlight().Render(cheer),
	}
	if a.Quiz.Source != quiz.SourceLocal {
		lines = append(lines, th.Hint().Render("Questions by "+a.Quiz.Source))
	}
	return components.ArcadeCard(th, strings.Join(lines, "\n\n"), cw)
}
