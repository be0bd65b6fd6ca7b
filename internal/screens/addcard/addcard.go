// Package addcard implements the form for adding flashcards, with an
// inline way to start a new course.
package addcard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kokostudy/koko/internal/course"
	"github.com/kokostudy/koko/internal/flashcard"
	"github.com/kokostudy/koko/internal/router"
	"github.com/kokostudy/koko/internal/screen"
	"github.com/kokostudy/koko/internal/ui/components"
	"github.com/kokostudy/koko/internal/ui/layout"
	"github.com/kokostudy/koko/internal/ui/theme"
)

const (
	fieldCourse = iota
	fieldQuestion
	fieldAnswer
	fieldCount
)

var (
	keySave       = key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save"))
	keyNextCourse = key.NewBinding(key.WithKeys("right"), key.WithHelp("←/→", "course"))
	keyPrevCourse = key.NewBinding(key.WithKeys("left"))
)

type coursesLoadedMsg struct {
	Courses []course.Course
	Err     error
}

type cardSavedMsg struct {
	Card   flashcard.Card
	Course *course.Course // set when a new course was created
	Err    error
}

// AddCardScreen is a three-field form: course, question and answer.
type AddCardScreen struct {
	deps      screen.Deps
	courses   []course.Course
	courseIdx int // len(courses) selects "new course"

	newCourse components.TextInput
	question  components.TextInput
	answer    components.TextInput
	focus     int

	loaded  bool
	busy    bool
	added   int
	notice  string
	formErr string
	errMsg  string
}

var _ screen.Screen = (*AddCardScreen)(nil)
var _ screen.KeyHintProvider = (*AddCardScreen)(nil)

// New creates an empty add-card form.
func New(deps screen.Deps) *AddCardScreen {
	return &AddCardScreen{
		deps:      deps,
		newCourse: components.NewTextInput("New course", "e.g. Spanish", 80, 40),
		question:  components.NewTextInput("Question", "What is on the front?", 500, 50),
		answer:    components.NewTextInput("Answer", "And on the back?", 500, 50),
	}
}

func (s *AddCardScreen) Init() tea.Cmd {
	svc := s.deps.Courses
	return func() tea.Msg {
		courses, err := svc.List(context.Background())
		return coursesLoadedMsg{Courses: courses, Err: err}
	}
}

func (s *AddCardScreen) Title() string {
	return "Add Card"
}

func (s *AddCardScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Next / Save"},
		{Key: "Esc", Description: "Done"},
	}
	if s.focus == fieldCourse && len(s.courses) > 0 {
		h := keyNextCourse.Help()
		hints = append([]layout.KeyHint{{Key: h.Key, Description: h.Desc}}, hints...)
	}
	return hints
}

func (s *AddCardScreen) creatingCourse() bool {
	return s.courseIdx == len(s.courses)
}

func (s *AddCardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case coursesLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.courses = msg.Courses
		s.courseIdx = 0
		return s, s.setFocus(fieldCourse)

	case cardSavedMsg:
		return s.handleSaved(msg)

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *AddCardScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if key.Matches(msg, components.KeyBack) {
		if s.added > 0 {
			return s, tea.Batch(router.Pop(), func() tea.Msg { return screen.StatusChangedMsg{} })
		}
		return s, router.Pop()
	}
	if !s.loaded || s.busy || s.errMsg != "" {
		return s, nil
	}

	switch {
	case key.Matches(msg, keySave):
		return s, s.save()
	case key.Matches(msg, components.KeySelect):
		if s.focus == fieldAnswer {
			return s, s.save()
		}
		return s, s.setFocus(s.focus + 1)
	case key.Matches(msg, components.KeyNext):
		return s, s.setFocus((s.focus + 1) % fieldCount)
	case key.Matches(msg, components.KeyPrev):
		return s, s.setFocus((s.focus + fieldCount - 1) % fieldCount)
	}

	if s.focus == fieldCourse {
		switch {
		case key.Matches(msg, keyNextCourse):
			s.courseIdx = (s.courseIdx + 1) % (len(s.courses) + 1)
			return s, s.setFocus(fieldCourse)
		case key.Matches(msg, keyPrevCourse):
			s.courseIdx = (s.courseIdx + len(s.courses)) % (len(s.courses) + 1)
			return s, s.setFocus(fieldCourse)
		}
	}

	var cmd tea.Cmd
	switch s.focus {
	case fieldCourse:
		if s.creatingCourse() {
			s.newCourse, cmd = s.newCourse.Update(msg)
		}
	case fieldQuestion:
		s.question, cmd = s.question.Update(msg)
	case fieldAnswer:
		s.answer, cmd = s.answer.Update(msg)
	}
	return s, cmd
}

// setFocus moves keyboard focus to field f.
func (s *AddCardScreen) setFocus(f int) tea.Cmd {
	s.focus = f
	s.newCourse.Blur()
	s.question.Blur()
	s.answer.Blur()
	switch f {
	case fieldCourse:
		if s.creatingCourse() {
			return s.newCourse.Focus()
		}
	case fieldQuestion:
		return s.question.Focus()
	case fieldAnswer:
		return s.answer.Focus()
	}
	return nil
}

// save creates the course when needed and then the card.
func (s *AddCardScreen) save() tea.Cmd {
	s.busy = true
	s.notice, s.formErr = "", ""
	s.newCourse.Err, s.question.Err, s.answer.Err = "", "", ""

	deps := s.deps
	draft := flashcard.Draft{Question: s.question.Value(), Answer: s.answer.Value()}
	var courseDraft *course.Draft
	if s.creatingCourse() {
		courseDraft = &course.Draft{Name: s.newCourse.Value()}
	} else {
		draft.CourseID = s.courses[s.courseIdx].ID
	}

	return func() tea.Msg {
		ctx := context.Background()
		var created *course.Course
		if courseDraft != nil {
			c, err := deps.Courses.Create(ctx, *courseDraft)
			if err != nil {
				return cardSavedMsg{Err: courseError{err: err}}
			}
			created = &c
			draft.CourseID = c.ID
		}
		card, err := deps.Cards.Create(ctx, draft)
		return cardSavedMsg{Card: card, Course: created, Err: err}
	}
}

// courseError marks validation failures of the new course name.
type courseError struct{ err error }

func (e courseError) Error() string { return e.err.Error() }
func (e courseError) Unwrap() error { return e.err }

func (s *AddCardScreen) handleSaved(msg cardSavedMsg) (screen.Screen, tea.Cmd) {
	s.busy = false

	var ce courseError
	if errors.As(msg.Err, &ce) {
		s.newCourse.Err = courseReason(ce.err)
		return s, s.setFocus(fieldCourse)
	}
	if msg.Course != nil {
		// The course exists even if the card failed.
		s.courses = append(s.courses, *msg.Course)
		s.courseIdx = len(s.courses) - 1
		s.newCourse.SetValue("")
	}
	if msg.Err != nil {
		var ve *flashcard.ValidationError
		if !errors.As(msg.Err, &ve) {
			s.formErr = msg.Err.Error()
			return s, nil
		}
		focus := fieldCount
		for _, f := range ve.Fields {
			switch f.Field {
			case "question":
				s.question.Err = "Question " + f.Reason
				focus = min(focus, fieldQuestion)
			case "answer":
				s.answer.Err = "Answer " + f.Reason
				focus = min(focus, fieldAnswer)
			default:
				s.formErr = "Course " + f.Reason
				focus = fieldCourse
			}
		}
		return s, s.setFocus(focus % fieldCount)
	}

	s.added++
	s.notice = fmt.Sprintf("Added! %d new %s this visit.", s.added, plural(s.added))
	s.deps.Log.Debug("card added from form")
	s.question.SetValue("")
	s.answer.SetValue("")
	return s, tea.Batch(s.setFocus(fieldQuestion), func() tea.Msg { return screen.StatusChangedMsg{} })
}

func courseReason(err error) string {
	var ve *flashcard.ValidationError
	if errors.As(err, &ve) {
		for _, f := range ve.Fields {
			if f.Field == "name" {
				return "Course name " + f.Reason
			}
		}
	}
	return err.Error()
}

func plural(n int) string {
	if n == 1 {
		return "card"
	}
	return "cards"
}

func (s *AddCardScreen) View(width, height int) string {
	th := s.deps.Theme
	if s.errMsg != "" {
		return theme.Centered(th.Bad(), width, fmt.Sprintf("\n\nError: %s\n\nPress esc to go back.", s.errMsg))
	}
	if !s.loaded {
		return theme.Centered(th.Dim(), width, "\n\n  Loading courses...")
	}

	cw := components.ContentWidth(width)
	var sections []string

	sections = append(sections, s.renderCourseField())
	sections = append(sections, s.question.View(th), s.answer.View(th))

	form := lipgloss.NewStyle().Width(cw).Render(strings.Join(sections, "\n\n"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.ArcadeCard(th, form, cw)))
	b.WriteString("\n\n")
	switch {
	case s.busy:
		b.WriteString(theme.Centered(th.Dim(), width, "Saving..."))
	case s.formErr != "":
		b.WriteString(theme.Centered(th.Bad(), width, s.formErr))
	case s.notice != "":
		b.WriteString(theme.Centered(th.Good(), width, s.notice))
	}
	return b.String()
}

func (s *AddCardScreen) renderCourseField() string {
	th := s.deps.Theme
	label := th.Dim()
	if s.focus == fieldCourse {
		label = th.Title()
	}

	if s.creatingCourse() {
		view := s.newCourse.View(th)
		if len(s.courses) > 0 {
			view += "\n" + th.Hint().Render("← pick an existing course")
		}
		return view
	}

	c := s.courses[s.courseIdx]
	name := c.Name
	if c.Icon != "" {
		name = c.Icon + " " + name
	}
	picker := fmt.Sprintf("‹ %s ›  (%d/%d)", name, s.courseIdx+1, len(s.courses))
	return label.Render("Course") + "\n" + th.Body().Bold(true).Render(picker)
}
