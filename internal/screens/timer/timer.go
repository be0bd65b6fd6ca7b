// Package timer runs a pomodoro study timer for a course and logs the
// focused time as a study session when the user finishes.
package timer

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/kokostudy/koko/internal/course"
	"github.com/kokostudy/koko/internal/flashcard"
	"github.com/kokostudy/koko/internal/router"
	"github.com/kokostudy/koko/internal/screen"
	"github.com/kokostudy/koko/internal/study"
	"github.com/kokostudy/koko/internal/ui/components"
	"github.com/kokostudy/koko/internal/ui/layout"
)

type phase int

const (
	phasePick phase = iota
	phaseRun
	phaseReflect
	phaseDone
)

type mode int

const (
	modeFocus mode = iota
	modeBreak
)

func (m mode) String() string {
	if m == modeBreak {
		return "BREAK"
	}
	return "FOCUS"
}

const (
	fieldMinutes = iota
	fieldNotes
	fieldMood
	fieldFocus
	fieldCount
)

var (
	keyPause  = key.NewBinding(key.WithKeys("space", "p"))
	keyReset  = key.NewBinding(key.WithKeys("r"))
	keySwitch = key.NewBinding(key.WithKeys("b"))
	keyFinish = key.NewBinding(key.WithKeys("f"))
	keySave   = key.NewBinding(key.WithKeys("ctrl+s"))
)

type coursesLoadedMsg struct {
	Courses []course.Course
	Err     error
}

// tickMsg carries the generation of the run that scheduled it. Ticks of an
// older generation are dropped, so pausing and resuming never doubles up.
type tickMsg struct {
	gen int
}

type savedMsg struct {
	Result study.Result
	Err    error
}

// TimerScreen walks through picking a course, the countdown, a short
// reflection and the rewards earned.
type TimerScreen struct {
	deps  screen.Deps
	phase phase

	courses []course.Course
	menu    components.Menu
	course  course.Course

	mode      mode
	remaining time.Duration
	focused   time.Duration // focus time across every block
	rounds    int           // completed focus blocks
	paused    bool
	gen       int

	minutes components.TextInput
	notes   components.TextInput
	mood    components.TextInput
	rating  components.TextInput
	field   int

	busy    bool
	result  study.Result
	formErr string
	errMsg  string
	loaded  bool
}

var _ screen.Screen = (*TimerScreen)(nil)
var _ screen.KeyHintProvider = (*TimerScreen)(nil)

func New(deps screen.Deps) *TimerScreen {
	return &TimerScreen{
		deps:    deps,
		minutes: components.NewTextInput("Minutes studied", "25", 3, 10),
		notes:   components.NewTextInput("What did you cover?", "Chapter 3, past tense verbs...", 2000, 50),
		mood:    components.NewTextInput("Mood (1-5)", "3", 1, 10),
		rating:  components.NewTextInput("Focus (1-5)", "3", 1, 10),
	}
}

func (s *TimerScreen) Init() tea.Cmd {
	svc := s.deps.Courses
	return func() tea.Msg {
		courses, err := svc.List(context.Background())
		return coursesLoadedMsg{Courses: courses, Err: err}
	}
}

func (s *TimerScreen) Title() string {
	return "Study Timer"
}

func (s *TimerScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseRun:
		pause := "Pause"
		if s.paused {
			pause = "Resume"
		}
		return []layout.KeyHint{
			{Key: "Space", Description: pause},
			{Key: "r", Description: "Reset"},
			{Key: "b", Description: "Focus/Break"},
			{Key: "f", Description: "Finish"},
			{Key: "Esc", Description: "Discard"},
		}
	case phaseReflect:
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next field"},
			{Key: "Enter", Description: "Next / Save"},
			{Key: "Esc", Description: "Back to timer"},
		}
	case phaseDone:
		return []layout.KeyHint{{Key: "Enter", Description: "Done"}}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Course"},
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *TimerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
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
			items[i] = components.MenuItem{Label: label(c), Action: s.startAction(c)}
		}
		s.menu = components.NewMenu(items)
		return s, nil

	case tickMsg:
		return s, s.handleTick(msg)

	case savedMsg:
		return s.handleSaved(msg)

	case tea.KeyPressMsg:
		switch s.phase {
		case phasePick:
			if key.Matches(msg, components.KeyBack) {
				return s, router.Pop()
			}
			var cmd tea.Cmd
			s.menu, cmd = s.menu.Update(msg)
			return s, cmd
		case phaseRun:
			return s, s.handleRunKey(msg)
		case phaseReflect:
			return s, s.handleFormKey(msg)
		case phaseDone:
			if key.Matches(msg, components.KeySelect) || key.Matches(msg, components.KeyBack) {
				return s, router.Pop()
			}
		}
	}
	return s, nil
}

func label(c course.Course) string {
	if c.Icon != "" {
		return c.Icon + " " + c.Name
	}
	return c.Name
}

func (s *TimerScreen) startAction(c course.Course) func() tea.Cmd {
	return func() tea.Cmd {
		s.course = c
		s.phase = phaseRun
		s.mode = modeFocus
		s.remaining = s.length(modeFocus)
		s.focused, s.rounds, s.paused = 0, 0, false
		return s.tick()
	}
}

func (s *TimerScreen) length(m mode) time.Duration {
	if m == modeBreak {
		return s.deps.Pomodoro.Break
	}
	return s.deps.Pomodoro.Focus
}

// tick starts a new generation of one-second ticks.
func (s *TimerScreen) tick() tea.Cmd {
	s.gen++
	return s.next()
}

func (s *TimerScreen) next() tea.Cmd {
	gen := s.gen
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

func (s *TimerScreen) handleTick(msg tickMsg) tea.Cmd {
	if msg.gen != s.gen || s.phase != phaseRun || s.paused {
		return nil
	}
	s.remaining -= time.Second
	if s.mode == modeFocus {
		s.focused += time.Second
	}
	if s.remaining <= 0 {
		if s.mode == modeFocus {
			s.rounds++
			s.mode = modeBreak
		} else {
			s.mode = modeFocus
		}
		s.remaining = s.length(s.mode)
	}
	return s.next()
}

func (s *TimerScreen) handleRunKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, components.KeyBack):
		return router.Pop()
	case key.Matches(msg, keyPause):
		s.paused = !s.paused
		if s.paused {
			s.gen++
			return nil
		}
		return s.tick()
	case key.Matches(msg, keyReset):
		s.remaining = s.length(s.mode)
	case key.Matches(msg, keySwitch):
		if s.mode == modeFocus {
			s.mode = modeBreak
		} else {
			s.mode = modeFocus
		}
		s.remaining = s.length(s.mode)
	case key.Matches(msg, keyFinish):
		s.gen++
		s.phase = phaseReflect
		s.formErr = ""
		s.minutes.SetValue(strconv.Itoa(max(int(s.focused.Round(time.Minute)/time.Minute), 1)))
		return s.setField(fieldMinutes)
	}
	return nil
}

func (s *TimerScreen) handleFormKey(msg tea.KeyPressMsg) tea.Cmd {
	if s.busy {
		return nil
	}
	switch {
	case key.Matches(msg, components.KeyBack):
		// Back to the paused timer; the focus time is kept.
		s.phase = phaseRun
		s.paused = true
		return nil
	case key.Matches(msg, keySave):
		return s.save()
	case key.Matches(msg, components.KeySelect):
		if s.field == fieldFocus {
			return s.save()
		}
		return s.setField(s.field + 1)
	case key.Matches(msg, components.KeyNext):
		return s.setField((s.field + 1) % fieldCount)
	case key.Matches(msg, components.KeyPrev):
		return s.setField((s.field + fieldCount - 1) % fieldCount)
	}

	var cmd tea.Cmd
	switch s.field {
	case fieldMinutes:
		s.minutes, cmd = s.minutes.Update(msg)
	case fieldNotes:
		s.notes, cmd = s.notes.Update(msg)
	case fieldMood:
		s.mood, cmd = s.mood.Update(msg)
	case fieldFocus:
		s.rating, cmd = s.rating.Update(msg)
	}
	return cmd
}

func (s *TimerScreen) inputs() []*components.TextInput {
	return []*components.TextInput{&s.minutes, &s.notes, &s.mood, &s.rating}
}

func (s *TimerScreen) setField(f int) tea.Cmd {
	s.field = f
	for _, in := range s.inputs() {
		in.Blur()
	}
	return s.inputs()[f].Focus()
}

func (s *TimerScreen) save() tea.Cmd {
	s.formErr = ""
	for _, in := range s.inputs() {
		in.Err = ""
	}

	d := study.Draft{CourseID: s.course.ID, Notes: s.notes.Value()}
	var ok bool
	if d.Minutes, ok = number(&s.minutes, true); !ok {
		return s.setField(fieldMinutes)
	}
	if d.Mood, ok = number(&s.mood, false); !ok {
		return s.setField(fieldMood)
	}
	if d.Focus, ok = number(&s.rating, false); !ok {
		return s.setField(fieldFocus)
	}

	s.busy = true
	svc := s.deps.Study
	return func() tea.Msg {
		res, err := svc.Log(context.Background(), d)
		return savedMsg{Result: res, Err: err}
	}
}

// number parses an input as a whole number. An empty optional input is 0.
func number(in *components.TextInput, required bool) (int, bool) {
	v := in.Value()
	if v == "" && !required {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		in.Err = "Enter a whole number"
		return 0, false
	}
	return n, true
}

func (s *TimerScreen) handleSaved(msg savedMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if msg.Err != nil {
		var ve *flashcard.ValidationError
		if !errors.As(msg.Err, &ve) {
			s.formErr = msg.Err.Error()
			return s, nil
		}
		focus := fieldCount
		for _, f := range ve.Fields {
			switch f.Field {
			case "minutes":
				s.minutes.Err = "Minutes " + f.Reason
				focus = min(focus, fieldMinutes)
			case "notes":
				s.notes.Err = "Notes " + f.Reason
				focus = min(focus, fieldNotes)
			case "mood":
				s.mood.Err = "Mood " + f.Reason
				focus = min(focus, fieldMood)
			case "focus":
				s.rating.Err = "Focus " + f.Reason
				focus = min(focus, fieldFocus)
			default:
				s.formErr = fmt.Sprintf("%s %s", f.Field, f.Reason)
			}
		}
		if focus == fieldCount {
			return s, nil
		}
		return s, s.setField(focus)
	}

	s.result = msg.Result
	s.phase = phaseDone
	s.deps.Log.Debug("study session saved from timer")
	return s, func() tea.Msg { return screen.StatusChangedMsg{} }
}
