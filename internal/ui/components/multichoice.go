package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kokostudy/koko/internal/ui/theme"
)

var optionLetters = []string{"A", "B", "C", "D", "E", "F"}

// MultiChoice is a multiple-choice selector. Options can be picked with
// the arrows and enter, or directly with 1-9.
type MultiChoice struct {
	Question     string
	Options      []string
	CorrectIndex int
	Selected     int
	Submitted    bool
	ChosenIndex  int
}

// NewMultiChoice creates an unanswered selector on the first option.
func NewMultiChoice(question string, options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Question:     question,
		Options:      options,
		CorrectIndex: correctIndex,
		ChosenIndex:  -1,
	}
}

// Update moves the selection and submits on enter or a digit key.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(kmsg, KeyUp):
		if m.Selected > 0 {
			m.Selected--
		}
	case key.Matches(kmsg, KeyDown):
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case key.Matches(kmsg, KeySelect):
		m.submit(m.Selected)
	default:
		if s := kmsg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			if i := int(s[0] - '1'); i < len(m.Options) {
				m.Selected = i
				m.submit(i)
			}
		}
	}
	return m, nil
}

func (m *MultiChoice) submit(i int) {
	m.Submitted = true
	m.ChosenIndex = i
}

// View renders the question and its options. Once submitted the right
// option shows in the success color and a wrong pick in the error color.
func (m MultiChoice) View(th theme.Theme) string {
	var b strings.Builder
	b.WriteString(th.Body().Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		letter := fmt.Sprint(i + 1)
		if i < len(optionLetters) {
			letter = optionLetters[i]
		}
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, letter, opt)

		st := th.Body()
		switch {
		case m.Submitted && i == m.CorrectIndex:
			st = th.Good()
		case m.Submitted && i == m.ChosenIndex:
			st = th.Bad()
		case m.Submitted:
			st = th.Dim()
		case i == m.Selected:
			st = lipgloss.NewStyle().Bold(true).Foreground(th.Palette.Primary)
		}
		b.WriteString(st.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// IsCorrect reports whether the submitted option is the right one.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.ChosenIndex == m.CorrectIndex
}
