package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kokostudy/koko/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a label and an inline error.
type TextInput struct {
	Label string
	Model textinput.Model
	Err   string
}

// CursorBlink controls whether inputs created afterwards blink their cursor.
var CursorBlink = true

// NewTextInput creates an unfocused input limited to charLimit runes.
func NewTextInput(label, placeholder string, charLimit, width int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = charLimit
	ti.SetWidth(width)
	if !CursorBlink {
		st := ti.Styles()
		st.Cursor.Blink = false
		ti.SetStyles(st)
	}
	return TextInput{Label: label, Model: ti}
}

func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

func (t *TextInput) Blur() {
	t.Model.Blur()
}

func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Update forwards msg to the input and clears a shown error on edit.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	before := t.Model.Value()
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	if t.Model.Value() != before {
		t.Err = ""
	}
	return t, cmd
}

// View renders the label, the input and any error below it.
func (t TextInput) View(th theme.Theme) string {
	labelStyle := th.Dim()
	if t.Focused() {
		labelStyle = th.Title()
	}
	view := labelStyle.Render(t.Label) + "\n" + t.Model.View()
	if t.Err != "" {
		view += "\n" + lipgloss.NewStyle().Foreground(th.Palette.Error).Render("✗ "+t.Err)
	}
	return view
}

func (t TextInput) Value() string {
	return t.Model.Value()
}

func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
}
