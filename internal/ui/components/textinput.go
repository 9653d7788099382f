package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/conjugo/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with conjugo styling.
type TextInput struct {
	Model    textinput.Model
	MaxWidth int
	mark     int // 0 none, 1 accepted, -1 rejected
}

// NewTextInput creates a new focused text input.
func NewTextInput(placeholder string, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}

	return TextInput{
		Model:    ti,
		MaxWidth: maxWidth,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	view := t.Model.View()
	switch t.mark {
	case 1:
		view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
	case -1:
		view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value and moves the cursor to the end.
func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
	t.Model.CursorEnd()
}

// Mark shows a trailing check (accepted) or cross (rejected).
func (t *TextInput) Mark(accepted bool) {
	if accepted {
		t.mark = 1
	} else {
		t.mark = -1
	}
}

// ClearMark removes the trailing mark.
func (t *TextInput) ClearMark() {
	t.mark = 0
}
