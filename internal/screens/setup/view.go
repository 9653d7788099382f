package setup

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/conjugo/internal/session"
	"github.com/abhisek/conjugo/internal/ui/theme"
)

func (s *SetupScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("Que voulez-vous réviser ?"))
	b.WriteString("\n\n")

	cols := make([]string, 0, numLists)
	for i, l := range s.lists {
		cursor := -1
		if i == s.focus {
			cursor = s.cursors[i]
		}
		cols = append(cols, lipgloss.NewStyle().
			Width(24).
			Padding(0, 1).
			Render(l.View(cursor)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))

	if s.notice.Text != "" {
		b.WriteString("\n\n")
		style := theme.Correct
		if s.notice.Severity == session.SeverityError {
			style = theme.Incorrect
		}
		b.WriteString(style.Render(s.notice.Text))
	}
	if s.last != nil {
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Render(s.last.String()))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(b.String())
}
