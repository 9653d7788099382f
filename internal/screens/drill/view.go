package drill

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/conjugo/internal/dataset"
	"github.com/abhisek/conjugo/internal/mastery"
	"github.com/abhisek/conjugo/internal/session"
	"github.com/abhisek/conjugo/internal/ui/components"
	"github.com/abhisek/conjugo/internal/ui/layout"
	"github.com/abhisek/conjugo/internal/ui/theme"
)

func (s *DrillScreen) View(width, height int) string {
	if s.ctrl.Current() == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Aucune question en cours.")
	}

	cw := components.ContentWidth(width)
	gap := "\n\n"
	if layout.IsCompactHeight(height) {
		gap = "\n"
	}

	var b strings.Builder

	done := s.ctrl.InitialDeckSize() - s.ctrl.Remaining()
	bar := components.NewProgressBar(
		fmt.Sprintf("%d/%d", done, s.ctrl.InitialDeckSize()),
		s.ctrl.Progress(), true, cw)
	b.WriteString(bar.View())
	b.WriteString(gap)

	b.WriteString(components.Card(s.renderQuestion(), cw))

	if s.confirming {
		b.WriteString(gap)
		b.WriteString(theme.Incorrect.Render(
			fmt.Sprintf("Réinitialiser la maîtrise de %s ? (o/n)", s.ctrl.Label())))
	}

	if s.ctrl.TableVisible() {
		if rows := s.ctrl.Table(); len(rows) > 0 {
			b.WriteString(gap)
			b.WriteString(renderTable(rows))
		}
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(b.String())
}

func (s *DrillScreen) renderQuestion() string {
	var b strings.Builder

	b.WriteString(theme.Sentence.Render(s.ctrl.Sentence()))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(s.ctrl.Label()))
	b.WriteString("  ")
	b.WriteString(renderDots(s.ctrl.MasteryDots(s.ctx)))
	b.WriteString("\n\n")

	b.WriteString(s.input.View())
	b.WriteString("\n\n")

	if s.ctrl.CheckVisible() {
		b.WriteString(components.NewButton(s.ctrl.CheckLabel(), "Entrée", true).View())
	} else if s.ctrl.NextVisible() {
		b.WriteString(components.NewButton("Suivant", "Entrée", true).View())
	}

	if fb := s.ctrl.Feedback(); fb.Text != "" {
		b.WriteString("\n\n")
		b.WriteString(feedbackStyle(fb.Severity).Render(fb.Text))
	}

	return b.String()
}

func feedbackStyle(sev session.Severity) lipgloss.Style {
	switch sev {
	case session.SeveritySuccess:
		return theme.Correct
	case session.SeverityError:
		return theme.Incorrect
	default:
		return theme.Neutral
	}
}

func renderDots(score int) string {
	score = mastery.Clamp(score)
	return theme.DotFilled.Render(strings.Repeat("●", score)) +
		theme.DotEmpty.Render(strings.Repeat("○", mastery.MaxScore-score))
}

func renderTable(rows []dataset.TableRow) string {
	var b strings.Builder
	for i, r := range rows {
		line := fmt.Sprintf("%-16s %s", r.Label, r.Value)
		if r.Highlighted {
			b.WriteString(theme.Highlighted.Render("▸ " + line))
		} else {
			b.WriteString(theme.Body.Render("  " + line))
		}
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return theme.Card.Render(b.String())
}
