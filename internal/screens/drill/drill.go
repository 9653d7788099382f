// Package drill is the question screen of a running session.
package drill

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/conjugo/internal/router"
	"github.com/abhisek/conjugo/internal/screen"
	"github.com/abhisek/conjugo/internal/session"
	"github.com/abhisek/conjugo/internal/ui/components"
	"github.com/abhisek/conjugo/internal/ui/layout"
)

// SessionEndedMsg is delivered to the previous screen when the deck runs out.
type SessionEndedMsg struct {
	Summary session.Summary
}

// DrillScreen renders the current question of a session.Controller and
// maps keys onto its actions.
type DrillScreen struct {
	ctx        context.Context
	ctrl       *session.Controller
	input      components.TextInput
	confirming bool
}

var _ screen.Screen = (*DrillScreen)(nil)
var _ screen.KeyHintProvider = (*DrillScreen)(nil)

// New creates a DrillScreen for a controller whose session has already
// been started.
func New(ctrl *session.Controller) *DrillScreen {
	s := &DrillScreen{
		ctx:   context.Background(),
		ctrl:  ctrl,
		input: components.NewTextInput("Votre réponse...", 40),
	}
	s.sync()
	return s
}

func (s *DrillScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *DrillScreen) Title() string {
	return "Exercice"
}

func (s *DrillScreen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{
			{Key: "O", Description: "Réinitialiser"},
			{Key: "N", Description: "Annuler"},
		}
	}
	enter := "Suivant"
	if s.ctrl.CheckVisible() {
		enter = s.ctrl.CheckLabel()
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: enter},
		{Key: "Ctrl+R", Description: "Réinitialiser"},
		{Key: "Esc", Description: "Sélection"},
		{Key: "Ctrl+C", Description: "Quitter"},
	}
}

// Confirming reports whether the reset confirmation prompt is showing.
func (s *DrillScreen) Confirming() bool { return s.confirming }

// InputValue returns what the answer box currently holds.
func (s *DrillScreen) InputValue() string { return s.input.Value() }

func (s *DrillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		return s.handleKey(kmsg)
	}

	if s.ctrl.CheckVisible() && !s.confirming {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *DrillScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirming {
		var confirmed bool
		switch key {
		case "o", "O", "y", "Y":
			confirmed = true
		case "n", "N", "esc":
		default:
			return s, nil
		}
		s.confirming = false
		if err := s.ctrl.ResetMastery(s.ctx, confirmed); err != nil {
			// No question left to reset: the session is gone.
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.ctrl.Restart()
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case "ctrl+r":
		if s.ctrl.Current() != nil {
			s.confirming = true
		}
		return s, nil

	case "enter":
		return s.enter()
	}

	if s.ctrl.CheckVisible() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// enter runs the controller's Enter action with the typed answer.
func (s *DrillScreen) enter() (screen.Screen, tea.Cmd) {
	err := s.ctrl.Enter(s.ctx, s.input.Value())
	if errors.Is(err, session.ErrDeckExhausted) {
		summary := s.ctrl.LastSummary()
		return s, func() tea.Msg {
			return router.PopScreenMsg{Result: SessionEndedMsg{Summary: summary}}
		}
	}
	// Lookup failures and invalid actions are already reflected in the
	// controller's feedback and phase.
	s.sync()
	return s, nil
}

// sync copies the controller's answer box state into the input.
func (s *DrillScreen) sync() {
	s.input.SetValue(s.ctrl.InputValue())
	switch {
	case s.ctrl.Phase() == session.PhaseCorrecting:
		s.input.Mark(false)
	case s.ctrl.Phase() == session.PhaseAdvanceable && !s.ctrl.MasteredFastPath() && s.ctrl.Feedback().Severity == session.SeveritySuccess:
		s.input.Mark(true)
	default:
		s.input.ClearMark()
	}
}
