// Package setup is the selection screen: the user picks tenses, verb groups
// and tiers, then starts a drill session.
package setup

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/conjugo/internal/dataset"
	"github.com/abhisek/conjugo/internal/deck"
	"github.com/abhisek/conjugo/internal/router"
	"github.com/abhisek/conjugo/internal/screen"
	"github.com/abhisek/conjugo/internal/screens/drill"
	"github.com/abhisek/conjugo/internal/session"
	"github.com/abhisek/conjugo/internal/ui/components"
	"github.com/abhisek/conjugo/internal/ui/layout"
)

const (
	listTenses = iota
	listGroups
	listTiers
	numLists
)

// SetupScreen holds the three filter lists and starts sessions.
type SetupScreen struct {
	ctx     context.Context
	ctrl    *session.Controller
	lists   [numLists]components.CheckList
	focus   int
	cursors [numLists]int

	notice session.Feedback
	last   *session.Summary
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates the setup screen with every option of ds checked.
func New(ds *dataset.Dataset, ctrl *session.Controller) *SetupScreen {
	tierLabels := make(map[string]string)
	for _, k := range ds.TierKeys() {
		tierLabels[k] = ds.TierLabel(k)
	}
	groupLabels := make(map[string]string)
	for _, g := range ds.Groups() {
		groupLabels[g] = g + " groupe"
	}

	s := &SetupScreen{
		ctx:  context.Background(),
		ctrl: ctrl,
	}
	s.lists[listTenses] = components.NewCheckList("Temps", ds.Tenses(), nil)
	s.lists[listGroups] = components.NewCheckList("Groupes", ds.Groups(), groupLabels)
	s.lists[listTiers] = components.NewCheckList("Niveaux", ds.TierKeys(), tierLabels)
	return s
}

func (s *SetupScreen) Init() tea.Cmd {
	return nil
}

func (s *SetupScreen) Title() string {
	return "Sélection"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Naviguer"},
		{Key: "←→", Description: "Liste"},
		{Key: "Espace", Description: "Cocher"},
		{Key: "A", Description: "Tout"},
		{Key: "Enter", Description: "Commencer"},
		{Key: "Ctrl+C", Description: "Quitter"},
	}
}

// Selection returns the current filter choice.
func (s *SetupScreen) Selection() deck.Selection {
	return deck.Selection{
		Tenses: s.lists[listTenses].Values(),
		Groups: s.lists[listGroups].Values(),
		Tiers:  s.lists[listTiers].Values(),
	}
}

// Notice returns the message shown under the lists.
func (s *SetupScreen) Notice() session.Feedback { return s.notice }

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case drill.SessionEndedMsg:
		// The end of a deck resets the whole selection, as a fresh start would.
		for i := range s.lists {
			s.lists[i].SetAll(true)
			s.cursors[i] = 0
		}
		s.focus = listTenses
		summary := msg.Summary
		s.last = &summary
		s.notice = session.Feedback{Text: session.MsgSessionOver, Severity: session.SeveritySuccess}
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SetupScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	list := &s.lists[s.focus]

	switch msg.String() {
	case "up", "k":
		if s.cursors[s.focus] > 0 {
			s.cursors[s.focus]--
		}
	case "down", "j":
		if s.cursors[s.focus] < list.Len()-1 {
			s.cursors[s.focus]++
		}
	case "left", "h", "shift+tab":
		s.focus = (s.focus + numLists - 1) % numLists
	case "right", "l", "tab":
		s.focus = (s.focus + 1) % numLists
	case "space":
		list.Toggle(s.cursors[s.focus])
	case "a":
		list.SetAll(len(list.Values()) != list.Len())
	case "enter":
		return s.start()
	}
	return s, nil
}

func (s *SetupScreen) start() (screen.Screen, tea.Cmd) {
	err := s.ctrl.Start(s.ctx, s.Selection())
	switch {
	case errors.Is(err, deck.ErrEmptySelection):
		s.notice = session.Feedback{Text: session.MsgEmptySelection, Severity: session.SeverityError}
		return s, nil
	case err != nil && !errors.Is(err, dataset.ErrLookup):
		s.notice = session.Feedback{Text: err.Error(), Severity: session.SeverityError}
		return s, nil
	}

	// A lookup failure on the first question still starts the session;
	// the drill screen shows it as skippable.
	s.notice = session.Feedback{}
	s.last = nil
	d := drill.New(s.ctrl)
	return s, func() tea.Msg { return router.PushScreenMsg{Screen: d} }
}
