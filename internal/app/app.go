package app

import (
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/conjugo/internal/dataset"
	"github.com/abhisek/conjugo/internal/router"
	"github.com/abhisek/conjugo/internal/screen"
	"github.com/abhisek/conjugo/internal/screens/setup"
	"github.com/abhisek/conjugo/internal/session"
	"github.com/abhisek/conjugo/internal/ui/layout"
)

// Options holds injected dependencies for the app.
type Options struct {
	Dataset    *dataset.Dataset
	Controller *session.Controller
	Logger     *slog.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	ctrl   *session.Controller
	width  int
	height int
}

// newAppModel creates a new AppModel starting on the setup screen.
func newAppModel(opts Options) AppModel {
	return AppModel{
		router: router.New(setup.New(opts.Dataset, opts.Controller)),
		ctrl:   opts.Controller,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status(), m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	if len(footerHints) == 0 {
		footerHints = []layout.KeyHint{
			{Key: "Ctrl+C", Description: "Quitter"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// status is the header's right-hand counter: questions left in the deck.
func (m AppModel) status() string {
	if m.ctrl == nil || m.ctrl.Current() == nil {
		return ""
	}
	return fmt.Sprintf("reste %d  ", m.ctrl.Remaining())
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		logger.Error("tui exited", "error", err)
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
