// Package views provides TUI view components for the persona application.
package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/persona-dev/persona/internal/tui"
)

// WelcomeModel asks for the user's name on first run.
type WelcomeModel struct {
	input  textinput.Model
	width  int
	height int
}

// NewWelcomeModel creates the welcome view.
func NewWelcomeModel(width, height int) WelcomeModel {
	ti := textinput.New()
	ti.Placeholder = "Your name"
	ti.CharLimit = 100
	ti.Width = 40
	ti.Focus()

	return WelcomeModel{input: ti, width: width, height: height}
}

// Init returns the initial command for the welcome view.
func (m WelcomeModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the welcome view.
func (m WelcomeModel) Update(msg tea.Msg) (WelcomeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == tui.KeyEnter {
			name := strings.TrimSpace(m.input.Value())
			if name == "" {
				return m, nil
			}
			return m, func() tea.Msg {
				return tui.NameEnteredMsg{Name: name}
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the welcome view.
func (m WelcomeModel) View() string {
	var b strings.Builder
	b.WriteString(tui.TitleStyle.Render("Welcome to Persona"))
	b.WriteString("\n\n")
	b.WriteString("What should we call you?\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(tui.DimStyle.Render("enter to continue · ctrl+c to quit"))
	return tui.BoxStyle.Render(b.String())
}
