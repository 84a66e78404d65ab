package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/persona-dev/persona/internal/localstore"
	"github.com/persona-dev/persona/internal/tui"
)

// RecoveryModel presents the draft-recovery choice: continue the persisted
// draft or discard it and start blank.
type RecoveryModel struct {
	draft    localstore.Draft
	selected int // 0 = continue, 1 = discard
	width    int
	height   int
}

// NewRecoveryModel creates the recovery view for the given draft.
func NewRecoveryModel(draft localstore.Draft, width, height int) RecoveryModel {
	return RecoveryModel{draft: draft, width: width, height: height}
}

// Init returns the initial command for the recovery view.
func (m RecoveryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the recovery view.
func (m RecoveryModel) Update(msg tea.Msg) (RecoveryModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyUp, "k", tui.KeyDown, "j", tui.KeyTab:
			m.selected = 1 - m.selected
			return m, nil
		case tui.KeyEnter:
			cont := m.selected == 0
			return m, func() tea.Msg {
				return tui.RecoveryChoiceMsg{Continue: cont}
			}
		}
	}
	return m, nil
}

// View renders the recovery view.
func (m RecoveryModel) View() string {
	var b strings.Builder
	b.WriteString(tui.TitleStyle.Render("Unfinished draft found"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Saved %s\n", m.draft.SavedAt.Format("2006-01-02 15:04")))
	if len(m.draft.Strengths) > 0 {
		b.WriteString(fmt.Sprintf("Strengths:  %s\n", strings.Join(m.draft.Strengths, ", ")))
	}
	if len(m.draft.Weaknesses) > 0 {
		b.WriteString(fmt.Sprintf("Weaknesses: %s\n", strings.Join(m.draft.Weaknesses, ", ")))
	}
	b.WriteString("\n")

	options := []string{"Continue this draft", "Discard and start fresh"}
	for i, opt := range options {
		cursor := "  "
		line := opt
		if i == m.selected {
			cursor = "> "
			line = tui.SelectedStyle.Render(opt)
		}
		b.WriteString(cursor + line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("↑/↓ to choose · enter to confirm"))
	return tui.BoxStyle.Render(b.String())
}
