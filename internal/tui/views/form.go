package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/persona-dev/persona/internal/autosave"
	"github.com/persona-dev/persona/internal/localstore"
	"github.com/persona-dev/persona/internal/responses"
	"github.com/persona-dev/persona/internal/session"
	"github.com/persona-dev/persona/internal/tui"
)

// Field indexes of the entry form.
const (
	fieldName = iota
	fieldStrength
	fieldWeakness
	fieldHabits
	fieldSpeechTone
	fieldNature
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Name",
	"Strengths (enter to add)",
	"Weaknesses (enter to add)",
	"Habits",
	"Speech tone",
	"Nature",
}

// errorKeys maps field indexes to the keys used in validation messages.
var errorKeys = [fieldCount]string{
	"name", "strength", "weakness", "habits", "speechTone", "nature",
}

// FormModel is the entry form. Every edit feeds the auto-save debouncer;
// the pending save is cancelled on teardown.
type FormModel struct {
	inputs     [fieldCount]textinput.Model
	strengths  []string
	weaknesses []string
	focus      int
	errors     map[string]string
	saver      *autosave.Debouncer
	width      int
	height     int
}

// NewFormModel creates the entry form, rehydrated from draft when one was
// recovered.
func NewFormModel(draft *localstore.Draft, saver *autosave.Debouncer, width, height int) FormModel {
	m := FormModel{
		saver:  saver,
		errors: make(map[string]string),
		width:  width,
		height: height,
	}

	for i := range m.inputs {
		ti := textinput.New()
		ti.CharLimit = 200
		ti.Width = 50
		m.inputs[i] = ti
	}
	m.inputs[fieldName].Placeholder = "Your name"
	m.inputs[fieldStrength].Placeholder = "e.g. curious"
	m.inputs[fieldWeakness].Placeholder = "e.g. impatient"
	m.inputs[fieldSpeechTone].Placeholder = "e.g. Formal"
	m.inputs[fieldNature].Placeholder = "e.g. Introvert"

	if draft != nil {
		m.inputs[fieldName].SetValue(draft.Name)
		m.inputs[fieldHabits].SetValue(draft.Habits)
		m.inputs[fieldSpeechTone].SetValue(draft.SpeechTone)
		m.inputs[fieldNature].SetValue(draft.Nature)
		m.strengths = append(m.strengths, draft.Strengths...)
		m.weaknesses = append(m.weaknesses, draft.Weaknesses...)
	}

	m.inputs[fieldName].Focus()
	return m
}

// Init returns the initial command for the form view.
func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Fields returns the form's current state in editing-time list form.
func (m FormModel) Fields() responses.DraftFields {
	return responses.DraftFields{
		Name:       strings.TrimSpace(m.inputs[fieldName].Value()),
		Strengths:  m.strengths,
		Weaknesses: m.weaknesses,
		Habits:     strings.TrimSpace(m.inputs[fieldHabits].Value()),
		SpeechTone: strings.TrimSpace(m.inputs[fieldSpeechTone].Value()),
		Nature:     strings.TrimSpace(m.inputs[fieldNature].Value()),
	}
}

func (m FormModel) snapshot() localstore.Draft {
	f := m.Fields()
	return localstore.Draft{
		Name:       f.Name,
		Strengths:  f.Strengths,
		Weaknesses: f.Weaknesses,
		Habits:     f.Habits,
		SpeechTone: f.SpeechTone,
		Nature:     f.Nature,
	}
}

func (m *FormModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = (i + fieldCount) % fieldCount
	m.inputs[m.focus].Focus()
}

// Update handles messages for the form view.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyEsc:
			return m, func() tea.Msg { return tui.FormCancelledMsg{} }

		case tui.KeyCtrlS:
			fields := m.Fields()
			if verr := session.ValidateForm(fields); verr != nil {
				m.errors = make(map[string]string)
				for _, fe := range verr.Fields {
					m.errors[fe.Field] = fe.Message
				}
				return m, nil
			}
			return m, func() tea.Msg { return tui.FormSubmittedMsg{Fields: fields} }

		case tui.KeyTab, tui.KeyDown:
			m.setFocus(m.focus + 1)
			return m, nil

		case "shift+tab", tui.KeyUp:
			m.setFocus(m.focus - 1)
			return m, nil

		case tui.KeyEnter:
			// Enter adds a chip on the list fields, otherwise advances.
			switch m.focus {
			case fieldStrength:
				if v := strings.TrimSpace(m.inputs[fieldStrength].Value()); v != "" {
					m.strengths = append(m.strengths, v)
					m.inputs[fieldStrength].SetValue("")
					delete(m.errors, "strength")
					m.saver.Edit(m.snapshot())
				}
			case fieldWeakness:
				if v := strings.TrimSpace(m.inputs[fieldWeakness].Value()); v != "" {
					m.weaknesses = append(m.weaknesses, v)
					m.inputs[fieldWeakness].SetValue("")
					delete(m.errors, "weakness")
					m.saver.Edit(m.snapshot())
				}
			default:
				m.setFocus(m.focus + 1)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.inputs[m.focus].Value()
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.inputs[m.focus].Value() != before {
		delete(m.errors, errorKeys[m.focus])
		m.saver.Edit(m.snapshot())
	}
	return m, cmd
}

// View renders the form view.
func (m FormModel) View() string {
	var b strings.Builder
	b.WriteString(tui.TitleStyle.Render("Tell us about yourself"))
	b.WriteString("\n\n")

	for i := range m.inputs {
		label := fieldLabels[i]
		if i == m.focus {
			label = tui.SelectedStyle.Render(label)
		}
		b.WriteString(label + "\n")
		b.WriteString(m.inputs[i].View() + "\n")

		switch i {
		case fieldStrength:
			if len(m.strengths) > 0 {
				b.WriteString(tui.SuccessStyle.Render("  + "+strings.Join(m.strengths, ", ")) + "\n")
			}
		case fieldWeakness:
			if len(m.weaknesses) > 0 {
				b.WriteString(tui.WarningStyle.Render("  + "+strings.Join(m.weaknesses, ", ")) + "\n")
			}
		}
		if msg, ok := m.errors[errorKeys[i]]; ok {
			b.WriteString(tui.ErrorStyle.Render(fmt.Sprintf("  %s", msg)) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(tui.DimStyle.Render("tab/↑↓ to move · enter adds strengths/weaknesses · ctrl+s to save · esc to cancel"))
	return tui.BoxStyle.Render(b.String())
}
