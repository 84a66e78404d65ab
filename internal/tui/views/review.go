package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/persona-dev/persona/internal/responses"
	"github.com/persona-dev/persona/internal/session"
	"github.com/persona-dev/persona/internal/tui"
)

// reviewMode distinguishes the review page's sub-states.
type reviewMode int

const (
	modeList reviewMode = iota
	modeEdit
	modeConfirmAll
	modeResults
)

// Edit field indexes, matching the persisted (flattened) shape.
const (
	editName = iota
	editStrength
	editWeakness
	editHabits
	editSpeechTone
	editNature
	editCount
)

var editLabels = [editCount]string{
	"Name", "Strength", "Weakness", "Habits", "Speech tone", "Nature",
}

// ReviewModel is the final-review page: the working set with checkboxes,
// inline editing, and submission. It reads selection state from the
// session and reports mutations back through messages.
type ReviewModel struct {
	sess    *session.Session
	mode    reviewMode
	cursor  int
	editing string // LocalID under edit
	edits   [editCount]textinput.Model
	editPos int
	results []responses.SubmitResult
	width   int
	height  int
}

// NewReviewModel creates the review page over the session's working set.
func NewReviewModel(sess *session.Session, width, height int) ReviewModel {
	return ReviewModel{
		sess:   sess,
		width:  width,
		height: height,
	}
}

// Init returns the initial command for the review view.
func (m ReviewModel) Init() tea.Cmd {
	return nil
}

// InList reports whether the review page is in its plain list mode, with
// no edit, confirm, or result overlay active.
func (m ReviewModel) InList() bool {
	return m.mode == modeList
}

// Results returns the per-item outcomes of the last submit, nil before one
// completed.
func (m ReviewModel) Results() []responses.SubmitResult {
	return m.results
}

func (m *ReviewModel) beginEdit(item session.WorkItem) {
	m.mode = modeEdit
	m.editing = item.LocalID
	m.editPos = 0
	values := [editCount]string{
		item.Fields.Name,
		item.Fields.Strength,
		item.Fields.Weakness,
		item.Fields.Habits,
		item.Fields.SpeechTone,
		item.Fields.Nature,
	}
	for i := range m.edits {
		ti := textinput.New()
		ti.CharLimit = 400
		ti.Width = 50
		ti.SetValue(values[i])
		m.edits[i] = ti
	}
	m.edits[0].Focus()
}

func (m ReviewModel) editedFields() responses.PersistedFields {
	return responses.PersistedFields{
		Name:       strings.TrimSpace(m.edits[editName].Value()),
		Strength:   strings.TrimSpace(m.edits[editStrength].Value()),
		Weakness:   strings.TrimSpace(m.edits[editWeakness].Value()),
		Habits:     strings.TrimSpace(m.edits[editHabits].Value()),
		SpeechTone: strings.TrimSpace(m.edits[editSpeechTone].Value()),
		Nature:     strings.TrimSpace(m.edits[editNature].Value()),
	}
}

// Update handles messages for the review view.
func (m ReviewModel) Update(msg tea.Msg) (ReviewModel, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		return m, nil
	}

	if done, ok := msg.(tui.SubmitDoneMsg); ok {
		m.results = done.Results
		m.mode = modeResults
		m.cursor = 0
		return m, nil
	}

	switch m.mode {
	case modeEdit:
		return m.updateEdit(msg)
	case modeConfirmAll:
		return m.updateConfirm(msg)
	case modeResults:
		if _, ok := msg.(tea.KeyMsg); ok {
			m.mode = modeList
			m.results = nil
		}
		return m, nil
	}
	return m.updateList(msg)
}

func (m ReviewModel) updateList(msg tea.Msg) (ReviewModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	items := m.sess.WorkingSet()
	switch key.String() {
	case tui.KeyUp, "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case tui.KeyDown, "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case tui.KeySpace:
		if m.cursor < len(items) {
			id := items[m.cursor].LocalID
			return m, func() tea.Msg { return tui.ToggleSelectMsg{LocalID: id} }
		}
	case "a":
		return m, func() tea.Msg { return tui.SelectAllMsg{} }
	case "n":
		return m, func() tea.Msg { return tui.NewResponseMsg{} }
	case "e":
		if m.cursor < len(items) {
			m.beginEdit(items[m.cursor])
		}
	case "s":
		if m.sess.SelectedCount() == 0 {
			if len(items) == 0 {
				return m, nil
			}
			m.mode = modeConfirmAll
			return m, nil
		}
		return m, func() tea.Msg { return tui.SubmitRequestedMsg{Confirmed: false} }
	}
	return m, nil
}

func (m ReviewModel) updateConfirm(msg tea.Msg) (ReviewModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "y", "Y":
		m.mode = modeList
		return m, func() tea.Msg { return tui.SubmitRequestedMsg{Confirmed: true} }
	case "n", "N", tui.KeyEsc:
		m.mode = modeList
	}
	return m, nil
}

func (m ReviewModel) updateEdit(msg tea.Msg) (ReviewModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if ok {
		switch key.String() {
		case tui.KeyEsc:
			m.mode = modeList
			return m, nil
		case tui.KeyCtrlS:
			id := m.editing
			fields := m.editedFields()
			m.mode = modeList
			return m, func() tea.Msg { return tui.EditSavedMsg{LocalID: id, Fields: fields} }
		case tui.KeyTab, tui.KeyDown, tui.KeyEnter:
			m.edits[m.editPos].Blur()
			m.editPos = (m.editPos + 1) % editCount
			m.edits[m.editPos].Focus()
			return m, nil
		case "shift+tab", tui.KeyUp:
			m.edits[m.editPos].Blur()
			m.editPos = (m.editPos + editCount - 1) % editCount
			m.edits[m.editPos].Focus()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.edits[m.editPos], cmd = m.edits[m.editPos].Update(msg)
	return m, cmd
}

// View renders the review view.
func (m ReviewModel) View() string {
	switch m.mode {
	case modeEdit:
		return m.viewEdit()
	case modeConfirmAll:
		return m.viewConfirm()
	case modeResults:
		return m.viewResults()
	}
	return m.viewList()
}

func (m ReviewModel) viewList() string {
	var b strings.Builder
	b.WriteString(tui.TitleStyle.Render("Final review"))
	b.WriteString("\n\n")

	items := m.sess.WorkingSet()
	if len(items) == 0 {
		b.WriteString(tui.DimStyle.Render("No pending responses."))
		b.WriteString("\n")
	}
	for i, item := range items {
		check := tui.CheckOff
		switch {
		case !item.Selectable():
			check = tui.CheckDisabled
		case m.sess.IsSelected(item.LocalID):
			check = tui.CheckOn
		}

		line := fmt.Sprintf("%s %s — %s", check, item.Fields.Name, item.Fields.Nature)
		if item.Dirty {
			line += tui.WarningStyle.Render(" (edited)")
		}
		if !item.Selectable() {
			line += tui.DimStyle.Render(" (saving…)")
		}
		if i == m.cursor {
			line = tui.SelectedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render(fmt.Sprintf("%d selected", m.sess.SelectedCount())))
	b.WriteString("\n\n")
	b.WriteString(tui.DimStyle.Render("space select · a select all · e edit · n new · s submit · esc quit"))
	return tui.BoxStyle.Render(b.String())
}

func (m ReviewModel) viewConfirm() string {
	var b strings.Builder
	b.WriteString(tui.TitleStyle.Render("Submit everything?"))
	b.WriteString("\n\n")
	b.WriteString("Nothing is selected. Submit all pending responses?\n\n")
	b.WriteString(tui.DimStyle.Render("y submit all · n cancel"))
	return tui.BoxStyle.Render(b.String())
}

func (m ReviewModel) viewEdit() string {
	var b strings.Builder
	b.WriteString(tui.TitleStyle.Render("Edit response"))
	b.WriteString("\n\n")
	for i := range m.edits {
		label := editLabels[i]
		if i == m.editPos {
			label = tui.SelectedStyle.Render(label)
		}
		b.WriteString(label + "\n")
		b.WriteString(m.edits[i].View() + "\n\n")
	}
	b.WriteString(tui.DimStyle.Render("tab to move · ctrl+s apply · esc discard"))
	return tui.BoxStyle.Render(b.String())
}

func (m ReviewModel) viewResults() string {
	var b strings.Builder
	b.WriteString(tui.TitleStyle.Render("Submission results"))
	b.WriteString("\n\n")

	if len(m.results) == 0 {
		b.WriteString(tui.WarningStyle.Render("Nothing was submitted: no item has a server id yet.") + "\n")
		b.WriteString(tui.DimStyle.Render("Items marked (saving…) become submittable once stored.") + "\n\n")
		b.WriteString(tui.DimStyle.Render("press any key to continue"))
		return tui.BoxStyle.Render(b.String())
	}

	var failed int
	for _, r := range m.results {
		if r.Err != nil {
			failed++
			b.WriteString(tui.ErrorStyle.Render(fmt.Sprintf("✗ %s: %v", r.ID, r.Err)) + "\n")
		} else {
			b.WriteString(tui.SuccessStyle.Render(fmt.Sprintf("✓ %s submitted", r.ID)) + "\n")
		}
	}
	b.WriteString("\n")
	if failed > 0 {
		b.WriteString(tui.WarningStyle.Render(fmt.Sprintf("%d of %d failed; submitted items are not rolled back", failed, len(m.results))) + "\n")
	} else {
		b.WriteString(tui.SuccessStyle.Render(fmt.Sprintf("All %d responses submitted", len(m.results))) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(tui.DimStyle.Render("press any key to continue"))
	return tui.BoxStyle.Render(b.String())
}
