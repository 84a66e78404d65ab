// Package app wires the TUI views into a single Bubble Tea program driving
// one session from name entry through final review and submission.
package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/persona-dev/persona/internal/autosave"
	"github.com/persona-dev/persona/internal/config"
	"github.com/persona-dev/persona/internal/localstore"
	"github.com/persona-dev/persona/internal/session"
	"github.com/persona-dev/persona/internal/tui"
	"github.com/persona-dev/persona/internal/tui/views"
)

// appState is the active page.
type appState int

const (
	stateWelcome appState = iota
	stateRecovery
	stateForm
	stateReview
	stateError
)

// App is the top-level TUI model. It owns the session and delegates
// rendering and input to the per-page views.
type App struct {
	sess  *session.Session
	cfg   *config.Config
	state appState

	welcome  views.WelcomeModel
	recovery views.RecoveryModel
	form     views.FormModel
	review   views.ReviewModel

	saver   *autosave.Debouncer
	lastErr error
	width   int
	height  int
}

// New builds the TUI over an already-started session.
func New(sess *session.Session, cfg *config.Config) *App {
	a := &App{sess: sess, cfg: cfg, width: 80, height: 24}

	switch {
	case !sess.HasUser():
		a.state = stateWelcome
		a.welcome = views.NewWelcomeModel(a.width, a.height)
	case sess.RecoverableDraft() != nil:
		a.state = stateRecovery
		a.recovery = views.NewRecoveryModel(*sess.RecoverableDraft(), a.width, a.height)
	default:
		a.enterForm(nil)
	}
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	switch a.state {
	case stateWelcome:
		return a.welcome.Init()
	case stateForm:
		return a.form.Init()
	}
	return nil
}

func (a *App) enterForm(draft *localstore.Draft) {
	a.saver = a.sess.NewDebouncer(time.Duration(a.cfg.Autosave.DebounceMs) * time.Millisecond)
	a.form = views.NewFormModel(draft, a.saver, a.width, a.height)
	a.state = stateForm
}

func (a *App) enterReview() tea.Cmd {
	a.review = views.NewReviewModel(a.sess, a.width, a.height)
	a.state = stateReview
	return a.loadWorkingSetCmd()
}

func (a *App) loadWorkingSetCmd() tea.Cmd {
	sess := a.sess
	return func() tea.Msg {
		if err := sess.LoadWorkingSet(context.Background()); err != nil {
			return tui.ErrMsg{Err: err}
		}
		return tui.WorkingSetLoadedMsg{}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == tui.KeyCtrlC {
			if a.saver != nil {
				a.saver.Cancel()
			}
			return a, tea.Quit
		}

	case tui.NameEnteredMsg:
		if err := a.sess.SetUserName(msg.Name); err != nil {
			return a.fail(err)
		}
		if draft := a.sess.RecoverableDraft(); draft != nil {
			a.state = stateRecovery
			a.recovery = views.NewRecoveryModel(*draft, a.width, a.height)
			return a, nil
		}
		a.enterForm(nil)
		return a, a.form.Init()

	case tui.RecoveryChoiceMsg:
		if msg.Continue {
			draft, err := a.sess.ContinueDraft()
			if err != nil {
				return a.fail(err)
			}
			a.enterForm(&draft)
			return a, a.form.Init()
		}
		if err := a.sess.DiscardDraft(); err != nil {
			return a.fail(err)
		}
		a.enterForm(nil)
		return a, a.form.Init()

	case tui.FormSubmittedMsg:
		a.saver.Cancel()
		// Show the new record immediately as an unselectable placeholder;
		// the reload after promotion replaces it with the server copy.
		a.sess.AddPlaceholder(msg.Fields.Flatten())
		sess := a.sess
		fields := msg.Fields
		cmd := func() tea.Msg {
			id, err := sess.PromoteDraft(context.Background(), fields)
			if err != nil {
				return tui.ErrMsg{Err: err}
			}
			return tui.PromotedMsg{ID: id}
		}
		a.review = views.NewReviewModel(a.sess, a.width, a.height)
		a.state = stateReview
		return a, cmd

	case tui.FormCancelledMsg:
		a.saver.Cancel()
		return a, a.enterReview()

	case tui.PromotedMsg:
		return a, a.loadWorkingSetCmd()

	case tui.WorkingSetLoadedMsg:
		return a, nil

	case tui.NewResponseMsg:
		a.enterForm(nil)
		return a, a.form.Init()

	case tui.ToggleSelectMsg:
		// Non-selectable items are simply ignored.
		_ = a.sess.ToggleSelect(msg.LocalID)
		return a, nil

	case tui.SelectAllMsg:
		a.sess.SelectAll()
		return a, nil

	case tui.EditSavedMsg:
		if err := a.sess.EditWorkingItem(msg.LocalID, msg.Fields); err != nil {
			return a.fail(err)
		}
		return a, nil

	case tui.SubmitRequestedMsg:
		sess := a.sess
		confirmed := msg.Confirmed
		return a, func() tea.Msg {
			results, err := sess.Submit(context.Background(), func() bool { return confirmed })
			if err != nil {
				return tui.ErrMsg{Err: err}
			}
			if results == nil {
				// Confirmation declined; nothing changed.
				return tui.WorkingSetLoadedMsg{}
			}
			return tui.SubmitDoneMsg{Results: results}
		}

	case tui.ErrMsg:
		return a.fail(msg.Err)
	}

	return a.delegate(msg)
}

// delegate routes remaining messages to the active page.
func (a *App) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.state {
	case stateWelcome:
		a.welcome, cmd = a.welcome.Update(msg)
	case stateRecovery:
		a.recovery, cmd = a.recovery.Update(msg)
	case stateForm:
		a.form, cmd = a.form.Update(msg)
	case stateReview:
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == tui.KeyEsc && a.review.InList() {
			return a, tea.Quit
		}
		a.review, cmd = a.review.Update(msg)
	case stateError:
		if _, ok := msg.(tea.KeyMsg); ok {
			// Any key returns to the review page after an error.
			a.lastErr = nil
			return a, a.enterReview()
		}
	}
	return a, cmd
}

func (a *App) fail(err error) (tea.Model, tea.Cmd) {
	a.lastErr = err
	a.state = stateError
	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	switch a.state {
	case stateWelcome:
		return a.welcome.View()
	case stateRecovery:
		return a.recovery.View()
	case stateForm:
		return a.form.View()
	case stateReview:
		return a.review.View()
	case stateError:
		return tui.BoxStyle.Render(
			tui.ErrorStyle.Render("Something went wrong") + "\n\n" +
				a.lastErr.Error() + "\n\n" +
				tui.DimStyle.Render("press any key to continue"))
	}
	return ""
}
