package tui

import (
	"github.com/persona-dev/persona/internal/responses"
)

// NameEnteredMsg is emitted by the welcome view when the user confirms
// their name.
type NameEnteredMsg struct {
	Name string
}

// RecoveryChoiceMsg is emitted by the recovery view: continue the persisted
// draft or discard it.
type RecoveryChoiceMsg struct {
	Continue bool
}

// FormSubmittedMsg is emitted by the entry form when it passes validation.
type FormSubmittedMsg struct {
	Fields responses.DraftFields
}

// FormCancelledMsg is emitted when the user leaves the entry form.
type FormCancelledMsg struct{}

// PromotedMsg reports that a draft was promoted to the remote store.
type PromotedMsg struct {
	ID string
}

// WorkingSetLoadedMsg reports that the pending drafts were loaded.
type WorkingSetLoadedMsg struct{}

// ToggleSelectMsg asks the app to flip one item's selection.
type ToggleSelectMsg struct {
	LocalID string
}

// SelectAllMsg asks the app to select (or clear) the whole working set.
type SelectAllMsg struct{}

// EditSavedMsg replaces an item's in-memory fields.
type EditSavedMsg struct {
	LocalID string
	Fields  responses.PersistedFields
}

// SubmitRequestedMsg asks the app to submit the current selection.
// Confirmed is set when the empty-selection fallback was already confirmed.
type SubmitRequestedMsg struct {
	Confirmed bool
}

// NewResponseMsg asks the app to open a fresh entry form.
type NewResponseMsg struct{}

// SubmitDoneMsg reports the per-item results of a submit.
type SubmitDoneMsg struct {
	Results []responses.SubmitResult
}

// ErrMsg carries a store failure into the blocking notification.
type ErrMsg struct {
	Err error
}
