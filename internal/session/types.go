// Package session holds the explicit per-session context: the user profile,
// the optional in-progress draft, and the loaded working set with its
// selection. All state is threaded through this object; nothing is read
// from ambient globals.
package session

import (
	"fmt"
	"strings"

	"github.com/persona-dev/persona/internal/responses"
)

// WorkItem is one entry of the in-memory working set on the review page.
// LocalID is always set and stable for the page's lifetime; RemoteID is
// empty for display-only placeholders that have no server record yet.
type WorkItem struct {
	LocalID   string
	RemoteID  string
	Fields    responses.PersistedFields
	CreatedAt string
	Dirty     bool // edited in memory since load
}

// Selectable reports whether the item can be selected for submission.
// Records without a server identifier cannot be.
func (w WorkItem) Selectable() bool {
	return w.RemoteID != ""
}

// FieldError is a validation failure on a single form field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates the field-level failures of a form submission.
// It is raised before any store call; no partial write occurs.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "invalid form: " + strings.Join(msgs, "; ")
}

// ValidateForm checks the entry form ahead of promotion. Habits is the only
// optional field.
func ValidateForm(fields responses.DraftFields) *ValidationError {
	var errs []FieldError
	if strings.TrimSpace(fields.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "Name is required"})
	}
	if len(fields.Strengths) == 0 {
		errs = append(errs, FieldError{Field: "strength", Message: "Add at least one strength"})
	}
	if len(fields.Weaknesses) == 0 {
		errs = append(errs, FieldError{Field: "weakness", Message: "Add at least one weakness"})
	}
	if strings.TrimSpace(fields.SpeechTone) == "" {
		errs = append(errs, FieldError{Field: "speechTone", Message: "Speech Tone is required"})
	}
	if strings.TrimSpace(fields.Nature) == "" {
		errs = append(errs, FieldError{Field: "nature", Message: "Nature is required"})
	}
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: errs}
}
