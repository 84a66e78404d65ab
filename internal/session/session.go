package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/persona-dev/persona/internal/autosave"
	"github.com/persona-dev/persona/internal/docstore"
	"github.com/persona-dev/persona/internal/localstore"
	"github.com/persona-dev/persona/internal/log"
	"github.com/persona-dev/persona/internal/responses"
)

// ErrNoUser indicates an operation that needs an established user profile
// was called before one exists.
var ErrNoUser = errors.New("no user profile established")

// Session is the explicit session context threaded through the application.
type Session struct {
	local  *localstore.Store
	remote *responses.Store
	log    *log.Logger

	profile *localstore.UserProfile
	draft   *localstore.Draft // recoverable in-progress draft, nil if none

	working   []WorkItem
	selected  map[string]bool
	nextLocal int
}

// New creates a Session over the given stores.
func New(local *localstore.Store, remote *responses.Store, logger *log.Logger) *Session {
	return &Session{
		local:    local,
		remote:   remote,
		log:      logger,
		selected: make(map[string]bool),
	}
}

// Start loads the persisted user profile and checks for a recoverable
// draft. Call once when the application starts.
func (s *Session) Start() error {
	profile, err := s.local.LoadUserData()
	if err != nil {
		return fmt.Errorf("load user profile: %w", err)
	}
	s.profile = profile

	if profile != nil {
		draft, err := s.local.LoadDraft()
		if err != nil {
			return fmt.Errorf("load draft: %w", err)
		}
		s.draft = draft
	}
	return nil
}

// UserName returns the established user's name, or "" if none.
func (s *Session) UserName() string {
	if s.profile == nil {
		return ""
	}
	return s.profile.Name
}

// HasUser reports whether a user profile is established.
func (s *Session) HasUser() bool {
	return s.profile != nil
}

// SetUserName upserts the user profile for name.
func (s *Session) SetUserName(name string) error {
	if err := s.local.SaveUserData(name); err != nil {
		return err
	}
	profile, err := s.local.LoadUserData()
	if err != nil {
		return err
	}
	s.profile = profile
	_ = s.log.Append(log.LogEvent{Event: log.EventUserSaved, User: name})
	return nil
}

// RecoverableDraft returns the persisted in-progress draft found at session
// start, or nil. A draft persists indefinitely until explicitly continued
// or discarded; there is no age-based expiry.
func (s *Session) RecoverableDraft() *localstore.Draft {
	return s.draft
}

// ContinueDraft hands the recovered draft back for rehydrating the entry
// form. The persisted copy stays in place until promotion or discard.
func (s *Session) ContinueDraft() (localstore.Draft, error) {
	if s.draft == nil {
		return localstore.Draft{}, errors.New("no draft to continue")
	}
	_ = s.log.Append(log.LogEvent{Event: log.EventDraftRecovered, User: s.UserName()})
	return *s.draft, nil
}

// DiscardDraft deletes the recovered draft and proceeds with a blank form.
func (s *Session) DiscardDraft() error {
	if err := s.local.DeleteDraft(); err != nil {
		return err
	}
	s.draft = nil
	_ = s.log.Append(log.LogEvent{Event: log.EventDraftDiscarded, User: s.UserName(), Reason: "recovery declined"})
	return nil
}

// NewDebouncer returns an auto-save debouncer persisting into this
// session's local store. Cancel it on form teardown.
func (s *Session) NewDebouncer(delay time.Duration) *autosave.Debouncer {
	return autosave.New(delay, func(d localstore.Draft) error {
		if err := s.local.SaveDraft(d); err != nil {
			return err
		}
		_ = s.log.Append(log.LogEvent{Event: log.EventDraftSaved, User: s.UserName()})
		return nil
	})
}

// PromoteDraft validates the completed form, flattens it, inserts it as a
// remote draft response, and deletes the local in-progress draft. Returns
// the store-assigned id. Validation failures abort before any store call.
func (s *Session) PromoteDraft(ctx context.Context, fields responses.DraftFields) (string, error) {
	if s.profile == nil {
		return "", ErrNoUser
	}
	if verr := ValidateForm(fields); verr != nil {
		return "", verr
	}

	id, err := s.remote.AddDraftResponse(ctx, s.profile.Name, fields.Flatten())
	if err != nil {
		return "", err
	}

	if err := s.local.DeleteDraft(); err != nil {
		return id, fmt.Errorf("clear promoted draft: %w", err)
	}
	s.draft = nil
	return id, nil
}

// LoadWorkingSet fetches the user's pending remote drafts into the
// in-memory working set, replacing any previous set and clearing the
// selection.
func (s *Session) LoadWorkingSet(ctx context.Context) error {
	if s.profile == nil {
		return ErrNoUser
	}
	records, err := s.remote.GetUserDraftResponses(ctx, s.profile.Name)
	if err != nil {
		return err
	}

	s.working = s.working[:0]
	s.selected = make(map[string]bool)
	for _, rec := range records {
		s.working = append(s.working, WorkItem{
			LocalID:  rec.ID,
			RemoteID: rec.ID,
			Fields: responses.PersistedFields{
				Name:       rec.Name,
				Strength:   rec.Strength,
				Weakness:   rec.Weakness,
				Habits:     rec.Habits,
				SpeechTone: rec.SpeechTone,
				Nature:     rec.Nature,
			},
			CreatedAt: rec.CreatedAt,
		})
	}
	return nil
}

// AddPlaceholder appends a display-only item without a server identifier to
// the working set. Such items cannot be selected or submitted.
func (s *Session) AddPlaceholder(fields responses.PersistedFields) string {
	s.nextLocal++
	localID := fmt.Sprintf("local-%d", s.nextLocal)
	s.working = append(s.working, WorkItem{LocalID: localID, Fields: fields})
	return localID
}

// WorkingSet returns the current working set.
func (s *Session) WorkingSet() []WorkItem {
	return s.working
}

func (s *Session) find(localID string) *WorkItem {
	for i := range s.working {
		if s.working[i].LocalID == localID {
			return &s.working[i]
		}
	}
	return nil
}

// ToggleSelect flips the selection state of the identified item. Items
// without a server identifier cannot be selected.
func (s *Session) ToggleSelect(localID string) error {
	item := s.find(localID)
	if item == nil {
		return fmt.Errorf("no working item %q", localID)
	}
	if !item.Selectable() {
		return fmt.Errorf("item %q has no server id and cannot be selected", localID)
	}
	if s.selected[localID] {
		delete(s.selected, localID)
	} else {
		s.selected[localID] = true
	}
	return nil
}

// SelectAll selects every selectable item; if everything selectable is
// already selected, it clears the selection instead.
func (s *Session) SelectAll() {
	selectable := 0
	for _, item := range s.working {
		if item.Selectable() {
			selectable++
		}
	}
	if len(s.selected) == selectable && selectable > 0 {
		s.selected = make(map[string]bool)
		return
	}
	for _, item := range s.working {
		if item.Selectable() {
			s.selected[item.LocalID] = true
		}
	}
}

// ClearSelection deselects everything.
func (s *Session) ClearSelection() {
	s.selected = make(map[string]bool)
}

// IsSelected reports the selection state of one item.
func (s *Session) IsSelected(localID string) bool {
	return s.selected[localID]
}

// SelectedCount returns the number of selected items.
func (s *Session) SelectedCount() int {
	return len(s.selected)
}

// EditWorkingItem replaces the in-memory fields of the identified item.
// Nothing is persisted by the edit itself; the new fields take effect
// remotely only if the item is later submitted.
func (s *Session) EditWorkingItem(localID string, fields responses.PersistedFields) error {
	item := s.find(localID)
	if item == nil {
		return fmt.Errorf("no working item %q", localID)
	}
	item.Fields = fields
	item.Dirty = true
	return nil
}

// Submit sends the selected working-set items to the remote store. With an
// empty selection, confirm is asked first and the entire working set
// becomes the target; declining leaves the store untouched and returns a
// nil result list. A confirmed submit that finds nothing submittable
// (every item still lacks a server id) returns an empty, non-nil list so
// callers can tell the two apart. Items edited in memory are flushed just
// before submission so the submitted copy carries the then-current fields.
// Successfully submitted items leave the working set.
func (s *Session) Submit(ctx context.Context, confirm func() bool) ([]responses.SubmitResult, error) {
	if s.profile == nil {
		return nil, ErrNoUser
	}

	var targets []*WorkItem
	if len(s.selected) == 0 {
		if confirm == nil || !confirm() {
			return nil, nil
		}
		for i := range s.working {
			if s.working[i].Selectable() {
				targets = append(targets, &s.working[i])
			}
		}
	} else {
		for i := range s.working {
			if s.selected[s.working[i].LocalID] && s.working[i].Selectable() {
				targets = append(targets, &s.working[i])
			}
		}
	}
	if len(targets) == 0 {
		return []responses.SubmitResult{}, nil
	}

	ids := make([]string, 0, len(targets))
	for _, item := range targets {
		if item.Dirty {
			err := s.remote.UpdateDraftResponse(ctx, item.RemoteID, docstore.Fields{
				"name":       item.Fields.Name,
				"strength":   item.Fields.Strength,
				"weakness":   item.Fields.Weakness,
				"habits":     item.Fields.Habits,
				"speechTone": item.Fields.SpeechTone,
				"nature":     item.Fields.Nature,
			})
			if err != nil {
				return nil, fmt.Errorf("flush edits for %s: %w", item.RemoteID, err)
			}
			item.Dirty = false
		}
		ids = append(ids, item.RemoteID)
	}

	results, err := s.remote.SubmitResponses(ctx, s.profile.Name, ids)
	if err != nil {
		return nil, err
	}

	submitted := make(map[string]bool)
	for _, r := range results {
		if r.Err == nil {
			submitted[r.ID] = true
		}
	}
	remaining := s.working[:0]
	for _, item := range s.working {
		if submitted[item.RemoteID] {
			delete(s.selected, item.LocalID)
			continue
		}
		remaining = append(remaining, item)
	}
	s.working = remaining

	return results, nil
}

// Reset wipes all local state: profile, draft, and history. Used only for
// a full session reset.
func (s *Session) Reset() error {
	if err := s.local.ClearAllData(); err != nil {
		return err
	}
	_ = s.log.Append(log.LogEvent{Event: log.EventSessionReset, User: s.UserName()})
	s.profile = nil
	s.draft = nil
	s.working = nil
	s.selected = make(map[string]bool)
	return nil
}
