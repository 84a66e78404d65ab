package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Storage keys. Each key maps to one JSON file under .persona/local/.
const (
	keyUserData        = "userData"
	keyCurrentDraft    = "currentDraft"
	keyResponseHistory = "responseHistory"
)

// Store is a synchronous string-keyed JSON store scoped to one session.
// There are no transactional guarantees; writes overwrite whole keys.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at .persona/local/ inside dir.
func NewStore(dir string) (*Store, error) {
	localDir := filepath.Join(dir, ".persona", "local")
	if err := os.MkdirAll(localDir, 0755); err != nil {
		return nil, fmt.Errorf("create local store directory: %w", err)
	}
	return &Store{dir: localDir}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *Store) write(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := os.WriteFile(s.path(key), data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// read unmarshals the key into v. Returns false (and no error) if the key
// is absent.
func (s *Store) read(key string, v any) (bool, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) remove(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// SaveUserData upserts the user profile for the given name. The profile is
// overwritten whole on each call.
func (s *Store) SaveUserData(name string) error {
	now := time.Now()
	return s.write(keyUserData, UserProfile{
		Name:        name,
		CreatedAt:   now,
		LastUpdated: now,
	})
}

// LoadUserData returns the stored profile, or nil if none exists.
func (s *Store) LoadUserData() (*UserProfile, error) {
	var profile UserProfile
	ok, err := s.read(keyUserData, &profile)
	if err != nil || !ok {
		return nil, err
	}
	return &profile, nil
}

// SaveDraft stamps SavedAt and overwrites the singleton draft
// unconditionally. No merge with any previous draft is performed.
func (s *Store) SaveDraft(draft Draft) error {
	draft.SavedAt = time.Now()
	return s.write(keyCurrentDraft, draft)
}

// LoadDraft returns the in-progress draft, or nil if none exists.
func (s *Store) LoadDraft() (*Draft, error) {
	var draft Draft
	ok, err := s.read(keyCurrentDraft, &draft)
	if err != nil || !ok {
		return nil, err
	}
	return &draft, nil
}

// DeleteDraft removes the singleton draft. No-op if absent.
func (s *Store) DeleteDraft() error {
	return s.remove(keyCurrentDraft)
}

// HasDraft reports whether an in-progress draft is persisted.
func (s *Store) HasDraft() bool {
	_, err := os.Stat(s.path(keyCurrentDraft))
	return err == nil
}

// SaveResponseHistory appends entry to the history list. No deduplication
// by id: repeated calls with the same id produce duplicate entries.
func (s *Store) SaveResponseHistory(entry HistoryEntry) error {
	history, err := s.LoadResponseHistory()
	if err != nil {
		return err
	}
	history = append(history, entry)
	return s.write(keyResponseHistory, history)
}

// LoadResponseHistory returns the ordered history list. An absent key reads
// as an empty list.
func (s *Store) LoadResponseHistory() ([]HistoryEntry, error) {
	var history []HistoryEntry
	if _, err := s.read(keyResponseHistory, &history); err != nil {
		return nil, err
	}
	if history == nil {
		history = []HistoryEntry{}
	}
	return history, nil
}

// DeleteResponseFromHistory removes every entry with the given id.
func (s *Store) DeleteResponseFromHistory(id string) error {
	history, err := s.LoadResponseHistory()
	if err != nil {
		return err
	}
	filtered := history[:0]
	for _, entry := range history {
		if entry.ID != id {
			filtered = append(filtered, entry)
		}
	}
	return s.write(keyResponseHistory, filtered)
}

// ClearAllData removes all three local keys unconditionally. Used only for a
// full session reset.
func (s *Store) ClearAllData() error {
	for _, key := range []string{keyUserData, keyCurrentDraft, keyResponseHistory} {
		if err := s.remove(key); err != nil {
			return err
		}
	}
	return nil
}

// IsValidDraftToSave reports whether a draft is worth persisting: the name
// must be non-empty after trimming, and at least one strength or one
// weakness must be present in either representation.
func IsValidDraftToSave(c DraftCandidate) bool {
	hasStrengths := len(c.Strengths) > 0 || strings.TrimSpace(c.Strength) != ""
	hasWeaknesses := len(c.Weaknesses) > 0 || strings.TrimSpace(c.Weakness) != ""
	return strings.TrimSpace(c.Name) != "" && (hasStrengths || hasWeaknesses)
}
