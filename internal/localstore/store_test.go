package localstore

import (
	"testing"

	"github.com/persona-dev/persona/internal/testutil"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	return s
}

func TestUserDataRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if profile, err := s.LoadUserData(); err != nil || profile != nil {
		t.Fatalf("empty store: got profile=%v err=%v, want nil, nil", profile, err)
	}

	if err := s.SaveUserData("Ada"); err != nil {
		t.Fatalf("SaveUserData failed: %v", err)
	}

	profile, err := s.LoadUserData()
	if err != nil {
		t.Fatalf("LoadUserData failed: %v", err)
	}
	if profile == nil || profile.Name != "Ada" {
		t.Errorf("profile: got %+v, want name Ada", profile)
	}
	if profile.CreatedAt.IsZero() || profile.LastUpdated.IsZero() {
		t.Error("profile timestamps not stamped")
	}
}

func TestDraftSingleton(t *testing.T) {
	s := newTestStore(t)

	if s.HasDraft() {
		t.Fatal("HasDraft true on empty store")
	}

	// Every save overwrites the singleton; the last write wins whole.
	drafts := []Draft{
		{Name: "Ada", Strengths: []string{"curious"}},
		{Name: "Ada", Strengths: []string{"curious", "diligent"}, Habits: "reads"},
		{Name: "Ada", Weaknesses: []string{"impatient"}, SpeechTone: "Formal"},
	}
	for _, d := range drafts {
		if err := s.SaveDraft(d); err != nil {
			t.Fatalf("SaveDraft failed: %v", err)
		}
	}

	got, err := s.LoadDraft()
	if err != nil {
		t.Fatalf("LoadDraft failed: %v", err)
	}
	if got == nil {
		t.Fatal("LoadDraft returned nil after saves")
	}
	if len(got.Strengths) != 0 || len(got.Weaknesses) != 1 || got.SpeechTone != "Formal" {
		t.Errorf("draft not overwritten whole: %+v", got)
	}
	if got.SavedAt.IsZero() {
		t.Error("SavedAt not stamped")
	}

	if err := s.DeleteDraft(); err != nil {
		t.Fatalf("DeleteDraft failed: %v", err)
	}
	if s.HasDraft() {
		t.Error("HasDraft true after delete")
	}
	// Deleting an absent draft is a no-op.
	if err := s.DeleteDraft(); err != nil {
		t.Errorf("DeleteDraft on absent draft: %v", err)
	}
}

func TestResponseHistoryAppendsWithoutDedup(t *testing.T) {
	s := newTestStore(t)

	entry := HistoryEntry{ID: "r1", Name: "Ada", Strength: "curious", Status: "submitted"}
	for i := 0; i < 2; i++ {
		if err := s.SaveResponseHistory(entry); err != nil {
			t.Fatalf("SaveResponseHistory failed: %v", err)
		}
	}

	history, err := s.LoadResponseHistory()
	if err != nil {
		t.Fatalf("LoadResponseHistory failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("got %d entries, want 2 (duplicates allowed)", len(history))
	}

	if err := s.DeleteResponseFromHistory("r1"); err != nil {
		t.Fatalf("DeleteResponseFromHistory failed: %v", err)
	}
	history, err = s.LoadResponseHistory()
	if err != nil {
		t.Fatalf("LoadResponseHistory failed: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("got %d entries after delete, want 0", len(history))
	}
}

func TestClearAllData(t *testing.T) {
	s := newTestStore(t)

	if err := s.SaveUserData("Ada"); err != nil {
		t.Fatalf("SaveUserData failed: %v", err)
	}
	if err := s.SaveDraft(Draft{Name: "Ada", Strengths: []string{"curious"}}); err != nil {
		t.Fatalf("SaveDraft failed: %v", err)
	}
	if err := s.SaveResponseHistory(HistoryEntry{ID: "r1"}); err != nil {
		t.Fatalf("SaveResponseHistory failed: %v", err)
	}

	if err := s.ClearAllData(); err != nil {
		t.Fatalf("ClearAllData failed: %v", err)
	}

	if profile, _ := s.LoadUserData(); profile != nil {
		t.Error("profile survived ClearAllData")
	}
	if s.HasDraft() {
		t.Error("draft survived ClearAllData")
	}
	if history, _ := s.LoadResponseHistory(); len(history) != 0 {
		t.Error("history survived ClearAllData")
	}
}

func TestIsValidDraftToSave(t *testing.T) {
	tests := []struct {
		name      string
		candidate DraftCandidate
		want      bool
	}{
		{"empty", DraftCandidate{}, false},
		{"name only", DraftCandidate{Name: "Ada"}, false},
		{"whitespace name with strength", DraftCandidate{Name: "   ", Strengths: []string{"x"}}, false},
		{"name and strengths list", DraftCandidate{Name: "Ada", Strengths: []string{"curious"}}, true},
		{"name and weaknesses list", DraftCandidate{Name: "Ada", Weaknesses: []string{"impatient"}}, true},
		{"name and strength string", DraftCandidate{Name: "Ada", Strength: "curious"}, true},
		{"name and weakness string", DraftCandidate{Name: "Ada", Weakness: "impatient"}, true},
		{"blank strength string", DraftCandidate{Name: "Ada", Strength: "   "}, false},
		{"blank weakness string", DraftCandidate{Name: "Ada", Weakness: "\t"}, false},
		{"both representations", DraftCandidate{Name: "Ada", Strengths: []string{"a"}, Weakness: "b"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidDraftToSave(tt.candidate); got != tt.want {
				t.Errorf("IsValidDraftToSave(%+v) = %v, want %v", tt.candidate, got, tt.want)
			}
		})
	}
}

func TestLoadFromPreexistingFiles(t *testing.T) {
	dir := testutil.TempData(t, testutil.SeededUserFiles("Ada"))

	s, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	profile, err := s.LoadUserData()
	if err != nil {
		t.Fatalf("LoadUserData failed: %v", err)
	}
	if profile == nil || profile.Name != "Ada" {
		t.Fatalf("profile: got %+v, want name Ada", profile)
	}

	if !s.HasDraft() {
		t.Fatal("seeded draft not detected")
	}
	draft, err := s.LoadDraft()
	if err != nil {
		t.Fatalf("LoadDraft failed: %v", err)
	}
	if draft.Name != "Ada" || len(draft.Strengths) != 2 || draft.SpeechTone != "Formal" {
		t.Errorf("draft mismatch: %+v", draft)
	}
}

func TestLoadPreexistingHistory(t *testing.T) {
	dir := testutil.TempData(t, testutil.SeededHistoryFiles("Ada"))

	s, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	history, err := s.LoadResponseHistory()
	if err != nil {
		t.Fatalf("LoadResponseHistory failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history: got %d entries, want 1", len(history))
	}
	entry := history[0]
	if entry.ID != "resp-1" || entry.Status != "submitted" {
		t.Errorf("entry mismatch: %+v", entry)
	}
	if !entry.SubmittedAt.After(entry.CreatedAt) {
		t.Error("submittedAt not after createdAt in seeded entry")
	}
}
