package autosave

import (
	"sync"
	"testing"
	"time"

	"github.com/persona-dev/persona/internal/localstore"
)

// recorder captures every save the debouncer performs.
type recorder struct {
	mu     sync.Mutex
	drafts []localstore.Draft
}

func (r *recorder) save(d localstore.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drafts = append(r.drafts, d)
	return nil
}

func (r *recorder) saved() []localstore.Draft {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]localstore.Draft, len(r.drafts))
	copy(out, r.drafts)
	return out
}

const testDelay = 20 * time.Millisecond

func TestBurstOfEditsSavesOnce(t *testing.T) {
	rec := &recorder{}
	d := New(testDelay, rec.save)

	for _, strength := range []string{"c", "cu", "cur", "curious"} {
		d.Edit(localstore.Draft{Name: "Ada", Strengths: []string{strength}})
		time.Sleep(testDelay / 4)
	}

	time.Sleep(4 * testDelay)

	saved := rec.saved()
	if len(saved) != 1 {
		t.Fatalf("got %d saves for one burst, want 1", len(saved))
	}
	if saved[0].Strengths[0] != "curious" {
		t.Errorf("saved state: got %q, want the last edit in the burst", saved[0].Strengths[0])
	}
	if d.Pending() {
		t.Error("debouncer still pending after fire")
	}
}

func TestInvalidSnapshotSkippedSilently(t *testing.T) {
	rec := &recorder{}
	d := New(testDelay, rec.save)

	// No name: not valid to save.
	d.Edit(localstore.Draft{Strengths: []string{"curious"}})
	time.Sleep(4 * testDelay)

	if len(rec.saved()) != 0 {
		t.Errorf("invalid draft was persisted")
	}
	if d.Pending() {
		t.Error("debouncer still pending after skipped fire")
	}
}

func TestCancelDropsPendingSave(t *testing.T) {
	rec := &recorder{}
	d := New(testDelay, rec.save)

	d.Edit(localstore.Draft{Name: "Ada", Strengths: []string{"curious"}})
	if !d.Pending() {
		t.Fatal("edit did not schedule a save")
	}
	d.Cancel()

	time.Sleep(4 * testDelay)

	if len(rec.saved()) != 0 {
		t.Error("cancelled save still fired")
	}
	if d.Pending() {
		t.Error("debouncer pending after cancel")
	}
}

func TestSeparateBurstsSaveSeparately(t *testing.T) {
	rec := &recorder{}
	d := New(testDelay, rec.save)

	d.Edit(localstore.Draft{Name: "Ada", Strengths: []string{"curious"}})
	time.Sleep(4 * testDelay)

	d.Edit(localstore.Draft{Name: "Ada", Strengths: []string{"curious", "bold"}})
	time.Sleep(4 * testDelay)

	saved := rec.saved()
	if len(saved) != 2 {
		t.Fatalf("got %d saves for two bursts, want 2", len(saved))
	}
	if len(saved[1].Strengths) != 2 {
		t.Errorf("second save state mismatch: %+v", saved[1])
	}
}

func TestCancelAfterTimerExpiryDropsSave(t *testing.T) {
	rec := &recorder{}
	draft := localstore.Draft{Name: "Ada", Strengths: []string{"curious"}}

	// An expired timer whose goroutine has not persisted yet must still be
	// dropped by Cancel. Iterate with a tiny delay to hit the window where
	// the timer fires while Cancel holds the lock.
	for i := 0; i < 100; i++ {
		d := New(time.Microsecond, rec.save)
		d.Edit(draft)
		time.Sleep(50 * time.Microsecond)
		d.Cancel()

		before := len(rec.saved())
		time.Sleep(2 * time.Millisecond)
		if after := len(rec.saved()); after != before {
			t.Fatalf("iteration %d: save landed after Cancel returned (before=%d after=%d)", i, before, after)
		}
	}
}

func TestEditInvalidatesExpiredTimer(t *testing.T) {
	rec := &recorder{}

	d := New(time.Microsecond, rec.save)
	d.Edit(localstore.Draft{Name: "Ada", Strengths: []string{"stale"}})
	time.Sleep(50 * time.Microsecond)
	// Re-edit with the normal delay; any not-yet-persisted tick from the
	// first edit is superseded.
	d.delay = testDelay
	d.Edit(localstore.Draft{Name: "Ada", Strengths: []string{"current"}})

	time.Sleep(3 * testDelay)
	saved := rec.saved()
	if len(saved) == 0 {
		t.Fatal("no save fired")
	}
	// A stale tick may legitimately have completed before the second Edit;
	// it must not be the final persisted state.
	last := saved[len(saved)-1]
	if last.Strengths[0] != "current" {
		t.Errorf("final persisted state: got %q, want current", last.Strengths[0])
	}
}
