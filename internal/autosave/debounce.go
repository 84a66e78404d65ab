// Package autosave implements the debounced auto-save of the in-progress
// draft. A single timer tracks two states, idle and pending: any edit
// restarts the timer, expiry persists the latest snapshot, cancellation
// drops it.
package autosave

import (
	"sync"
	"time"

	"github.com/persona-dev/persona/internal/localstore"
)

// Debouncer coalesces a burst of edits into one save after a quiet period.
// At most one timer is live at a time; each new edit cancels and replaces
// the prior one.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending bool
	gen     uint64 // bumped by Edit and Cancel; a stale fire must not save
	save    func(localstore.Draft) error
}

// New creates a Debouncer that calls save after delay of inactivity.
func New(delay time.Duration, save func(localstore.Draft) error) *Debouncer {
	return &Debouncer{delay: delay, save: save}
}

// Edit records the current form state and (re)starts the quiet-period
// timer. When the timer fires, the snapshot is persisted only if it is
// valid to save; otherwise the tick is skipped silently.
func (d *Debouncer) Edit(draft localstore.Draft) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = true
	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(gen, draft)
	})
}

// fire persists the snapshot scheduled under gen. The generation is
// re-checked under the lock: an expired timer whose goroutine lost the
// race against Edit or Cancel must not save. The save itself runs under
// the lock too, so once Cancel returns no save can land.
func (d *Debouncer) fire(gen uint64, draft localstore.Draft) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if gen != d.gen || !d.pending {
		return
	}
	d.pending = false
	d.timer = nil

	candidate := localstore.DraftCandidate{
		Name:       draft.Name,
		Strengths:  draft.Strengths,
		Weaknesses: draft.Weaknesses,
	}
	if !localstore.IsValidDraftToSave(candidate) {
		return
	}
	_ = d.save(draft)
}

// Cancel drops any pending save. An unsaved final keystroke inside the
// debounce window is lost; the previous successful tick already captured
// the rest. A timer that already expired but has not saved yet is
// invalidated as well.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.pending = false
}

// Pending reports whether a save is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}
