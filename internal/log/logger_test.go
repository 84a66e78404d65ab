package log

import (
	"testing"
	"time"
)

func TestAppendAndReadAll(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	events := []LogEvent{
		{Event: EventDraftSaved, User: "ada"},
		{Event: EventDraftPromoted, User: "ada", ResponseID: "r1"},
		{Event: EventSubmitComplete, User: "ada", Submitted: 2, Total: 2},
	}
	for _, ev := range events {
		if err := logger.Append(ev); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	got, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d events, want 3", len(got))
	}
	if got[1].ResponseID != "r1" {
		t.Errorf("event 1 response: got %q, want %q", got[1].ResponseID, "r1")
	}
	if got[2].Submitted != 2 {
		t.Errorf("event 2 submitted: got %d, want 2", got[2].Submitted)
	}
	for i, ev := range got {
		if ev.Time.IsZero() {
			t.Errorf("event %d has zero time, want auto-stamped", i)
		}
	}
}

func TestReadAllMissingFile(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	got, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll on missing file: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d events from missing file, want 0", len(got))
	}
}

func TestAppendPreservesExplicitTime(t *testing.T) {
	dir := t.TempDir()

	logger, err := NewLogger(dir)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	stamp := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := logger.Append(LogEvent{Time: stamp, Event: EventSessionReset}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	got, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(got) != 1 || !got[0].Time.Equal(stamp) {
		t.Errorf("time not preserved: got %v, want %v", got[0].Time, stamp)
	}
}
