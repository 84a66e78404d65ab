package responses

import "testing"

func TestFlattenJoinsLists(t *testing.T) {
	d := DraftFields{
		Name:       "Ada",
		Strengths:  []string{"a", "b"},
		Weaknesses: []string{"c"},
		Habits:     "reads",
		SpeechTone: "Formal",
		Nature:     "Introvert",
	}

	got := d.Flatten()
	if got.Strength != "a, b" {
		t.Errorf("Strength: got %q, want %q", got.Strength, "a, b")
	}
	if got.Weakness != "c" {
		t.Errorf("Weakness: got %q, want %q", got.Weakness, "c")
	}
	if got.Name != "Ada" || got.Habits != "reads" || got.SpeechTone != "Formal" || got.Nature != "Introvert" {
		t.Errorf("scalar fields not carried over: %+v", got)
	}
}

func TestFlattenEmptyLists(t *testing.T) {
	got := DraftFields{Name: "Ada"}.Flatten()
	if got.Strength != "" || got.Weakness != "" {
		t.Errorf("empty lists should flatten to empty strings, got %+v", got)
	}
}
