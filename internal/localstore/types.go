// Package localstore provides the session-scoped local store for the user
// profile, the single in-progress draft, and the submitted-response history.
package localstore

import "time"

// UserProfile is the locally persisted user record. One per session;
// overwritten on each save.
type UserProfile struct {
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"createdAt"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Draft is the in-progress response. At most one exists at a time.
// Strengths and weaknesses stay in list form while editing; they are
// flattened only when the draft is promoted to the remote store.
type Draft struct {
	Name       string    `json:"name"`
	Strengths  []string  `json:"strengths"`
	Weaknesses []string  `json:"weaknesses"`
	Habits     string    `json:"habits"`
	SpeechTone string    `json:"speechTone"`
	Nature     string    `json:"nature"`
	SavedAt    time.Time `json:"savedAt"`
}

// HistoryEntry is a denormalized copy of a submitted response, written
// alongside the remote submit call. Strength and weakness are in their
// flattened string form.
type HistoryEntry struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Strength    string    `json:"strength"`
	Weakness    string    `json:"weakness"`
	Habits      string    `json:"habits"`
	SpeechTone  string    `json:"speechTone"`
	Nature      string    `json:"nature"`
	Status      string    `json:"status"` // "submitted"
	SubmittedAt time.Time `json:"submittedAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DraftCandidate carries both representations of strengths and weaknesses:
// list form while a draft is being edited, flattened string form once
// promoted. Validation accepts either, for forward/backward compatibility.
type DraftCandidate struct {
	Name       string
	Strengths  []string
	Strength   string
	Weaknesses []string
	Weakness   string
}
