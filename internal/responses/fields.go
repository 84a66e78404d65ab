// Package responses provides access to the remote response store: draft
// responses owned by a user and append-only submitted copies.
package responses

import "strings"

// Collection names in the document store.
const (
	CollectionResponses = "dataResponses"
	CollectionSubmitted = "submittedData"
)

// DraftFields is the editing-time shape of a response: strengths and
// weaknesses as ordered lists.
type DraftFields struct {
	Name       string
	Strengths  []string
	Weaknesses []string
	Habits     string
	SpeechTone string
	Nature     string
}

// PersistedFields is the at-rest shape of a response: strengths and
// weaknesses flattened to single delimited strings.
type PersistedFields struct {
	Name       string
	Strength   string
	Weakness   string
	Habits     string
	SpeechTone string
	Nature     string
}

// Flatten converts the editing-time list shape into the at-rest string
// shape, joining each list with ", ". The transform is lossy and one-way:
// the original lists cannot in general be reconstructed from the joined
// strings.
func (d DraftFields) Flatten() PersistedFields {
	return PersistedFields{
		Name:       d.Name,
		Strength:   strings.Join(d.Strengths, ", "),
		Weakness:   strings.Join(d.Weaknesses, ", "),
		Habits:     d.Habits,
		SpeechTone: d.SpeechTone,
		Nature:     d.Nature,
	}
}

// Record is a response as read from the remote store. CreatedAt is the
// store timestamp converted to a portable RFC 3339 string at read time.
// For submitted copies it holds the submission time, not the original
// draft's creation time.
type Record struct {
	ID          string
	UserName    string
	Name        string
	Strength    string
	Weakness    string
	Habits      string
	SpeechTone  string
	Nature      string
	IsSubmitted bool
	CreatedAt   string
}
