// Package docstore provides the document collection backing the remote
// response store: string-keyed documents grouped into named collections,
// queryable by field equality. Three implementations share the Store
// interface: a SQLite-backed store, an HTTP server exposing one, and an
// HTTP client speaking to that server.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrPermissionDenied indicates the store rejected the request because the
// project identifier did not match.
var ErrPermissionDenied = errors.New("document store permission denied")

// ErrNotFound indicates the referenced document does not exist.
var ErrNotFound = errors.New("document not found")

// Fields is the schemaless payload of a document.
type Fields map[string]any

// Document is a stored record. CreatedAt is stamped by the store on write.
type Document struct {
	ID        string    `json:"id"`
	Fields    Fields    `json:"fields"`
	CreatedAt time.Time `json:"created_at"`
}

// Filter is an equality predicate on a single field.
type Filter struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// Store is the document collection contract. All methods are synchronous
// request/response calls; none acquires a lock or retries.
type Store interface {
	// Add inserts a new document into collection and returns it with its
	// store-assigned id and creation timestamp.
	Add(ctx context.Context, collection string, fields Fields) (Document, error)
	// Query returns all documents in collection matching every filter.
	Query(ctx context.Context, collection string, filters ...Filter) ([]Document, error)
	// Update merges fields into the identified document. Last write wins;
	// returns ErrNotFound if the document does not exist.
	Update(ctx context.Context, collection, id string, fields Fields) error
	// Delete removes the identified document. No-op if absent.
	Delete(ctx context.Context, collection, id string) error
}

// matches reports whether fields satisfies every filter. Values are compared
// through their JSON encoding so that native Go values and decoded wire
// values (e.g. int vs float64) agree.
func matches(fields Fields, filters []Filter) bool {
	for _, f := range filters {
		got, ok := fields[f.Field]
		if !ok || !jsonEqual(got, f.Value) {
			return false
		}
	}
	return true
}

func jsonEqual(a, b any) bool {
	ja, err := json.Marshal(a)
	if err != nil {
		return false
	}
	jb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return string(ja) == string(jb)
}
