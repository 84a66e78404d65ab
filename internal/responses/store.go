package responses

import (
	"context"
	"fmt"
	"time"

	"github.com/persona-dev/persona/internal/docstore"
	"github.com/persona-dev/persona/internal/localstore"
	"github.com/persona-dev/persona/internal/log"
)

// Store wraps the document store with the response-store operations. It
// also writes the denormalized local history alongside submits.
type Store struct {
	docs  docstore.Store
	local *localstore.Store
	log   *log.Logger
}

// NewStore creates a response store over the given document store.
func NewStore(docs docstore.Store, local *localstore.Store, logger *log.Logger) *Store {
	return &Store{docs: docs, local: local, log: logger}
}

// SubmitResult reports the outcome for one item of a submit batch.
type SubmitResult struct {
	ID          string
	SubmittedAt time.Time
	Err         error
}

// AddDraftResponse inserts a new draft response for userName. The fields
// must already be in their flattened at-rest form. Returns the
// store-assigned id.
func (s *Store) AddDraftResponse(ctx context.Context, userName string, fields PersistedFields) (string, error) {
	doc, err := s.docs.Add(ctx, CollectionResponses, docstore.Fields{
		"userName":    userName,
		"name":        fields.Name,
		"strength":    fields.Strength,
		"weakness":    fields.Weakness,
		"habits":      fields.Habits,
		"speechTone":  fields.SpeechTone,
		"nature":      fields.Nature,
		"isSubmitted": false,
	})
	if err != nil {
		s.logError(userName, err)
		return "", fmt.Errorf("add draft response: %w", err)
	}

	_ = s.log.Append(log.LogEvent{Event: log.EventDraftPromoted, User: userName, ResponseID: doc.ID})
	return doc.ID, nil
}

// GetUserDraftResponses returns all not-yet-submitted responses owned by
// userName, oldest first.
func (s *Store) GetUserDraftResponses(ctx context.Context, userName string) ([]Record, error) {
	docs, err := s.docs.Query(ctx, CollectionResponses,
		docstore.Filter{Field: "userName", Value: userName},
		docstore.Filter{Field: "isSubmitted", Value: false},
	)
	if err != nil {
		s.logError(userName, err)
		return nil, fmt.Errorf("get draft responses: %w", err)
	}

	records := make([]Record, 0, len(docs))
	for _, doc := range docs {
		records = append(records, recordFromDoc(doc))
	}
	return records, nil
}

// UpdateDraftResponse merges the given fields into a draft response by id.
// No optimistic-concurrency check: last write wins.
func (s *Store) UpdateDraftResponse(ctx context.Context, id string, fields docstore.Fields) error {
	if err := s.docs.Update(ctx, CollectionResponses, id, fields); err != nil {
		s.logError("", err)
		return fmt.Errorf("update draft response: %w", err)
	}
	return nil
}

// DeleteDraftResponse removes a draft response by id.
func (s *Store) DeleteDraftResponse(ctx context.Context, id string) error {
	if err := s.docs.Delete(ctx, CollectionResponses, id); err != nil {
		s.logError("", err)
		return fmt.Errorf("delete draft response: %w", err)
	}
	_ = s.log.Append(log.LogEvent{Event: log.EventDraftDeleted, ResponseID: id})
	return nil
}

// SubmitResponses submits the identified draft responses owned by userName.
// The store is queried by owner first, so an id belonging to a different
// user can never match. Each item is processed independently: the record is
// copied into the submitted collection, the original is flagged
// isSubmitted=true, and a history entry is appended locally. The batch is
// not atomic; the returned results report exactly which items completed.
// The error return covers only the initial owner query.
func (s *Store) SubmitResponses(ctx context.Context, userName string, ids []string) ([]SubmitResult, error) {
	started := time.Now()
	docs, err := s.docs.Query(ctx, CollectionResponses,
		docstore.Filter{Field: "userName", Value: userName},
	)
	if err != nil {
		s.logError(userName, err)
		return nil, fmt.Errorf("query responses to submit: %w", err)
	}

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	_ = s.log.Append(log.LogEvent{Event: log.EventSubmitStarted, User: userName, Total: len(ids)})

	var results []SubmitResult
	for _, doc := range docs {
		if !wanted[doc.ID] {
			continue
		}
		result := SubmitResult{ID: doc.ID}

		copyDoc, err := s.docs.Add(ctx, CollectionSubmitted, doc.Fields)
		if err != nil {
			result.Err = fmt.Errorf("copy to submitted: %w", err)
			results = append(results, result)
			_ = s.log.Append(log.LogEvent{Event: log.EventItemFailed, User: userName, ResponseID: doc.ID, Error: err.Error()})
			continue
		}

		if err := s.docs.Update(ctx, CollectionResponses, doc.ID, docstore.Fields{"isSubmitted": true}); err != nil {
			result.Err = fmt.Errorf("flag as submitted: %w", err)
			results = append(results, result)
			_ = s.log.Append(log.LogEvent{Event: log.EventItemFailed, User: userName, ResponseID: doc.ID, Error: err.Error()})
			continue
		}

		// Denormalized offline copy. Best-effort: a local write failure
		// does not undo the remote submit.
		_ = s.local.SaveResponseHistory(localstore.HistoryEntry{
			ID:          doc.ID,
			Name:        fieldString(doc.Fields, "name"),
			Strength:    fieldString(doc.Fields, "strength"),
			Weakness:    fieldString(doc.Fields, "weakness"),
			Habits:      fieldString(doc.Fields, "habits"),
			SpeechTone:  fieldString(doc.Fields, "speechTone"),
			Nature:      fieldString(doc.Fields, "nature"),
			Status:      "submitted",
			SubmittedAt: copyDoc.CreatedAt,
			CreatedAt:   doc.CreatedAt,
		})

		result.SubmittedAt = copyDoc.CreatedAt
		results = append(results, result)
		_ = s.log.Append(log.LogEvent{Event: log.EventItemSubmitted, User: userName, ResponseID: doc.ID})
	}

	submitted, failed := 0, 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		} else {
			submitted++
		}
	}
	_ = s.log.Append(log.LogEvent{
		Event:      log.EventSubmitComplete,
		User:       userName,
		Submitted:  submitted,
		Failed:     failed,
		Total:      len(ids),
		DurationMs: time.Since(started).Milliseconds(),
	})

	return results, nil
}

// GetUserSubmittedResponses returns all submitted copies for userName,
// oldest first. The CreatedAt of each record is the submission time.
func (s *Store) GetUserSubmittedResponses(ctx context.Context, userName string) ([]Record, error) {
	docs, err := s.docs.Query(ctx, CollectionSubmitted,
		docstore.Filter{Field: "userName", Value: userName},
	)
	if err != nil {
		s.logError(userName, err)
		return nil, fmt.Errorf("get submitted responses: %w", err)
	}

	records := make([]Record, 0, len(docs))
	for _, doc := range docs {
		rec := recordFromDoc(doc)
		rec.IsSubmitted = true
		records = append(records, rec)
	}
	return records, nil
}

func (s *Store) logError(userName string, err error) {
	_ = s.log.Append(log.LogEvent{Event: log.EventStoreError, User: userName, Error: err.Error()})
}

func recordFromDoc(doc docstore.Document) Record {
	isSubmitted, _ := doc.Fields["isSubmitted"].(bool)
	return Record{
		ID:          doc.ID,
		UserName:    fieldString(doc.Fields, "userName"),
		Name:        fieldString(doc.Fields, "name"),
		Strength:    fieldString(doc.Fields, "strength"),
		Weakness:    fieldString(doc.Fields, "weakness"),
		Habits:      fieldString(doc.Fields, "habits"),
		SpeechTone:  fieldString(doc.Fields, "speechTone"),
		Nature:      fieldString(doc.Fields, "nature"),
		IsSubmitted: isSubmitted,
		CreatedAt:   doc.CreatedAt.Format(time.RFC3339),
	}
}

func fieldString(fields docstore.Fields, key string) string {
	s, _ := fields[key].(string)
	return s
}
