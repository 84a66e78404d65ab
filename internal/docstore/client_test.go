package docstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

// startTestServer runs a Server over a fresh SQLite store on a random port
// and returns a client pointed at it.
func startTestServer(t *testing.T, project string) *Server {
	t.Helper()

	store, err := NewSQLite(filepath.Join(t.TempDir(), "store.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	srv, err := NewServer(store, project, "127.0.0.1:0")
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	go func() { _ = srv.Start() }()
	t.Cleanup(func() { _ = srv.Stop() })

	return srv
}

func TestClientRoundTrip(t *testing.T) {
	srv := startTestServer(t, "test-project")
	client := NewClient("http://"+srv.Addr(), "test-project")
	ctx := context.Background()

	doc, err := client.Add(ctx, "dataResponses", Fields{
		"userName":    "ada",
		"isSubmitted": false,
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if doc.ID == "" || doc.CreatedAt.IsZero() {
		t.Errorf("Add returned incomplete document: %+v", doc)
	}

	docs, err := client.Query(ctx, "dataResponses", Filter{Field: "userName", Value: "ada"})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != doc.ID {
		t.Fatalf("Query: got %d docs, want the added one", len(docs))
	}

	if err := client.Update(ctx, "dataResponses", doc.ID, Fields{"isSubmitted": true}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	docs, err = client.Query(ctx, "dataResponses", Filter{Field: "isSubmitted", Value: true})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("flagged query: got %d docs, want 1", len(docs))
	}

	if err := client.Delete(ctx, "dataResponses", doc.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	docs, err = client.Query(ctx, "dataResponses")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("got %d docs after delete, want 0", len(docs))
	}
}

func TestClientPermissionDenied(t *testing.T) {
	srv := startTestServer(t, "real-project")
	client := NewClient("http://"+srv.Addr(), "wrong-project")

	_, err := client.Query(context.Background(), "dataResponses")
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("got %v, want ErrPermissionDenied", err)
	}
}

func TestClientUpdateMissingDocument(t *testing.T) {
	srv := startTestServer(t, "test-project")
	client := NewClient("http://"+srv.Addr(), "test-project")

	err := client.Update(context.Background(), "dataResponses", "nope", Fields{"x": 1})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
