package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is a Store backed by a local SQLite database. It is the storage
// engine behind the emulator and the default target for tests.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens the SQLite database at dbPath and creates tables if they
// don't exist.
func NewSQLite(dbPath string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := createTables(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		collection TEXT NOT NULL,
		fields TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_documents_collection
		ON documents(collection);
	`
	_, err := db.Exec(schema)
	return err
}

// Add inserts a new document with a fresh id and a store-stamped creation
// time.
func (s *SQLite) Add(ctx context.Context, collection string, fields Fields) (Document, error) {
	if fields == nil {
		fields = Fields{}
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return Document{}, fmt.Errorf("marshal fields: %w", err)
	}

	doc := Document{
		ID:        uuid.New().String(),
		Fields:    fields,
		CreatedAt: time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (id, collection, fields, created_at)
		 VALUES (?, ?, ?, ?)`,
		doc.ID, collection, string(data), doc.CreatedAt,
	)
	if err != nil {
		return Document{}, fmt.Errorf("insert document: %w", err)
	}

	return doc, nil
}

// Query returns all documents in collection matching every filter, oldest
// first.
func (s *SQLite) Query(ctx context.Context, collection string, filters ...Filter) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, fields, created_at
		 FROM documents
		 WHERE collection = ?
		 ORDER BY created_at ASC`,
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var docs []Document
	for rows.Next() {
		var doc Document
		var raw string
		if err := rows.Scan(&doc.ID, &raw, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &doc.Fields); err != nil {
			return nil, fmt.Errorf("parse document %s: %w", doc.ID, err)
		}
		if matches(doc.Fields, filters) {
			docs = append(docs, doc)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return docs, nil
}

// Update merges fields into the identified document. Returns ErrNotFound if
// the document does not exist in the collection.
func (s *SQLite) Update(ctx context.Context, collection, id string, fields Fields) error {
	row := s.db.QueryRowContext(ctx,
		`SELECT fields FROM documents WHERE collection = ? AND id = ?`,
		collection, id,
	)

	var raw string
	err := row.Scan(&raw)
	if err == sql.ErrNoRows {
		return fmt.Errorf("update %s/%s: %w", collection, id, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("scan document: %w", err)
	}

	var current Fields
	if err := json.Unmarshal([]byte(raw), &current); err != nil {
		return fmt.Errorf("parse document %s: %w", id, err)
	}
	for k, v := range fields {
		current[k] = v
	}

	data, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("marshal fields: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE documents SET fields = ? WHERE collection = ? AND id = ?`,
		string(data), collection, id,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}

	return nil
}

// Delete removes the identified document. No-op if absent.
func (s *SQLite) Delete(ctx context.Context, collection, id string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ? AND id = ?`,
		collection, id,
	)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}
