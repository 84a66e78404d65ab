package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Client is a Store implementation that talks to a document-store server
// over HTTP. Calls block until the server responds; there is no timeout,
// cancellation beyond the context, and no retry.
type Client struct {
	baseURL string
	project string
	http    *http.Client
}

// NewClient creates a client for the server at baseURL, authenticating as
// the given project.
func NewClient(baseURL, project string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		project: project,
		http:    &http.Client{},
	}
}

// Add inserts a new document into collection.
func (c *Client) Add(ctx context.Context, collection string, fields Fields) (Document, error) {
	var resp AddResponse
	if err := c.post(ctx, "/add", AddRequest{Collection: collection, Fields: fields}, &resp); err != nil {
		return Document{}, fmt.Errorf("add to %s: %w", collection, err)
	}
	return resp.Document, nil
}

// Query returns all documents in collection matching every filter.
func (c *Client) Query(ctx context.Context, collection string, filters ...Filter) ([]Document, error) {
	var resp QueryResponse
	if err := c.post(ctx, "/query", QueryRequest{Collection: collection, Filters: filters}, &resp); err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	return resp.Documents, nil
}

// Update merges fields into the identified document.
func (c *Client) Update(ctx context.Context, collection, id string, fields Fields) error {
	var resp UpdateResponse
	if err := c.post(ctx, "/update", UpdateRequest{Collection: collection, ID: id, Fields: fields}, &resp); err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	return nil
}

// Delete removes the identified document.
func (c *Client) Delete(ctx context.Context, collection, id string) error {
	var resp DeleteResponse
	if err := c.post(ctx, "/delete", DeleteRequest{Collection: collection, ID: id}, &resp); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// post sends a JSON request and decodes the JSON response. Permission
// failures are rewritten into a clearer operator-facing message; every
// other failure is returned unchanged.
func (c *Client) post(ctx context.Context, path string, reqBody, respBody any) error {
	data, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(ProjectHeader, c.project)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call store: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: check store.project in config.yaml or run the local emulator (persona serve)", ErrPermissionDenied)
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(resp.Body)
		var storeErr ErrorResponse
		if json.Unmarshal(body, &storeErr) == nil && storeErr.Error != "" {
			return fmt.Errorf("store returned %d: %s", resp.StatusCode, storeErr.Error)
		}
		return fmt.Errorf("store returned %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
