package docstore

// Wire types for the HTTP server and client.

// ProjectHeader carries the project identifier on every request. A missing
// or mismatched value is rejected with 403.
const ProjectHeader = "X-Persona-Project"

// AddRequest inserts a document into a collection.
type AddRequest struct {
	Collection string `json:"collection"`
	Fields     Fields `json:"fields"`
}

// AddResponse returns the stored document.
type AddResponse struct {
	Document Document `json:"document"`
}

// QueryRequest lists documents matching every equality filter.
type QueryRequest struct {
	Collection string   `json:"collection"`
	Filters    []Filter `json:"filters,omitempty"`
}

// QueryResponse returns the matching documents, oldest first.
type QueryResponse struct {
	Documents []Document `json:"documents"`
}

// UpdateRequest merges fields into an existing document.
type UpdateRequest struct {
	Collection string `json:"collection"`
	ID         string `json:"id"`
	Fields     Fields `json:"fields"`
}

// UpdateResponse acknowledges an update.
type UpdateResponse struct {
	OK bool `json:"ok"`
}

// DeleteRequest removes a document.
type DeleteRequest struct {
	Collection string `json:"collection"`
	ID         string `json:"id"`
}

// DeleteResponse acknowledges a delete.
type DeleteResponse struct {
	OK bool `json:"ok"`
}

// ErrorResponse carries a store-side failure message.
type ErrorResponse struct {
	Error string `json:"error"`
}
