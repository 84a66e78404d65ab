package docstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Server exposes a Store over HTTP. It doubles as the local emulator and as
// a self-hosted endpoint; every request must carry the matching project
// identifier.
type Server struct {
	store    Store
	project  string
	listener net.Listener
	server   *http.Server
}

// NewServer creates a document-store server bound to addr (e.g.
// "127.0.0.1:8787"; use port 0 for a random port).
func NewServer(store Store, project, addr string) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("docstore: binding listener: %w", err)
	}

	s := &Server{
		store:    store,
		project:  project,
		listener: ln,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/add", s.requireProject(s.handleAdd))
	mux.HandleFunc("/query", s.requireProject(s.handleQuery))
	mux.HandleFunc("/update", s.requireProject(s.handleUpdate))
	mux.HandleFunc("/delete", s.requireProject(s.handleDelete))

	s.server = &http.Server{Handler: mux}
	return s, nil
}

// Addr returns the address the server is listening on (e.g. "127.0.0.1:8787").
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Start begins serving HTTP requests. Blocks until Stop is called.
func (s *Server) Start() error {
	return s.server.Serve(s.listener)
}

// Stop shuts down the server.
func (s *Server) Stop() error {
	return s.server.Close()
}

// requireProject rejects requests whose project header does not match.
func (s *Server) requireProject(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(ProjectHeader) != s.project {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(ErrorResponse{
				Error: fmt.Sprintf("unknown project %q", r.Header.Get(ProjectHeader)),
			})
			return
		}
		next(w, r)
	}
}

// --- Handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req AddRequest
	if !readJSON(w, r, &req) {
		return
	}

	doc, err := s.store.Add(r.Context(), req.Collection, req.Fields)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, AddResponse{Document: doc})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if !readJSON(w, r, &req) {
		return
	}

	docs, err := s.store.Query(r.Context(), req.Collection, req.Filters...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if docs == nil {
		docs = []Document{}
	}
	writeJSON(w, QueryResponse{Documents: docs})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if !readJSON(w, r, &req) {
		return
	}

	err := s.store.Update(r.Context(), req.Collection, req.ID, req.Fields)
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, UpdateResponse{OK: true})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req DeleteRequest
	if !readJSON(w, r, &req) {
		return
	}

	if err := s.store.Delete(r.Context(), req.Collection, req.ID); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, DeleteResponse{OK: true})
}

// --- Helpers ---

func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil {
		// Allow empty body for requests with no fields.
		return true
	}
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, fmt.Sprintf("invalid JSON: %v", err), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, fmt.Sprintf("encoding response: %v", err), http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
}
