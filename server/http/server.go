package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/w-h-a/brain"
	"github.com/w-h-a/brain/model"
	"github.com/w-h-a/brain/normalizer"
)

type Server struct {
	options Options
	brain   *brain.Brain
	router  *mux.Router
}

type ingestRequest struct {
	Content      string `json:"content"`
	Source       string `json:"source"`
	SourceUrl    string `json:"source_url,omitempty"`
	SourceTitle  string `json:"source_title,omitempty"`
	SourceAuthor string `json:"source_author,omitempty"`
}

type queryRequest struct {
	Query string `json:"query"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	userId := mux.Vars(r)["userId"]

	req, document, err := s.decodeIngest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	opts := []normalizer.NormalizeOption{}
	if len(req.SourceUrl) > 0 {
		opts = append(opts, normalizer.WithSourceUrl(req.SourceUrl))
	}
	if len(req.SourceTitle) > 0 {
		opts = append(opts, normalizer.WithSourceTitle(req.SourceTitle))
	}
	if len(req.SourceAuthor) > 0 {
		opts = append(opts, normalizer.WithSourceAuthor(req.SourceAuthor))
	}
	if len(document) > 0 {
		opts = append(opts, normalizer.WithDocument(document))
	}

	memory, err := s.brain.IngestMemory(r.Context(), userId, req.Content, model.Source(req.Source), opts...)
	if err != nil {
		slog.ErrorContext(r.Context(), "ingest failed", "user_id", userId, "error", err)
		writeError(w, StatusOf(err), err)
		return
	}

	// The embedding is internal; never ship it back over the wire.
	memory.Embedding = nil

	writeJSON(w, http.StatusCreated, memory)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	userId := mux.Vars(r)["userId"]

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	answer, err := s.brain.QueryBrain(r.Context(), userId, req.Query)
	if err != nil {
		slog.ErrorContext(r.Context(), "query failed", "user_id", userId, "error", err)
		writeError(w, StatusOf(err), err)
		return
	}

	writeJSON(w, http.StatusOK, answer)
}

// decodeIngest accepts either a JSON body or, for pdf uploads, a multipart
// form with a `file` field carrying the document.
func (s *Server) decodeIngest(r *http.Request) (ingestRequest, []byte, error) {
	contentType := r.Header.Get("Content-Type")

	if !strings.HasPrefix(contentType, "multipart/form-data") {
		var req ingestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return ingestRequest{}, nil, err
		}
		return req, nil, nil
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return ingestRequest{}, nil, err
	}

	req := ingestRequest{
		Content:      r.FormValue("content"),
		Source:       r.FormValue("source"),
		SourceUrl:    r.FormValue("source_url"),
		SourceTitle:  r.FormValue("source_title"),
		SourceAuthor: r.FormValue("source_author"),
	}

	file, _, err := r.FormFile("file")
	if err == http.ErrMissingFile {
		return req, nil, nil
	}
	if err != nil {
		return ingestRequest{}, nil, err
	}
	defer file.Close()

	document, err := io.ReadAll(file)
	if err != nil {
		return ingestRequest{}, nil, err
	}

	return req, document, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Run() error {
	slog.InfoContext(context.Background(), "brain http server listening", "address", s.options.Address)
	return http.ListenAndServe(s.options.Address, s.router)
}

func NewServer(b *brain.Brain, opts ...Option) *Server {
	if b == nil {
		panic("brain is required")
	}

	options := NewOptions(opts...)

	s := &Server{
		options: options,
		brain:   b,
	}

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/users/{userId}/memories", s.handleIngest).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/users/{userId}/query", s.handleQuery).Methods(http.MethodPost)

	s.router = router

	return s
}
