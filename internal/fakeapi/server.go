package fakeapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/pspdfkit/nudocs"
)

// Upload records one multipart upload received by the server.
type Upload struct {
	Filename    string
	ContentType string // of the file part
	FormType    string // of the request
	Data        []byte
}

// Export records one export request received by the server.
type Export struct {
	ULID     string
	MIMEType string
}

// Failure is a canned error response.
type Failure struct {
	Status int
	Body   string
}

// Server is a fake Nudocs API.
type Server struct {
	*httptest.Server

	APIKey string
	Owner  string

	mu       sync.Mutex
	docs     []nudocs.Document
	uploads  []Upload
	exports  []Export
	deleted  []string
	requests int
	failures map[string]Failure
	nextID   int
}

// New starts a fake API accepting apiKey. It is closed when the test ends.
func New(t testing.TB, apiKey string) *Server {
	t.Helper()

	s := &Server{
		APIKey:   apiKey,
		Owner:    "owner@example.com",
		failures: make(map[string]Failure),
	}
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.countRequests)
	r.Use(s.injectFailures)
	r.Use(s.requireBearer)

	r.Route("/api/public/documents", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/", s.handleList)
		r.Get("/{ulid}", s.handleLink)
		r.Post("/{ulid}", s.handleExport)
		r.Delete("/{ulid}", s.handleDelete)
	})
	return r
}

// URLFor returns the edit link the server reports for ulid.
func URLFor(ulid string) string {
	return "https://nudocs.ai/edit/" + ulid
}

// ExportBody returns the bytes the server sends for an export.
func ExportBody(ulid, mimeType string) string {
	return "exported " + ulid + " as " + mimeType
}

// AddDocument seeds a document.
func (s *Server) AddDocument(doc nudocs.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, doc)
}

// Documents returns the documents currently stored.
func (s *Server) Documents() []nudocs.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]nudocs.Document(nil), s.docs...)
}

// Uploads returns the uploads received so far.
func (s *Server) Uploads() []Upload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Upload(nil), s.uploads...)
}

// Exports returns the export requests received so far.
func (s *Server) Exports() []Export {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Export(nil), s.exports...)
}

// Deleted returns the ULIDs deleted so far.
func (s *Server) Deleted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleted...)
}

// Requests returns how many requests reached the server.
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// FailMethod makes every later request with method answer with status and body.
func (s *Server) FailMethod(method string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = Failure{Status: status, Body: body}
}

func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests++
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		f, ok := s.failures[r.Method]
		s.mu.Unlock()
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		w.WriteHeader(f.Status)
		_, _ = io.WriteString(w, f.Body)
	})
}

// requireBearer rejects requests whose Authorization header does not carry APIKey.
func (s *Server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+s.APIKey {
			WriteError(w, http.StatusUnauthorized, "Invalid API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "could not read file")
		return
	}

	s.mu.Lock()
	s.nextID++
	ulid := fmt.Sprintf("01JFAKE%019d", s.nextID)
	title := strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
	s.docs = append(s.docs, nudocs.Document{ULID: ulid, Title: title, Owner: s.Owner})
	s.uploads = append(s.uploads, Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		FormType:    r.Header.Get("Content-Type"),
		Data:        data,
	})
	s.mu.Unlock()

	_ = WriteJSON(w, http.StatusCreated, map[string]string{"ulid": ulid, "title": title})
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	docs := s.Documents()
	if docs == nil {
		docs = []nudocs.Document{}
	}
	_ = WriteJSON(w, http.StatusOK, docs)
}

func (s *Server) handleLink(w http.ResponseWriter, r *http.Request) {
	ulid := chi.URLParam(r, "ulid")
	if !s.exists(ulid) {
		WriteError(w, http.StatusNotFound, "not found")
		return
	}
	_ = WriteJSON(w, http.StatusOK, nudocs.DocumentLink{URL: URLFor(ulid)})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ulid := chi.URLParam(r, "ulid")
	if !s.exists(ulid) {
		WriteError(w, http.StatusNotFound, "not found")
		return
	}

	var req struct {
		MIMEType string `json:"mimeType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.MIMEType == "" {
		WriteError(w, http.StatusBadRequest, "mimeType is required")
		return
	}

	s.mu.Lock()
	s.exports = append(s.exports, Export{ULID: ulid, MIMEType: req.MIMEType})
	s.mu.Unlock()

	w.Header().Set("Content-Type", req.MIMEType)
	_, _ = io.WriteString(w, ExportBody(ulid, req.MIMEType))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	ulid := chi.URLParam(r, "ulid")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.docs {
		if s.docs[i].ULID == ulid {
			s.docs = append(s.docs[:i], s.docs[i+1:]...)
			s.deleted = append(s.deleted, ulid)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	WriteError(w, http.StatusNotFound, "not found")
}

func (s *Server) exists(ulid string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.docs {
		if s.docs[i].ULID == ulid {
			return true
		}
	}
	return false
}
