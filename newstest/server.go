package newstest

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vitalvas/newsapi/hhmac"
)

// Request is a request recorded by the server after signature checks.
type Request struct {
	ID            string
	Method        string
	RequestURI    string
	Header        http.Header
	Body          []byte
	Authorization hhmac.Credential
}

// Server is a fake API server.
type Server struct {
	*httptest.Server

	apiID  string
	secret string
	signer *hhmac.Signer

	mu        sync.Mutex
	requests  []Request
	overrides map[string]http.HandlerFunc
	store     *store
	mux       http.Handler
}

// NewServer starts a fake API server with a random API secret and one
// channel holding one default section. The server is closed when the test
// ends.
func NewServer(tb testing.TB) *Server {
	tb.Helper()

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		tb.Fatalf("newstest: generate secret: %v", err)
	}

	s := &Server{
		apiID:     "test-api-id",
		secret:    base64.StdEncoding.EncodeToString(key),
		overrides: make(map[string]http.HandlerFunc),
	}

	signer, err := hhmac.NewSigner(s.apiID, s.secret)
	if err != nil {
		tb.Fatalf("newstest: signer: %v", err)
	}
	s.signer = signer

	verify, err := hhmac.Middleware(hhmac.MiddlewareConfig{
		Verify: hhmac.VerifyConfig{
			Resolver: hhmac.StaticResolver(signer),
			MaxSkew:  15 * time.Minute,
		},
		OnError: func(w http.ResponseWriter, _ *http.Request, err error) {
			writeErrors(w, http.StatusUnauthorized, errorDetail{Code: "UNAUTHORIZED", Message: err.Error()})
		},
	})
	if err != nil {
		tb.Fatalf("newstest: middleware: %v", err)
	}

	s.Server = httptest.NewTLSServer(withRequestID(verify(withRecovery(http.HandlerFunc(s.serveHTTP)))))
	s.store = newStore("https://" + s.Host())
	s.mux = s.routes()
	tb.Cleanup(s.Close)

	return s
}

// APIID returns the API identifier the server accepts.
func (s *Server) APIID() string { return s.apiID }

// APISecret returns the base64 API secret the server accepts.
func (s *Server) APISecret() string { return s.secret }

// Signer returns a signer for the server's credentials.
func (s *Server) Signer() *hhmac.Signer { return s.signer }

// Host returns the server host without port.
func (s *Server) Host() string {
	u, _ := url.Parse(s.URL)
	return u.Hostname()
}

// Port returns the server port.
func (s *Server) Port() int {
	u, _ := url.Parse(s.URL)
	_, port, _ := net.SplitHostPort(u.Host)
	n, _ := strconv.Atoi(port)

	return n
}

// ChannelID returns the ID of the seeded channel.
func (s *Server) ChannelID() string { return s.store.channel.ID }

// SectionID returns the ID of the seeded default section.
func (s *Server) SectionID() string { return s.store.sections[0].ID }

// Requests returns a copy of the recorded, authenticated requests.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Request, len(s.requests))
	copy(out, s.requests)

	return out
}

// LastRequest returns the most recent authenticated request.
func (s *Server) LastRequest() (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.requests) == 0 {
		return Request{}, false
	}

	return s.requests[len(s.requests)-1], true
}

// Article returns a stored article and its uploaded parts.
func (s *Server) Article(id string) (StoredArticle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.store.articles[id]
	if !ok {
		return StoredArticle{}, false
	}

	return *a, true
}

// Override replaces the handler for an exact method and request URI, e.g.
// Override("GET /channels/x", h). It applies after signature checks.
func (s *Server) Override(pattern string, h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.overrides[pattern] = h
}

func (s *Server) serveHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeErrors(w, http.StatusBadRequest, errorDetail{Code: "INVALID_BODY", Message: err.Error()})
		return
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	cred, _ := hhmac.CredentialFromContext(r.Context())

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		ID:            requestIDFromContext(r.Context()),
		Method:        r.Method,
		RequestURI:    r.URL.RequestURI(),
		Header:        r.Header.Clone(),
		Body:          body,
		Authorization: cred,
	})
	override := s.overrides[r.Method+" "+r.URL.RequestURI()]
	s.mu.Unlock()

	if override != nil {
		override(w, r)
		return
	}

	s.mux.ServeHTTP(w, r)
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/channels/{channelID}", s.handleReadChannel)
	r.Get("/channels/{channelID}/sections", s.handleListSections)
	r.Get("/channels/{channelID}/articles", s.handleSearchArticles)
	r.Post("/channels/{channelID}/articles", s.handleCreateArticle)

	r.Get("/sections/{sectionID}", s.handleReadSection)
	r.Get("/sections/{sectionID}/articles", s.handleSearchArticles)

	r.Get("/articles/{articleID}", s.handleReadArticle)
	r.Post("/articles/{articleID}", s.handleUpdateArticle)
	r.Delete("/articles/{articleID}", s.handleDeleteArticle)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeErrors(w, http.StatusNotFound, errorDetail{Code: "NOT_FOUND"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeErrors(w, http.StatusMethodNotAllowed, errorDetail{Code: "METHOD_NOT_ALLOWED"})
	})

	return r
}

type errorDetail struct {
	Code    string `json:"code"`
	KeyPath []any  `json:"keyPath,omitempty"`
	Value   any    `json:"value,omitempty"`
	Message string `json:"message,omitempty"`
}

func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}

	return io.ReadAll(r.Body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, map[string]any{"data": data})
}

func writeErrors(w http.ResponseWriter, status int, details ...errorDetail) {
	writeJSON(w, status, map[string]any{"errors": details})
}
