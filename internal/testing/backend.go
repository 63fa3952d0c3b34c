package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/desertthunder/moodshift/internal/models"
)

// Request is a request observed by [FakeBackend]
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

type forcedFailure struct {
	status  int
	message string
}

// FakeBackend is an in-process backend speaking the {success, data, error} envelope.
//
// It records every request so tests can assert that an operation did or did not reach the network.
type FakeBackend struct {
	Server *httptest.Server

	// Code is the only authorization code the exchange accepts.
	Code string
	// Token is issued by the exchange and required by every authenticated route.
	Token     string
	User      models.User
	Playlists []models.Playlist
	// CreatedID is the id assigned to playlists created through POST /playlists.
	CreatedID string

	mu       sync.Mutex
	requests []Request
	failures map[string]forcedFailure
}

// NewFakeBackend starts a [FakeBackend] that is closed when the test ends.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()

	f := &FakeBackend{
		Code:      "abc",
		Token:     "tok-abc",
		User:      UserFixture(),
		Playlists: []models.Playlist{PlaylistFixture("p1"), PlaylistFixture("p2")},
		CreatedID: "p123",
		failures:  make(map[string]forcedFailure),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/callback", f.handleCallback)
	mux.HandleFunc("GET /auth/me", f.authenticated(f.handleMe))
	mux.HandleFunc("GET /playlists", f.authenticated(f.handleList))
	mux.HandleFunc("POST /playlists", f.authenticated(f.handleCreate))
	mux.HandleFunc("GET /playlists/{id}", f.authenticated(f.handleGet))

	f.Server = httptest.NewServer(f.record(mux))
	t.Cleanup(f.Server.Close)
	return f
}

// URL is the base URL clients should be configured with.
func (f *FakeBackend) URL() string {
	return f.Server.URL
}

// Fail makes every request to "METHOD /path" answer with status and message.
func (f *FakeBackend) Fail(route string, status int, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[route] = forcedFailure{status: status, message: message}
}

// SetUser replaces the user returned by GET /auth/me.
func (f *FakeBackend) SetUser(u models.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.User = u
}

// Requests returns a copy of the observed requests in arrival order.
func (f *FakeBackend) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Request(nil), f.requests...)
}

// Count returns the number of requests to "METHOD /path".
func (f *FakeBackend) Count(route string) int {
	n := 0
	for _, r := range f.Requests() {
		if r.Method+" "+r.Path == route {
			n++
		}
	}
	return n
}

// Total returns the number of requests observed.
func (f *FakeBackend) Total() int {
	return len(f.Requests())
}

// Last returns the most recent request.
func (f *FakeBackend) Last() (Request, bool) {
	reqs := f.Requests()
	if len(reqs) == 0 {
		return Request{}, false
	}
	return reqs[len(reqs)-1], true
}

func (f *FakeBackend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body.Close()

		f.mu.Lock()
		f.requests = append(f.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		failure, failing := f.failures[r.Method+" "+r.URL.Path]
		f.mu.Unlock()

		if failing {
			writeError(w, failure.status, failure.message)
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

func (f *FakeBackend) authenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+f.Token {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next(w, r)
	}
}

func (f *FakeBackend) handleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "Authorization code is required")
		return
	}
	if code != f.Code {
		writeError(w, http.StatusInternalServerError, "Failed to exchange code for token")
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	writeData(w, models.LoginResult{Token: f.Token, User: f.User})
}

func (f *FakeBackend) handleMe(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeData(w, f.User)
}

func (f *FakeBackend) handleList(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeData(w, f.Playlists)
}

func (f *FakeBackend) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	playlist := PlaylistFixture(f.CreatedID)
	playlist.CurhatanText = req.CurhatanText
	if req.PlaylistName != "" {
		playlist.Name = req.PlaylistName
	}

	f.mu.Lock()
	f.Playlists = append([]models.Playlist{playlist}, f.Playlists...)
	f.mu.Unlock()

	writeData(w, playlist)
}

func (f *FakeBackend) handleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.Playlists {
		if p.ID == id {
			writeData(w, p)
			return
		}
	}
	writeError(w, http.StatusNotFound, fmt.Sprintf("Playlist %s not found", id))
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "error": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
