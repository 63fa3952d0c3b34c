package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodshift/internal/formatter"
	"github.com/desertthunder/moodshift/internal/models"
	"github.com/desertthunder/moodshift/internal/shared"
	"github.com/desertthunder/moodshift/internal/storage"
	tu "github.com/desertthunder/moodshift/internal/testing"
	"github.com/desertthunder/moodshift/internal/views"
)

const validEntry = "I had a long day and feel quite drained."

type fixture struct {
	backend *tu.FakeBackend
	browser *tu.BrowserRecorder
	config  *shared.Config
	local   *storage.SessionStorage
	out     *bytes.Buffer
	runner  *Runner
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		backend: tu.NewFakeBackend(t),
		browser: &tu.BrowserRecorder{},
		local:   storage.NewSessionStorage(),
		out:     &bytes.Buffer{},
	}

	f.config = shared.DefaultConfig()
	f.config.API.BaseURL = f.backend.URL()

	f.runner = NewRunner(RunnerOpts{
		Config:     f.config,
		ConfigPath: filepath.Join(t.TempDir(), "config.toml"),
		Browser:    f.browser.Open,
		Logger:     shared.NewLogger(io.Discard),
		Output:     f.out,
		Local:      f.local,
	})
	return f
}

func (f *fixture) run(args ...string) error {
	f.out.Reset()
	return newApp(f.runner).Run(context.Background(), append([]string{"moodshift"}, args...))
}

func (f *fixture) signIn(t *testing.T) {
	t.Helper()
	if err := storage.NewTokenStore(f.local, shared.NewLogger(io.Discard)).Set(f.backend.Token); err != nil {
		t.Fatalf("failed to store token: %v", err)
	}
}

func (f *fixture) token() (string, bool) {
	return storage.NewTokenStore(f.local, shared.NewLogger(io.Discard)).Get()
}

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find a free port: %v", err)
	}
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			local := storage.NewSessionStorage()

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				Local:      local,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if !runner.fixedConfig {
				t.Error("expected provided config to be kept")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.local != local {
				t.Error("expected local storage to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.fixedConfig {
				t.Error("default config should be replaceable by config.toml")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
			if runner.input != os.Stdin {
				t.Error("expected input to default to os.Stdin")
			}
		})

		t.Run("with nil httpClient uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "{\n  \"key\": \"value\"\n}\n" {
				t.Errorf("unexpected output %q", output.String())
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]int{"n": 1}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "{\"n\":1}\n" {
				t.Errorf("unexpected output %q", output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := runner.writeJSON(make(chan int), false)
			if err == nil || !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			lw := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &lw})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes formatted text", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("%s has %d tracks\n", "Rainy", 20); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "Rainy has 20 tracks\n" {
				t.Errorf("unexpected output %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			if err := runner.writePlain("text"); err == nil {
				t.Error("expected write error")
			}
			if err := runner.writePlainln("text"); err == nil {
				t.Error("expected write error")
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		names := map[string]bool{}
		for i, cmd := range commands {
			if cmd == nil {
				t.Fatalf("command at index %d is nil", i)
			}
			names[cmd.Name] = true
		}

		for _, want := range []string{"setup", "auth", "journal", "playlists", "tui"} {
			if !names[want] {
				t.Errorf("expected %s command to be registered", want)
			}
		}
	})

	t.Run("Before", func(t *testing.T) {
		t.Run("loads config file and environment", func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.toml")

			config := shared.DefaultConfig()
			config.API.BaseURL = "http://127.0.0.1:9999/api/v1"
			config.UI.Theme = "dark"
			if err := shared.SaveConfig(path, config); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}
			t.Setenv(shared.EnvDBPath, filepath.Join(dir, "env.db"))

			runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(io.Discard), Output: &bytes.Buffer{}, Local: storage.NewSessionStorage()})
			if err := newApp(runner).Run(context.Background(), []string{"moodshift", "--config", path, "auth", "url"}); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if runner.config.API.BaseURL != "http://127.0.0.1:9999/api/v1" {
				t.Errorf("expected base URL from file, got %s", runner.config.API.BaseURL)
			}
			if runner.config.Storage.Path != filepath.Join(dir, "env.db") {
				t.Errorf("expected storage path from env, got %s", runner.config.Storage.Path)
			}
		})

		t.Run("rejects invalid environment overrides", func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(shared.EnvAPIURL, "ftp://nope")

			runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(io.Discard), Output: &bytes.Buffer{}, Local: storage.NewSessionStorage()})
			err := newApp(runner).Run(context.Background(), []string{"moodshift", "--config", "absent.toml", "auth", "url"})
			if !errors.Is(err, shared.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})

		t.Run("rejects invalid config", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte("[api]\nbase_url = \"ftp://nope\"\n"), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(io.Discard), Output: &bytes.Buffer{}})
			err := newApp(runner).Run(context.Background(), []string{"moodshift", "--config", path, "auth", "url"})
			if !errors.Is(err, shared.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	})
}

func TestSetup(t *testing.T) {
	t.Run("creates then reuses the config file", func(t *testing.T) {
		f := newFixture(t)

		if err := f.run("setup"); err != nil {
			t.Fatalf("setup failed: %v", err)
		}

		tu.AssertFileExists(t, f.runner.configPath)
		if !strings.Contains(f.out.String(), "✓ Configuration") {
			t.Errorf("unexpected output:\n%s", f.out.String())
		}

		if err := f.run("setup"); err != nil {
			t.Fatalf("second setup should reuse the config file: %v", err)
		}
	})

	t.Run("saves the backend URL", func(t *testing.T) {
		f := newFixture(t)
		t.Setenv(shared.EnvDBPath, filepath.Join(t.TempDir(), "env.db"))

		if err := f.run("setup", "--api-url", "http://127.0.0.1:9999/api/v1/"); err != nil {
			t.Fatalf("setup failed: %v", err)
		}

		saved, err := shared.LoadConfig(f.runner.configPath)
		if err != nil {
			t.Fatalf("failed to reload config: %v", err)
		}
		if saved.API.BaseURL != "http://127.0.0.1:9999/api/v1" {
			t.Errorf("expected saved base URL, got %s", saved.API.BaseURL)
		}
		if saved.Storage.Path == os.Getenv(shared.EnvDBPath) {
			t.Error("environment overrides should not be written to the config file")
		}
		if f.runner.config.API.BaseURL != saved.API.BaseURL {
			t.Errorf("expected the running config to follow, got %s", f.runner.config.API.BaseURL)
		}
	})

	t.Run("rejects an invalid backend URL", func(t *testing.T) {
		f := newFixture(t)

		err := f.run("setup", "--api-url", "ftp://nope")
		if !errors.Is(err, shared.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("reset forgets the session", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t)

		if err := f.run("setup", "--reset"); err != nil {
			t.Fatalf("setup failed: %v", err)
		}
		if _, ok := f.token(); ok {
			t.Error("expected the stored token to be cleared")
		}
	})
}

func TestAuthCommands(t *testing.T) {
	t.Run("url", func(t *testing.T) {
		f := newFixture(t)

		if err := f.run("auth", "url"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if strings.TrimSpace(f.out.String()) != f.backend.URL()+"/auth/spotify" {
			t.Errorf("unexpected URL %q", f.out.String())
		}
		if f.backend.Total() != 0 {
			t.Error("url should not contact the backend")
		}
	})

	t.Run("login logs navigation", func(t *testing.T) {
		f := newFixture(t)
		var logs bytes.Buffer
		logger := shared.NewLogger(&logs)
		logger.SetLevel(log.DebugLevel)
		f.runner.SetLogger(logger)

		if err := f.run("auth", "login", "--code", "abc"); err != nil {
			t.Fatalf("login failed: %v", err)
		}
		if !strings.Contains(logs.String(), "navigated") || !strings.Contains(logs.String(), "to=Journal") {
			t.Errorf("expected the move to the journal to be logged, got:\n%s", logs.String())
		}
	})

	t.Run("login with code", func(t *testing.T) {
		f := newFixture(t)

		if err := f.run("auth", "login", "--code", "abc"); err != nil {
			t.Fatalf("login failed: %v", err)
		}
		if !strings.Contains(f.out.String(), "✓ Signed in as Ayu") {
			t.Errorf("unexpected output %q", f.out.String())
		}
		if token, ok := f.token(); !ok || token != f.backend.Token {
			t.Errorf("expected stored token, got %q", token)
		}
	})

	t.Run("login with rejected code", func(t *testing.T) {
		f := newFixture(t)

		err := f.run("auth", "login", "--code", "nope")
		if !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", err)
		}
		if _, ok := f.token(); ok {
			t.Error("failed login should not store a token")
		}
	})

	t.Run("status", func(t *testing.T) {
		f := newFixture(t)

		if err := f.run("auth", "status"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(f.out.String(), "✗ Not signed in") {
			t.Errorf("unexpected output %q", f.out.String())
		}

		f.signIn(t)
		if err := f.run("auth", "status", "--json"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var status struct {
			Authenticated bool        `json:"authenticated"`
			User          models.User `json:"user"`
		}
		if err := json.Unmarshal(f.out.Bytes(), &status); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if !status.Authenticated || status.User.DisplayName != "Ayu" {
			t.Errorf("unexpected status %+v", status)
		}
	})

	t.Run("expired token is cleared", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t)
		f.backend.Fail("GET /auth/me", http.StatusUnauthorized, "Token expired")

		if err := f.run("auth", "status"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, ok := f.token(); ok {
			t.Error("expected token to be cleared")
		}
	})

	t.Run("logout", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t)
		requests := f.backend.Total()

		if err := f.run("auth", "logout"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, ok := f.token(); ok {
			t.Error("expected token to be cleared")
		}
		if f.backend.Total() != requests {
			t.Error("logout should not contact the backend")
		}
	})

	t.Run("callback", func(t *testing.T) {
		f := newFixture(t)

		if err := f.run("auth", "callback", "http://127.0.0.1:3000/callback?code=abc"); err != nil {
			t.Fatalf("callback failed: %v", err)
		}
		if _, ok := f.token(); !ok {
			t.Error("expected token to be stored")
		}
	})

	t.Run("callback with provider error", func(t *testing.T) {
		f := newFixture(t)

		err := f.run("auth", "callback", "http://127.0.0.1:3000/callback?error=access_denied")
		if !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", err)
		}
		if f.backend.Count("GET /auth/callback") != 0 {
			t.Error("provider error should not call the exchange endpoint")
		}
	})

	t.Run("callback without url", func(t *testing.T) {
		f := newFixture(t)

		if err := f.run("auth", "callback"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}

func TestListenForCallback(t *testing.T) {
	t.Run("completes login from the redirect", func(t *testing.T) {
		f := newFixture(t)
		f.config.Server.Port = freePort(t)

		app, err := f.runner.session(context.Background())
		if err != nil {
			t.Fatalf("session failed: %v", err)
		}

		results, stop, err := f.runner.listenForCallback(context.Background(), app, 5*time.Second)
		if err != nil {
			t.Fatalf("listen failed: %v", err)
		}
		defer stop()

		resp, err := http.Get(f.config.Server.CallbackURL() + "?code=abc")
		if err != nil {
			t.Fatalf("redirect request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("expected 200, got %d", resp.StatusCode)
		}

		if err := <-results; err != nil {
			t.Fatalf("expected login to succeed, got %v", err)
		}
		if !app.Auth.IsAuthenticated() {
			t.Error("expected signed in")
		}
		if app.Navigator.Current().String() != "Journal" {
			t.Errorf("expected journal, got %s", app.Navigator.Current())
		}
	})

	t.Run("times out", func(t *testing.T) {
		f := newFixture(t)
		f.config.Server.Port = freePort(t)

		app, err := f.runner.session(context.Background())
		if err != nil {
			t.Fatalf("session failed: %v", err)
		}

		results, stop, err := f.runner.listenForCallback(context.Background(), app, 20*time.Millisecond)
		if err != nil {
			t.Fatalf("listen failed: %v", err)
		}
		defer stop()
		if err := <-results; !errors.Is(err, shared.ErrTimeout) {
			t.Errorf("expected ErrTimeout, got %v", err)
		}
	})

	t.Run("stop releases the port", func(t *testing.T) {
		f := newFixture(t)
		f.config.Server.Port = freePort(t)

		app, err := f.runner.session(context.Background())
		if err != nil {
			t.Fatalf("session failed: %v", err)
		}

		first, stop, err := f.runner.listenForCallback(context.Background(), app, 5*time.Second)
		if err != nil {
			t.Fatalf("first listen failed: %v", err)
		}
		stop()
		if err := <-first; !errors.Is(err, context.Canceled) {
			t.Errorf("expected the stopped listener to report context.Canceled, got %v", err)
		}

		second, stop, err := f.runner.listenForCallback(context.Background(), app, 5*time.Second)
		if err != nil {
			t.Fatalf("listening again on the same port failed: %v", err)
		}
		defer stop()

		resp, err := http.Get(f.config.Server.CallbackURL() + "?code=abc")
		if err != nil {
			t.Fatalf("redirect request failed: %v", err)
		}
		resp.Body.Close()

		if err := <-second; err != nil {
			t.Fatalf("expected login to succeed, got %v", err)
		}
	})
}

func TestJournalCommand(t *testing.T) {
	t.Run("creates a playlist", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t)

		if err := f.run("journal", "--name", "Rainy", validEntry); err != nil {
			t.Fatalf("journal failed: %v", err)
		}
		for _, want := range []string{"Playlist: Rainy", "Mood: Sad (72%)", validEntry} {
			if !strings.Contains(f.out.String(), want) {
				t.Errorf("output missing %q", want)
			}
		}
		if f.backend.Count("POST /playlists") != 1 {
			t.Error("expected one create request")
		}
	})

	t.Run("json output", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t)

		if err := f.run("journal", "--format", "json", validEntry); err != nil {
			t.Fatalf("journal failed: %v", err)
		}
		var playlist models.Playlist
		if err := json.Unmarshal(f.out.Bytes(), &playlist); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if playlist.ID != f.backend.CreatedID {
			t.Errorf("expected %s, got %s", f.backend.CreatedID, playlist.ID)
		}
		if playlist.Name != views.DefaultPlaylistName(time.Now()) {
			t.Errorf("expected default name, got %s", playlist.Name)
		}
	})

	t.Run("short entry makes no request", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t)

		err := f.run("journal", "too short")
		if !errors.Is(err, views.ErrJournalTooShort) {
			t.Errorf("expected ErrJournalTooShort, got %v", err)
		}
		if f.backend.Count("POST /playlists") != 0 {
			t.Error("short entry should not reach the backend")
		}
	})

	t.Run("requires login", func(t *testing.T) {
		f := newFixture(t)

		if err := f.run("journal", validEntry); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("readEntry", func(t *testing.T) {
		f := newFixture(t)

		path := filepath.Join(t.TempDir(), "entry.txt")
		if err := os.WriteFile(path, []byte(validEntry), 0644); err != nil {
			t.Fatalf("failed to write entry: %v", err)
		}
		if text, err := f.runner.readEntry("", path); err != nil || text != validEntry {
			t.Errorf("file: got %q, %v", text, err)
		}

		f.runner.input = strings.NewReader("from stdin")
		if text, err := f.runner.readEntry("", "-"); err != nil || text != "from stdin" {
			t.Errorf("stdin: got %q, %v", text, err)
		}

		if _, err := f.runner.readEntry("a", path); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
		if _, err := f.runner.readEntry("", ""); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
		if _, err := f.runner.readEntry("", filepath.Join(t.TempDir(), "missing.txt")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}

func TestPlaylistsCommands(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t)

		if err := f.run("playlists", "list"); err != nil {
			t.Fatalf("list failed: %v", err)
		}
		for _, want := range []string{"Your Playlists (2)", "MoodShift p1", "id: p2", "Sad 72% • 20 tracks"} {
			if !strings.Contains(f.out.String(), want) {
				t.Errorf("output missing %q", want)
			}
		}
	})

	t.Run("list json", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t)

		if err := f.run("playlists", "list", "--json"); err != nil {
			t.Fatalf("list failed: %v", err)
		}
		var playlists []models.Playlist
		if err := json.Unmarshal(f.out.Bytes(), &playlists); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(playlists) != 2 {
			t.Errorf("expected 2 playlists, got %d", len(playlists))
		}
	})

	t.Run("show", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t)

		if err := f.run("playlists", "show", "--format", "markdown", "--open", "p2"); err != nil {
			t.Fatalf("show failed: %v", err)
		}
		if !strings.HasPrefix(f.out.String(), "# MoodShift p2") {
			t.Errorf("unexpected output:\n%s", f.out.String())
		}
		if f.backend.Count("GET /playlists/p2") != 1 {
			t.Error("expected the playlist to be fetched by id")
		}
		if len(f.browser.URLs) != 1 || f.browser.URLs[0] != "https://open.spotify.com/playlist/sp-p2" {
			t.Errorf("unexpected opened URLs %v", f.browser.URLs)
		}
	})

	t.Run("show missing", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t)

		err := f.run("playlists", "show", "nope")
		if !errors.Is(err, shared.ErrAPIRequest) || !strings.Contains(err.Error(), "Playlist nope not found") {
			t.Errorf("expected not found error, got %v", err)
		}
		if err := f.run("playlists", "show"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("export all", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t)
		path := filepath.Join(t.TempDir(), "all.csv")

		if err := f.run("playlists", "export", "--output", path); err != nil {
			t.Fatalf("export failed: %v", err)
		}
		if !strings.Contains(tu.MustReadFile(t, path), "p2,MoodShift p2,Sad,72,20") {
			t.Error("csv missing playlist rows")
		}

	})

	t.Run("export each as markdown", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t)
		dir := filepath.Join(t.TempDir(), "export")

		if err := f.run("playlists", "export", "--format", "markdown", "--workers", "2", "--output", dir); err != nil {
			t.Fatalf("export failed: %v", err)
		}
		for _, id := range []string{"p1", "p2"} {
			tu.AssertFileExists(t, filepath.Join(dir, id, "README.md"))
		}
		tu.AssertFileExists(t, filepath.Join(dir, "export_manifest.json"))
		if !strings.Contains(f.out.String(), "✓ Exported 2/2 playlists") {
			t.Errorf("unexpected output:\n%s", f.out.String())
		}
	})

	t.Run("export each reports failures", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t)
		f.backend.Fail("GET /playlists/p2", http.StatusInternalServerError, "boom")

		err := f.run("playlists", "export", "--format", "text", "--output", t.TempDir())
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("export unknown format", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t)

		if err := f.run("playlists", "export", "--format", "yaml"); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("export filename refuses unsafe ids", func(t *testing.T) {
		for _, id := range []string{"../x", "a/b", ".."} {
			if _, err := exportFilename(tu.PlaylistFixture(id), formatter.FormatJSON); !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("%q: expected ErrInvalidArgument, got %v", id, err)
			}
		}

		name, err := exportFilename(tu.PlaylistFixture("p1"), formatter.FormatText)
		if err != nil || name != "p1.txt" {
			t.Errorf("expected p1.txt, got %q, %v", name, err)
		}
	})

	t.Run("export one as markdown", func(t *testing.T) {
		f := newFixture(t)
		f.signIn(t)
		dir := filepath.Join(t.TempDir(), "p1")

		if err := f.run("playlists", "export", "--id", "p1", "--format", "markdown", "--output", dir); err != nil {
			t.Fatalf("export failed: %v", err)
		}
		if !strings.Contains(tu.MustReadFile(t, filepath.Join(dir, "README.md")), "# MoodShift p1") {
			t.Error("README missing playlist title")
		}
	})
}
