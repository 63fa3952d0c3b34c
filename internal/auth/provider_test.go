package auth

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/desertthunder/moodshift/internal/nav"
	"github.com/desertthunder/moodshift/internal/services"
	"github.com/desertthunder/moodshift/internal/shared"
	"github.com/desertthunder/moodshift/internal/storage"
	tu "github.com/desertthunder/moodshift/internal/testing"
)

type fixture struct {
	backend  *tu.FakeBackend
	tokens   *storage.TokenStore
	pointer  *storage.SessionPointer
	history  *nav.History
	toasts   *nav.Queue
	provider *Provider
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := shared.NewLogger(io.Discard)
	backend := tu.NewFakeBackend(t)
	tokens := storage.NewTokenStore(storage.NewSessionStorage(), logger)
	pointer := storage.NewSessionPointer(storage.NewSessionStorage(), logger)
	history := nav.NewHistory(nav.RouteCallback)
	toasts := nav.NewQueue()

	client := services.NewClient(services.ClientOpts{BaseURL: backend.URL(), Tokens: tokens, Logger: logger})

	return &fixture{
		backend: backend,
		tokens:  tokens,
		pointer: pointer,
		history: history,
		toasts:  toasts,
		provider: NewProvider(ProviderOpts{
			API:       client,
			Tokens:    tokens,
			Pointer:   pointer,
			Navigator: history,
			Notifier:  toasts,
			Logger:    logger,
		}),
	}
}

func lastToast(t *testing.T, q *nav.Queue) nav.Notification {
	t.Helper()
	items := q.Peek()
	if len(items) == 0 {
		t.Fatal("expected a notification")
	}
	return items[len(items)-1]
}

func TestProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("Starts Loading", func(t *testing.T) {
		f := newFixture(t)
		if !f.provider.Loading() {
			t.Error("expected provider to start loading")
		}
		if f.provider.IsAuthenticated() {
			t.Error("expected no user before Init")
		}
	})

	t.Run("Init", func(t *testing.T) {
		t.Run("Without Token", func(t *testing.T) {
			f := newFixture(t)
			f.provider.Init(ctx)

			if f.provider.Loading() {
				t.Error("expected loading to be cleared")
			}
			if f.provider.IsAuthenticated() {
				t.Error("expected no user")
			}
			if f.backend.Total() != 0 {
				t.Errorf("expected no requests, got %d", f.backend.Total())
			}
		})

		t.Run("With Valid Token", func(t *testing.T) {
			f := newFixture(t)
			_ = f.tokens.Set(f.backend.Token)
			f.provider.Init(ctx)

			user, ok := f.provider.User()
			if !ok || user.ID != f.backend.User.ID {
				t.Errorf("expected restored user, got %+v ok=%v", user, ok)
			}
			if f.provider.Loading() {
				t.Error("expected loading to be cleared")
			}
		})

		t.Run("With Rejected Token", func(t *testing.T) {
			f := newFixture(t)
			_ = f.tokens.Set("stale")
			f.provider.Init(ctx)

			if f.provider.IsAuthenticated() {
				t.Error("expected no user")
			}
			if _, ok := f.tokens.Get(); ok {
				t.Error("expected stale token to be cleared")
			}
			if toast := lastToast(t, f.toasts); toast.Title != "Session expired" || toast.Level != nav.LevelError {
				t.Errorf("unexpected notification %+v", toast)
			}
			if f.provider.Loading() {
				t.Error("expected loading to be cleared")
			}
		})

		t.Run("Runs Once", func(t *testing.T) {
			f := newFixture(t)
			_ = f.tokens.Set(f.backend.Token)
			f.provider.Init(ctx)
			f.provider.Init(ctx)

			if got := f.backend.Count("GET /auth/me"); got != 1 {
				t.Errorf("expected one user fetch, got %d", got)
			}
		})
	})

	t.Run("Login", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			f := newFixture(t)
			f.provider.Init(ctx)

			user, err := f.provider.Login(ctx, "abc")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if user.ID != f.backend.User.ID {
				t.Errorf("unexpected user %+v", user)
			}
			if token, ok := f.tokens.Get(); !ok || token != f.backend.Token {
				t.Errorf("expected token to be stored, got %q", token)
			}
			if !f.provider.IsAuthenticated() {
				t.Error("expected provider to be authenticated")
			}
			if f.provider.Loading() {
				t.Error("expected loading to be cleared")
			}
		})

		t.Run("Failure Keeps Existing Token", func(t *testing.T) {
			f := newFixture(t)
			_ = f.tokens.Set("previous")
			f.provider.Init(ctx)
			_ = f.tokens.Set("previous")

			_, err := f.provider.Login(ctx, "wrong")
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, shared.ErrAuthFailed) {
				t.Errorf("expected ErrAuthFailed, got %v", err)
			}
			if !strings.Contains(err.Error(), "Failed to exchange code for token") {
				t.Errorf("expected server message in error, got %v", err)
			}
			if token, _ := f.tokens.Get(); token != "previous" {
				t.Errorf("expected previous token to survive, got %q", token)
			}

			toast := lastToast(t, f.toasts)
			if toast.Title != "Login failed" || toast.Description != "Failed to exchange code for token" {
				t.Errorf("unexpected notification %+v", toast)
			}
			if f.provider.Loading() {
				t.Error("expected loading to be cleared")
			}
		})

		t.Run("Server Error", func(t *testing.T) {
			f := newFixture(t)
			f.backend.Fail("GET /auth/callback", http.StatusBadGateway, "")

			_, err := f.provider.Login(ctx, "abc")
			if err == nil || !strings.Contains(err.Error(), "status 502") {
				t.Errorf("expected normalized status error, got %v", err)
			}
		})
	})

	t.Run("Logout", func(t *testing.T) {
		f := newFixture(t)
		f.provider.Init(ctx)
		if _, err := f.provider.Login(ctx, "abc"); err != nil {
			t.Fatalf("login failed: %v", err)
		}
		_ = f.pointer.Set("p123")
		before := f.backend.Total()

		f.provider.Logout()

		if f.provider.IsAuthenticated() {
			t.Error("expected user to be cleared")
		}
		if _, ok := f.tokens.Get(); ok {
			t.Error("expected token to be cleared")
		}
		if _, ok := f.pointer.Get(); ok {
			t.Error("expected session pointer to be cleared")
		}
		if f.history.Current() != nav.RouteHome {
			t.Errorf("expected Home, got %v", f.history.Current())
		}
		if toast := lastToast(t, f.toasts); toast.Title != "Logged out" {
			t.Errorf("unexpected notification %+v", toast)
		}
		if f.backend.Total() != before {
			t.Error("expected logout to make no requests")
		}
	})

	t.Run("Refresh", func(t *testing.T) {
		t.Run("Replaces User", func(t *testing.T) {
			f := newFixture(t)
			f.provider.Init(ctx)
			_, _ = f.provider.Login(ctx, "abc")

			renamed := tu.UserFixture()
			renamed.DisplayName = "Ayu Renamed"
			f.backend.SetUser(renamed)
			f.provider.Refresh(ctx)

			if user, _ := f.provider.User(); user.DisplayName != "Ayu Renamed" {
				t.Errorf("expected refreshed user, got %s", user.DisplayName)
			}
		})

		t.Run("Swallows Errors", func(t *testing.T) {
			f := newFixture(t)
			f.provider.Init(ctx)
			_, _ = f.provider.Login(ctx, "abc")
			f.backend.Fail("GET /auth/me", http.StatusInternalServerError, "down")
			pending := f.toasts.Len()

			f.provider.Refresh(ctx)

			if !f.provider.IsAuthenticated() {
				t.Error("expected user to be kept")
			}
			if f.toasts.Len() != pending {
				t.Error("expected no notification")
			}
		})

		t.Run("Without Token", func(t *testing.T) {
			f := newFixture(t)
			f.provider.Refresh(ctx)
			if f.backend.Total() != 0 {
				t.Error("expected no request without a token")
			}
		})
	})
}
