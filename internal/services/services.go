// package services defines the backend API client and its Result type
package services

import (
	"context"
	"fmt"

	"github.com/desertthunder/moodshift/internal/models"
	"github.com/desertthunder/moodshift/internal/shared"
)

// Messages used when a failure carries no message of its own.
const (
	MsgNetworkError = "network error"
	MsgUnknownError = "an unknown error occurred"
)

// API is the set of backend operations the client exposes.
type API interface {
	// AuthRedirectURL is the URL the user's browser visits to start the OAuth flow. No network.
	AuthRedirectURL() string

	// ExchangeCode trades an OAuth authorization code for a bearer token and user.
	ExchangeCode(ctx context.Context, code string) Result[models.LoginResult]

	// CurrentUser fetches the user the stored token belongs to.
	CurrentUser(ctx context.Context) Result[models.User]

	// CreatePlaylist submits a journal entry. An empty name lets the backend choose one.
	CreatePlaylist(ctx context.Context, text, name string) Result[models.Playlist]

	// ListPlaylists returns every playlist of the current user, newest first.
	ListPlaylists(ctx context.Context) Result[[]models.Playlist]

	// GetPlaylist fetches a single playlist by id.
	GetPlaylist(ctx context.Context, id string) Result[models.Playlist]
}

// TokenSource supplies the bearer token attached to requests, if any.
type TokenSource interface {
	Get() (string, bool)
}

// Result is the outcome of an API call: either Success with Data, or a failure with a non-empty Error.
type Result[T any] struct {
	Success bool
	Data    T
	Error   string
}

// Ok wraps data in a successful [Result].
func Ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

// Fail builds a failed [Result]. An empty message is replaced with [MsgUnknownError].
func Fail[T any](message string) Result[T] {
	if message == "" {
		message = MsgUnknownError
	}
	return Result[T]{Error: message}
}

// OK reports whether r is a success.
func (r Result[T]) OK() bool {
	return r.Success
}

// Err converts a failure to an error wrapping [shared.ErrAPIRequest]; nil on success.
func (r Result[T]) Err() error {
	if r.Success {
		return nil
	}
	return fmt.Errorf("%w: %s", shared.ErrAPIRequest, r.Error)
}
