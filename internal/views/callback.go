package views

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodshift/internal/nav"
	"github.com/desertthunder/moodshift/internal/shared"
)

// Messages shown by the callback view's terminal error state.
const (
	MsgMissingCode  = "No authorization code found in the URL"
	MsgLoginFailure = "Failed to authenticate with Spotify"
)

// CallbackView completes the OAuth redirect.
type CallbackView struct {
	auth      Authenticator
	navigator nav.Navigator
	logger    *log.Logger

	mu      sync.RWMutex
	loading bool
	message string
}

// Handle reads code or error from the redirect query.
//
// A provider error or a missing code ends in an error state without contacting the backend.
// On success it moves to the journal.
func (c *CallbackView) Handle(ctx context.Context, query url.Values) error {
	c.setState(true, "")

	if providerErr := query.Get("error"); providerErr != "" {
		msg := "Authentication error: " + providerErr
		c.setState(false, msg)
		return fmt.Errorf("%w: %s", shared.ErrAuthFailed, msg)
	}

	code := query.Get("code")
	if code == "" {
		c.setState(false, MsgMissingCode)
		return fmt.Errorf("%w: code", shared.ErrMissingArgument)
	}

	if _, err := c.auth.Login(ctx, code); err != nil {
		c.logger.Warn("callback login failed", "error", err)
		c.setState(false, MsgLoginFailure)
		return err
	}

	c.setState(false, "")
	c.navigator.Navigate(nav.RouteJournal)
	return nil
}

// HandleURL is [CallbackView.Handle] for a full redirect URL or a bare query string.
//
// A redirect copied without its scheme, such as 127.0.0.1:3000/callback?code=abc, is read as http.
func (c *CallbackView) HandleURL(ctx context.Context, raw string) error {
	u, err := url.Parse(raw)
	if err != nil && !strings.Contains(raw, "://") {
		u, err = url.Parse("http://" + raw)
	}
	if err != nil {
		c.setState(false, MsgMissingCode)
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}

	query := u.Query()
	if u.RawQuery == "" && u.Scheme == "" && u.Host == "" {
		if q, err := url.ParseQuery(raw); err == nil {
			query = q
		}
	}
	return c.Handle(ctx, query)
}

func (c *CallbackView) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Message is the terminal error message, empty unless the callback failed.
func (c *CallbackView) Message() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.message
}

func (c *CallbackView) Failed() bool {
	return c.Message() != ""
}

// ReturnHome leaves the error state for the landing page.
func (c *CallbackView) ReturnHome() {
	c.reset()
	c.navigator.Navigate(nav.RouteHome)
}

func (c *CallbackView) setState(loading bool, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = loading
	c.message = message
}

func (c *CallbackView) reset() {
	c.setState(false, "")
}
