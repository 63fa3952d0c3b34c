package main

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/desertthunder/moodshift/internal/server"
	"github.com/desertthunder/moodshift/internal/shared"
	"github.com/desertthunder/moodshift/internal/views"
	"github.com/urfave/cli/v3"
)

// AuthLogin signs in through the backend's Spotify OAuth flow.
//
// With --code the code is exchanged directly. Otherwise the browser is sent to the sign-in URL and a loopback
// server waits for the redirect on server.host:server.port.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	app, err := r.session(ctx)
	if err != nil {
		return err
	}

	if code := strings.TrimSpace(cmd.String("code")); code != "" {
		if err := app.Callback.Handle(ctx, url.Values{"code": {code}}); err != nil {
			return err
		}
		return r.writeSignedIn(app)
	}

	results, stop, err := r.listenForCallback(ctx, app, callbackTimeoutOr(cmd.Duration("timeout")))
	if err != nil {
		return err
	}
	defer stop()

	r.writePlain("Open this URL to connect your Spotify account:\n  %s\n", app.Home.ConnectURL())
	r.writePlain("Waiting for the redirect on %s ...\n", r.config.Server.CallbackURL())

	if !cmd.Bool("no-browser") {
		if err := app.Home.Connect(); err != nil {
			r.logger.Warn("failed to open browser, open the URL manually", "error", err)
		}
	}

	if err := <-results; err != nil {
		return err
	}
	return r.writeSignedIn(app)
}

// AuthLogout forgets the stored token. It never contacts the backend.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	app, err := r.container(nil, r.logger)
	if err != nil {
		return err
	}

	app.Logout()
	return r.writePlain("✓ Logged out\n")
}

type authStatus struct {
	Authenticated bool   `json:"authenticated"`
	BaseURL       string `json:"base_url"`
	User          any    `json:"user,omitempty"`
}

// AuthStatus restores the session and reports who is signed in.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	app, err := r.session(ctx)
	if err != nil {
		return err
	}

	user, ok := app.Auth.User()
	if cmd.Bool("json") {
		status := authStatus{Authenticated: ok, BaseURL: r.config.API.BaseURL}
		if ok {
			status.User = user
		}
		return r.writeJSON(status, true)
	}

	if !ok {
		r.writePlain("✗ Not signed in\n")
		return r.writePlain("Run 'moodshift auth login' to connect your Spotify account\n")
	}

	r.writePlain("✓ Signed in as %s\n", user.DisplayName)
	if user.Email != "" {
		r.writePlain("Email: %s\n", user.Email)
	}
	return r.writePlain("Backend: %s\n", r.config.API.BaseURL)
}

// AuthURL prints the sign-in URL without any network call.
func (r *Runner) AuthURL(ctx context.Context, cmd *cli.Command) error {
	app, err := r.container(nil, r.logger)
	if err != nil {
		return err
	}
	return r.writePlain("%s\n", app.Home.ConnectURL())
}

// AuthCallback completes sign-in from a redirect URL (or its query string) pasted from the browser.
func (r *Runner) AuthCallback(ctx context.Context, cmd *cli.Command) error {
	raw := strings.TrimSpace(cmd.StringArg("url"))
	if raw == "" {
		return fmt.Errorf("%w: redirect url", shared.ErrMissingArgument)
	}

	app, err := r.session(ctx)
	if err != nil {
		return err
	}

	if err := app.Callback.HandleURL(ctx, raw); err != nil {
		if msg := app.Callback.Message(); msg != "" {
			r.logger.Error(msg)
		}
		return err
	}
	return r.writeSignedIn(app)
}

func (r *Runner) writeSignedIn(app *views.Container) error {
	user, ok := app.Auth.User()
	if !ok {
		return shared.ErrNotAuthenticated
	}
	return r.writePlain("✓ Signed in as %s\n", user.DisplayName)
}

// listenForCallback serves /callback until the redirect arrives, ctx ends, stop is called or timeout passes.
//
// The returned channel yields the login outcome once; the server is shut down before it is sent. stop blocks until
// the port is released, so a new listener can bind it right after.
func (r *Runner) listenForCallback(ctx context.Context, app *views.Container, timeout time.Duration) (<-chan error, func(), error) {
	ctx, cancel := context.WithCancel(ctx)

	logger := r.logger.With("component", "callback")
	handler := server.NewCallbackHandler(ctx, app.Callback, logger)

	router := server.NewBasicRouter()
	router.Use(server.RequestLogger(logger))
	router.Handler(handler)

	srv := server.NewServer(r.config.Server.Addr(), router, logger)
	if err := srv.Start(); err != nil {
		cancel()
		return nil, nil, err
	}

	out := make(chan error, 1)
	stopped := make(chan struct{})
	go func() {
		defer close(out)

		var err error
		select {
		case result := <-handler.Result():
			err = result.Error()
		case <-ctx.Done():
			err = ctx.Err()
		case <-time.After(timeout):
			err = fmt.Errorf("%w: no redirect received within %s", shared.ErrTimeout, timeout)
		}

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShutdown()
		if serr := srv.Shutdown(shutdownCtx); serr != nil {
			logger.Warn("failed to stop callback server", "error", serr)
		}
		close(stopped)

		out <- err
	}()

	stop := func() {
		cancel()
		<-stopped
	}
	return out, stop, nil
}
