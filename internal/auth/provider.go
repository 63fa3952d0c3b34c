// package auth tracks who is signed in
package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodshift/internal/models"
	"github.com/desertthunder/moodshift/internal/nav"
	"github.com/desertthunder/moodshift/internal/services"
	"github.com/desertthunder/moodshift/internal/shared"
	"github.com/desertthunder/moodshift/internal/storage"
)

// ProviderOpts configures a [Provider].
type ProviderOpts struct {
	API       services.API
	Tokens    *storage.TokenStore
	Pointer   *storage.SessionPointer
	Navigator nav.Navigator
	Notifier  nav.Notifier
	Logger    *log.Logger
}

// Provider holds the authentication state {loading, user|absent}.
//
// A Provider starts loading and stays that way until [Provider.Init] completes.
type Provider struct {
	api       services.API
	tokens    *storage.TokenStore
	pointer   *storage.SessionPointer
	navigator nav.Navigator
	notifier  nav.Notifier
	logger    *log.Logger

	mu       sync.RWMutex
	user     *models.User
	loading  bool
	initOnce sync.Once
}

// NewProvider creates a [Provider]. API and Tokens are required.
func NewProvider(opts ProviderOpts) *Provider {
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	notifier := opts.Notifier
	if notifier == nil {
		notifier = nav.NewLogNotifier(logger)
	}

	navigator := opts.Navigator
	if navigator == nil {
		navigator = nav.NewHistory(nav.RouteHome)
	}

	return &Provider{
		api:       opts.API,
		tokens:    opts.Tokens,
		pointer:   opts.Pointer,
		navigator: navigator,
		notifier:  notifier,
		logger:    logger,
		loading:   true,
	}
}

// Init restores the session from a stored token. Only the first call has any effect.
func (p *Provider) Init(ctx context.Context) {
	p.initOnce.Do(func() {
		defer p.setLoading(false)

		if _, ok := p.tokens.Get(); !ok {
			p.logger.Debug("no stored token")
			return
		}

		res := p.api.CurrentUser(ctx)
		if !res.Success {
			p.logger.Warn("stored token rejected", "error", res.Error)
			if err := p.tokens.Clear(); err != nil {
				p.logger.Error("failed to clear token", "error", err)
			}
			p.notifier.Notify(nav.Error("Session expired", "Please log in again"))
			return
		}

		p.setUser(&res.Data)
		p.logger.Info("session restored", "user", res.Data.DisplayName)
	})
}

// Login exchanges code for a token and signs the user in.
//
// On failure any previously stored token is left untouched and the returned error carries the server message.
func (p *Provider) Login(ctx context.Context, code string) (models.User, error) {
	p.setLoading(true)
	defer p.setLoading(false)

	res := p.api.ExchangeCode(ctx, code)
	if !res.Success {
		p.logger.Warn("login failed", "error", res.Error)
		p.notifier.Notify(nav.Error("Login failed", res.Error))
		return models.User{}, fmt.Errorf("%w: %s", shared.ErrAuthFailed, res.Error)
	}

	if err := p.tokens.Set(res.Data.Token); err != nil {
		p.logger.Error("failed to persist token", "error", err)
		p.notifier.Notify(nav.Error("Login failed", "Could not save your session"))
		return models.User{}, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	user := res.Data.User
	p.setUser(&user)
	p.logger.Info("logged in", "user", user.DisplayName)
	return user, nil
}

// Logout clears the token, the user and the session pointer, then returns Home. It never touches the network.
func (p *Provider) Logout() {
	if err := p.tokens.Clear(); err != nil {
		p.logger.Error("failed to clear token", "error", err)
	}
	if p.pointer != nil {
		if err := p.pointer.Clear(); err != nil {
			p.logger.Error("failed to clear session pointer", "error", err)
		}
	}

	p.setUser(nil)
	p.navigator.Navigate(nav.RouteHome)
	p.notifier.Notify(nav.Info("Logged out", "You have been successfully logged out"))
}

// Refresh re-fetches the current user when a token is stored. Failures are ignored.
func (p *Provider) Refresh(ctx context.Context) {
	if _, ok := p.tokens.Get(); !ok {
		return
	}

	res := p.api.CurrentUser(ctx)
	if !res.Success {
		p.logger.Debug("refresh failed", "error", res.Error)
		return
	}
	p.setUser(&res.Data)
}

// User returns the signed-in user.
func (p *Provider) User() (models.User, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.user == nil {
		return models.User{}, false
	}
	return *p.user, true
}

// Loading reports whether a session restore or login is in flight.
func (p *Provider) Loading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

func (p *Provider) IsAuthenticated() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.user != nil
}

func (p *Provider) setUser(u *models.User) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.user = u
}

func (p *Provider) setLoading(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = v
}
