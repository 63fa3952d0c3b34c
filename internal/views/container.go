package views

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodshift/internal/auth"
	"github.com/desertthunder/moodshift/internal/models"
	"github.com/desertthunder/moodshift/internal/nav"
	"github.com/desertthunder/moodshift/internal/services"
	"github.com/desertthunder/moodshift/internal/shared"
	"github.com/desertthunder/moodshift/internal/storage"
)

// Session reports whether a user is signed in.
type Session interface {
	IsAuthenticated() bool
}

// Authenticator signs a user in with an OAuth authorization code.
type Authenticator interface {
	Session
	Login(ctx context.Context, code string) (models.User, error)
}

// ContainerOpts configures a [Container].
//
// When API is nil a [services.Client] is built from Client, with the container's token store as its token source.
type ContainerOpts struct {
	API       services.API
	Client    services.ClientOpts
	Local     storage.Storage
	Session   storage.Storage
	Navigator nav.Navigator
	Notifier  nav.Notifier
	Browser   shared.BrowserOpener
	Now       func() time.Time
	Logger    *log.Logger
	// DarkMode is the theme used until the user toggles it.
	DarkMode bool
}

// Container owns the client's shared state and its views.
type Container struct {
	API         services.API
	Tokens      *storage.TokenStore
	Pointer     *storage.SessionPointer
	Preferences *storage.Preferences
	Auth        *auth.Provider
	Navigator   nav.Navigator
	Notifier    nav.Notifier

	Home      *HomeView
	Journal   *JournalView
	Analyze   *AnalyzeView
	Playlists *PlaylistsView
	Callback  *CallbackView

	logger *log.Logger
}

// NewContainer wires the token store, session pointer, auth provider and views.
//
// Missing storages default to in-memory [storage.SessionStorage], so a container without Local forgets the
// token on exit.
func NewContainer(opts ContainerOpts) *Container {
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	local := opts.Local
	if local == nil {
		local = storage.NewSessionStorage()
	}

	session := opts.Session
	if session == nil {
		session = storage.NewSessionStorage()
	}

	navigator := opts.Navigator
	if navigator == nil {
		navigator = nav.NewHistory(nav.RouteHome)
	}

	notifier := opts.Notifier
	if notifier == nil {
		notifier = nav.NewLogNotifier(logger)
	}

	browser := opts.Browser
	if browser == nil {
		browser = shared.OpenBrowser
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	tokens := storage.NewTokenStore(local, logger)
	pointer := storage.NewSessionPointer(session, logger)
	prefs := storage.NewPreferences(local, logger)

	api := opts.API
	if api == nil {
		clientOpts := opts.Client
		clientOpts.Tokens = tokens
		if clientOpts.Logger == nil {
			clientOpts.Logger = shared.WithLogger(logger, "component", "api")
		}
		api = services.NewClient(clientOpts)
	}

	provider := auth.NewProvider(auth.ProviderOpts{
		API:       api,
		Tokens:    tokens,
		Pointer:   pointer,
		Navigator: navigator,
		Notifier:  notifier,
		Logger:    shared.WithLogger(logger, "component", "auth"),
	})

	c := &Container{
		API:         api,
		Tokens:      tokens,
		Pointer:     pointer,
		Preferences: prefs,
		Auth:        provider,
		Navigator:   navigator,
		Notifier:    notifier,
		logger:      logger,
	}

	c.Home = &HomeView{
		api:       api,
		session:   provider,
		navigator: navigator,
		prefs:     prefs,
		browser:   browser,
		dark:      prefs.DarkMode(opts.DarkMode),
		logger:    logger,
	}
	c.Journal = newJournalView(api, provider, pointer, navigator, notifier, now, logger)
	c.Analyze = &AnalyzeView{
		api:       api,
		session:   provider,
		pointer:   pointer,
		navigator: navigator,
		notifier:  notifier,
		browser:   browser,
		logger:    logger,
	}
	c.Playlists = &PlaylistsView{
		api:       api,
		session:   provider,
		pointer:   pointer,
		navigator: navigator,
		notifier:  notifier,
		browser:   browser,
		logger:    logger,
	}
	c.Callback = &CallbackView{
		auth:      provider,
		navigator: navigator,
		logger:    logger,
	}

	return c
}

// Init restores the session. Only the first call has any effect.
func (c *Container) Init(ctx context.Context) {
	c.Auth.Init(ctx)
}

// Logout signs the user out and discards every view's state.
func (c *Container) Logout() {
	c.Auth.Logout()
	c.Journal.reset()
	c.Analyze.reset()
	c.Playlists.reset()
	c.Callback.reset()
}
