package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodshift/internal/nav"
	"github.com/desertthunder/moodshift/internal/services"
	"github.com/desertthunder/moodshift/internal/shared"
	"github.com/desertthunder/moodshift/internal/storage"
	"github.com/desertthunder/moodshift/internal/views"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	configPath  string
	fixedConfig bool
	api         services.API
	httpClient  *http.Client
	browser     shared.BrowserOpener
	logger      *log.Logger
	output      io.Writer
	input       io.Reader
	local       storage.Storage
	db          *sql.DB
}

// RunnerOpts contains configuration options for creating a Runner.
//
// API and Local replace the backend client and the SQLite storage; both are meant for tests.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	API        services.API
	HTTPClient *http.Client
	Browser    shared.BrowserOpener
	Logger     *log.Logger
	Output     io.Writer
	Input      io.Reader
	Local      storage.Storage
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	fixed := opts.Config != nil
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Browser == nil {
		opts.Browser = shared.OpenBrowser
	}

	return &Runner{
		config:      opts.Config,
		configPath:  opts.ConfigPath,
		fixedConfig: fixed,
		api:         opts.API,
		httpClient:  opts.HTTPClient,
		browser:     opts.Browser,
		logger:      opts.Logger,
		output:      opts.Output,
		input:       opts.Input,
		local:       opts.Local,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, journalCommand, playlistsCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before loads config.toml (when present) and environment overrides, and applies --verbose.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	if cmd.IsSet("config") || r.configPath == "" {
		r.configPath = cmd.String("config")
	}

	if r.fixedConfig {
		return ctx, nil
	}

	config, err := shared.LoadConfig(r.configPath)
	switch {
	case errors.Is(err, shared.ErrMissingConfig):
		r.logger.Debug("config file not found, using defaults", "path", r.configPath)
	case err != nil:
		return ctx, err
	default:
		r.config = config
	}

	r.config.ApplyEnv()
	if err := r.config.Validate(); err != nil {
		return ctx, fmt.Errorf("after environment overrides: %w", err)
	}
	r.logger.Debug("configuration loaded", "base_url", r.config.API.BaseURL, "storage", r.config.Storage.Path)
	return ctx, nil
}

// After releases the storage database.
func (r *Runner) After(ctx context.Context, cmd *cli.Command) error {
	return r.Close()
}

func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// SetLogger replaces the logger used by commands started afterwards.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

// session builds the view container and restores the stored session.
func (r *Runner) session(ctx context.Context) (*views.Container, error) {
	app, err := r.container(nav.NewLogNotifier(r.logger), r.logger)
	if err != nil {
		return nil, err
	}
	app.Init(ctx)
	return app, nil
}

func (r *Runner) container(notifier nav.Notifier, logger *log.Logger) (*views.Container, error) {
	local, err := r.localStorage()
	if err != nil {
		return nil, err
	}

	history := nav.NewHistory(nav.RouteHome)
	history.OnChange(func(from, to nav.Route) {
		logger.Debug("navigated", "from", from, "to", to)
	})

	return views.NewContainer(views.ContainerOpts{
		API: r.api,
		Client: services.ClientOpts{
			BaseURL:    r.config.API.BaseURL,
			HTTPClient: r.httpClient,
			Logger:     shared.WithLogger(logger, "component", "api"),
			RateLimit:  r.config.API.RateLimit,
		},
		Local:     local,
		Navigator: history,
		Notifier:  notifier,
		Browser:   r.browser,
		Logger:    logger,
		DarkMode:  strings.EqualFold(r.config.UI.Theme, "dark"),
	}), nil
}

func (r *Runner) localStorage() (storage.Storage, error) {
	if r.local != nil {
		return r.local, nil
	}

	db, err := shared.OpenStorageDatabase(r.config.Storage)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrStorage, err)
	}

	r.db = db
	r.local = storage.NewLocalStorage(db)
	return r.local, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

func (r *Runner) write(data []byte) error {
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// callbackTimeoutOr returns d, or the default login wait when d is unset.
func callbackTimeoutOr(d time.Duration) time.Duration {
	if d <= 0 {
		return 2 * time.Minute
	}
	return d
}
