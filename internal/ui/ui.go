package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodshift/internal/nav"
	"github.com/desertthunder/moodshift/internal/shared"
	"github.com/desertthunder/moodshift/internal/views"
	"github.com/samber/lo"
)

const (
	toastTTL  = 4 * time.Second
	maxToasts = 3
)

// CallbackListener starts receiving the OAuth redirect in the background.
//
// The returned channel yields the outcome of the login exactly once. stop abandons the listener and returns once
// its port is free again.
type CallbackListener func(ctx context.Context) (results <-chan error, stop func(), err error)

// ModelOpts configures a [Model].
type ModelOpts struct {
	Ctx context.Context
	App *views.Container
	// Queue must also be wired as (part of) the container's notifier for toasts to appear.
	Queue    *nav.Queue
	Listener CallbackListener
	// CallbackURL is where the listener receives the redirect; it seeds the paste field's placeholder.
	CallbackURL string
	Logger      *log.Logger
}

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	app        *views.Container
	queue      *nav.Queue
	listener   CallbackListener
	stopListen func()
	logger     *log.Logger

	route   nav.Route
	width   int
	height  int
	waiting bool

	journal      textarea.Model
	name         textinput.Model
	redirect     textinput.Model
	playlistList list.Model
	spinner      spinner.Model
	help         help.Model
	keys         keyMap
	toasts       []nav.Notification
}

// NewModel creates a new TUI model over the page controllers in opts.App.
func NewModel(opts ModelOpts) *Model {
	ctx := opts.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	journal := textarea.New()
	journal.Placeholder = "Write about your day, how you feel, what is on your mind..."
	journal.ShowLineNumbers = false
	journal.CharLimit = 5000
	journal.SetHeight(8)

	name := textinput.New()
	name.Placeholder = "Playlist name (optional)"
	name.CharLimit = 100

	callbackURL := opts.CallbackURL
	if callbackURL == "" {
		callbackURL = shared.DefaultConfig().Server.CallbackURL()
	}

	redirect := textinput.New()
	redirect.Placeholder = callbackURL + "?code=..."

	playlistList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	playlistList.Title = "Your Playlists"
	playlistList.SetFilteringEnabled(false)
	playlistList.SetShowHelp(false)

	return &Model{
		ctx:          ctx,
		app:          opts.App,
		queue:        opts.Queue,
		listener:     opts.Listener,
		logger:       logger,
		route:        nav.Route(-1),
		journal:      journal,
		name:         name,
		redirect:     redirect,
		playlistList: playlistList,
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:         help.New(),
		keys:         newKeyMap(),
	}
}

// Init restores the stored session and enters the navigator's current page.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.restoreSession(), m.syncRoute())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		cmds = append(cmds, m.handleKeys(msg))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case Msg:
		cmds = append(cmds, m.handleMsg(msg))

	default:
		cmds = append(cmds, m.updateInputs(msg))
	}

	cmds = append(cmds, m.syncRoute(), m.drainToasts())
	return m, tea.Batch(cmds...)
}

// Route is the page currently rendered.
func (m *Model) Route() nav.Route {
	return m.route
}

func (m *Model) handleMsg(msg Msg) tea.Cmd {
	switch msg.kind {
	case MsgSessionRestored:
		if user, ok := m.app.Auth.User(); ok {
			m.logger.Debug("session restored", "user", user.DisplayName)
		}

	case MsgPlaylistCreated:
		if msg.err() == nil {
			m.journal.Reset()
			m.name.Reset()
		}

	case MsgPlaylistsFetched:
		if data, ok := msg.data.(playlistsResult); ok && data.err == nil {
			cmd := m.playlistList.SetItems(playlistItems(data.playlists))
			if i := m.app.Playlists.SelectedIndex(); i >= 0 {
				m.playlistList.Select(i)
			}
			return cmd
		}

	case MsgCallbackHandled:
		m.stopListener()
		m.redirect.Reset()
		if err := msg.err(); err != nil {
			m.logger.Warn("callback failed", "error", err)
		}

	case MsgActionFailed:
		m.logger.Warn("action failed", "error", msg.err())

	case MsgToastExpired:
		if len(m.toasts) > 0 {
			m.toasts = m.toasts[1:]
		}
	}

	return nil
}

func (m *Model) handleKeys(msg tea.KeyMsg) tea.Cmd {
	switch m.route {
	case nav.RouteHome:
		return m.handleHomeKeys(msg)
	case nav.RouteJournal:
		return m.handleJournalKeys(msg)
	case nav.RouteAnalyze:
		return m.handleAnalyzeKeys(msg)
	case nav.RoutePlaylists:
		return m.handlePlaylistsKeys(msg)
	case nav.RouteCallback:
		return m.handleCallbackKeys(msg)
	default:
		return nil
	}
}

// handleCommonKeys handles the bindings shared by pages without a text input.
func (m *Model) handleCommonKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return tea.Quit, true
	case key.Matches(msg, m.keys.theme):
		m.app.Home.ToggleDarkMode()
		return nil, true
	case key.Matches(msg, m.keys.logout):
		if m.app.Auth.IsAuthenticated() {
			m.logout()
		}
		return nil, true
	}
	return nil, false
}

func (m *Model) handleHomeKeys(msg tea.KeyMsg) tea.Cmd {
	if cmd, ok := m.handleCommonKeys(msg); ok {
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.connect):
		return m.connect()
	case key.Matches(msg, m.keys.start), key.Matches(msg, m.keys.enter):
		m.app.Home.Start()
	case key.Matches(msg, m.keys.library):
		m.app.Navigator.Navigate(nav.RoutePlaylists)
	}
	return nil
}

func (m *Model) handleJournalKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.back):
		m.app.Navigator.Navigate(nav.RouteHome)
		return nil
	case key.Matches(msg, m.keys.tab):
		if m.journal.Focused() {
			m.journal.Blur()
			return m.name.Focus()
		}
		m.name.Blur()
		return m.journal.Focus()
	case key.Matches(msg, m.keys.submit):
		if m.app.Journal.Loading() {
			return nil
		}
		return m.submitJournal(m.journal.Value(), m.name.Value())
	}

	return m.updateInputs(msg)
}

func (m *Model) handleAnalyzeKeys(msg tea.KeyMsg) tea.Cmd {
	if cmd, ok := m.handleCommonKeys(msg); ok {
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.tab):
		m.app.Analyze.NextTab()
	case key.Matches(msg, m.keys.newEntry):
		m.app.Analyze.NewEntry()
	case key.Matches(msg, m.keys.library):
		m.app.Analyze.ViewAll()
	case key.Matches(msg, m.keys.open):
		return m.openExternal(m.app.Analyze.OpenExternal)
	case key.Matches(msg, m.keys.back):
		nav.Back(m.app.Navigator, nav.RouteHome)
	default:
		switch s := msg.String(); s {
		case "1", "2", "3":
			m.app.Analyze.SetTab(views.Tabs[s[0]-'1'])
		}
	}
	return nil
}

func (m *Model) handlePlaylistsKeys(msg tea.KeyMsg) tea.Cmd {
	if cmd, ok := m.handleCommonKeys(msg); ok {
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.enter):
		if err := m.app.Playlists.ViewDetails(); err != nil {
			return actionFailed(err)
		}
		return nil
	case key.Matches(msg, m.keys.newEntry):
		m.app.Playlists.NewEntry()
		return nil
	case key.Matches(msg, m.keys.open):
		return m.openExternal(m.app.Playlists.OpenExternal)
	case key.Matches(msg, m.keys.back):
		nav.Back(m.app.Navigator, nav.RouteHome)
		return nil
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	if i := m.playlistList.Index(); i != m.app.Playlists.SelectedIndex() {
		if err := m.app.Playlists.Select(i); err != nil {
			m.logger.Debug("selection out of range", "index", i, "error", err)
		}
	}
	return cmd
}

func (m *Model) handleCallbackKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.back):
		m.stopListener()
		m.redirect.Reset()
		m.app.Callback.ReturnHome()
		return nil
	case key.Matches(msg, m.keys.enter):
		raw := strings.TrimSpace(m.redirect.Value())
		if raw == "" {
			if m.app.Callback.Failed() {
				m.app.Callback.ReturnHome()
			}
			return nil
		}
		return m.completeCallback(raw)
	}

	var cmd tea.Cmd
	m.redirect, cmd = m.redirect.Update(msg)
	return cmd
}

// updateInputs forwards non-key messages (cursor blink, paste) to the focused input.
func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.route {
	case nav.RouteJournal:
		if m.journal.Focused() {
			m.journal, cmd = m.journal.Update(msg)
		} else {
			m.name, cmd = m.name.Update(msg)
		}
	case nav.RouteCallback:
		m.redirect, cmd = m.redirect.Update(msg)
	case nav.RoutePlaylists:
		m.playlistList, cmd = m.playlistList.Update(msg)
	}
	return cmd
}

// syncRoute enters the navigator's current page when it differs from the rendered one.
func (m *Model) syncRoute() tea.Cmd {
	current := m.app.Navigator.Current()
	if current == m.route {
		return nil
	}

	m.logger.Debug("route changed", "from", m.route, "to", current)
	m.route = current

	switch current {
	case nav.RouteJournal:
		m.name.Blur()
		return m.journal.Focus()
	case nav.RouteAnalyze:
		return m.enterAnalyze()
	case nav.RoutePlaylists:
		return m.enterPlaylists()
	case nav.RouteCallback:
		return m.redirect.Focus()
	default:
		return nil
	}
}

func (m *Model) drainToasts() tea.Cmd {
	if m.queue == nil {
		return nil
	}

	fresh := m.queue.Drain()
	if len(fresh) == 0 {
		return nil
	}

	m.toasts = append(m.toasts, fresh...)
	return tea.Batch(lo.Map(fresh, func(nav.Notification, int) tea.Cmd {
		return tea.Tick(toastTTL, func(time.Time) tea.Msg { return toastExpiredMsg() })
	})...)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	w := max(20, width-4)
	m.journal.SetWidth(w)
	m.name.Width = w - 4
	m.redirect.Width = w - 4
	m.help.Width = width
	m.playlistList.SetSize(max(20, width/2-2), max(5, height-8))
}

func (m *Model) logout() {
	m.app.Logout()
	m.journal.Reset()
	m.name.Reset()
	m.playlistList.SetItems(nil)
}

func (m *Model) connect() tea.Cmd {
	if err := m.app.Home.Connect(); err != nil {
		m.logger.Warn("failed to open browser", "error", err)
		m.app.Notifier.Notify(nav.Info("Open this link to connect", m.app.Home.ConnectURL()))
	}
	m.app.Navigator.Navigate(nav.RouteCallback)

	if m.listener == nil {
		return nil
	}

	m.stopListener()
	results, stop, err := m.listener(m.ctx)
	if err != nil {
		m.app.Notifier.Notify(nav.Error("Error", err.Error()))
		return nil
	}

	m.stopListen = stop
	m.waiting = true
	return waitForCallback(results)
}

// stopListener shuts down the running callback listener, if any.
func (m *Model) stopListener() {
	if m.stopListen != nil {
		m.stopListen()
		m.stopListen = nil
	}
	m.waiting = false
}

func (m *Model) restoreSession() tea.Cmd {
	return func() tea.Msg {
		m.app.Init(m.ctx)
		return sessionRestoredMsg()
	}
}

func (m *Model) submitJournal(text, name string) tea.Cmd {
	return func() tea.Msg {
		playlist, err := m.app.Journal.Submit(m.ctx, text, name)
		return playlistCreatedMsg(playlist, err)
	}
}

func (m *Model) enterAnalyze() tea.Cmd {
	return func() tea.Msg {
		playlist, err := m.app.Analyze.Enter(m.ctx)
		return playlistLoadedMsg(playlist, err)
	}
}

func (m *Model) enterPlaylists() tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.app.Playlists.Enter(m.ctx)
		return playlistsFetchedMsg(playlists, err)
	}
}

func (m *Model) completeCallback(raw string) tea.Cmd {
	return func() tea.Msg {
		return callbackHandledMsg(m.app.Callback.HandleURL(m.ctx, raw))
	}
}

func (m *Model) openExternal(open func() error) tea.Cmd {
	if err := open(); err != nil {
		m.app.Notifier.Notify(nav.Error("Error", "Could not open the playlist"))
		return actionFailed(err)
	}
	return nil
}

func waitForCallback(results <-chan error) tea.Cmd {
	return func() tea.Msg {
		err, ok := <-results
		if !ok {
			return callbackHandledMsg(shared.ErrTimeout)
		}
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return callbackHandledMsg(err)
	}
}

func actionFailed(err error) tea.Cmd {
	return func() tea.Msg { return actionFailedMsg(err) }
}
