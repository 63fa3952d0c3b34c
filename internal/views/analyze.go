package views

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

// Tab is a section of the Analyze view.
type Tab int

const (
	TabEmotions Tab = iota
	TabJournal
	TabPlaylist
)

// Tabs lists the Analyze tabs in display order.
var Tabs = []Tab{TabEmotions, TabJournal, TabPlaylist}

func (t Tab) String() string {
	switch t {
	case TabEmotions:
		return "Emotions"
	case TabJournal:
		return "Journal"
	case TabPlaylist:
		return "Playlist"
	default:
		return "Unknown"
	}
}

// AnalyzeView shows the playlist the session pointer refers to.
type AnalyzeView struct {
	api       services.API
	session   Session
	pointer   *storage.SessionPointer
	navigator nav.Navigator
	notifier  nav.Notifier
	browser   shared.BrowserOpener
	logger    *log.Logger

	state state[models.Playlist]

	mu  sync.RWMutex
	tab Tab
}

// Enter loads the pending playlist.
//
// Without a user or a pending playlist, or when the fetch fails, it redirects to the journal.
func (a *AnalyzeView) Enter(ctx context.Context) (models.Playlist, error) {
	if !a.session.IsAuthenticated() {
		a.redirect("Login required", "Please connect your Spotify account first")
		a.state.fail(shared.ErrNotAuthenticated)
		return models.Playlist{}, shared.ErrNotAuthenticated
	}

	id, ok := a.pointer.Get()
	if !ok {
		a.redirect("No playlist found", "Please create a new journal entry first")
		a.state.fail(ErrNoPendingPlaylist)
		return models.Playlist{}, ErrNoPendingPlaylist
	}

	a.state.begin()
	res := a.api.GetPlaylist(ctx, id)
	if !res.Success {
		err := res.Err()
		a.state.fail(err)
		a.redirect("Error", res.Error)
		return models.Playlist{}, err
	}

	a.state.succeed(res.Data)
	a.SetTab(TabEmotions)
	return res.Data, nil
}

func (a *AnalyzeView) redirect(title, description string) {
	a.notifier.Notify(nav.Error(title, description))
	a.navigator.Navigate(nav.RouteJournal)
}

// Playlist returns the loaded playlist.
func (a *AnalyzeView) Playlist() (models.Playlist, bool) { return a.state.get() }

func (a *AnalyzeView) Loading() bool { return a.state.isLoading() }

func (a *AnalyzeView) Err() error { return a.state.lastErr() }

func (a *AnalyzeView) Tab() Tab {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.tab
}

func (a *AnalyzeView) SetTab(t Tab) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tab = t
}

// NextTab cycles forward through [Tabs].
func (a *AnalyzeView) NextTab() Tab {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tab = Tabs[(int(a.tab)+1)%len(Tabs)]
	return a.tab
}

// NewEntry discards the pending playlist and starts a new journal entry.
func (a *AnalyzeView) NewEntry() {
	if err := a.pointer.Clear(); err != nil {
		a.logger.Warn("failed to clear session pointer", "error", err)
	}
	a.reset()
	a.navigator.Navigate(nav.RouteJournal)
}

// ViewAll moves to the playlist list.
func (a *AnalyzeView) ViewAll() {
	a.navigator.Navigate(nav.RoutePlaylists)
}

// OpenExternal opens the playlist in the music app.
func (a *AnalyzeView) OpenExternal() error {
	p, ok := a.Playlist()
	if !ok || p.ExternalURL == "" {
		return fmt.Errorf("%w: no external link", shared.ErrInvalidArgument)
	}
	return a.browser(p.ExternalURL)
}

func (a *AnalyzeView) reset() {
	a.state.reset()
	a.SetTab(TabEmotions)
}
