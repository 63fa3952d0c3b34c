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
	"github.com/samber/lo"
)

// PlaylistsView lists the user's playlists with one selected for the detail pane.
type PlaylistsView struct {
	api       services.API
	session   Session
	pointer   *storage.SessionPointer
	navigator nav.Navigator
	notifier  nav.Notifier
	browser   shared.BrowserOpener
	logger    *log.Logger

	state state[[]models.Playlist]

	mu       sync.RWMutex
	selected int
}

// Enter fetches every playlist and selects the first.
func (p *PlaylistsView) Enter(ctx context.Context) ([]models.Playlist, error) {
	if !p.session.IsAuthenticated() {
		p.notifier.Notify(nav.Error("Login required", "Please connect your Spotify account first"))
		p.navigator.Navigate(nav.RouteJournal)
		p.state.fail(shared.ErrNotAuthenticated)
		return nil, shared.ErrNotAuthenticated
	}

	p.state.begin()
	res := p.api.ListPlaylists(ctx)
	if !res.Success {
		err := res.Err()
		p.state.fail(err)
		p.notifier.Notify(nav.Error("Error", res.Error))
		return nil, err
	}

	p.state.succeed(res.Data)
	p.mu.Lock()
	p.selected = lo.Ternary(len(res.Data) > 0, 0, -1)
	p.mu.Unlock()

	p.logger.Debug("playlists loaded", "count", len(res.Data))
	return res.Data, nil
}

// Playlists returns the loaded playlists.
func (p *PlaylistsView) Playlists() []models.Playlist {
	playlists, _ := p.state.get()
	return playlists
}

func (p *PlaylistsView) Loading() bool { return p.state.isLoading() }

func (p *PlaylistsView) Err() error { return p.state.lastErr() }

// Selected returns the playlist in the detail pane.
func (p *PlaylistsView) Selected() (models.Playlist, bool) {
	playlists := p.Playlists()

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.selected < 0 || p.selected >= len(playlists) {
		return models.Playlist{}, false
	}
	return playlists[p.selected], true
}

// SelectedIndex is the position of the selected playlist, or -1.
func (p *PlaylistsView) SelectedIndex() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.selected
}

// Select changes the detail pane to the playlist at i. It never makes a request.
func (p *PlaylistsView) Select(i int) error {
	if i < 0 || i >= len(p.Playlists()) {
		return fmt.Errorf("%w: playlist index %d out of range", shared.ErrInvalidArgument, i)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.selected = i
	return nil
}

// SelectByID changes the detail pane to the playlist with id. It never makes a request.
func (p *PlaylistsView) SelectByID(id string) error {
	_, i, ok := lo.FindIndexOf(p.Playlists(), func(pl models.Playlist) bool { return pl.ID == id })
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
	}
	return p.Select(i)
}

// ViewDetails hands the selected playlist to the Analyze view.
func (p *PlaylistsView) ViewDetails() error {
	selected, ok := p.Selected()
	if !ok {
		return ErrNoSelection
	}

	if err := p.pointer.Set(selected.ID); err != nil {
		return err
	}
	p.navigator.Navigate(nav.RouteAnalyze)
	return nil
}

// NewEntry starts a new journal entry.
func (p *PlaylistsView) NewEntry() {
	p.navigator.Navigate(nav.RouteJournal)
}

// OpenExternal opens the selected playlist in the music app.
func (p *PlaylistsView) OpenExternal() error {
	selected, ok := p.Selected()
	if !ok {
		return ErrNoSelection
	}
	if selected.ExternalURL == "" {
		return fmt.Errorf("%w: no external link", shared.ErrInvalidArgument)
	}
	return p.browser(selected.ExternalURL)
}

func (p *PlaylistsView) reset() {
	p.state.reset()
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selected = -1
}
