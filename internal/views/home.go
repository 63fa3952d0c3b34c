package views

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodshift/internal/nav"
	"github.com/desertthunder/moodshift/internal/services"
	"github.com/desertthunder/moodshift/internal/shared"
	"github.com/desertthunder/moodshift/internal/storage"
)

// HomeView is the landing page.
type HomeView struct {
	api       services.API
	session   Session
	navigator nav.Navigator
	prefs     *storage.Preferences
	browser   shared.BrowserOpener
	logger    *log.Logger

	mu   sync.RWMutex
	dark bool
}

// ConnectURL is where the browser goes to connect a Spotify account.
func (h *HomeView) ConnectURL() string {
	return h.api.AuthRedirectURL()
}

// Connect opens [HomeView.ConnectURL] in the system browser.
func (h *HomeView) Connect() error {
	url := h.ConnectURL()
	h.logger.Debug("opening browser", "url", url)
	return h.browser(url)
}

func (h *HomeView) IsAuthenticated() bool {
	return h.session.IsAuthenticated()
}

// Start moves on to the journal.
func (h *HomeView) Start() {
	h.navigator.Navigate(nav.RouteJournal)
}

func (h *HomeView) DarkMode() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dark
}

// ToggleDarkMode flips and persists the theme, returning the new value.
func (h *HomeView) ToggleDarkMode() bool {
	h.mu.Lock()
	h.dark = !h.dark
	dark := h.dark
	h.mu.Unlock()

	if err := h.prefs.SetDarkMode(dark); err != nil {
		h.logger.Warn("failed to persist theme", "error", err)
	}
	return dark
}
