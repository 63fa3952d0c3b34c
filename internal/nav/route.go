package nav

import "sync"

// Route is a page of the client.
type Route int

const (
	RouteHome Route = iota
	RouteJournal
	RouteAnalyze
	RoutePlaylists
	RouteCallback
)

// Routes lists every route in menu order.
var Routes = []Route{RouteHome, RouteJournal, RouteAnalyze, RoutePlaylists, RouteCallback}

func (r Route) String() string {
	switch r {
	case RouteHome:
		return "Home"
	case RouteJournal:
		return "Journal"
	case RouteAnalyze:
		return "Analyze"
	case RoutePlaylists:
		return "Playlists"
	case RouteCallback:
		return "Callback"
	default:
		return "Unknown"
	}
}

// Path is the URL path the route was served at in the web client.
func (r Route) Path() string {
	switch r {
	case RouteHome:
		return "/"
	case RouteJournal:
		return "/journal"
	case RouteAnalyze:
		return "/analyze"
	case RoutePlaylists:
		return "/playlists"
	case RouteCallback:
		return "/callback"
	default:
		return "/"
	}
}

// Navigator moves between routes.
type Navigator interface {
	Navigate(to Route)
	Current() Route
}

// History is a [Navigator] that keeps every visited route.
type History struct {
	mu     sync.RWMutex
	stack  []Route
	onMove func(from, to Route)
}

var _ Navigator = (*History)(nil)

// NewHistory creates a [History] positioned at start.
func NewHistory(start Route) *History {
	return &History{stack: []Route{start}}
}

// OnChange registers fn to be called after every navigation, outside the lock.
func (h *History) OnChange(fn func(from, to Route)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onMove = fn
}

func (h *History) Navigate(to Route) {
	h.mu.Lock()
	from := h.stack[len(h.stack)-1]
	h.stack = append(h.stack, to)
	fn := h.onMove
	h.mu.Unlock()

	if fn != nil {
		fn(from, to)
	}
}

func (h *History) Current() Route {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.stack[len(h.stack)-1]
}

// Back returns to the previous route. It reports false at the first entry.
func (h *History) Back() (Route, bool) {
	h.mu.Lock()
	if len(h.stack) < 2 {
		current := h.stack[0]
		h.mu.Unlock()
		return current, false
	}
	from := h.stack[len(h.stack)-1]
	h.stack = h.stack[:len(h.stack)-1]
	to := h.stack[len(h.stack)-1]
	fn := h.onMove
	h.mu.Unlock()

	if fn != nil {
		fn(from, to)
	}
	return to, true
}

// Back returns to the page before the current one when n keeps a history, skipping the OAuth callback page.
// Without an earlier page it navigates to fallback.
func Back(n Navigator, fallback Route) Route {
	h, ok := n.(interface{ Back() (Route, bool) })
	if ok {
		for {
			to, moved := h.Back()
			if !moved {
				break
			}
			if to != RouteCallback {
				return to
			}
		}
	}

	if n.Current() != fallback {
		n.Navigate(fallback)
	}
	return fallback
}
