package storage

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodshift/internal/shared"
)

// Keys used by the typed stores.
const (
	TokenKey           = "moodshift_token"
	CurrentPlaylistKey = "currentPlaylistId"
	DarkModeKey        = "moodshift_theme"
)

// keyed is a single-key view over a [Storage].
//
// Read failures are logged and reported as absent, so callers only branch on presence.
type keyed struct {
	store  Storage
	key    string
	logger *log.Logger
}

func newKeyed(store Storage, key string, logger *log.Logger) keyed {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return keyed{store: store, key: key, logger: logger}
}

func (k keyed) get() (string, bool) {
	v, ok, err := k.store.Get(k.key)
	if err != nil {
		k.logger.Warn("storage read failed", "key", k.key, "error", err)
		return "", false
	}
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// set stores value, refusing blanks so a write is always readable back.
func (k keyed) set(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: blank value for %s", shared.ErrInvalidInput, k.key)
	}
	return k.store.Set(k.key, value)
}

// TokenStore holds the bearer token in durable storage.
type TokenStore struct {
	keyed
}

// NewTokenStore creates a [TokenStore] over store, normally a [LocalStorage].
func NewTokenStore(store Storage, logger *log.Logger) *TokenStore {
	return &TokenStore{keyed: newKeyed(store, TokenKey, logger)}
}

// Get returns the stored token, if any.
func (t *TokenStore) Get() (string, bool) { return t.get() }

// Set stores token.
func (t *TokenStore) Set(token string) error { return t.set(token) }

// Clear removes the token.
func (t *TokenStore) Clear() error { return t.store.Remove(t.key) }

// SessionPointer hands the id of a just-created playlist from the journal flow to the results flow.
//
// It must be cleared or overwritten before a new journal entry starts.
type SessionPointer struct {
	keyed
}

// NewSessionPointer creates a [SessionPointer] over store, normally a [SessionStorage].
func NewSessionPointer(store Storage, logger *log.Logger) *SessionPointer {
	return &SessionPointer{keyed: newKeyed(store, CurrentPlaylistKey, logger)}
}

// Get returns the current playlist id, if any.
func (p *SessionPointer) Get() (string, bool) { return p.get() }

// Set points at playlistID.
func (p *SessionPointer) Set(playlistID string) error { return p.set(playlistID) }

// Clear removes the pointer.
func (p *SessionPointer) Clear() error { return p.store.Remove(p.key) }

// Preferences stores UI preferences in durable storage.
type Preferences struct {
	keyed
}

// NewPreferences creates [Preferences] over store.
func NewPreferences(store Storage, logger *log.Logger) *Preferences {
	return &Preferences{keyed: newKeyed(store, DarkModeKey, logger)}
}

// DarkMode reports the stored dark mode flag, falling back to def when unset.
func (p *Preferences) DarkMode(def bool) bool {
	v, ok := p.get()
	if !ok {
		return def
	}
	dark, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return dark
}

// SetDarkMode persists the dark mode flag.
func (p *Preferences) SetDarkMode(dark bool) error {
	return p.set(strconv.FormatBool(dark))
}
