package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/moodshift/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgSessionRestored MsgKind = iota
	MsgPlaylistCreated
	MsgPlaylistLoaded
	MsgPlaylistsFetched
	MsgCallbackHandled
	MsgActionFailed
	MsgToastExpired
)

type playlistResult struct {
	playlist models.Playlist
	err      error
}

type playlistsResult struct {
	playlists []models.Playlist
	err       error
}

// sessionRestoredMsg is the constructor for [MsgSessionRestored]
func sessionRestoredMsg() Msg {
	return Msg{kind: MsgSessionRestored}
}

// playlistCreatedMsg is the constructor for [MsgPlaylistCreated]
func playlistCreatedMsg(playlist models.Playlist, err error) Msg {
	return Msg{kind: MsgPlaylistCreated, data: playlistResult{playlist, err}}
}

// playlistLoadedMsg is the constructor for [MsgPlaylistLoaded]
func playlistLoadedMsg(playlist models.Playlist, err error) Msg {
	return Msg{kind: MsgPlaylistLoaded, data: playlistResult{playlist, err}}
}

// playlistsFetchedMsg is the constructor for [MsgPlaylistsFetched]
func playlistsFetchedMsg(playlists []models.Playlist, err error) Msg {
	return Msg{kind: MsgPlaylistsFetched, data: playlistsResult{playlists, err}}
}

// callbackHandledMsg is the constructor for [MsgCallbackHandled]
func callbackHandledMsg(err error) Msg {
	return Msg{kind: MsgCallbackHandled, data: err}
}

// actionFailedMsg is the constructor for [MsgActionFailed]
func actionFailedMsg(err error) Msg {
	return Msg{kind: MsgActionFailed, data: err}
}

// toastExpiredMsg is the constructor for [MsgToastExpired]
func toastExpiredMsg() Msg {
	return Msg{kind: MsgToastExpired}
}

func (m Msg) err() error {
	switch d := m.data.(type) {
	case error:
		return d
	case playlistResult:
		return d.err
	case playlistsResult:
		return d.err
	default:
		return nil
	}
}
