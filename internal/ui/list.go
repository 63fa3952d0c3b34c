package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/moodshift/internal/models"
	"github.com/samber/lo"
)

var _ list.Item = playlistItem{}

// playlistItem wraps [models.Playlist] to implement [list.Item].
type playlistItem struct {
	playlist models.Playlist
}

func (i playlistItem) FilterValue() string { return i.playlist.Name }
func (i playlistItem) Title() string       { return i.playlist.Name }
func (i playlistItem) Description() string {
	desc := fmt.Sprintf("%s • %d tracks", i.playlist.EmotionalAnalysis.PrimaryMood, i.playlist.TrackCount)
	if !i.playlist.CreatedAt.IsZero() {
		desc = fmt.Sprintf("%s • %s", desc, i.playlist.CreatedAt.Format("Jan 2, 2006"))
	}
	return desc
}

func playlistItems(playlists []models.Playlist) []list.Item {
	return lo.Map(playlists, func(p models.Playlist, _ int) list.Item {
		return playlistItem{playlist: p}
	})
}
