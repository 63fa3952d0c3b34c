// package models defines the data model for the mood playlist client
package models

import (
	"fmt"
	"time"
)

// User is the account signed in through the backend's OAuth exchange.
type User struct {
	ID              string    `json:"id"`
	SpotifyID       string    `json:"spotify_id"`
	DisplayName     string    `json:"display_name"`
	Email           string    `json:"email"`
	ProfileImageURL string    `json:"profile_image_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AudioFeatures are the sonic descriptors the backend derived from the analysis.
//
// All fields except Tempo are normalized to [0,1]; Tempo is in BPM.
type AudioFeatures struct {
	Valence          float64 `json:"valence"`
	Energy           float64 `json:"energy"`
	Tempo            float64 `json:"tempo"`
	Danceability     float64 `json:"danceability"`
	Acousticness     float64 `json:"acousticness"`
	Instrumentalness float64 `json:"instrumentalness"`
}

// FeatureBar is one normalized audio feature drawn as a bar.
type FeatureBar struct {
	Label   string
	Value   float64
	Percent int
}

// Bars returns the normalized features in display order. Tempo is not a bar.
func (f AudioFeatures) Bars() []FeatureBar {
	bar := func(label string, v float64) FeatureBar {
		return FeatureBar{Label: label, Value: v, Percent: Percent(v)}
	}
	return []FeatureBar{
		bar("Valence (Positivity)", f.Valence),
		bar("Energy", f.Energy),
		bar("Danceability", f.Danceability),
		bar("Acousticness", f.Acousticness),
		bar("Instrumentalness", f.Instrumentalness),
	}
}

// FormatTempo renders a tempo in beats per minute.
func FormatTempo(bpm float64) string {
	return fmt.Sprintf("%.0f BPM", bpm)
}

// EmotionalAnalysis is the backend's classification of a journal entry.
type EmotionalAnalysis struct {
	PrimaryMood     string        `json:"primary_mood"`
	SecondaryMood   string        `json:"secondary_mood,omitempty"`
	MoodIntensity   float64       `json:"mood_intensity"`
	MoodDescription string        `json:"mood_description"`
	Keywords        []string      `json:"keywords,omitempty"`
	AudioFeatures   AudioFeatures `json:"audio_features"`
}

// Mood returns the enumerated primary mood.
func (a EmotionalAnalysis) Mood() Mood {
	return ParseMood(a.PrimaryMood)
}

// IntensityPercent returns the mood intensity as a rounded percentage clamped to [0,100].
func (a EmotionalAnalysis) IntensityPercent() int {
	return Percent(a.MoodIntensity)
}

// Playlist is a playlist generated from one journal entry.
type Playlist struct {
	ID                string            `json:"id"`
	UserID            string            `json:"user_id"`
	SpotifyID         string            `json:"spotify_id"`
	Name              string            `json:"name"`
	Description       string            `json:"description,omitempty"`
	CurhatanText      string            `json:"curhatan_text"`
	EmotionalAnalysis EmotionalAnalysis `json:"emotional_analysis"`
	TrackCount        int               `json:"track_count"`
	ImageURL          string            `json:"image_url,omitempty"`
	ExternalURL       string            `json:"external_url"`
	CreatedAt         time.Time         `json:"created_at"`
}

// Summary returns the description, or a generated line naming the primary mood when the backend left it empty.
func (p Playlist) Summary() string {
	if p.Description != "" {
		return p.Description
	}
	return "Generated based on your mood: " + p.EmotionalAnalysis.PrimaryMood
}

// LoginResult is the payload of a successful authorization code exchange.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CreatePlaylistRequest is the body of POST /playlists.
type CreatePlaylistRequest struct {
	CurhatanText string `json:"curhatan_text"`
	PlaylistName string `json:"playlist_name,omitempty"`
}

// Percent converts a normalized value to a whole percentage in [0,100].
func Percent(v float64) int {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 100
	default:
		return int(v*100 + 0.5)
	}
}
