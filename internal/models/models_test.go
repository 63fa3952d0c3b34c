package models

import (
	"encoding/json"
	"testing"
)

func TestParseMood(t *testing.T) {
	tc := []struct {
		label string
		want  Mood
	}{
		{label: "Happy", want: MoodHappy},
		{label: "sad", want: MoodSad},
		{label: "  NOSTALGIC ", want: MoodNostalgic},
		{label: "Focused", want: MoodFocused},
		{label: "Melancholic", want: MoodUnknown},
		{label: "", want: MoodUnknown},
	}

	for _, tt := range tc {
		t.Run(tt.label, func(t *testing.T) {
			if got := ParseMood(tt.label); got != tt.want {
				t.Errorf("ParseMood(%q) = %v, want %v", tt.label, got, tt.want)
			}
		})
	}

	t.Run("every known mood parses from its name", func(t *testing.T) {
		for _, m := range Moods {
			if got := ParseMood(m.String()); got != m {
				t.Errorf("ParseMood(%q) = %v", m.String(), got)
			}
		}
	})
}

func TestPercent(t *testing.T) {
	tc := []struct {
		in   float64
		want int
	}{
		{in: -0.2, want: 0},
		{in: 0, want: 0},
		{in: 0.004, want: 0},
		{in: 0.456, want: 46},
		{in: 0.72, want: 72},
		{in: 1, want: 100},
		{in: 1.3, want: 100},
	}

	for _, tt := range tc {
		if got := Percent(tt.in); got != tt.want {
			t.Errorf("Percent(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestAudioFeatures(t *testing.T) {
	t.Run("Bars", func(t *testing.T) {
		bars := AudioFeatures{Valence: 0.214, Energy: 1.3, Danceability: -0.1, Acousticness: 0.5, Instrumentalness: 0}.Bars()
		if len(bars) != 5 {
			t.Fatalf("expected 5 bars, got %d", len(bars))
		}
		want := []int{21, 100, 0, 50, 0}
		for i, bar := range bars {
			if bar.Percent != want[i] {
				t.Errorf("%s: expected %d%%, got %d%%", bar.Label, want[i], bar.Percent)
			}
		}
	})

	t.Run("FormatTempo", func(t *testing.T) {
		if got := FormatTempo(121.6); got != "122 BPM" {
			t.Errorf("unexpected tempo %s", got)
		}
	})
}

func TestPlaylist(t *testing.T) {
	t.Run("decodes backend payload", func(t *testing.T) {
		payload := `{
			"id": "p123",
			"user_id": "u1",
			"spotify_id": "sp1",
			"name": "MoodShift 2026-10-18",
			"curhatan_text": "hari ini aku senang sekali",
			"emotional_analysis": {
				"primary_mood": "Happy",
				"mood_intensity": 0.8,
				"mood_description": "Bright",
				"keywords": ["senang", "teman"],
				"audio_features": {"valence": 0.9, "energy": 0.7, "tempo": 122.5}
			},
			"track_count": 20,
			"external_url": "https://open.spotify.com/playlist/sp1",
			"created_at": "2026-10-18T09:00:00Z"
		}`

		var p Playlist
		if err := json.Unmarshal([]byte(payload), &p); err != nil {
			t.Fatalf("failed to decode: %v", err)
		}

		if p.EmotionalAnalysis.Mood() != MoodHappy {
			t.Errorf("expected happy mood, got %v", p.EmotionalAnalysis.Mood())
		}
		if p.EmotionalAnalysis.IntensityPercent() != 80 {
			t.Errorf("expected 80%% intensity, got %d", p.EmotionalAnalysis.IntensityPercent())
		}
		if p.EmotionalAnalysis.AudioFeatures.Tempo != 122.5 {
			t.Errorf("expected tempo 122.5, got %v", p.EmotionalAnalysis.AudioFeatures.Tempo)
		}
		if len(p.EmotionalAnalysis.Keywords) != 2 || p.EmotionalAnalysis.Keywords[0] != "senang" {
			t.Errorf("expected ordered keywords, got %v", p.EmotionalAnalysis.Keywords)
		}
	})

	t.Run("Summary falls back to mood", func(t *testing.T) {
		p := Playlist{EmotionalAnalysis: EmotionalAnalysis{PrimaryMood: "Calm"}}
		if got := p.Summary(); got != "Generated based on your mood: Calm" {
			t.Errorf("unexpected summary %q", got)
		}

		p.Description = "Soft songs"
		if got := p.Summary(); got != "Soft songs" {
			t.Errorf("unexpected summary %q", got)
		}
	})

	t.Run("CreatePlaylistRequest omits empty name", func(t *testing.T) {
		data, err := json.Marshal(CreatePlaylistRequest{CurhatanText: "text"})
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if string(data) != `{"curhatan_text":"text"}` {
			t.Errorf("unexpected body %s", data)
		}
	})
}
