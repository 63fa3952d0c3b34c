package models

import "strings"

// Mood is a categorical emotional label assigned by the backend.
type Mood int

const (
	MoodUnknown Mood = iota
	MoodHappy
	MoodSad
	MoodAngry
	MoodCalm
	MoodEnergetic
	MoodAnxious
	MoodNostalgic
	MoodRomantic
	MoodFocused
)

// Moods lists every known mood in display order.
var Moods = []Mood{
	MoodHappy, MoodSad, MoodAngry, MoodCalm, MoodEnergetic,
	MoodAnxious, MoodNostalgic, MoodRomantic, MoodFocused,
}

// ParseMood maps a backend label to a [Mood], case-insensitively.
//
// Labels the client does not know yet map to [MoodUnknown].
func ParseMood(label string) Mood {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "happy":
		return MoodHappy
	case "sad":
		return MoodSad
	case "angry":
		return MoodAngry
	case "calm":
		return MoodCalm
	case "energetic":
		return MoodEnergetic
	case "anxious":
		return MoodAnxious
	case "nostalgic":
		return MoodNostalgic
	case "romantic":
		return MoodRomantic
	case "focused":
		return MoodFocused
	default:
		return MoodUnknown
	}
}

func (m Mood) String() string {
	switch m {
	case MoodHappy:
		return "Happy"
	case MoodSad:
		return "Sad"
	case MoodAngry:
		return "Angry"
	case MoodCalm:
		return "Calm"
	case MoodEnergetic:
		return "Energetic"
	case MoodAnxious:
		return "Anxious"
	case MoodNostalgic:
		return "Nostalgic"
	case MoodRomantic:
		return "Romantic"
	case MoodFocused:
		return "Focused"
	default:
		return "Unknown"
	}
}
