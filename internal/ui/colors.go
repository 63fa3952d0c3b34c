package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/moodshift/internal/models"
	"github.com/desertthunder/moodshift/internal/nav"
)

var (
	darkStyles  = NewPalette(Theme{Accent: "#7D56F4", OK: "#04B575", Err: "#FF5F87", Warn: "#FFA500", Muted: "#8A8A8A", Text: "#EDEDED"})
	lightStyles = NewPalette(Theme{Accent: "#5A3FC0", OK: "#00875A", Err: "#C62828", Warn: "#B26A00", Muted: "#6B6B6B", Text: "#1A1A1A"})
)

// Theme holds the hex colors a [Palette] is built from.
type Theme struct {
	Accent string
	OK     string
	Err    string
	Warn   string
	Muted  string
	Text   string
}

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title  lipgloss.Style
	ok     lipgloss.Style
	err    lipgloss.Style
	warn   lipgloss.Style
	help   lipgloss.Style
	text   lipgloss.Style
	muted  lipgloss.Style
	accent lipgloss.Style
	tab    lipgloss.Style
	active lipgloss.Style
	toast  lipgloss.Style
	pane   lipgloss.Style
	theme  Theme
}

func NewPalette(t Theme) *Palette {
	return &Palette{
		title:  NewBold(t.Accent).MarginBottom(1),
		ok:     NewBold(t.OK),
		err:    NewBold(t.Err),
		warn:   NewStyle(t.Warn),
		help:   NewEm(t.Muted),
		text:   NewStyle(t.Text),
		muted:  NewStyle(t.Muted),
		accent: NewBold(t.Accent),
		tab:    NewStyle(t.Muted).Padding(0, 2),
		active: NewBold(t.Accent).Padding(0, 2).Underline(true),
		toast:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		pane:   lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color(t.Muted)).Padding(0, 1),
		theme:  t,
	}
}

// paletteFor picks the stylesheet for the current theme.
func paletteFor(dark bool) *Palette {
	if dark {
		return darkStyles
	}
	return lightStyles
}

// MoodColor is the hex color a mood is drawn in.
func MoodColor(m models.Mood) string {
	switch m {
	case models.MoodHappy:
		return "#F5C542"
	case models.MoodSad:
		return "#5B8DEF"
	case models.MoodAngry:
		return "#E5484D"
	case models.MoodCalm:
		return "#4CC38A"
	case models.MoodEnergetic:
		return "#FF8A3D"
	case models.MoodAnxious:
		return "#B07CFF"
	case models.MoodNostalgic:
		return "#D4A373"
	case models.MoodRomantic:
		return "#FF6FAE"
	case models.MoodFocused:
		return "#3DD6D0"
	case models.MoodUnknown:
		return "#8A8A8A"
	default:
		return "#8A8A8A"
	}
}

func (p *Palette) mood(m models.Mood) lipgloss.Style {
	return NewBold(MoodColor(m))
}

func (p *Palette) level(l nav.Level) lipgloss.Style {
	switch l {
	case nav.LevelSuccess:
		return p.toast.BorderForeground(lipgloss.Color(p.theme.OK))
	case nav.LevelError:
		return p.toast.BorderForeground(lipgloss.Color(p.theme.Err))
	default:
		return p.toast.BorderForeground(lipgloss.Color(p.theme.Accent))
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
