package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/moodshift/internal/models"
	"github.com/desertthunder/moodshift/internal/nav"
	"github.com/desertthunder/moodshift/internal/views"
	"github.com/samber/lo"
)

const barWidth = 30

// View renders the header, the current page, pending toasts and the footer.
func (m *Model) View() string {
	p := paletteFor(m.app.Home.DarkMode())

	var body string
	switch m.route {
	case nav.RouteHome:
		body = m.renderHome(p)
	case nav.RouteJournal:
		body = m.renderJournal(p)
	case nav.RouteAnalyze:
		body = m.renderAnalyze(p)
	case nav.RoutePlaylists:
		body = m.renderPlaylists(p)
	case nav.RouteCallback:
		body = m.renderCallback(p)
	default:
		body = m.spinner.View() + " Loading..."
	}

	sections := []string{m.renderHeader(p), body}
	if toasts := m.renderToasts(p); toasts != "" {
		sections = append(sections, toasts)
	}
	sections = append(sections, m.renderFooter(p))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderHeader(p *Palette) string {
	left := p.accent.Render("♪ MoodShift") + p.muted.Render(" · "+m.route.String())

	status := p.muted.Render("Not connected")
	if m.app.Auth.Loading() {
		status = m.spinner.View() + p.muted.Render(" Restoring session")
	} else if user, ok := m.app.Auth.User(); ok {
		status = p.ok.Render("● ") + p.text.Render(user.DisplayName)
	}

	theme := lo.Ternary(m.app.Home.DarkMode(), "☾", "☀")
	right := status + "  " + p.muted.Render(theme)

	gap := max(2, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	return lipgloss.NewStyle().MarginBottom(1).Render(left + strings.Repeat(" ", gap) + right)
}

func (m *Model) renderFooter(p *Palette) string {
	return "\n" + m.help.ShortHelpView(m.footerKeys())
}

func (m *Model) footerKeys() []key.Binding {
	k := m.keys
	switch m.route {
	case nav.RouteHome:
		if m.app.Auth.IsAuthenticated() {
			return []key.Binding{k.start, k.library, k.theme, k.logout, k.quit}
		}
		return []key.Binding{k.connect, k.start, k.theme, k.quit}
	case nav.RouteJournal:
		return []key.Binding{k.submit, k.tab, k.back}
	case nav.RouteAnalyze:
		return []key.Binding{k.tab, k.newEntry, k.library, k.open, k.back, k.quit}
	case nav.RoutePlaylists:
		return []key.Binding{k.up, k.down, k.enter, k.newEntry, k.open, k.back, k.quit}
	case nav.RouteCallback:
		return []key.Binding{k.enter, k.back}
	default:
		return []key.Binding{k.quit}
	}
}

func (m *Model) renderToasts(p *Palette) string {
	if len(m.toasts) == 0 {
		return ""
	}

	shown := m.toasts[max(0, len(m.toasts)-maxToasts):]
	return lipgloss.JoinVertical(lipgloss.Left, lo.Map(shown, func(n nav.Notification, _ int) string {
		text := p.accent.Render(n.Title)
		if n.Description != "" {
			text += "\n" + p.text.Render(n.Description)
		}
		return p.level(n.Level).Render(text)
	})...)
}

func (m *Model) renderHome(p *Palette) string {
	var b strings.Builder
	b.WriteString(p.title.Render("Turn your feelings into music"))
	b.WriteString("\n")
	b.WriteString(p.text.Render("Write about your day. MoodShift reads the mood of your words and builds a Spotify playlist to match."))
	b.WriteString("\n\n")

	if m.app.Home.IsAuthenticated() {
		b.WriteString(p.ok.Render("Your Spotify account is connected."))
		b.WriteString("\n")
		b.WriteString(p.muted.Render("Press s to start writing or p to browse your playlists."))
		return b.String()
	}

	b.WriteString(p.warn.Render("Connect your Spotify account to begin."))
	b.WriteString("\n")
	b.WriteString(p.muted.Render("Press c to connect. Sign-in happens in your browser at:"))
	b.WriteString("\n")
	b.WriteString(p.help.Render(m.app.Home.ConnectURL()))
	return b.String()
}

func (m *Model) renderJournal(p *Palette) string {
	var b strings.Builder
	b.WriteString(p.title.Render("How are you feeling today?"))
	b.WriteString("\n")
	b.WriteString(m.journal.View())
	b.WriteString("\n")

	n := utf8.RuneCountInString(strings.TrimSpace(m.journal.Value()))
	counter := fmt.Sprintf("%d/%d characters", n, views.MinJournalLength)
	b.WriteString(lo.Ternary(n < views.MinJournalLength, p.warn, p.muted).Render(counter))
	b.WriteString("\n\n")
	b.WriteString(m.name.View())
	b.WriteString("\n\n")

	switch err := m.app.Journal.Err(); {
	case m.app.Journal.Loading():
		b.WriteString(m.spinner.View() + p.text.Render(" Analyzing your mood and building a playlist..."))
	case err != nil:
		b.WriteString(p.err.Render(err.Error()))
	case !m.app.Auth.IsAuthenticated():
		b.WriteString(p.muted.Render("Connect your Spotify account from the home page before submitting."))
	}
	return b.String()
}

func (m *Model) renderAnalyze(p *Palette) string {
	playlist, ok := m.app.Analyze.Playlist()
	switch {
	case m.app.Analyze.Loading() || (!ok && m.app.Analyze.Err() == nil):
		return m.spinner.View() + p.text.Render(" Loading your playlist...")
	case !ok:
		return p.err.Render(m.app.Analyze.Err().Error())
	}

	var b strings.Builder
	b.WriteString(p.title.Render(playlist.Name))
	b.WriteString("\n")
	b.WriteString(p.muted.Render(playlist.Summary()))
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs(p))
	b.WriteString("\n\n")

	switch m.app.Analyze.Tab() {
	case views.TabEmotions:
		b.WriteString(m.renderEmotions(p, playlist.EmotionalAnalysis))
	case views.TabJournal:
		b.WriteString(m.renderJournalText(p, playlist))
	case views.TabPlaylist:
		b.WriteString(m.renderPlaylistDetails(p, playlist))
	}
	return b.String()
}

func (m *Model) renderTabs(p *Palette) string {
	current := m.app.Analyze.Tab()
	return lipgloss.JoinHorizontal(lipgloss.Top, lo.Map(views.Tabs, func(t views.Tab, i int) string {
		label := fmt.Sprintf("%d %s", i+1, t)
		return lo.Ternary(t == current, p.active, p.tab).Render(label)
	})...)
}

func (m *Model) renderEmotions(p *Palette, a models.EmotionalAnalysis) string {
	mood := a.Mood()
	bar := progress.New(
		progress.WithSolidFill(MoodColor(mood)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s\n", p.muted.Render("Primary mood  "), p.mood(mood).Render(a.PrimaryMood)))
	b.WriteString(fmt.Sprintf("%s %s %d%%\n", p.muted.Render("Intensity     "), bar.ViewAs(float64(a.IntensityPercent())/100), a.IntensityPercent()))
	if a.SecondaryMood != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", p.muted.Render("Secondary mood"), p.mood(models.ParseMood(a.SecondaryMood)).Render(a.SecondaryMood)))
	}
	if a.MoodDescription != "" {
		b.WriteString("\n" + p.text.Render(a.MoodDescription) + "\n")
	}
	if len(a.Keywords) > 0 {
		b.WriteString("\n" + p.muted.Render("Keywords ") + p.accent.Render(strings.Join(a.Keywords, " · ")) + "\n")
	}

	b.WriteString("\n" + p.accent.Render("Audio features") + "\n")
	for _, f := range a.AudioFeatures.Bars() {
		b.WriteString(fmt.Sprintf("  %-22s %s %3d%%\n", f.Label, bar.ViewAs(float64(f.Percent)/100), f.Percent))
	}
	b.WriteString(fmt.Sprintf("  %-22s %s", "Tempo", models.FormatTempo(a.AudioFeatures.Tempo)))
	return b.String()
}

func (m *Model) renderJournalText(p *Palette, playlist models.Playlist) string {
	width := max(40, m.width-4)
	return p.text.Width(width).Render(playlist.CurhatanText)
}

func (m *Model) renderPlaylistDetails(p *Palette, playlist models.Playlist) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s\n", p.muted.Render("Name   "), p.text.Render(playlist.Name)))
	b.WriteString(fmt.Sprintf("%s %d\n", p.muted.Render("Tracks "), playlist.TrackCount))
	if !playlist.CreatedAt.IsZero() {
		b.WriteString(fmt.Sprintf("%s %s\n", p.muted.Render("Created"), playlist.CreatedAt.Format("January 2, 2006")))
	}
	if playlist.ExternalURL != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", p.muted.Render("Link   "), p.help.Render(playlist.ExternalURL)))
		b.WriteString("\n" + p.ok.Render("Press o to open in Spotify"))
	}
	return b.String()
}

func (m *Model) renderPlaylists(p *Palette) string {
	playlists := m.app.Playlists.Playlists()
	switch {
	case m.app.Playlists.Loading():
		return m.spinner.View() + p.text.Render(" Loading your playlists...")
	case m.app.Playlists.Err() != nil && len(playlists) == 0:
		return p.err.Render(m.app.Playlists.Err().Error())
	case len(playlists) == 0:
		return p.muted.Render("No playlists yet. Press n to write your first entry.")
	}

	detail := p.muted.Render("Select a playlist")
	if selected, ok := m.app.Playlists.Selected(); ok {
		detail = m.renderPlaylistCard(p, selected)
	}

	paneWidth := max(30, m.width/2-4)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.playlistList.View(),
		p.pane.Width(paneWidth).Render(detail),
	)
}

func (m *Model) renderPlaylistCard(p *Palette, playlist models.Playlist) string {
	a := playlist.EmotionalAnalysis

	var b strings.Builder
	b.WriteString(p.accent.Render(playlist.Name) + "\n")
	b.WriteString(p.mood(a.Mood()).Render(a.PrimaryMood) + p.muted.Render(fmt.Sprintf(" · %d%%", a.IntensityPercent())) + "\n\n")
	b.WriteString(p.text.Render(playlist.Summary()) + "\n\n")
	b.WriteString(p.muted.Render(fmt.Sprintf("%d tracks", playlist.TrackCount)))
	if !playlist.CreatedAt.IsZero() {
		b.WriteString(p.muted.Render(" · " + playlist.CreatedAt.Format("Jan 2, 2006")))
	}
	if len(a.Keywords) > 0 {
		b.WriteString("\n" + p.help.Render(strings.Join(a.Keywords, ", ")))
	}
	b.WriteString("\n\n" + p.ok.Render("enter: view analysis details"))
	return b.String()
}

func (m *Model) renderCallback(p *Palette) string {
	var b strings.Builder

	switch {
	case m.app.Callback.Loading():
		b.WriteString(m.spinner.View() + p.text.Render(" Connecting to Spotify..."))
	case m.app.Callback.Failed():
		b.WriteString(p.err.Render("Authentication Failed") + "\n")
		b.WriteString(p.text.Render(m.app.Callback.Message()) + "\n")
		b.WriteString(p.muted.Render("Press enter to return home."))
	case m.waiting:
		b.WriteString(m.spinner.View() + p.text.Render(" Waiting for Spotify...") + "\n")
		b.WriteString(p.muted.Render("Complete the sign-in in your browser."))
	default:
		b.WriteString(p.text.Render("Sign in at:") + "\n")
		b.WriteString(p.help.Render(m.app.Home.ConnectURL()))
	}

	b.WriteString("\n\n" + p.muted.Render("Or paste the redirect URL:") + "\n")
	b.WriteString(m.redirect.View())
	return b.String()
}
