// Package ui implements the interactive terminal client using bubbletea's Elm architecture.
//
// The [Model] renders one page per [nav.Route] and delegates every action to the page controllers
// in package views:
//  1. Home : connect a Spotify account, start writing, toggle the theme
//  2. Journal : write an entry (textarea) and an optional playlist name, then submit for analysis
//  3. Analyze : Emotions, Journal and Playlist tabs for the current playlist
//  4. Playlists : browse generated playlists with a detail pane
//  5. Callback : wait for the OAuth redirect, or paste the redirect URL by hand
//
// Network calls run as tea.Cmd functions and report back through the Msg union. The model does not track
// routes itself: after each update it compares the navigator's current route with the one it last rendered
// and enters the new page. Notifications raised by the controllers are drained from a [nav.Queue] and shown
// as toasts that expire after a few seconds.
//
// Header and footer chrome follow the original web layout: the header shows the app name, the signed-in user
// and the theme; the footer shows contextual key help via charmbracelet/bubbles/help.
package ui
