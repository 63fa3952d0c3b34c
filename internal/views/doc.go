// Package views implements the page controllers of the client: Home, Journal, Analyze, Playlists and the
// OAuth Callback.
//
// Each view keeps its own loading/result/error state and exposes read accessors that a renderer (the TUI
// or a CLI command) draws from. Views never render anything themselves.
//
// # Container
//
// [Container] is the single place shared state is built: the token store, the session pointer, the auth
// provider, the API client and every view. Construct it with [NewContainer], call [Container.Init] once,
// and tear it down with [Container.Logout].
//
// # Preconditions
//
// Views that need a signed-in user or a pending playlist check on entry. A failed check redirects through
// the [nav.Navigator], posts a notification, and returns [shared.ErrNotAuthenticated] or
// [ErrNoPendingPlaylist]. Journal text shorter than [MinJournalLength] is rejected with
// [ErrJournalTooShort] before any request is made.
package views
