// Package services implements the HTTP client for the MoodShift backend.
//
// # Result
//
// Operations never return Go errors. Each returns a [Result] that is either a success carrying data
// or a failure carrying a non-empty message, and callers branch on [Result.Success] explicitly.
// [Result.Err] converts a failure to an error wrapping [shared.ErrAPIRequest] for CLI commands.
//
// # Requests
//
// Every request is sent to one base URL with a JSON content type and an X-Request-ID header.
// When the [TokenSource] holds a token it is attached as a bearer Authorization header
// through [oauth2.Token.SetAuthHeader]; otherwise the request goes out unauthenticated.
//
// Requests can be paced with a [rate.Limiter] (api.rate_limit). There is no automatic retry.
//
// # Failure Normalization
//
//   - transport failure or cancelled context: the underlying error message, or "network error"
//   - non-2xx status: the envelope's error field, or "an unknown error occurred (status N)"
//   - 2xx with success false: the envelope's error field, or "an unknown error occurred"
//   - malformed or non-JSON body: "an unknown error occurred"
//
// # Endpoints
//
//   - GET  /auth/spotify          (browser redirect, see [Client.AuthRedirectURL])
//   - GET  /auth/callback?code=   [Client.ExchangeCode]
//   - GET  /auth/me               [Client.CurrentUser]
//   - POST /playlists             [Client.CreatePlaylist]
//   - GET  /playlists             [Client.ListPlaylists]
//   - GET  /playlists/{id}        [Client.GetPlaylist]
package services
