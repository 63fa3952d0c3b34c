// Package server runs the loopback HTTP listener that receives the OAuth redirect.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
// [RequestLogger] is the only middleware the client installs.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Callback Handler
//
// The backend brokers the Spotify OAuth exchange and sends the browser back to /callback with either a code or
// an error. [CallbackHandler] passes the query to a [CallbackProcessor] (the Callback view), renders a page for
// the browser, and reports the outcome through a channel.
//
// It only processes one callback; later hits are rejected.
//
// # Lifecycle
//
// [Server] binds the configured address, serves in the background and is shut down by the CLI once a result
// arrives or the login times out.
package server
