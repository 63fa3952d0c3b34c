// Package storage holds the client's key-value state.
//
// Two [Storage] implementations mirror the two lifetimes the client needs:
//   - [LocalStorage] : durable, SQLite-backed, survives restarts until explicitly cleared
//   - [SessionStorage] : in-memory, scoped to one process (one "tab")
//
// Typed wrappers sit on top of them:
//   - [TokenStore] : the bearer token, in local storage
//   - [SessionPointer] : the id of the playlist just created, in session storage
//   - [Preferences] : UI preferences such as dark mode, in local storage
//
// The client never tracks token expiry. A token is valid until the backend rejects it.
package storage
