// Package models defines the data returned by the MoodShift backend.
//
// All types are read-only on the client: the backend creates them and the client only displays them.
//
//   - [User] : the authenticated account, owned by the auth provider for the session
//   - [Playlist] : a generated playlist with its embedded [EmotionalAnalysis]
//   - [EmotionalAnalysis] : mood labels, intensity, keywords and [AudioFeatures]
//   - [Mood] : closed enumeration over the backend's open set of mood labels, with [MoodUnknown] as the fallback
package models
