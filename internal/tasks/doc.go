// Package tasks runs long-running playlist operations with progress reporting.
//
// # Bulk Export
//
// [Exporter.BulkExport] writes many playlists to one output directory through a bounded worker pool:
//
//   - a producer paces [Fetcher.GetPlaylist] calls with a [rate.Limiter] and queues each fetched playlist
//   - workers render each playlist in the requested [formatter.Format]
//   - a failed fetch or write is recorded against that playlist and the rest continue
//   - export_manifest.json summarizes the outcome
//
// Markdown exports get one directory per playlist (README.md plus cover.jpg when an image is available);
// other formats get one file per playlist named after its ID.
//
// # Progress Reporting
//
// Progress is sent as [ProgressUpdate] values on an optional channel. Sends never block: when the
// receiver is not ready the update is dropped.
package tasks
