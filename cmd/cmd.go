// submodule cmd contains command definitions
package main

import (
	"time"

	"github.com/urfave/cli/v3"
)

// setupCommand writes the config file and prepares durable storage.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create config.toml and initialize local storage",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "api-url",
				Usage: "Save this backend URL as api.base_url",
			},
			&cli.BoolFlag{
				Name:  "reset",
				Usage: "Forget the stored session and preferences",
			},
		},
		Action: r.Setup,
	}
}

// authCommand handles the Spotify sign-in brokered by the backend.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Connect or disconnect your Spotify account",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Sign in through the browser and receive the redirect locally",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "code",
						Usage: "Exchange an authorization code directly instead of waiting for the redirect",
					},
					&cli.BoolFlag{
						Name:  "no-browser",
						Usage: "Print the sign-in URL without opening a browser",
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "How long to wait for the redirect",
						Value: 2 * time.Minute,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Forget the stored session",
				Action: r.AuthLogout,
			},
			{
				Name:  "status",
				Usage: "Show the signed-in user",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AuthStatus,
			},
			{
				Name:   "url",
				Usage:  "Print the sign-in URL",
				Action: r.AuthURL,
			},
			{
				Name:  "callback",
				Usage: "Complete sign-in from a redirect URL copied from the browser",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "url"},
				},
				Action: r.AuthCallback,
			},
		},
	}
}

// journalCommand submits an entry for analysis.
func journalCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "journal",
		Aliases: []string{"write"},
		Usage:   "Write a journal entry and generate a playlist for its mood",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "text"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Read the entry from a file (- for stdin)",
			},
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Playlist name (default: MoodShift <date>)",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: text, markdown, json",
				Value: "text",
			},
		},
		Action: r.Journal,
	}
}

// playlistsCommand browses generated playlists.
func playlistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlists",
		Aliases: []string{"pl"},
		Usage:   "Browse your generated playlists",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List every playlist, newest first",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.PlaylistsList,
			},
			{
				Name:  "show",
				Usage: "Show the mood analysis behind a playlist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "Output format: text, markdown, json",
						Value: "text",
					},
					&cli.BoolFlag{
						Name:  "open",
						Usage: "Open the playlist in Spotify",
					},
				},
				Action: r.PlaylistsShow,
			},
			{
				Name:  "export",
				Usage: "Export playlists to a file or directory",
				Description: "Without --id, csv and json write every playlist to one file; markdown and text write\n" +
					"one file (or directory) per playlist plus export_manifest.json.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "id",
						Usage: "Export a single playlist (markdown export includes the cover image)",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Output format: csv, json, markdown, text",
						Value: "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file, or directory for markdown and per-playlist exports",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent exports when writing one file per playlist",
						Value: 5,
					},
				},
				Action: r.PlaylistsExport,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive terminal client",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where to write logs while the TUI is running",
				Value: "./tmp/moodshift-tui.log",
			},
		},
		Action: r.TUI,
	}
}
