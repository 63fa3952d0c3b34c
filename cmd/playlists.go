package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/moodshift/internal/formatter"
	"github.com/desertthunder/moodshift/internal/models"
	"github.com/desertthunder/moodshift/internal/shared"
	"github.com/desertthunder/moodshift/internal/tasks"
	"github.com/samber/lo"
	"github.com/urfave/cli/v3"
)

// PlaylistsList prints every generated playlist, newest first.
func (r *Runner) PlaylistsList(ctx context.Context, cmd *cli.Command) error {
	app, err := r.session(ctx)
	if err != nil {
		return err
	}

	playlists, err := app.Playlists.Enter(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, cmd.Bool("pretty"))
	}

	if len(playlists) == 0 {
		return r.writePlain("No playlists yet. Run 'moodshift journal' to create your first one.\n")
	}

	r.writePlainHeader(fmt.Sprintf("Your Playlists (%d)", len(playlists)))
	for i, p := range playlists {
		a := p.EmotionalAnalysis
		r.writePlain("%2d. %s\n", i+1, p.Name)
		r.writePlain("    %s %d%% • %d tracks", a.PrimaryMood, a.IntensityPercent(), p.TrackCount)
		if !p.CreatedAt.IsZero() {
			r.writePlain(" • %s", p.CreatedAt.Format("Jan 2, 2006"))
		}
		r.writePlain("\n    id: %s\n", p.ID)
	}
	return nil
}

// PlaylistsShow prints the analysis of one playlist, fetched the way the Analyze page does.
func (r *Runner) PlaylistsShow(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.StringArg("id"))
	if id == "" {
		return fmt.Errorf("%w: playlist id", shared.ErrMissingArgument)
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	app, err := r.session(ctx)
	if err != nil {
		return err
	}

	if err := app.Pointer.Set(id); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStorage, err)
	}

	playlist, err := app.Analyze.Enter(ctx)
	if err != nil {
		return err
	}

	data, err := formatter.Render(format, playlist)
	if err != nil {
		return err
	}
	if err := r.write(data); err != nil {
		return err
	}

	if cmd.Bool("open") {
		if err := app.Analyze.OpenExternal(); err != nil {
			return fmt.Errorf("failed to open playlist: %w", err)
		}
	}
	return nil
}

// PlaylistsExport writes playlists to disk.
//
// Without --id, csv and json put every playlist in one file while markdown and text run a bulk export with
// one entry per playlist. With --id a single playlist is written, markdown as a directory with its cover image.
func (r *Runner) PlaylistsExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	app, err := r.session(ctx)
	if err != nil {
		return err
	}

	output := cmd.String("output")
	id := strings.TrimSpace(cmd.String("id"))

	if id == "" {
		playlists, err := app.Playlists.Enter(ctx)
		if err != nil {
			return err
		}

		if format != formatter.FormatCSV && format != formatter.FormatJSON {
			return r.bulkExport(ctx, app.API, playlists, format, output, int(cmd.Int("workers")))
		}

		if output == "" {
			output = "playlists." + formatter.Extension(format)
		}
		if err := formatter.WriteFile(format, playlists, output); err != nil {
			return err
		}

		r.logger.Info("exported playlists", "count", len(playlists), "path", output)
		return r.writePlain("✓ Exported %d playlists to %s\n", len(playlists), output)
	}

	if err := app.Pointer.Set(id); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStorage, err)
	}
	playlist, err := app.Analyze.Enter(ctx)
	if err != nil {
		return err
	}

	if format == formatter.FormatMarkdown {
		result, err := formatter.WriteMarkdownExport(r.httpClient, playlist, output)
		if err != nil {
			return err
		}
		if result.Warning != nil {
			r.logger.Warn("cover image skipped", "error", result.Warning)
		}
		return r.writePlain("✓ Exported %s to %s\n", playlist.Name, result.Directory)
	}

	if output == "" {
		if output, err = exportFilename(playlist, format); err != nil {
			return err
		}
	}
	if err := formatter.WriteFile(format, []models.Playlist{playlist}, output); err != nil {
		return err
	}
	return r.writePlain("✓ Exported %s to %s\n", playlist.Name, output)
}

func exportFilename(p models.Playlist, format formatter.Format) (string, error) {
	name, err := formatter.FileName(p.ID)
	if err != nil {
		return "", err
	}
	return name + "." + formatter.Extension(format), nil
}

// bulkExport writes one file (or directory) per playlist, printing progress as exports finish.
func (r *Runner) bulkExport(ctx context.Context, api tasks.Fetcher, playlists []models.Playlist, format formatter.Format, output string, workers int) error {
	ids := lo.Map(playlists, func(p models.Playlist, _ int) string { return p.ID })
	exporter := tasks.NewExporter(api, r.httpClient, shared.WithLogger(r.logger, "component", "export"))

	prog := make(chan tasks.ProgressUpdate, len(ids)*2+1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range prog {
			if update.Phase == tasks.FetchPlaylist {
				continue
			}
			r.writePlain("[%d/%d] %s\n", update.Step, update.Total, update.Message)
		}
	}()

	result, err := exporter.BulkExport(ctx, prog, ids, tasks.BulkExportOpts{
		Format:     format,
		OutputDir:  output,
		NumWorkers: workers,
		RateLimit:  r.config.API.RateLimit,
	})
	close(prog)
	<-done
	if err != nil {
		return err
	}

	r.writePlain("✓ Exported %d/%d playlists to %s\n", result.SuccessfulExports, result.TotalPlaylists, result.OutputDirectory)
	r.writePlain("  Manifest: %s\n", result.ManifestPath)
	if result.FailedExports > 0 {
		return fmt.Errorf("%w: %d playlists failed to export", shared.ErrAPIRequest, result.FailedExports)
	}
	return nil
}
