package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/desertthunder/moodshift/internal/formatter"
	"github.com/desertthunder/moodshift/internal/shared"
	"github.com/urfave/cli/v3"
)

// Journal submits an entry and prints the resulting analysis.
func (r *Runner) Journal(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	text, err := r.readEntry(cmd.StringArg("text"), cmd.String("file"))
	if err != nil {
		return err
	}

	app, err := r.session(ctx)
	if err != nil {
		return err
	}

	r.logger.Info("analyzing journal entry", "characters", len([]rune(strings.TrimSpace(text))))

	playlist, err := app.Journal.Submit(ctx, text, cmd.String("name"))
	if err != nil {
		return err
	}

	data, err := formatter.Render(format, playlist)
	if err != nil {
		return err
	}
	return r.write(data)
}

// readEntry returns the text argument, or the contents of file ("-" reads stdin).
func (r *Runner) readEntry(text, file string) (string, error) {
	if text != "" && file != "" {
		return "", fmt.Errorf("%w: cannot specify both text and --file", shared.ErrInvalidArgument)
	}

	switch file {
	case "":
		if text == "" {
			return "", fmt.Errorf("%w: journal text or --file", shared.ErrMissingArgument)
		}
		return text, nil
	case "-":
		data, err := io.ReadAll(r.input)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read entry file: %w", err)
		}
		return string(data), nil
	}
}
