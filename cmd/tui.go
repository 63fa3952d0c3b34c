package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/moodshift/internal/nav"
	"github.com/desertthunder/moodshift/internal/shared"
	"github.com/desertthunder/moodshift/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal client.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(cmd.String("log-file"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	fileLogger.SetLevel(r.logger.GetLevel())
	r.SetLogger(fileLogger)

	queue := nav.NewQueue()
	app, err := r.container(nav.Tee{queue, nav.NewLogNotifier(fileLogger)}, fileLogger)
	if err != nil {
		return err
	}

	model := ui.NewModel(ui.ModelOpts{
		Ctx:   ctx,
		App:   app,
		Queue: queue,
		Listener: func(ctx context.Context) (<-chan error, func(), error) {
			return r.listenForCallback(ctx, app, callbackTimeoutOr(0))
		},
		CallbackURL: r.config.Server.CallbackURL(),
		Logger:      fileLogger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
