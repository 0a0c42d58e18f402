package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/inventory/internal/shared"
	"github.com/desertthunder/inventory/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for managing the inventory.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	if level, err := shared.ParseLogLevel(config.Log.Level); err == nil {
		shared.SetLogLevel(fileLogger, level)
	}
	r.SetLogger(fileLogger)

	repo, err := r.repository(ctx, cmd)
	if err != nil {
		return err
	}

	c, err := r.priceFormatter(cmd)
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, repo, c, r.logger)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return model.Err()
}
