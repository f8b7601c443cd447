// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/mindeep-tui/internal/config"
	"github.com/jeranaias/mindeep-tui/internal/ui/chat"
)

// runTUI starts the full-screen chat UI on in/out. The config file is
// watched so edits apply without a restart.
func runTUI(ctx context.Context, in io.Reader, out io.Writer, flags *rootFlags) error {
	if !isTerminal(in) || !isTerminal(out) {
		return ErrNoTTY
	}
	cfg := flags.cfg
	logger := flags.logger.With().Str("component", "tui").Logger()

	path := flags.configPath
	if path == "" {
		p, err := config.ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var watcher *config.Watcher
	if w, err := config.NewWatcher(path, 0); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("config hot reload disabled")
	} else {
		watcher = w
		defer w.Close()
		go w.Run(ctx)
	}

	model := chat.New(chat.Options{
		Config:  cfg,
		Logger:  &logger,
		Watcher: watcher,
	})

	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	}
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	final, err := tea.NewProgram(model, opts...).Run()
	if m, ok := final.(chat.Model); ok && !m.Quitting() {
		dropped := m.Surface().Close()
		logger.Info().Int("dropped_replies", dropped).Msg("chat interrupted")
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
