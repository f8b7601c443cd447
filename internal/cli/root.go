// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jeranaias/mindeep-tui/internal/config"
	"github.com/jeranaias/mindeep-tui/internal/logging"
)

// Build information, set from main.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// tolerateConfigErrors marks commands that run with the defaults when the
// config file cannot be loaded.
const tolerateConfigErrors = "tolerate-config-errors"

// =============================================================================
// ROOT COMMAND
// =============================================================================

type rootFlags struct {
	configPath  string
	debugMode   bool
	logFilePath string
	replyDelay  time.Duration

	cfg     *config.Config
	loadErr error
	logger  zerolog.Logger
	logFile io.Closer
}

// NewRootCmd builds the mindeep command tree. Without a subcommand it
// starts the full-screen UI.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{logger: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:   "mindeep",
		Short: "mindeep - terminal chat assistant mockup",
		Long: "mindeep is a terminal rendition of the Mindeep chat assistant. " +
			"Replies are synthetic; no model is contacted.",
		Example: `  mindeep
  mindeep chat
  mindeep tasks code
  mindeep --reply-delay 300ms`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return flags.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			flags.closeLog()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), flags)
		},
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Path to config file (default: ~/.mindeep/config.toml)")
	pf.BoolVarP(&flags.debugMode, "debug", "d", false, "Enable debug logging")
	pf.StringVar(&flags.logFilePath, "log-file", "", "Path to log file (default: ~/.mindeep/mindeep.log)")
	pf.DurationVar(&flags.replyDelay, "reply-delay", 0, "Override the synthetic reply delay (e.g. 300ms)")

	cmd.AddCommand(newChatCmd(flags))
	cmd.AddCommand(newTasksCmd())
	cmd.AddCommand(newConfigCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the command tree against the given streams and arguments.
// Errors are reported on stderr and returned.
func Execute(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, args ...string) error {
	rootCmd := NewRootCmd()
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportErr(stderr, err)
		return err
	}
	return nil
}

// =============================================================================
// SETUP
// =============================================================================

// setup loads .env and the config file, applies flag overrides and opens
// the log file.
func (f *rootFlags) setup(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		if cmd.Annotations[tolerateConfigErrors] == "" {
			return err
		}
		f.loadErr = err
		cfg = config.Default()
	}

	if cmd.Flags().Changed("reply-delay") {
		cfg.Assistant.ReplyDelayMs = int(f.replyDelay / time.Millisecond)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("--reply-delay: %w", err)
		}
	}
	config.SetGlobal(cfg)
	f.cfg = cfg

	logPath := f.logFilePath
	if logPath == "" {
		if logPath, err = cfg.LogPath(); err != nil {
			return err
		}
	}
	logger, closer, err := logging.Setup(logging.Options{
		Level: cfg.Log.Level,
		Path:  logPath,
		Debug: f.debugMode,
	})
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: logging disabled: %v\n", err)
	}
	f.logger = logger
	f.logFile = closer

	f.logger.Debug().
		Str("command", cmd.CommandPath()).
		Str("version", Version).
		Int("reply_delay_ms", cfg.Assistant.ReplyDelayMs).
		Msg("starting")
	return nil
}

func (f *rootFlags) closeLog() {
	if f.logFile == nil {
		return
	}
	if err := f.logFile.Close(); err != nil {
		f.logger.Error().Err(err).Msg("close log file")
	}
	f.logFile = nil
}
