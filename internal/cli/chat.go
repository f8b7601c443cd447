// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jeranaias/mindeep-tui/internal/catalog"
	"github.com/jeranaias/mindeep-tui/internal/commands"
	"github.com/jeranaias/mindeep-tui/internal/config"
	"github.com/jeranaias/mindeep-tui/internal/model"
	"github.com/jeranaias/mindeep-tui/internal/reply"
	"github.com/jeranaias/mindeep-tui/internal/schedule"
	"github.com/jeranaias/mindeep-tui/internal/viewmodel"
)

const (
	chatPrompt  = "mindeep> "
	historyFile = "chat_history"
)

func newChatCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start a line-based chat session",
		Long: `Start a line-based chat session in the current terminal.

Plain lines are sent as messages. Slash commands:
  /task [type]  select a task type, or list them
  /listen       toggle the microphone indicator
  /start        start the open task
  /close        close the task panel
  /help         show commands
  /quit         leave the session`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), flags)
		},
	}
}

// =============================================================================
// LINE INPUT
// =============================================================================

// lineReader is the prompt used by the session.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

// historyLiner wraps liner with a history file in the config directory.
type historyLiner struct {
	*liner.State
	path string
}

func newHistoryLiner(complete liner.Completer) *historyLiner {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetCompleter(complete)

	dir, err := config.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	h := &historyLiner{State: line, path: filepath.Join(dir, historyFile)}
	if f, err := os.Open(h.path); err == nil {
		h.ReadHistory(f)
		f.Close()
	}
	return h
}

// Close saves history and restores the terminal.
func (h *historyLiner) Close() error {
	if err := os.MkdirAll(filepath.Dir(h.path), 0700); err == nil {
		if f, err := os.OpenFile(h.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			h.WriteHistory(f)
			f.Close()
		}
	}
	return h.State.Close()
}

// scanReader reads lines from a pipe or file without echoing a prompt.
type scanReader struct {
	sc *bufio.Scanner
}

func newScanReader(r io.Reader) *scanReader {
	return &scanReader{sc: bufio.NewScanner(r)}
}

func (s *scanReader) Prompt(string) (string, error) {
	if s.sc.Scan() {
		return s.sc.Text(), nil
	}
	if err := s.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (s *scanReader) AppendHistory(string) {}

func (s *scanReader) Close() error { return nil }

// =============================================================================
// SESSION
// =============================================================================

type chatStyles struct {
	user      lipgloss.Style
	assistant lipgloss.Style
	meta      lipgloss.Style
	notice    lipgloss.Style
	warn      lipgloss.Style
}

func newChatStyles(out io.Writer) chatStyles {
	r := lipgloss.NewRenderer(out)
	r.SetColorProfile(colorProfile(out))
	return chatStyles{
		user:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("#60A5FA")),
		assistant: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#A78BFA")),
		meta:      r.NewStyle().Faint(true),
		notice:    r.NewStyle().Foreground(lipgloss.Color("#34D399")),
		warn:      r.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
	}
}

// chatSession is a line-based front end over a Surface.
type chatSession struct {
	out      io.Writer
	cfg      *config.Config
	loop     *schedule.Loop
	surface  *viewmodel.Surface
	registry *commands.Registry
	logger   zerolog.Logger
	styles   chatStyles
}

func newChatSession(out io.Writer, cfg *config.Config, clock schedule.Clock, logger zerolog.Logger) *chatSession {
	s := &chatSession{
		out:    out,
		cfg:    cfg,
		loop:   schedule.NewLoop(clock),
		logger: logger,
		styles: newChatStyles(out),
	}

	composer, err := reply.New(cfg.Assistant.ReplyTemplate)
	if err != nil {
		logger.Warn().Err(err).Msg("invalid reply template, using default")
		composer = reply.Default()
	}
	s.surface = viewmodel.NewSurface(viewmodel.Options{
		Loop:       s.loop,
		Composer:   composer,
		ReplyDelay: cfg.ReplyDelay(),
		Greeting:   cfg.Assistant.Greeting,
		Observer:   viewmodel.Chain(viewmodel.LogEvents(logger), s.observe),
	})
	s.registry = s.newRegistry()
	return s
}

// observe prints assistant messages as they land.
func (s *chatSession) observe(e viewmodel.Event) {
	if e.Kind == viewmodel.EventMessageAppended && e.Message.Role == model.RoleAssistant {
		s.printMessage(e.Message)
	}
}

func (s *chatSession) printMessage(m model.Message) {
	label := s.styles.user.Render("You")
	if m.Role == model.RoleAssistant {
		label = s.styles.assistant.Render(s.cfg.Assistant.Name)
	}
	meta := m.TimeLabel()
	if m.Tagged() {
		meta += "  #" + m.TaskType.String()
	}
	fmt.Fprintf(s.out, "%s  %s\n%s\n\n", label, s.styles.meta.Render(meta), m.Content)
}

func (s *chatSession) printf(format string, args ...any) {
	fmt.Fprintln(s.out, s.styles.notice.Render(fmt.Sprintf(format, args...)))
}

func (s *chatSession) warnf(format string, args ...any) {
	fmt.Fprintln(s.out, s.styles.warn.Render(fmt.Sprintf(format, args...)))
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

func (s *chatSession) newRegistry() *commands.Registry {
	types := catalog.All()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}

	r := commands.NewRegistry()
	r.Register(&commands.Command{
		Name:        "/task",
		Aliases:     []string{"/t"},
		Description: "select a task type, or list them",
		Usage:       "/task [type]",
		Args:        []commands.ArgDef{{Name: "type", Values: names, Rest: true}},
		Handler:     s.cmdTask,
	})
	r.Register(&commands.Command{
		Name:        "/listen",
		Aliases:     []string{"/mic"},
		Description: "toggle the microphone indicator",
		Handler:     s.cmdListen,
	})
	r.Register(&commands.Command{
		Name:        "/start",
		Description: "start the open task",
		Handler:     s.cmdStart,
	})
	r.Register(&commands.Command{
		Name:        "/close",
		Description: "close the task panel",
		Handler:     s.cmdClose,
	})
	r.Register(&commands.Command{
		Name:        "/help",
		Aliases:     []string{"/h", "/?"},
		Description: "show commands",
		Handler: func([]string) error {
			fmt.Fprint(s.out, s.registry.Help())
			return nil
		},
	})
	r.Register(&commands.Command{
		Name:        "/quit",
		Aliases:     []string{"/q", "/exit"},
		Description: "leave the session",
		Handler:     func([]string) error { return commands.ErrQuit },
	})
	return r
}

// handle processes one input line and reports whether the session should end.
func (s *chatSession) handle(line string) (quit bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if !commands.IsCommand(trimmed) {
		s.surface.Submit(line)
		return false
	}

	err := s.registry.Execute(trimmed)
	var unknown *commands.UnknownCommandError
	switch {
	case err == nil:
	case errors.Is(err, commands.ErrQuit):
		return true
	case errors.As(err, &unknown):
		s.warnf("Unknown command: %s (try /help)", unknown.Name)
	default:
		s.warnf("%v", err)
	}
	return false
}

func (s *chatSession) cmdListen([]string) error {
	if s.surface.ToggleListening() {
		s.printf("Listening...")
	} else {
		s.printf("Stopped listening")
	}
	return nil
}

func (s *chatSession) cmdStart([]string) error {
	if info, ok := s.surface.Overlay().Content(); ok {
		s.printf("Starting %s", info.Title)
	}
	s.surface.StartTask()
	return nil
}

func (s *chatSession) cmdClose([]string) error {
	if s.surface.Overlay().IsOpen() {
		s.printf("Task panel closed")
	}
	s.surface.DismissOverlay()
	return nil
}

// cmdTask toggles the named task and prints its panel when it opens.
func (s *chatSession) cmdTask(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(s.out, taskList(s.surface.Selected()))
		return nil
	}
	t, ok := catalog.Parse(args[0])
	if !ok {
		err := &UnknownTaskError{Name: args[0]}
		s.warnf("%v; try /task", err)
		return nil
	}

	s.surface.SelectTask(t)
	if s.surface.Selected() != t {
		s.printf("%s cleared", t.DisplayName())
		return nil
	}
	s.printf("%s mode selected", t.DisplayName())
	if info, ok := s.surface.Overlay().Content(); ok && s.surface.Overlay().Task() == t {
		fmt.Fprint(s.out, renderMarkdown(s.out, info.Markdown()))
		fmt.Fprintln(s.out, s.styles.meta.Render("/start to begin, /close to dismiss"))
	}
	return nil
}

// finish tears the surface down and reports replies that never landed.
func (s *chatSession) finish() {
	dropped := s.surface.Close()
	if dropped > 0 {
		fmt.Fprintln(s.out, s.styles.meta.Render(fmt.Sprintf("%d pending replies dropped", dropped)))
	}
	s.logger.Info().Int("dropped_replies", dropped).Msg("chat session ended")
}

// =============================================================================
// RUN LOOP
// =============================================================================

type lineResult struct {
	text string
	err  error
}

// run reads lines on a helper goroutine and fires due replies on the calling
// goroutine, so the surface is only ever touched here.
func (s *chatSession) run(ctx context.Context, reader lineReader, runner *schedule.Runner) error {
	for _, m := range s.surface.Messages() {
		s.printMessage(m)
	}

	lines := make(chan lineResult)
	next := make(chan struct{})
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(lines)
		for {
			text, err := reader.Prompt(chatPrompt)
			select {
			case lines <- lineResult{text: text, err: err}:
			case <-done:
				return
			}
			if err != nil {
				return
			}
			select {
			case <-next:
			case <-done:
				return
			}
		}
	}()

	defer s.finish()
	for {
		select {
		case <-ctx.Done():
			return nil

		case now := <-runner.C():
			s.loop.RunDue(now)

		case res, ok := <-lines:
			if !ok {
				return nil
			}
			if res.err != nil {
				if errors.Is(res.err, io.EOF) || errors.Is(res.err, liner.ErrPromptAborted) {
					fmt.Fprintln(s.out)
					return nil
				}
				return fmt.Errorf("read input: %w", res.err)
			}
			if strings.TrimSpace(res.text) != "" {
				reader.AppendHistory(res.text)
			}
			if s.handle(res.text) {
				return nil
			}
			next <- struct{}{}
		}
	}
}

// runChat starts a line session on in/out. A terminal gets liner editing
// and history; anything else is read line by line.
func runChat(ctx context.Context, in io.Reader, out io.Writer, flags *rootFlags) error {
	logger := flags.logger.With().Str("component", "chat").Logger()

	session := newChatSession(out, flags.cfg, schedule.Real, logger)

	var reader lineReader
	if in == os.Stdin && isTerminal(in) {
		reader = newHistoryLiner(commands.NewCompleter(session.registry).Complete)
	} else {
		reader = newScanReader(in)
	}
	defer reader.Close()

	runner := schedule.NewRunner(session.loop)
	runner.Start(ctx)
	defer runner.Stop()

	return session.run(ctx, reader, runner)
}
