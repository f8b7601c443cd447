// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jeranaias/mindeep-tui/internal/config"
	"github.com/jeranaias/mindeep-tui/internal/reply"
	"github.com/jeranaias/mindeep-tui/internal/schedule"
	"github.com/jeranaias/mindeep-tui/internal/ui/components"
	"github.com/jeranaias/mindeep-tui/internal/ui/styles"
	"github.com/jeranaias/mindeep-tui/internal/viewmodel"
)

// UploadNotice is shown when the upload affordance is used.
const UploadNotice = "File upload is not available yet"

// noticeTTL is how long a status notice stays up.
const noticeTTL = 3 * time.Second

// =============================================================================
// FOCUS
// =============================================================================

// Focus is the part of the screen that receives keys.
type Focus int

const (
	FocusInput   Focus = iota // typing a message
	FocusActions              // moving through the quick-action bar
)

// String returns the focus name.
func (f Focus) String() string {
	if f == FocusActions {
		return "actions"
	}
	return "input"
}

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures the chat model.
type Options struct {
	// Config supplies the assistant and UI settings. Nil uses defaults.
	Config *config.Config

	// Clock drives replies and animations. Nil uses the wall clock.
	Clock schedule.Clock

	// Logger receives surface events at debug level. Nil disables logging.
	Logger *zerolog.Logger

	// Watcher, when set, delivers config reloads.
	Watcher *config.Watcher

	// Observer additionally receives every surface event.
	Observer viewmodel.Observer

	// Clipboard writes text to the clipboard. Nil uses the system clipboard.
	Clipboard func(string) error
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat screen.
type Model struct {
	cfg     *config.Config
	clock   schedule.Clock
	loop    *schedule.Loop
	surface *viewmodel.Surface
	logger  zerolog.Logger
	watcher *config.Watcher
	copyFn  func(string) error

	// Styling and components
	theme   *styles.Theme
	header  *components.Header
	actions *components.QuickActions
	input   *components.InputBar
	avatar  *components.Avatar
	panel   *components.TaskPanel
	status  *components.StatusBar

	viewport viewport.Model
	spinner  spinner.Model
	help     help.Model
	keys     KeyMap

	// Dimensions
	width  int
	height int

	focus       Focus
	actionIndex int
	showHelp    bool
	quitting    bool

	// Animation
	started time.Time
	now     time.Time

	// When the in-flight TimerMsg is due; zero when none is armed
	timerArmed time.Time

	// What the viewport content was last built from
	renderedCount int
	renderedWidth int

	notice    string
	noticeSeq int
}

// New creates the chat model.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	clock := opts.Clock
	if clock == nil {
		clock = schedule.Real
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	composer, err := reply.New(cfg.Assistant.ReplyTemplate)
	if err != nil {
		logger.Warn().Err(err).Msg("invalid reply template, using default")
		composer = reply.Default()
	}

	loop := schedule.NewLoop(clock)
	surface := viewmodel.NewSurface(viewmodel.Options{
		Loop:       loop,
		Composer:   composer,
		ReplyDelay: cfg.ReplyDelay(),
		Greeting:   cfg.Assistant.Greeting,
		Observer:   viewmodel.Chain(viewmodel.LogEvents(logger), opts.Observer),
	})

	theme := styles.NewTheme(cfg.UI.Theme)

	input := components.NewInputBar(theme)
	input.Focus()

	panel := components.NewTaskPanel(theme)
	panel.Stagger = cfg.RevealStagger()

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: styles.ThinkingSpinner.Frames,
		FPS:    styles.ThinkingSpinner.Duration(),
	}
	sp.Style = theme.ThinkingText

	now := clock.Now()
	return Model{
		cfg:           cfg,
		clock:         clock,
		loop:          loop,
		surface:       surface,
		logger:        logger,
		watcher:       opts.Watcher,
		copyFn:        copyFn,
		theme:         theme,
		header:        components.NewHeader(cfg.Assistant.Name, theme),
		actions:       components.NewQuickActions(theme),
		input:         input,
		avatar:        components.NewAvatar(theme),
		panel:         panel,
		status:        components.NewStatusBar(theme),
		viewport:      viewport.New(80, 20),
		spinner:       sp,
		help:          help.New(),
		keys:          DefaultKeyMap(),
		started:       now,
		now:           now,
		renderedCount: -1,
	}
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the cursor blink, the spinner, the animation ticker and, when
// a watcher is configured, listening for config reloads.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.spinner.Tick, m.animTick()}
	if m.watcher != nil {
		cmds = append(cmds, waitForConfig(m.watcher))
	}
	return tea.Batch(cmds...)
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Surface exposes the conversation state.
func (m Model) Surface() *viewmodel.Surface { return m.surface }

// Loop exposes the reply scheduler.
func (m Model) Loop() *schedule.Loop { return m.loop }

// Focus returns which part of the screen receives keys.
func (m Model) Focus() Focus { return m.focus }

// ActionIndex returns the focused quick action.
func (m Model) ActionIndex() int { return m.actionIndex }

// Notice returns the status notice currently shown.
func (m Model) Notice() string { return m.notice }

// InputValue returns the text in the input bar.
func (m Model) InputValue() string { return m.input.Value() }

// ShowingHelp reports whether the help screen is up.
func (m Model) ShowingHelp() bool { return m.showHelp }

// Quitting reports whether the model has been torn down.
func (m Model) Quitting() bool { return m.quitting }

// =============================================================================
// STATE HELPERS
// =============================================================================

// applyConfig re-applies the settings that can change while running.
// Components share the theme pointer, so replacing its value restyles them.
func (m *Model) applyConfig(cfg *config.Config) {
	m.cfg = cfg
	*m.theme = *styles.NewTheme(cfg.UI.Theme)
	m.spinner.Style = m.theme.ThinkingText
	m.header.Name = cfg.Assistant.Name
	m.panel.Stagger = cfg.RevealStagger()
	m.surface.SetReplyDelay(cfg.ReplyDelay())

	if composer, err := reply.New(cfg.Assistant.ReplyTemplate); err == nil {
		m.surface.SetComposer(composer)
	} else {
		m.logger.Warn().Err(err).Msg("invalid reply template in reloaded config")
	}
	m.renderedCount = -1
}

// syncComponents copies surface state into the components before layout.
func (m *Model) syncComponents() {
	elapsed := m.now.Sub(m.started)

	m.actions.Selected = m.surface.Selected()
	m.actions.Focus = -1
	if m.focus == FocusActions {
		m.actions.Focus = m.actionIndex
	}

	m.input.SetListening(m.surface.Listening(), styles.ListeningPulse.Frame(elapsed))

	m.avatar.Phase = elapsed.Seconds() * 0.8
	m.avatar.Blink = styles.ActiveBlink.Frame(elapsed)

	m.status.Selected = m.surface.Selected()
	m.status.Pending = m.surface.PendingReplies()
	m.status.Notice = m.notice
	m.status.Shortcuts = components.DefaultShortcuts
	if m.surface.Overlay().IsOpen() {
		m.status.Shortcuts = components.OverlayShortcuts
	}
}

// refresh rebuilds the viewport content when the timeline or width changed.
func (m *Model) refresh() {
	msgs := m.surface.Messages()
	if len(msgs) == m.renderedCount && m.viewport.Width == m.renderedWidth {
		return
	}
	follow := m.viewport.AtBottom() || len(msgs) > m.renderedCount

	parts := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		b := components.NewMessageBubble(msg, m.theme)
		b.Name = m.cfg.Assistant.Name
		b.SetWidth(m.viewport.Width)
		parts = append(parts, b.View())
	}
	m.viewport.SetContent(strings.Join(parts, "\n"))
	if follow {
		m.viewport.GotoBottom()
	}
	m.renderedCount = len(msgs)
	m.renderedWidth = m.viewport.Width
}

// quit tears the surface down so pending replies can no longer land.
func (m *Model) quit() {
	if m.quitting {
		return
	}
	m.quitting = true
	dropped := m.surface.Close()
	m.logger.Info().Int("dropped_replies", dropped).Msg("chat closed")
	if m.watcher != nil {
		if err := m.watcher.Close(); err != nil {
			m.logger.Warn().Err(err).Msg("close config watcher")
		}
	}
}
