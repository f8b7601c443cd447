// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/mindeep-tui/internal/catalog"
	"github.com/jeranaias/mindeep-tui/internal/config"
	"github.com/jeranaias/mindeep-tui/internal/schedule"
)

// isolate points the config directory at a temp dir and disables colors.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("MINDEEP_HOME", dir)
	t.Setenv("NO_COLOR", "1")
	for _, k := range []string{"MINDEEP_NAME", "MINDEEP_GREETING", "MINDEEP_REPLY_DELAY_MS", "MINDEEP_REPLY_TEMPLATE", "MINDEEP_THEME", "MINDEEP_LOG_LEVEL", "MINDEEP_LOG_FILE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	config.ResetGlobalForTesting()
	t.Cleanup(config.ResetGlobalForTesting)
	return dir
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := Execute(context.Background(), strings.NewReader(stdin), &stdout, &stderr, args...)
	return stdout.String(), stderr.String(), err
}

// =============================================================================
// ROOT & VERSION
// =============================================================================

func TestVersion(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "mindeep version "+Version)
	assert.Contains(t, out, "Commit: "+GitCommit)
}

func TestRoot_RequiresTerminal(t *testing.T) {
	isolate(t)

	_, stderr, err := execute(t, "")
	require.ErrorIs(t, err, ErrNoTTY)
	assert.Contains(t, stderr, "mindeep chat")
}

func TestRoot_ReplyDelayOutOfRange(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "", "--reply-delay", "2m", "config", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assistant.reply_delay_ms")
}

func TestRoot_WritesLogFile(t *testing.T) {
	dir := isolate(t)
	logPath := filepath.Join(dir, "debug.log")

	_, _, err := execute(t, "", "--debug", "--log-file", logPath, "version")
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"command":"mindeep version"`)
}

// =============================================================================
// TASKS
// =============================================================================

func TestTasks_List(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "", "tasks")
	require.NoError(t, err)
	for _, typ := range catalog.All() {
		info, _ := catalog.Lookup(typ)
		assert.Contains(t, out, typ.String())
		assert.Contains(t, out, info.Title)
	}
	assert.NotContains(t, out, "*")
}

func TestTasks_Describe(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "", "tasks", "Code Help")
	require.NoError(t, err)
	assert.Contains(t, out, "Code Assistance")
	assert.Contains(t, out, "Bug fixing")
	assert.Contains(t, out, "automatically routed")
}

func TestTasks_Unknown(t *testing.T) {
	isolate(t)

	_, stderr, err := execute(t, "", "tasks", "poetry")
	var unknown *UnknownTaskError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "poetry", unknown.Name)
	assert.Contains(t, stderr, "mindeep tasks")
}

func TestTaskList_MarksSelected(t *testing.T) {
	out := taskList(catalog.Browse)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[3], "* 4. browse"))
	assert.True(t, strings.HasPrefix(lines[0], "  1. calendar"))
}

// =============================================================================
// CONFIG
// =============================================================================

func TestConfig_InitShowGet(t *testing.T) {
	dir := isolate(t)

	out, _, err := execute(t, "", "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "config.toml"))

	_, _, err = execute(t, "", "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	_, _, err = execute(t, "", "config", "init", "--force")
	require.NoError(t, err)

	out, _, err = execute(t, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "reply_delay_ms = 1500")

	out, _, err = execute(t, "", "config", "get", "assistant.reply_delay_ms")
	require.NoError(t, err)
	assert.Equal(t, "1500\n", out)

	out, _, err = execute(t, "", "--reply-delay", "250ms", "config", "get", "assistant.reply_delay_ms")
	require.NoError(t, err)
	assert.Equal(t, "250\n", out)
}

func TestConfig_GetUnknownKey(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "", "config", "get", "assistant.nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown field")
}

func TestConfig_InvalidFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui]\ntheme = \"neon\"\n"), 0600))

	out, stderr, err := execute(t, "", "config", "path")
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)
	assert.Contains(t, stderr, "ui.theme")

	_, stderr, err = execute(t, "", "config", "show")
	var verrs config.ValidateErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, stderr, "mindeep config path")
}

// =============================================================================
// CHAT
// =============================================================================

func TestChat_ScriptedSession(t *testing.T) {
	isolate(t)

	script := strings.Join([]string{
		"/task code",
		"/listen",
		"/listen",
		"/close",
		"/task",
		"/bogus",
		"/quit",
		"never read",
	}, "\n")

	out, _, err := execute(t, script, "chat")
	require.NoError(t, err)
	assert.Contains(t, out, config.DefaultGreeting)
	assert.Contains(t, out, "Code mode selected")
	assert.Contains(t, out, "Code Assistance")
	assert.Contains(t, out, "Listening...")
	assert.Contains(t, out, "Stopped listening")
	assert.Contains(t, out, "Task panel closed")
	assert.Contains(t, out, "* 3. code")
	assert.Contains(t, out, "Unknown command: /bogus")
}

func TestChat_EOFEndsSession(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "/help\n", "chat")
	require.NoError(t, err)
	assert.Contains(t, out, "/listen")
}

func newTestSession(t *testing.T) (*chatSession, *schedule.Manual, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	clock := schedule.NewManual(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))
	return newChatSession(&buf, config.Default(), clock, zerolog.Nop()), clock, &buf
}

func TestChatSession_ReplyAfterDelay(t *testing.T) {
	s, clock, buf := newTestSession(t)

	assert.False(t, s.handle("hello there"))
	assert.Equal(t, 1, s.surface.PendingReplies())

	clock.Advance(1499 * time.Millisecond)
	assert.Equal(t, 0, s.loop.RunDue(clock.Now()))
	assert.NotContains(t, buf.String(), "I understand")

	clock.Advance(time.Millisecond)
	assert.Equal(t, 1, s.loop.RunDue(clock.Now()))
	assert.Contains(t, buf.String(), `I understand you need help with: "hello there".`)
}

func TestChatSession_SubmitKeepsTextAsTyped(t *testing.T) {
	s, _, _ := newTestSession(t)

	s.handle("  indented  ")
	last, ok := s.surface.Conversation().Last()
	require.True(t, ok)
	assert.Equal(t, "  indented  ", last.Content)

	s.handle("  /listen")
	assert.True(t, s.surface.Listening())
}

func TestChatSession_TaggedReply(t *testing.T) {
	s, clock, buf := newTestSession(t)

	s.handle("/task analyze")
	s.handle("crunch the numbers")
	assert.True(t, s.surface.Selected().IsNone())

	clock.Advance(1500 * time.Millisecond)
	s.loop.RunDue(clock.Now())
	assert.Contains(t, buf.String(), "This looks like a analyze task.")
	assert.Contains(t, buf.String(), "Analyze mode selected")
}

func TestChatSession_TaskToggle(t *testing.T) {
	s, _, buf := newTestSession(t)

	s.handle("/task summarize")
	assert.Equal(t, catalog.Summarize, s.surface.Selected())
	assert.True(t, s.surface.Overlay().IsOpen())

	s.handle("/task summarize")
	assert.True(t, s.surface.Selected().IsNone())
	assert.True(t, s.surface.Overlay().IsOpen())
	assert.Contains(t, buf.String(), "Summarize cleared")

	s.handle("/start")
	assert.False(t, s.surface.Overlay().IsOpen())
	assert.Contains(t, buf.String(), "Starting Document Summarization")
}

func TestChatSession_UnknownTask(t *testing.T) {
	s, _, buf := newTestSession(t)

	s.handle("/task poetry")
	assert.True(t, s.surface.Selected().IsNone())
	assert.Contains(t, buf.String(), `unknown task type "poetry"`)
}

func TestChatSession_BlankAndQuit(t *testing.T) {
	s, _, _ := newTestSession(t)

	assert.False(t, s.handle("   "))
	assert.Equal(t, 1, s.surface.Conversation().Len())
	assert.True(t, s.handle("/exit"))
	assert.True(t, s.handle("/QUIT"))
}

func TestChatSession_FinishDropsPending(t *testing.T) {
	s, clock, buf := newTestSession(t)

	s.handle("one")
	s.handle("two")
	s.finish()
	assert.Contains(t, buf.String(), "2 pending replies dropped")

	clock.Advance(time.Minute)
	assert.Equal(t, 0, s.loop.RunDue(clock.Now()))
	assert.Equal(t, 3, s.surface.Conversation().Len())
}

// =============================================================================
// ERRORS & TERMINAL
// =============================================================================

func TestReportErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		hint string
	}{
		{"no tty", ErrNoTTY, "mindeep chat"},
		{"unknown task", &UnknownTaskError{Name: "x"}, "mindeep tasks"},
		{"validation", config.ValidateErrors{{Field: "ui.theme", Message: "bad"}}, "mindeep config path"},
		{"other", errors.New("boom"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			reportErr(&buf, tt.err)
			assert.Contains(t, buf.String(), "Error: "+tt.err.Error())
			if tt.hint == "" {
				assert.NotContains(t, buf.String(), "Hint:")
			} else {
				assert.Contains(t, buf.String(), tt.hint)
			}
		})
	}
}

func TestTerminalHelpers_NonTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, isTerminal(&buf))
	assert.Equal(t, defaultTermWidth, terminalWidth(&buf))

	t.Setenv("NO_COLOR", "")
	t.Setenv("FORCE_COLOR", "")
	assert.False(t, colorsEnabled(&buf))

	t.Setenv("FORCE_COLOR", "1")
	assert.True(t, colorsEnabled(&buf))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, colorsEnabled(&buf))
	assert.Equal(t, "notty", markdownStyle(&buf))
}
