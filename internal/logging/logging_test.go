// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":    zerolog.TraceLevel,
		"DEBUG":    zerolog.DebugLevel,
		"warning":  zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"disabled": zerolog.Disabled,
		"":         zerolog.InfoLevel,
		"chatty":   zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestSetup_WritesToFile(t *testing.T) {
	t.Cleanup(func() { log.Logger = zerolog.Nop() })
	path := filepath.Join(t.TempDir(), "logs", "mindeep.log")

	logger, closer, err := Setup(Options{Level: "info", Path: path})
	require.NoError(t, err)

	logger.Debug().Msg("hidden")
	logger.Info().Str("event", "task_selected").Msg("surface event")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"event":"task_selected"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestSetup_DebugFlag(t *testing.T) {
	t.Cleanup(func() { log.Logger = zerolog.Nop() })
	path := filepath.Join(t.TempDir(), "debug.log")

	logger, closer, err := Setup(Options{Level: "error", Path: path, Debug: true})
	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
}

func TestSetup_NoPathIsNop(t *testing.T) {
	logger, closer, err := Setup(Options{Level: "debug"})
	require.NoError(t, err)
	assert.NoError(t, closer.Close())
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}

func TestComponent(t *testing.T) {
	t.Cleanup(func() { log.Logger = zerolog.Nop() })
	var buf bytes.Buffer
	log.Logger = New(&buf, zerolog.InfoLevel)

	l := Component("chat")
	l.Info().Msg("hi")
	assert.Contains(t, buf.String(), `"component":"chat"`)
}
