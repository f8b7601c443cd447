// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the config dir at a temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("MINDEEP_HOME", dir)
	for _, key := range []string{
		"MINDEEP_NAME", "MINDEEP_REPLY_DELAY_MS", "MINDEEP_REPLY_TEMPLATE",
		"MINDEEP_THEME", "MINDEEP_REVEAL_STAGGER_MS", "MINDEEP_AVATAR",
		"MINDEEP_LOG_LEVEL", "MINDEEP_LOG_FILE",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("MINDEEP_GREETING", "")
	os.Unsetenv("MINDEEP_GREETING")
	return dir
}

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
}

// =============================================================================
// DEFAULTS & LOADING
// =============================================================================

func TestConfig_Default(t *testing.T) {
	cfg := Default()

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "Mindeep", cfg.Assistant.Name)
	assert.Equal(t, 1500*time.Millisecond, cfg.ReplyDelay())
	assert.Equal(t, 100*time.Millisecond, cfg.RevealStagger())
	assert.Equal(t, DefaultGreeting, cfg.Assistant.Greeting)
	assert.True(t, cfg.UI.ShowAvatar)
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_PartialFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	writeConfig(t, path, `
[assistant]
greeting = ""
reply_delay_ms = 250

[ui]
theme = "Dark"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Assistant.Greeting)
	assert.Equal(t, 250, cfg.Assistant.ReplyDelayMs)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, "Mindeep", cfg.Assistant.Name)
	assert.Equal(t, 100, cfg.UI.RevealStaggerMs)
}

func TestLoad_UnknownKeysRejected(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	writeConfig(t, path, "[assistant]\nmodel = \"gpt-4\"\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assistant.model")
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	isolate(t)
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestSaveThenLoad(t *testing.T) {
	dir := isolate(t)
	cfg := Default()
	cfg.Assistant.Name = "Deep"
	cfg.UI.ShowAvatar = false

	require.NoError(t, Save(cfg, ""))
	info, err := os.Stat(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

// =============================================================================
// ENV OVERRIDES
// =============================================================================

func TestApplyEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("MINDEEP_NAME", "Echo")
	t.Setenv("MINDEEP_GREETING", "")
	t.Setenv("MINDEEP_REPLY_DELAY_MS", "10")
	t.Setenv("MINDEEP_THEME", "light")
	t.Setenv("MINDEEP_AVATAR", "false")
	t.Setenv("MINDEEP_LOG_LEVEL", "DEBUG")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "Echo", cfg.Assistant.Name)
	assert.Equal(t, "", cfg.Assistant.Greeting)
	assert.Equal(t, 10, cfg.Assistant.ReplyDelayMs)
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.False(t, cfg.UI.ShowAvatar)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestApplyEnvOverrides_Malformed(t *testing.T) {
	isolate(t)
	t.Setenv("MINDEEP_REPLY_DELAY_MS", "soon")
	t.Setenv("MINDEEP_AVATAR", "maybe")

	err := Default().ApplyEnvOverrides()
	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 2)
}

func TestLoadDotEnv_DoesNotOverrideEnvironment(t *testing.T) {
	dir := isolate(t)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	writeConfig(t, filepath.Join(dir, ".env"), "MINDEEP_NAME=FromDotEnv\nMINDEEP_THEME=light\n")
	t.Setenv("MINDEEP_THEME", "dark")
	os.Unsetenv("MINDEEP_NAME")

	require.NoError(t, LoadDotEnv())
	assert.Equal(t, "FromDotEnv", os.Getenv("MINDEEP_NAME"))
	assert.Equal(t, "dark", os.Getenv("MINDEEP_THEME"))
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"negative delay", func(c *Config) { c.Assistant.ReplyDelayMs = -1 }, "assistant.reply_delay_ms"},
		{"huge delay", func(c *Config) { c.Assistant.ReplyDelayMs = 60001 }, "assistant.reply_delay_ms"},
		{"blank name", func(c *Config) { c.Assistant.Name = "  " }, "assistant.name"},
		{"bad template", func(c *Config) { c.Assistant.ReplyTemplate = "{{#task}}" }, "assistant.reply_template"},
		{"escaping template", func(c *Config) { c.Assistant.ReplyTemplate = "echo {{text}}" }, "assistant.reply_template"},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"bad stagger", func(c *Config) { c.UI.RevealStaggerMs = 5000 }, "ui.reveal_stagger_ms"},
		{"bad fps", func(c *Config) { c.UI.AnimationFPS = 0 }, "ui.animation_fps"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)

			err := cfg.Validate()
			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs), "expected ValidateErrors, got %v", err)
			require.Len(t, verrs, 1)
			assert.Equal(t, tc.field, verrs[0].Field)
		})
	}
}

func TestValidateErrors_Error(t *testing.T) {
	errs := ValidateErrors{{Field: "a", Message: "x"}, {Field: "b", Message: "y"}}
	assert.Equal(t, "a: x; b: y", errs.Error())
	assert.Equal(t, "no validation errors", ValidateErrors{}.Error())
}

// =============================================================================
// LOOKUP
// =============================================================================

func TestConfig_Get(t *testing.T) {
	cfg := Default()

	v, err := cfg.Get("assistant.reply_delay_ms")
	require.NoError(t, err)
	assert.Equal(t, 1500, v)

	v, err = cfg.Get("ui.theme")
	require.NoError(t, err)
	assert.Equal(t, "auto", v)

	_, err = cfg.Get("assistant.model")
	assert.Error(t, err)
	_, err = cfg.Get("version.x")
	assert.Error(t, err)
	_, err = cfg.Get("")
	assert.Error(t, err)
}

func TestKeys(t *testing.T) {
	keys := Keys()
	assert.Contains(t, keys, "version")
	assert.Contains(t, keys, "assistant.reply_template")
	assert.Contains(t, keys, "log.file")

	cfg := Default()
	for _, k := range keys {
		_, err := cfg.Get(k)
		assert.NoError(t, err, k)
	}
}

// =============================================================================
// GLOBAL
// =============================================================================

func TestGlobal_ConcurrentAccess(t *testing.T) {
	isolate(t)
	ResetGlobalForTesting()
	t.Cleanup(ResetGlobalForTesting)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()
		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
}

func TestSetGlobal_Overwrites(t *testing.T) {
	isolate(t)
	ResetGlobalForTesting()
	t.Cleanup(ResetGlobalForTesting)

	cfg := Default()
	cfg.Assistant.Name = "Custom"
	SetGlobal(cfg)
	assert.Equal(t, "Custom", Global().Assistant.Name)
}

// =============================================================================
// WATCHER
// =============================================================================

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	writeConfig(t, path, "[assistant]\nreply_delay_ms = 100\n")

	w, err := NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	writeConfig(t, path, "[assistant]\nreply_delay_ms = 700\n")

	select {
	case u := <-w.Updates():
		require.NoError(t, u.Err)
		assert.Equal(t, 700, u.Config.Assistant.ReplyDelayMs)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload observed")
	}
}

func TestWatcher_ReportsInvalidConfig(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")

	w, err := NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	writeConfig(t, path, "[ui]\ntheme = \"neon\"\n")

	select {
	case u := <-w.Updates():
		assert.Error(t, u.Err)
		assert.Nil(t, u.Config)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload observed")
	}
}
