// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jeranaias/mindeep-tui/internal/reply"
	"github.com/jeranaias/mindeep-tui/internal/util"
)

// CurrentVersion is the config schema version written by Save.
const CurrentVersion = "1"

// =============================================================================
// CONFIG STRUCTURE
// =============================================================================

// Config is the root configuration.
type Config struct {
	Version string `toml:"version"`

	Assistant AssistantConfig `toml:"assistant"`
	UI        UIConfig        `toml:"ui"`
	Log       LogConfig       `toml:"log"`
}

// AssistantConfig controls the synthetic assistant.
type AssistantConfig struct {
	// Name shown in the header and on assistant bubbles
	Name string `toml:"name"`

	// Greeting is the first assistant message; empty disables it
	Greeting string `toml:"greeting"`

	// ReplyDelayMs is the synthetic reply latency in milliseconds
	ReplyDelayMs int `toml:"reply_delay_ms"`

	// ReplyTemplate is a mustache template with {{{text}}} and {{task}}; empty uses the built-in one
	ReplyTemplate string `toml:"reply_template"`
}

// UIConfig controls the terminal front end.
type UIConfig struct {
	// Theme is "auto", "dark" or "light"
	Theme string `toml:"theme"`

	// RevealStaggerMs is the delay between task panel features appearing
	RevealStaggerMs int `toml:"reveal_stagger_ms"`

	// ShowAvatar toggles the decorative avatar pane
	ShowAvatar bool `toml:"show_avatar"`

	// AnimationFPS caps the avatar animation frame rate
	AnimationFPS int `toml:"animation_fps"`

	// AltScreen runs the TUI in the alternate screen buffer
	AltScreen bool `toml:"alt_screen"`

	// Mouse enables mouse support
	Mouse bool `toml:"mouse"`
}

// LogConfig controls the zerolog output.
type LogConfig struct {
	// Level is trace, debug, info, warn, error or disabled
	Level string `toml:"level"`

	// File is the log destination; empty means <config dir>/mindeep.log
	File string `toml:"file"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// DefaultGreeting is the built-in first assistant message.
const DefaultGreeting = "Hello! I'm Mindeep. I can help you with scheduling, " +
	"summarizing documents, coding tasks, web browsing, and much more. " +
	"How can I assist you today?"

// Default returns a configuration with every field set to its default.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Assistant: AssistantConfig{
			Name:         "Mindeep",
			Greeting:     DefaultGreeting,
			ReplyDelayMs: 1500,
		},
		UI: UIConfig{
			Theme:           "auto",
			RevealStaggerMs: 100,
			ShowAvatar:      true,
			AnimationFPS:    12,
			AltScreen:       true,
			Mouse:           true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ReplyDelay returns the reply latency as a duration.
func (c *Config) ReplyDelay() time.Duration {
	return time.Duration(c.Assistant.ReplyDelayMs) * time.Millisecond
}

// RevealStagger returns the feature reveal step as a duration.
func (c *Config) RevealStagger() time.Duration {
	return time.Duration(c.UI.RevealStaggerMs) * time.Millisecond
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the mindeep configuration directory. MINDEEP_HOME
// overrides the default of ~/.mindeep.
func ConfigDir() (string, error) {
	if dir := os.Getenv("MINDEEP_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".mindeep"), nil
}

// ConfigPath returns the default config file path.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LogPath returns the log file path for c, resolving the default.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "mindeep.log"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// LoadDotEnv loads .env files from the working directory and the config
// directory. Variables already present in the environment are kept. Missing
// files are not an error.
func LoadDotEnv() error {
	candidates := []string{".env"}
	if dir, err := ConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, ".env"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// Load reads the config file at path, or the default path when path is
// empty. A missing file yields the defaults. Environment overrides are
// applied and the result validated.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()
	if _, err := os.Stat(path); err == nil {
		if err := decodeFile(cfg, path); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
	}

	return finish(cfg)
}

// LoadFromPath reads the config at path, which must exist.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := decodeFile(cfg, path); err != nil {
		return nil, err
	}
	return finish(cfg)
}

// Parse decodes TOML data on top of the defaults.
func Parse(data string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode TOML: %w", err)
	}
	return finish(cfg)
}

func decodeFile(cfg *Config, path string) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func finish(cfg *Config) (*Config, error) {
	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes cfg to path (the default path when empty) atomically.
func Save(cfg *Config, path string) error {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	data, err := cfg.Encode()
	if err != nil {
		return err
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Encode renders cfg as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// String returns the TOML form of the config.
func (c *Config) String() string {
	data, err := c.Encode()
	if err != nil {
		return err.Error()
	}
	return string(data)
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

var (
	validThemes    = []string{"auto", "dark", "light"}
	validLogLevels = []string{"trace", "debug", "info", "warn", "error", "disabled"}
)

// Validate checks every field and returns all problems at once.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if strings.TrimSpace(c.Assistant.Name) == "" {
		errs = append(errs, ValidationError{Field: "assistant.name", Message: "must not be empty"})
	}
	if c.Assistant.ReplyDelayMs < 0 || c.Assistant.ReplyDelayMs > 60000 {
		errs = append(errs, ValidationError{
			Field:   "assistant.reply_delay_ms",
			Message: fmt.Sprintf("%d out of range, must be between 0 and 60000", c.Assistant.ReplyDelayMs),
		})
	}
	if err := reply.Validate(c.Assistant.ReplyTemplate); err != nil {
		errs = append(errs, ValidationError{Field: "assistant.reply_template", Message: err.Error()})
	}

	if !contains(validThemes, strings.ToLower(c.UI.Theme)) {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: %s", c.UI.Theme, strings.Join(validThemes, ", ")),
		})
	}
	if c.UI.RevealStaggerMs < 0 || c.UI.RevealStaggerMs > 2000 {
		errs = append(errs, ValidationError{
			Field:   "ui.reveal_stagger_ms",
			Message: fmt.Sprintf("%d out of range, must be between 0 and 2000", c.UI.RevealStaggerMs),
		})
	}
	if c.UI.AnimationFPS < 1 || c.UI.AnimationFPS > 60 {
		errs = append(errs, ValidationError{
			Field:   "ui.animation_fps",
			Message: fmt.Sprintf("%d out of range, must be between 1 and 60", c.UI.AnimationFPS),
		})
	}

	if !contains(validLogLevels, strings.ToLower(c.Log.Level)) {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: %s", c.Log.Level, strings.Join(validLogLevels, ", ")),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills fields whose zero value is never meaningful.
func (c *Config) SetDefaults() {
	d := Default()
	if c.Version == "" {
		c.Version = d.Version
	}
	if c.Assistant.Name == "" {
		c.Assistant.Name = d.Assistant.Name
	}
	if c.Assistant.ReplyDelayMs == 0 {
		c.Assistant.ReplyDelayMs = d.Assistant.ReplyDelayMs
	}
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.UI.AnimationFPS == 0 {
		c.UI.AnimationFPS = d.UI.AnimationFPS
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	c.UI.Theme = strings.ToLower(c.UI.Theme)
	c.Log.Level = strings.ToLower(c.Log.Level)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies MINDEEP_* environment variables:
//   - MINDEEP_NAME: assistant.name
//   - MINDEEP_GREETING: assistant.greeting (set but empty disables it)
//   - MINDEEP_REPLY_DELAY_MS: assistant.reply_delay_ms
//   - MINDEEP_REPLY_TEMPLATE: assistant.reply_template
//   - MINDEEP_THEME: ui.theme
//   - MINDEEP_REVEAL_STAGGER_MS: ui.reveal_stagger_ms
//   - MINDEEP_AVATAR: ui.show_avatar
//   - MINDEEP_LOG_LEVEL: log.level
//   - MINDEEP_LOG_FILE: log.file
//
// Malformed numbers and booleans are reported together.
func (c *Config) ApplyEnvOverrides() error {
	var errs ValidateErrors

	if v := os.Getenv("MINDEEP_NAME"); v != "" {
		c.Assistant.Name = v
	}
	if v, ok := os.LookupEnv("MINDEEP_GREETING"); ok {
		c.Assistant.Greeting = v
	}
	if v := os.Getenv("MINDEEP_REPLY_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Assistant.ReplyDelayMs = n
		} else {
			errs = append(errs, ValidationError{Field: "MINDEEP_REPLY_DELAY_MS", Message: fmt.Sprintf("not an integer: %q", v)})
		}
	}
	if v := os.Getenv("MINDEEP_REPLY_TEMPLATE"); v != "" {
		c.Assistant.ReplyTemplate = v
	}
	if v := os.Getenv("MINDEEP_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("MINDEEP_REVEAL_STAGGER_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.UI.RevealStaggerMs = n
		} else {
			errs = append(errs, ValidationError{Field: "MINDEEP_REVEAL_STAGGER_MS", Message: fmt.Sprintf("not an integer: %q", v)})
		}
	}
	if v := os.Getenv("MINDEEP_AVATAR"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.UI.ShowAvatar = b
		} else {
			errs = append(errs, ValidationError{Field: "MINDEEP_AVATAR", Message: fmt.Sprintf("not a boolean: %q", v)})
		}
	}
	if v := os.Getenv("MINDEEP_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("MINDEEP_LOG_FILE"); v != "" {
		c.Log.File = v
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// DOT NOTATION LOOKUP
// =============================================================================

// Get returns a value by its TOML path, e.g. "assistant.reply_delay_ms".
func (c *Config) Get(key string) (interface{}, error) {
	if strings.TrimSpace(key) == "" {
		return nil, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		field, ok := fieldByTag(v, part)
		if !ok {
			return nil, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field.Interface(), nil
		}
		if field.Kind() != reflect.Struct {
			return nil, fmt.Errorf("field '%s' is not a section", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return nil, fmt.Errorf("invalid key: %s", key)
}

func fieldByTag(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("toml") == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// Keys lists every leaf key in dot notation.
func Keys() []string {
	var keys []string
	var walk func(t reflect.Type, prefix string)
	walk = func(t reflect.Type, prefix string) {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := prefix + f.Tag.Get("toml")
			if f.Type.Kind() == reflect.Struct {
				walk(f.Type, name+".")
				continue
			}
			keys = append(keys, name)
		}
	}
	walk(reflect.TypeOf(Config{}), "")
	return keys
}

// Clone returns a copy of the config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the process-wide configuration, loading the default file on
// first access. Load failures fall back to the defaults.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load("")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfigMu.Lock()
		if globalConfig == nil {
			globalConfig = cfg
		}
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal replaces the process-wide configuration.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting clears the global config so the next Global call reloads.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
