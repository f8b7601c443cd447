// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration management for mindeep.
//
// Configuration is read from ~/.mindeep/config.toml. Values are resolved in
// this order, later sources winning:
//
//  1. Built-in defaults (Default)
//  2. The TOML file
//  3. MINDEEP_* environment variables, including those loaded from .env files
//
// # Key Types
//
//   - Config: Root configuration with assistant, ui and log sections
//   - ValidationError: A single invalid field
//   - Watcher: Reloads the config file when it changes on disk
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	delay := cfg.ReplyDelay()
//
// Hot reload:
//
//	w, err := config.NewWatcher(path, 200*time.Millisecond)
//	go w.Run(ctx)
//	for update := range w.Updates() {
//	    apply(update.Config)
//	}
package config
