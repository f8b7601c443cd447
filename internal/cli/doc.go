// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the mindeep command line.
//
// # Commands
//
//   - mindeep: full-screen chat UI (requires a terminal)
//   - mindeep chat: line-based session with /task, /listen, /start, /close
//   - mindeep tasks [type]: list task types or render one as markdown
//   - mindeep config show|path|init|get: inspect or create the config file
//   - mindeep version: build information
//
// Every command loads .env files and the TOML config first, then applies
// --reply-delay and opens the log file named by --log-file or the config.
//
// # Usage
//
//	err := cli.Execute(ctx, os.Stdin, os.Stdout, os.Stderr, os.Args[1:]...)
package cli
