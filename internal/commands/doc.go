// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the line chat.
//
// # Key Types
//
//   - Registry: registered commands, looked up by name or alias
//   - ParseResult: parsed command with name and arguments
//   - Completer: tab completion for command names and argument values
//
// # Usage
//
// Register and execute a command:
//
//	r := commands.NewRegistry()
//	r.Register(&commands.Command{
//	    Name:    "/quit",
//	    Handler: func([]string) error { return commands.ErrQuit },
//	})
//	err := r.Execute("/quit")
//
// Get completions:
//
//	c := commands.NewCompleter(r)
//	c.Complete("/qu") // ["/quit"]
package commands
