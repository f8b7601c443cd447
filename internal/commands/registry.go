// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"strings"

	"github.com/jeranaias/mindeep-tui/internal/util"
)

// ErrQuit is returned by a handler to end the session.
var ErrQuit = errors.New("quit")

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Command represents a slash command that can be executed.
type Command struct {
	// Name is the primary command name (e.g., "/help")
	Name string

	// Aliases are alternative names (e.g., "/h", "/?")
	Aliases []string

	// Description is shown in help and completion
	Description string

	// Usage shows argument syntax (e.g., "/task [type]")
	Usage string

	// Args defines the expected arguments
	Args []ArgDef

	// Handler executes the command
	Handler func(args []string) error

	// Hidden commands don't appear in help
	Hidden bool
}

// ArgDef defines an argument for a command.
type ArgDef struct {
	// Name of the argument
	Name string

	// Required indicates if the argument must be provided
	Required bool

	// Description explains the argument
	Description string

	// Values are offered as completions
	Values []string

	// Rest makes the argument swallow the remaining input
	Rest bool
}

// usage returns Usage, or Name when none is set.
func (c *Command) usage() string {
	if c.Usage != "" {
		return c.Usage
	}
	return c.Name
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds all registered commands.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]*Command
	order    []*Command
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]*Command),
	}
}

// Register adds a command to the registry. Re-registering a name replaces
// the earlier command.
func (r *Registry) Register(cmd *Command) {
	name := strings.ToLower(cmd.Name)
	if old, ok := r.commands[name]; ok {
		for i, c := range r.order {
			if c == old {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
	r.commands[name] = cmd
	r.order = append(r.order, cmd)
	for _, alias := range cmd.Aliases {
		r.aliases[strings.ToLower(alias)] = cmd
	}
}

// Get retrieves a command by name or alias, ignoring case.
func (r *Registry) Get(name string) *Command {
	name = strings.ToLower(name)
	if cmd, ok := r.commands[name]; ok {
		return cmd
	}
	if cmd, ok := r.aliases[name]; ok {
		return cmd
	}
	return nil
}

// All returns all registered commands in registration order.
func (r *Registry) All() []*Command {
	out := make([]*Command, len(r.order))
	copy(out, r.order)
	return out
}

// Execute parses input and runs the matching handler.
func (r *Registry) Execute(input string) error {
	res := r.Parse(input)
	if !res.IsCommand {
		return ErrNotCommand
	}
	if res.Command == nil {
		return &UnknownCommandError{Name: res.CommandName}
	}
	if err := ValidateArgs(res.Command, res.Args); err != nil {
		return err
	}
	if res.Command.Handler == nil {
		return nil
	}
	return res.Command.Handler(res.Args)
}

// Help lists the visible commands with their usage and description.
func (r *Registry) Help() string {
	width := 0
	for _, cmd := range r.order {
		if !cmd.Hidden {
			width = max(width, util.StringWidth(cmd.usage()))
		}
	}

	var b strings.Builder
	b.WriteString("Commands:\n")
	for _, cmd := range r.order {
		if cmd.Hidden {
			continue
		}
		b.WriteString("  ")
		b.WriteString(util.PadRight(cmd.usage(), width))
		b.WriteString("  ")
		b.WriteString(cmd.Description)
		b.WriteString("\n")
	}
	return b.String()
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrNotCommand is returned by Execute for input without a leading slash.
var ErrNotCommand = errors.New("not a command")

// UnknownCommandError is returned for a slash command nobody registered.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return "unknown command: " + e.Name
}
