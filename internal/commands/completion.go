// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"sort"
	"strings"
)

// =============================================================================
// COMPLETER
// =============================================================================

// Completion is one candidate for the word being typed.
type Completion struct {
	Value       string
	Description string
	Score       int
}

// Completer handles tab completion for commands and arguments.
type Completer struct {
	registry *Registry
}

// NewCompleter creates a new completer with the given registry.
func NewCompleter(registry *Registry) *Completer {
	return &Completer{registry: registry}
}

// Complete returns whole-line candidates for line, best first. It matches
// the line completer signature used by liner.
func (c *Completer) Complete(line string) []string {
	prefix, _ := splitLastWord(line)
	candidates := c.Candidates(line)

	out := make([]string, len(candidates))
	for i, cand := range candidates {
		out[i] = prefix + cand.Value
	}
	return out
}

// Candidates returns the ranked completions for the word being typed.
func (c *Completer) Candidates(line string) []Completion {
	prefix, word := splitLastWord(line)
	if strings.TrimSpace(prefix) == "" {
		if !strings.HasPrefix(word, "/") {
			return nil
		}
		return c.completeCommands(word)
	}
	return c.completeArg(prefix, word)
}

// splitLastWord splits line before the word under the cursor.
func splitLastWord(line string) (prefix, word string) {
	i := strings.LastIndexAny(line, " \t")
	if i < 0 {
		return "", line
	}
	return line[:i+1], line[i+1:]
}

// =============================================================================
// COMMAND COMPLETION
// =============================================================================

func (c *Completer) completeCommands(partial string) []Completion {
	var completions []Completion
	partial = strings.ToLower(partial)

	for _, cmd := range c.registry.All() {
		if cmd.Hidden {
			continue
		}
		if strings.HasPrefix(strings.ToLower(cmd.Name), partial) {
			completions = append(completions, Completion{
				Value:       cmd.Name,
				Description: cmd.Description,
				Score:       calculateScore(cmd.Name, partial),
			})
			continue
		}
		for _, alias := range cmd.Aliases {
			if strings.HasPrefix(strings.ToLower(alias), partial) {
				completions = append(completions, Completion{
					Value:       alias,
					Description: cmd.Description,
					Score:       calculateScore(alias, partial) - 10,
				})
				break
			}
		}
	}

	sortCompletions(completions)
	return completions
}

// =============================================================================
// ARGUMENT COMPLETION
// =============================================================================

func (c *Completer) completeArg(prefix, partial string) []Completion {
	parts := splitCommandLine(prefix)
	if len(parts) == 0 || !strings.HasPrefix(parts[0], "/") {
		return nil
	}
	cmd := c.registry.Get(parts[0])
	if cmd == nil {
		return nil
	}
	argIndex := len(parts) - 1
	if argIndex >= len(cmd.Args) {
		return nil
	}
	return completeFromList(cmd.Args[argIndex].Values, partial)
}

func completeFromList(values []string, partial string) []Completion {
	var completions []Completion
	partial = strings.ToLower(partial)

	for _, value := range values {
		if strings.HasPrefix(strings.ToLower(value), partial) {
			completions = append(completions, Completion{
				Value: value,
				Score: calculateScore(value, partial),
			})
		}
	}

	sortCompletions(completions)
	return completions
}

// calculateScore ranks a candidate. Higher score = better match.
func calculateScore(value, partial string) int {
	value = strings.ToLower(value)
	partial = strings.ToLower(partial)

	score := 100
	if value == partial {
		return score + 100
	}
	if strings.HasPrefix(value, partial) {
		score += 50
		score += 20 - len(value)
	}
	score -= len(value) / 2
	return score
}

// sortCompletions sorts completions by score (descending), then alphabetically.
func sortCompletions(completions []Completion) {
	sort.SliceStable(completions, func(i, j int) bool {
		if completions[i].Score != completions[j].Score {
			return completions[i].Score > completions[j].Score
		}
		return completions[i].Value < completions[j].Value
	})
}
