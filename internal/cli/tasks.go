// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/mindeep-tui/internal/catalog"
	"github.com/jeranaias/mindeep-tui/internal/util"
)

func newTasksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tasks [type]",
		Short: "List task types or describe one",
		Example: `  mindeep tasks
  mindeep tasks code
  mindeep tasks "Code Help"`,
		Args: cobra.MaximumNArgs(1),
		Annotations: map[string]string{
			tolerateConfigErrors: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprint(out, taskList(catalog.None))
				return nil
			}
			t, ok := catalog.Parse(args[0])
			if !ok {
				return &UnknownTaskError{Name: args[0]}
			}
			info, _ := catalog.Lookup(t)
			fmt.Fprint(out, renderMarkdown(out, info.Markdown()))
			return nil
		},
	}
}

// taskList renders the catalog as a numbered table. The selected type, if
// any, is marked with an asterisk.
func taskList(selected catalog.Type) string {
	var b strings.Builder
	for i, t := range catalog.All() {
		info, _ := catalog.Lookup(t)
		mark := " "
		if t == selected {
			mark = "*"
		}
		fmt.Fprintf(&b, "%s %d. %s %s %s\n",
			mark, i+1,
			util.PadRight(t.String(), 10),
			util.PadRight(info.Label, 10),
			info.Title)
	}
	return b.String()
}
