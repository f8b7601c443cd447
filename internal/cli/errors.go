// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/jeranaias/mindeep-tui/internal/config"
)

// ErrNoTTY is returned when the full-screen UI is started without a terminal.
var ErrNoTTY = errors.New("stdin and stdout must be a terminal")

// UnknownTaskError is returned for a task name that resolves to no type.
type UnknownTaskError struct {
	Name string
}

func (e *UnknownTaskError) Error() string {
	return fmt.Sprintf("unknown task type %q", e.Name)
}

// reportErr writes err to w with a hint for the errors users can act on.
func reportErr(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)

	var verrs config.ValidateErrors
	var unknown *UnknownTaskError
	switch {
	case errors.Is(err, ErrNoTTY):
		fmt.Fprintln(w, "Hint: run `mindeep chat` for a line-based session.")
	case errors.As(err, &verrs):
		fmt.Fprintln(w, "Hint: check the file shown by `mindeep config path`.")
	case errors.As(err, &unknown):
		fmt.Fprintln(w, "Hint: `mindeep tasks` lists the task types.")
	}
}
