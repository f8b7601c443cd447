// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package catalog defines the closed set of task types Mindeep knows about
// and the static descriptive metadata shown for each of them.
//
// The table is process-wide constant data. Lookups hand out copies so the
// feature lists can never be mutated through a returned Info.
//
// # Key Types
//
//   - Type: One of calendar, summarize, code, browse, analyze (or None)
//   - Info: Title, description, ordered features and accent of a type
//   - Accent: Visual accent category used by renderers
//
// # Usage
//
//	t, ok := catalog.Parse("code")
//	if info, found := catalog.Lookup(t); found {
//	    fmt.Println(info.Title)
//	}
package catalog
