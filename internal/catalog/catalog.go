// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// =============================================================================
// TASK TYPE
// =============================================================================

// Type identifies a task category. The zero value None means "no task".
type Type string

const (
	// None is the absence of a task type.
	None Type = ""

	Calendar  Type = "calendar"
	Summarize Type = "summarize"
	Code      Type = "code"
	Browse    Type = "browse"
	Analyze   Type = "analyze"
)

// String returns the identifier of the task type.
func (t Type) String() string {
	return string(t)
}

// IsNone reports whether t is the empty task type.
func (t Type) IsNone() bool {
	return t == None
}

// Known reports whether t is one of the types in the table.
func (t Type) Known() bool {
	_, ok := table[t]
	return ok
}

// DisplayName returns the title-cased identifier ("Summarize").
// Unknown types are title-cased as well so callers never get an empty label.
func (t Type) DisplayName() string {
	if t == None {
		return ""
	}
	return cases.Title(language.English).String(string(t))
}

// All returns every known task type in quick-action order.
func All() []Type {
	out := make([]Type, len(order))
	copy(out, order)
	return out
}

// Parse resolves a user-supplied name to a Type. Matching is case-insensitive
// and ignores surrounding whitespace. Quick-action labels ("Code Help") and
// titles ("Calendar Management") resolve too.
func Parse(s string) (Type, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return None, false
	}
	if _, ok := table[Type(key)]; ok {
		return Type(key), true
	}
	for _, t := range order {
		info := table[t]
		if strings.EqualFold(info.Label, key) || strings.EqualFold(info.Title, key) {
			return t, true
		}
	}
	return None, false
}

// =============================================================================
// ACCENT
// =============================================================================

// Accent is the visual accent category of a task type.
type Accent int

const (
	AccentPrimary Accent = iota
	AccentSecondary
	AccentTertiary
)

// String returns the accent name.
func (a Accent) String() string {
	switch a {
	case AccentPrimary:
		return "primary"
	case AccentSecondary:
		return "secondary"
	case AccentTertiary:
		return "accent"
	default:
		return "unknown"
	}
}

// =============================================================================
// TASK INFO
// =============================================================================

// Info is the static description of a task type.
type Info struct {
	// Type is the key this entry is stored under
	Type Type

	// Label is the short quick-action caption
	Label string

	// Title is the heading shown in the detail panel
	Title string

	// Description is a one-sentence summary
	Description string

	// Features is the ordered capability list
	Features []string

	// Accent selects the color family
	Accent Accent
}

// AdvisoryNote is the decorative routing note shown in every detail panel.
const AdvisoryNote = "This task will be automatically routed to the most suitable LLM based on complexity and requirements."

var order = []Type{Calendar, Summarize, Code, Browse, Analyze}

var table = map[Type]Info{
	Calendar: {
		Type:        Calendar,
		Label:       "Schedule",
		Title:       "Calendar Management",
		Description: "Schedule meetings, set reminders, and manage your calendar",
		Features:    []string{"Smart scheduling", "Meeting preparation", "Reminder system", "Calendar integration"},
		Accent:      AccentPrimary,
	},
	Summarize: {
		Type:        Summarize,
		Label:       "Summarize",
		Title:       "Document Summarization",
		Description: "Extract key insights from documents, PDFs, and web content",
		Features:    []string{"PDF analysis", "Key points extraction", "Multi-language support", "Visual summaries"},
		Accent:      AccentSecondary,
	},
	Code: {
		Type:        Code,
		Label:       "Code Help",
		Title:       "Code Assistance",
		Description: "Get help with programming, debugging, and code optimization",
		Features:    []string{"Code review", "Bug fixing", "Optimization tips", "Multi-language support"},
		Accent:      AccentTertiary,
	},
	Browse: {
		Type:        Browse,
		Label:       "Browse",
		Title:       "Web Browsing",
		Description: "Fetch real-time information and browse the web intelligently",
		Features:    []string{"Real-time data", "Research assistance", "Fact checking", "Content analysis"},
		Accent:      AccentPrimary,
	},
	Analyze: {
		Type:        Analyze,
		Label:       "Analyze",
		Title:       "Data Analysis",
		Description: "Analyze data patterns, generate insights, and create visualizations",
		Features:    []string{"Pattern detection", "Statistical analysis", "Visualization", "Predictive modeling"},
		Accent:      AccentSecondary,
	},
}

// Lookup returns the metadata for t. The second result is false for None and
// for any type outside the table.
func Lookup(t Type) (Info, bool) {
	info, ok := table[t]
	if !ok {
		return Info{}, false
	}
	info.Features = append([]string(nil), info.Features...)
	return info, true
}

// Markdown renders the entry as a short markdown document suitable for glamour.
func (i Info) Markdown() string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(i.Title)
	b.WriteString("\n\n")
	b.WriteString(i.Description)
	b.WriteString(".\n\n## Capabilities\n\n")
	for _, f := range i.Features {
		b.WriteString("- ")
		b.WriteString(f)
		b.WriteString("\n")
	}
	b.WriteString("\n> ")
	b.WriteString(AdvisoryNote)
	b.WriteString("\n")
	return b.String()
}
