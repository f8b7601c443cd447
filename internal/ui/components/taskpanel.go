// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/mindeep-tui/internal/catalog"
	"github.com/jeranaias/mindeep-tui/internal/ui/styles"
	"github.com/jeranaias/mindeep-tui/internal/util"
	"github.com/jeranaias/mindeep-tui/internal/viewmodel"
)

// DefaultRevealStagger is the delay between consecutive capability lines.
const DefaultRevealStagger = 100 * time.Millisecond

// =============================================================================
// TASK PANEL COMPONENT
// =============================================================================

// TaskPanel renders the task detail overlay. It draws nothing when the
// overlay is closed or its task type has no catalog entry.
type TaskPanel struct {
	// Stagger is the capability reveal step. Zero or less shows all at once.
	Stagger time.Duration

	// Slide enables the entry transition.
	Slide bool

	// MarkdownStyle is the glamour style for the description. Empty picks
	// "dark" or "light" from the theme.
	MarkdownStyle string

	Width  int
	Height int
	theme  *styles.Theme

	// Rendered descriptions keyed by task, width and style.
	cache map[descKey]string
}

type descKey struct {
	task  catalog.Type
	width int
	style string
}

// NewTaskPanel creates a panel with the default stagger.
func NewTaskPanel(theme *styles.Theme) *TaskPanel {
	return &TaskPanel{
		Stagger: DefaultRevealStagger,
		Slide:   true,
		Width:   48,
		theme:   theme,
		cache:   make(map[descKey]string),
	}
}

// SetSize sets the outer size of the panel. Height zero lets it grow.
func (p *TaskPanel) SetSize(width, height int) {
	p.Width = width
	p.Height = height
}

// Animating reports whether the panel still changes over time at now.
func (p *TaskPanel) Animating(o viewmodel.Overlay, now time.Time) bool {
	if _, ok := o.Content(); !ok {
		return false
	}
	if p.Slide && now.Sub(o.OpenedAt()) < styles.PanelSlideIn.Duration {
		return true
	}
	return !o.RevealDone(now, p.Stagger)
}

// View renders the panel for overlay o at now.
func (p *TaskPanel) View(o viewmodel.Overlay, now time.Time) string {
	info, ok := o.Content()
	if !ok || p.theme == nil {
		return ""
	}

	panel := p.theme.Panel.BorderForeground(styles.AccentColor(info.Accent))
	outer := clamp(p.Width, 24, max(p.Width, 24))
	inner := outer - panel.GetHorizontalFrameSize()

	accent := p.theme.AccentStyle(info.Accent)
	closeHint := p.theme.PanelClose.Render("[x] esc")
	title := accent.Render(info.Title)
	gap := inner - lipgloss.Width(title) - lipgloss.Width(closeHint)
	if gap < 1 {
		title = accent.Render(util.TruncateWidth(info.Title, inner-lipgloss.Width(closeHint)-1))
		gap = 1
	}
	header := title + strings.Repeat(" ", gap) + closeHint

	var sections []string
	sections = append(sections, header)
	sections = append(sections, p.theme.TaskStyle(info.Type).Render("#"+info.Type.String()))

	sections = append(sections, p.theme.PanelSection.Render("Description"))
	sections = append(sections, p.description(info, inner))

	sections = append(sections, p.theme.PanelSection.Render("Capabilities"))
	shown := o.Revealed(now, p.Stagger)
	for i, f := range info.Features {
		if i >= shown {
			sections = append(sections, "")
			continue
		}
		bullet := accent.Render("+")
		sections = append(sections, bullet+" "+p.theme.PanelFeature.Width(inner-2).Render(f))
	}

	note := p.theme.PanelNoteTitle.Render("AI Model Selection") + "\n" +
		p.theme.PanelText.Width(inner-p.theme.PanelNote.GetHorizontalFrameSize()).Render(catalog.AdvisoryNote)
	sections = append(sections, p.theme.PanelNote.Render(note))

	button := p.theme.PanelButton.Background(styles.AccentColor(info.Accent)).Render("Start " + info.Title)
	sections = append(sections, button+" "+p.theme.PanelClose.Render("enter"))

	style := panel.Width(inner + panel.GetHorizontalPadding())
	if p.Height > 0 {
		style = style.Height(max(p.Height-panel.GetVerticalBorderSize(), 1))
	}
	out := style.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))

	if p.Slide {
		offset := styles.SlideOffset(styles.PanelSlideIn, now.Sub(o.OpenedAt()), outer)
		if offset > 0 {
			out = lipgloss.NewStyle().MaxWidth(outer).Render(indent(out, offset))
		}
	}
	return out
}

// description renders the task description as markdown, falling back to
// wrapped plain text if glamour fails.
func (p *TaskPanel) description(info catalog.Info, width int) string {
	style := p.MarkdownStyle
	if style == "" {
		style = "light"
		if p.theme.IsDark {
			style = "dark"
		}
	}
	key := descKey{task: info.Type, width: width, style: style}
	if out, ok := p.cache[key]; ok {
		return out
	}

	out := p.theme.PanelText.Width(width).Render(info.Description)
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if md, err := r.Render(info.Description); err == nil {
			out = strings.Trim(md, "\n")
			out = trimLeftMargin(out)
		}
	}
	if p.cache == nil {
		p.cache = make(map[descKey]string)
	}
	p.cache[key] = out
	return out
}

// trimLeftMargin strips the document margin glamour puts on every line.
func trimLeftMargin(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(strings.TrimPrefix(l, "  "), " ")
	}
	return strings.Join(lines, "\n")
}
