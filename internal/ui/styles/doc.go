// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the Mindeep TUI.

All colors are Lip Gloss AdaptiveColors so the palette follows the
terminal background.

# Color System (colors.go)

Three accents map onto the task catalog:

	Violet - primary   (calendar, browse, brand)
	Cyan   - secondary (summarize, analyze)
	Pink   - accent    (code)

AccentColor and TaskColor resolve those mappings.

# Theme System (theme.go)

	theme := styles.NewTheme("auto")
	theme.SetSize(width, height)
	switch theme.GetLayoutMode() {
	case styles.LayoutWide:
		// conversation, avatar pane and overlay side by side
	}

# Animation System (animations.go)

SpinnerConfig drives frame-based indicators (ThinkingSpinner, ListeningPulse).
StaggerDelay and PanelSlideIn time the task panel entrance. RenderSphere
draws the decorative avatar.
*/
package styles
