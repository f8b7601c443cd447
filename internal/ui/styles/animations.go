// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"math"
	"time"
)

// =============================================================================
// SPINNER ANIMATIONS
// =============================================================================

// SpinnerConfig holds the frames and rate of a looping animation.
type SpinnerConfig struct {
	Frames []string
	FPS    int
}

// Duration returns the duration of one frame.
func (s SpinnerConfig) Duration() time.Duration {
	if s.FPS <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(s.FPS)
}

// Frame returns the frame shown after elapsed time.
func (s SpinnerConfig) Frame(elapsed time.Duration) string {
	if len(s.Frames) == 0 {
		return ""
	}
	if elapsed < 0 {
		elapsed = 0
	}
	i := int(elapsed/s.Duration()) % len(s.Frames)
	return s.Frames[i]
}

// ThinkingSpinner - Shown while a reply is pending
var ThinkingSpinner = SpinnerConfig{
	Frames: []string{".  ", ".. ", "...", " ..", "  .", "   "},
	FPS:    6,
}

// ListeningPulse - Microphone indicator while listening
var ListeningPulse = SpinnerConfig{
	Frames: []string{"( )", "(.)", "(o)", "(O)", "(o)", "(.)"},
	FPS:    8,
}

// ActiveBlink - The avatar "Active" dot
var ActiveBlink = SpinnerConfig{
	Frames: []string{"*", "*", "*", "o"},
	FPS:    2,
}

// =============================================================================
// EASING
// =============================================================================

// EasingFunc maps progress in [0,1] to output in [0,1].
type EasingFunc func(t float64) float64

func EaseLinear(t float64) float64 { return t }

func EaseOutQuad(t float64) float64 { return t * (2 - t) }

func EaseOutCubic(t float64) float64 {
	t--
	return t*t*t + 1
}

// TransitionConfig is a timed eased transition.
type TransitionConfig struct {
	Duration time.Duration
	Easing   EasingFunc
}

// Progress returns the eased progress after elapsed, clamped to [0,1].
func (c TransitionConfig) Progress(elapsed time.Duration) float64 {
	if c.Duration <= 0 || elapsed >= c.Duration {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	p := float64(elapsed) / float64(c.Duration)
	if c.Easing != nil {
		p = c.Easing(p)
	}
	return math.Max(0, math.Min(1, p))
}

// PanelSlideIn is the task panel's entry transition.
var PanelSlideIn = TransitionConfig{
	Duration: 300 * time.Millisecond,
	Easing:   EaseOutCubic,
}

// SlideOffset returns how many columns of a width-wide panel are still
// off-screen after elapsed.
func SlideOffset(t TransitionConfig, elapsed time.Duration, width int) int {
	return int(math.Round(float64(width) * (1 - t.Progress(elapsed))))
}

// =============================================================================
// STAGGERED REVEAL
// =============================================================================

// StaggerDelay returns when item i of a list appears.
func StaggerDelay(i int, step time.Duration) time.Duration {
	if i <= 0 || step <= 0 {
		return 0
	}
	return time.Duration(i) * step
}

// =============================================================================
// AVATAR SPHERE
// =============================================================================

// sphereShades runs from the lit side of the sphere to the dark side.
var sphereShades = []rune(" .:-=+*#%@")

// RenderSphere draws a shaded ASCII sphere whose light source orbits with
// phase (radians). Terminal cells are about twice as tall as they are wide,
// so the x axis is stretched to keep it round.
func RenderSphere(radius int, phase float64) []string {
	if radius < 1 {
		return nil
	}
	lx, ly, lz := math.Cos(phase), -0.5, math.Sin(phase)
	norm := math.Sqrt(lx*lx + ly*ly + lz*lz)
	lx, ly, lz = lx/norm, ly/norm, lz/norm

	width := radius * 4
	rows := make([]string, 0, radius*2+1)
	for y := -radius; y <= radius; y++ {
		line := make([]rune, width+1)
		for x := 0; x <= width; x++ {
			nx := (float64(x) - float64(width)/2) / float64(radius*2)
			ny := float64(y) / float64(radius)
			d := nx*nx + ny*ny
			if d > 1 {
				line[x] = ' '
				continue
			}
			nz := math.Sqrt(1 - d)
			light := nx*lx + ny*ly + nz*lz
			if light < 0 {
				light = 0
			}
			idx := 1 + int(light*float64(len(sphereShades)-2))
			if idx >= len(sphereShades) {
				idx = len(sphereShades) - 1
			}
			line[x] = sphereShades[idx]
		}
		rows = append(rows, string(line))
	}
	return rows
}
