package main

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/facet/pkg/render"
)

var (
	hudBar   = lipgloss.NewStyle().Background(lipgloss.Color("#1e1e28")).Foreground(lipgloss.Color("#e4e4e4"))
	hudFPS   = hudBar.Foreground(lipgloss.Color("#5fd787")).Bold(true)
	hudTitle = hudBar.Bold(true)
	hudCount = hudBar.Foreground(lipgloss.Color("#5fd7ff"))
	hudMode  = hudBar.Foreground(lipgloss.Color("#ffd75f"))
	hudHint  = hudBar.Faint(true)
)

// HUD renders an overlay with model info, frame rate and current modes.
type HUD struct {
	name      string
	triangles int

	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a HUD for the named model.
func NewHUD(name string, triangles int, now time.Time) *HUD {
	return &HUD{name: name, triangles: triangles, fpsTime: now}
}

// Tick counts one frame and refreshes the FPS estimate once a second.
func (h *HUD) Tick(now time.Time) {
	h.fpsFrames++
	elapsed := now.Sub(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = now
	}
}

// FPS returns the last frame rate estimate.
func (h *HUD) FPS() float64 { return h.fps }

// Lines returns the styled top and bottom bars for a terminal width.
func (h *HUD) Lines(width int, cfg render.FrameConfig, stats render.FrameStats) (top, bottom string) {
	top = spread(width,
		hudFPS.Render(fmt.Sprintf(" %.0f FPS ", h.fps)),
		hudTitle.Render(" "+h.name+" "),
		hudCount.Render(fmt.Sprintf(" %d tris ", h.triangles)),
	)

	mode := fmt.Sprintf(" %s · %s · %s ", cfg.Shading, cfg.Projection, cfg.Style)
	if cfg.Overlay {
		mode += "+ wire "
	}
	bottom = spread(width,
		hudMode.Render(mode),
		hudCount.Render(fmt.Sprintf(" %d px ", stats.PixelsWritten)),
		hudHint.Render(" F1-F4 modes  x style  o overlay  ? hud "),
	)
	return top, bottom
}

// Draw places the bars on the first and last rows of area.
func (h *HUD) Draw(scr uv.Screen, area uv.Rectangle, top, bottom string) {
	if area.Dy() < 2 {
		return
	}
	uv.NewStyledString(top).Draw(scr, uv.Rect(area.Min.X, area.Min.Y, area.Dx(), 1))
	uv.NewStyledString(bottom).Draw(scr, uv.Rect(area.Min.X, area.Max.Y-1, area.Dx(), 1))
}

// spread lays out left, middle and right segments across width, padding
// with the bar background. Segments that do not fit are dropped from the
// middle first.
func spread(width int, left, mid, right string) string {
	lw, mw, rw := lipgloss.Width(left), lipgloss.Width(mid), lipgloss.Width(right)
	if lw+mw+rw > width {
		mid, mw = "", 0
	}
	if lw+rw > width {
		right, rw = "", 0
	}

	gap := width - lw - mw - rw
	if gap < 0 {
		return left
	}
	before := gap / 2
	if mw == 0 {
		before = gap
	}
	after := gap - before
	if mw == 0 {
		after = 0
	}
	return left +
		hudBar.Render(strings.Repeat(" ", before)) +
		mid +
		hudBar.Render(strings.Repeat(" ", after)) +
		right
}
