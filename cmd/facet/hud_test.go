package main

import (
	"strings"
	"testing"
	"time"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/facet/pkg/render"
)

func TestHUDTick(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	h := NewHUD("cube", 12, start)

	for i := 1; i <= 30; i++ {
		h.Tick(start.Add(time.Duration(i) * time.Second / 60))
	}
	if h.FPS() != 0 {
		t.Errorf("FPS before one second = %v, want 0", h.FPS())
	}

	for i := 31; i <= 60; i++ {
		h.Tick(start.Add(time.Duration(i) * time.Second / 60))
	}
	if got := h.FPS(); got < 59.9 || got > 60.1 {
		t.Errorf("FPS = %v, want 60", got)
	}
}

func TestHUDLines(t *testing.T) {
	h := NewHUD("teapot.obj", 2256, time.Now())
	cfg := render.DefaultFrameConfig()
	cfg.Shading = render.Gouraud
	cfg.Overlay = true

	top, bottom := h.Lines(120, cfg, render.FrameStats{PixelsWritten: 4321})
	for _, want := range []string{"teapot.obj", "2256 tris", "FPS"} {
		if !strings.Contains(top, want) {
			t.Errorf("top bar missing %q", want)
		}
	}
	for _, want := range []string{"gouraud", "perspective", "solid", "wire", "4321 px"} {
		if !strings.Contains(bottom, want) {
			t.Errorf("bottom bar missing %q", want)
		}
	}
	if w := lipgloss.Width(top); w != 120 {
		t.Errorf("top bar width = %d, want 120", w)
	}
}

func TestSpread(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  int
	}{
		{"fits", 40, 40},
		{"drops middle", 12, 12},
		{"left only", 4, 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := spread(tc.width, "left", "middle", "right")
			if w := lipgloss.Width(got); w != tc.want {
				t.Errorf("width = %d, want %d (%q)", w, tc.want, got)
			}
		})
	}
}

func TestHUDDraw(t *testing.T) {
	scr := uv.NewScreenBuffer(20, 5)
	h := NewHUD("cube", 12, time.Now())
	h.Draw(scr, scr.Bounds(), "top", "bottom")

	if c := scr.CellAt(0, 0); c == nil || c.Content != "t" {
		t.Errorf("top-left cell = %+v", c)
	}
	if c := scr.CellAt(0, 4); c == nil || c.Content != "b" {
		t.Errorf("bottom-left cell = %+v", c)
	}

	small := uv.NewScreenBuffer(20, 1)
	h.Draw(small, small.Bounds(), "top", "bottom")
	if c := small.CellAt(0, 0); c != nil && c.Content == "t" {
		t.Error("HUD drawn into a one-row area")
	}
}
