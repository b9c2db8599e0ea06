package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
	"github.com/taigrr/facet/internal/config"
	"github.com/taigrr/facet/internal/control"
	"github.com/taigrr/facet/pkg/models"
	"github.com/taigrr/facet/pkg/render"
)

func newViewCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <model|cube|tetrahedron>",
		Short: "Interactive viewer in the terminal",
		Long: `Interactive viewer in the terminal.

Each character cell shows two pixels with a half block, so the raster
follows the terminal size and --width/--height are ignored.

  W/S forward/back   A/D strafe   Q/E up/down   arrows yaw/pitch
  F1 flat   F2 gouraud   F3 phong   F4 perspective/orthographic
  x style   o overlay   r reset   ? HUD   scroll zoom   Esc quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, frame, mesh, err := a.load(args[0])
			if err != nil {
				return err
			}
			return runViewer(cmd.Context(), cfg, frame, mesh, filepath.Base(args[0]))
		},
	}
	a.addFrameFlags(cmd.Flags())
	cmd.Flags().IntVar(&a.flags.FPS, "fps", 0, "target frames per second")
	return cmd
}

// viewer is the state shared between the event goroutine and the render
// loop.
type viewer struct {
	mu      sync.Mutex
	frame   render.FrameConfig
	smooth  *control.Smoother
	home    render.Camera
	pending control.Action
	showHUD bool
	fb      *render.Framebuffer
	width   int
	height  int
}

// handleKey applies one key press. It reports false when the viewer should
// quit.
func (v *viewer) handleKey(ev uv.KeyPressEvent) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	switch {
	case ev.MatchString("escape", "ctrl+c"):
		return false
	case ev.MatchString("r"):
		v.smooth.Target = v.home
		v.smooth.Snap()
	case ev.MatchString("x"):
		v.frame.Style = (v.frame.Style + 1) % 3
	case ev.MatchString("o"):
		v.frame.Overlay = !v.frame.Overlay
	case ev.MatchString("?", "shift+/"):
		v.showHUD = !v.showHUD
	}

	for name, action := range control.Bindings {
		if ev.MatchString(name) {
			v.pending |= action
		}
	}
	for name, toggle := range control.ToggleKeys {
		if ev.MatchString(name) {
			control.ApplyToggles(&v.frame, toggle)
		}
	}
	return true
}

func (v *viewer) zoom(distance float64) {
	v.mu.Lock()
	v.smooth.Target.MoveForward(distance)
	v.mu.Unlock()
}

// resize follows a terminal size change. The terminal buffer is shared
// with the render loop, so it is resized under the same lock.
func (v *viewer) resize(term *uv.Terminal, width, height int) {
	v.mu.Lock()
	term.Erase()
	term.Resize(width, height)
	v.width, v.height = width, height
	v.fb.Resize(width, height*2)
	v.mu.Unlock()
}

func runViewer(ctx context.Context, cfg config.Config, frame render.FrameConfig, mesh *models.Mesh, name string) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)
	term.WriteString(ansi.SetModeMouseButtonEvent + ansi.SetModeMouseExtSgr)

	home := *cfg.NewCamera()
	v := &viewer{
		frame:   frame,
		smooth:  control.NewSmoother(cfg.FPS, home),
		home:    home,
		showHUD: true,
		fb:      render.NewFramebuffer(width, height*2),
		width:   width,
		height:  height,
	}
	r := render.NewRenderer(v.fb, cfg.Lighting())
	meshes := []render.MeshRenderer{mesh}
	speeds := cfg.Speeds()
	hud := NewHUD(name, mesh.TriangleCount(), time.Now())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				v.resize(term, ev.Width, ev.Height)

			case uv.KeyPressEvent:
				if !v.handleKey(ev) {
					cancel()
					return
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					v.zoom(0.5)
				case uv.MouseWheelDown:
					v.zoom(-0.5)
				}
			}
		}
	}()

	cleanup := func() {
		term.WriteString(ansi.ResetModeMouseButtonEvent + ansi.ResetModeMouseExtSgr)
		term.Flush()
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	targetDuration := time.Second / time.Duration(cfg.FPS)

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()

		v.mu.Lock()
		control.Apply(&v.smooth.Target, v.pending, speeds)
		v.pending = 0
		cam := v.smooth.Update()
		stats := r.RenderFrame(&cam, meshes, v.frame)
		hud.Tick(now)
		var top, bottom string
		if v.showHUD {
			top, bottom = hud.Lines(v.width, v.frame, stats)
		}
		term.Draw(uv.DrawableFunc(func(scr uv.Screen, area uv.Rectangle) {
			v.fb.Draw(scr, area)
			if top != "" {
				hud.Draw(scr, area, top, bottom)
			}
		}))
		err := term.Display()
		v.mu.Unlock()

		if err != nil {
			cleanup()
			return fmt.Errorf("display: %w", err)
		}

		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
