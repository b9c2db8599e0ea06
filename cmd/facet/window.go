package main

import (
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"github.com/taigrr/facet/internal/control"
	"github.com/taigrr/facet/pkg/glview"
	"github.com/taigrr/facet/pkg/render"
)

// GLFW and OpenGL calls must stay on the main thread.
func init() {
	runtime.LockOSThread()
}

func newWindowCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "window <model|cube|tetrahedron>",
		Short: "Interactive viewer in an OpenGL window",
		Long: `Interactive viewer in an OpenGL window.

The frame is rendered in software at --width x --height and stretched to
the window.

  W/S forward/back   A/D strafe   Q/E up/down   arrows yaw/pitch
  F1 flat   F2 gouraud   F3 phong   F4 perspective/orthographic   Esc quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, frame, mesh, err := a.load(args[0])
			if err != nil {
				return err
			}
			name := filepath.Base(args[0])

			win, err := glview.Open("facet - "+name, cfg.Width, cfg.Height)
			if err != nil {
				return err
			}
			defer win.Close()

			fb := render.NewFramebuffer(cfg.Width, cfg.Height)
			r := render.NewRenderer(fb, cfg.Lighting())
			cam := cfg.NewCamera()
			meshes := []render.MeshRenderer{mesh}
			speeds := cfg.Speeds()
			hud := NewHUD(name, mesh.TriangleCount(), time.Now())
			ctx := cmd.Context()

			lastTitle := time.Now()
			for !win.ShouldClose() && ctx.Err() == nil {
				held, pressed := win.Input()
				control.Apply(cam, held, speeds)
				if pressed != 0 {
					control.ApplyToggles(&frame, pressed)
					a.logger.Debug("mode changed", "shading", frame.Shading, "projection", frame.Projection)
				}

				r.RenderFrame(cam, meshes, frame)
				win.Upload(fb)
				win.Present()

				now := time.Now()
				hud.Tick(now)
				if now.Sub(lastTitle) >= time.Second {
					win.SetTitle(fmt.Sprintf("facet - %s - %.0f FPS - %s %s",
						name, hud.FPS(), frame.Shading, frame.Projection))
					lastTitle = now
				}
			}
			return nil
		},
	}
	a.addFrameFlags(cmd.Flags())
	return cmd
}
