package main

import (
	"github.com/spf13/cobra"
	"github.com/taigrr/facet/pkg/render"
)

func newRenderCmd(a *app) *cobra.Command {
	var output string
	var scale int

	cmd := &cobra.Command{
		Use:   "render <model|cube|tetrahedron>",
		Short: "Render one frame to an image file",
		Example: `  facet render cube -o cube.png
  facet render teapot.obj --shading gouraud --style wireframe --aa -o teapot.webp`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.flags.OutputScale = scale
			cfg, frame, mesh, err := a.load(args[0])
			if err != nil {
				return err
			}

			fb := render.NewFramebuffer(cfg.Width, cfg.Height)
			r := render.NewRenderer(fb, cfg.Lighting())
			stats := r.RenderFrame(cfg.NewCamera(), []render.MeshRenderer{mesh}, frame)

			if err := render.SaveImage(output, fb.ToImage(), cfg.OutputScale); err != nil {
				return err
			}
			a.logger.Info("wrote image",
				"path", output,
				"scale", cfg.OutputScale,
				"shading", frame.Shading,
				"projection", frame.Projection,
				"triangles", stats.TrianglesSubmitted,
				"clipped", stats.TrianglesClipped,
				"pixels", stats.PixelsWritten)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "facet.png", "output image (.png, .jpg, .webp, .tga)")
	cmd.Flags().IntVar(&scale, "scale", 0, "integer upscale of the written image")
	a.addFrameFlags(cmd.Flags())
	return cmd
}
