package main

import (
	"github.com/spf13/cobra"
	"github.com/taigrr/facet/internal/turntable"
	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/render"
)

func newTurntableCmd(a *app) *cobra.Command {
	var (
		outDir    string
		prefix    string
		ext       string
		frames    int
		radius    float64
		elevation float64
		scale     int
		workers   int
	)

	cmd := &cobra.Command{
		Use:     "turntable <model|cube|tetrahedron>",
		Short:   "Render numbered frames orbiting the model",
		Example: `  facet turntable model.glb --frames 72 --out frames --ext .webp`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.flags.OutputScale = scale
			a.flags.Workers = workers
			cfg, frame, mesh, err := a.load(args[0])
			if err != nil {
				return err
			}

			paths, err := turntable.Render(cmd.Context(), turntable.Options{
				Meshes:    []render.MeshRenderer{mesh},
				Frame:     frame,
				Light:     cfg.Lighting(),
				Width:     cfg.Width,
				Height:    cfg.Height,
				Frames:    frames,
				Radius:    radius,
				Elevation: elevation,
				Target:    math3d.Zero3(),
				OutputDir: outDir,
				Prefix:    prefix,
				Ext:       ext,
				Scale:     cfg.OutputScale,
				Workers:   cfg.Workers,
				Logger:    a.logger,
			})
			if err != nil {
				return err
			}
			a.logger.Info("wrote frames", "dir", outDir, "count", len(paths))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&outDir, "out", "o", "frames", "output directory")
	f.StringVar(&prefix, "prefix", "frame", "file name prefix")
	f.StringVar(&ext, "ext", ".png", "image format (.png, .jpg, .webp, .tga)")
	f.IntVarP(&frames, "frames", "n", 36, "number of frames in one orbit")
	f.Float64Var(&radius, "radius", 5, "orbit distance from the model center")
	f.Float64Var(&elevation, "elevation", 1.5, "camera height above the model center")
	f.IntVar(&scale, "scale", 0, "integer upscale of the written images")
	f.IntVarP(&workers, "workers", "j", 0, "frames rendered in parallel")
	a.addFrameFlags(f)
	return cmd
}
