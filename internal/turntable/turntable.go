// Package turntable renders a model from a ring of camera positions and
// writes one numbered image per frame.
package turntable

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/render"
	"golang.org/x/sync/errgroup"
)

// ErrNoFrames reports a turntable with nothing to render.
var ErrNoFrames = errors.New("turntable: frame count must be positive")

// Options configures a turntable run.
type Options struct {
	Meshes []render.MeshRenderer
	Frame  render.FrameConfig
	Light  render.Lighting

	Width, Height int
	Frames        int
	Radius        float64 // orbit distance from Target
	Elevation     float64 // camera height above Target
	Target        math3d.Vec3

	OutputDir string
	Prefix    string // file name prefix, default "frame"
	Ext       string // ".png", ".jpg", ".webp" or ".tga"; default ".png"
	Scale     int    // integer output upscale
	Workers   int

	Logger *log.Logger
}

// OrbitCamera returns the camera for frame i of n, placed on a circle of
// radius r around target at the given elevation and looking at target.
func OrbitCamera(i, n int, r, elevation float64, target math3d.Vec3) *render.Camera {
	theta := 2 * math.Pi * float64(i) / float64(n)
	cam := render.NewCamera()
	cam.Position = target.Add(math3d.V3(r*math.Sin(theta), elevation, r*math.Cos(theta)))
	cam.LookAt(target)
	return cam
}

// FrameName returns the file name for frame i.
func (o Options) FrameName(i int) string {
	prefix, ext := o.Prefix, o.Ext
	if prefix == "" {
		prefix = "frame"
	}
	if ext == "" {
		ext = ".png"
	}
	return fmt.Sprintf("%s_%04d%s", prefix, i, ext)
}

// Render draws every frame with at most Workers frames in flight and
// returns the written paths in frame order. Each worker owns its own
// framebuffer and renderer; meshes are only read. The first error cancels
// the remaining frames.
func Render(ctx context.Context, opts Options) ([]string, error) {
	if opts.Frames <= 0 {
		return nil, ErrNoFrames
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("turntable: invalid size %dx%d", opts.Width, opts.Height)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	workers := max(opts.Workers, 1)

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("turntable: create output dir: %w", err)
	}

	paths := make([]string, opts.Frames)
	var done atomic.Int64
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range opts.Frames {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			fb := render.NewFramebuffer(opts.Width, opts.Height)
			r := render.NewRenderer(fb, opts.Light)
			cam := OrbitCamera(i, opts.Frames, opts.Radius, opts.Elevation, opts.Target)
			stats := r.RenderFrame(cam, opts.Meshes, opts.Frame)

			path := filepath.Join(opts.OutputDir, opts.FrameName(i))
			if err := render.SaveImage(path, fb.ToImage(), opts.Scale); err != nil {
				return fmt.Errorf("turntable: frame %d: %w", i, err)
			}
			paths[i] = path

			n := done.Add(1)
			logger.Debug("frame written", "frame", i, "path", path,
				"pixels", stats.PixelsWritten, "progress", fmt.Sprintf("%d/%d", n, opts.Frames))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	logger.Info("turntable complete", "frames", opts.Frames, "workers", workers,
		"elapsed", elapsed.Round(time.Millisecond),
		"fps", fmt.Sprintf("%.1f", float64(opts.Frames)/elapsed.Seconds()))
	return paths, nil
}
