package turntable

import (
	"context"
	"errors"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/models"
	"github.com/taigrr/facet/pkg/render"
)

func testOptions(t *testing.T, frames int) Options {
	t.Helper()
	cube := models.NewCube(1)
	cube.ComputeNormals()
	return Options{
		Meshes:    []render.MeshRenderer{cube},
		Frame:     render.DefaultFrameConfig(),
		Light:     render.DefaultLighting(),
		Width:     32,
		Height:    24,
		Frames:    frames,
		Radius:    4,
		OutputDir: t.TempDir(),
		Workers:   3,
	}
}

func TestOrbitCamera(t *testing.T) {
	const n = 8
	for i := range n {
		cam := OrbitCamera(i, n, 4, 1, math3d.Zero3())
		if d := cam.Position.Len(); math.Abs(d-math.Sqrt(17)) > 1e-9 {
			t.Errorf("frame %d: distance %v, want √17", i, d)
		}
		// The camera looks at the target.
		toTarget := cam.Position.Negate().Normalize()
		if !cam.Forward().ApproxEqual(toTarget, 1e-9) {
			t.Errorf("frame %d: forward %v, want %v", i, cam.Forward(), toTarget)
		}
	}

	first := OrbitCamera(0, n, 4, 0, math3d.Zero3())
	if !first.Position.ApproxEqual(math3d.V3(0, 0, 4), 1e-12) {
		t.Errorf("frame 0 at %v, want (0, 0, 4)", first.Position)
	}
}

func TestFrameName(t *testing.T) {
	tests := []struct {
		opts Options
		i    int
		want string
	}{
		{Options{}, 0, "frame_0000.png"},
		{Options{Prefix: "cube", Ext: ".webp"}, 12, "cube_0012.webp"},
	}
	for _, tc := range tests {
		if got := tc.opts.FrameName(tc.i); got != tc.want {
			t.Errorf("FrameName(%d) = %q, want %q", tc.i, got, tc.want)
		}
	}
}

func TestRenderWritesFrames(t *testing.T) {
	opts := testOptions(t, 6)

	paths, err := Render(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 6 {
		t.Fatalf("got %d paths, want 6", len(paths))
	}

	for i, p := range paths {
		if want := filepath.Join(opts.OutputDir, opts.FrameName(i)); p != want {
			t.Errorf("path[%d] = %q, want %q", i, p, want)
		}
		f, err := os.Open(p)
		if err != nil {
			t.Fatal(err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", p, err)
		}
		if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 24 {
			t.Errorf("%s is %dx%d", p, b.Dx(), b.Dy())
		}
	}
}

func TestRenderUpscale(t *testing.T) {
	opts := testOptions(t, 1)
	opts.Scale = 2

	paths, err := Render(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 64 || cfg.Height != 48 {
		t.Errorf("upscaled frame is %dx%d, want 64x48", cfg.Width, cfg.Height)
	}
}

func TestRenderErrors(t *testing.T) {
	opts := testOptions(t, 0)
	if _, err := Render(context.Background(), opts); !errors.Is(err, ErrNoFrames) {
		t.Errorf("zero frames: err = %v", err)
	}

	opts = testOptions(t, 2)
	opts.Ext = ".bmp"
	if _, err := Render(context.Background(), opts); !errors.Is(err, render.ErrUnsupportedImage) {
		t.Errorf("bad extension: err = %v", err)
	}

	opts = testOptions(t, 4)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Render(ctx, opts); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled context: err = %v", err)
	}
}
