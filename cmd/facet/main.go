// facet - software 3D renderer
//
// Renders OBJ, glTF/GLB or builtin meshes with flat, Gouraud or Phong
// shading to image files, the terminal or an OpenGL window.
//
// Commands:
//
//	render     Render one frame to an image file
//	view       Interactive viewer in the terminal
//	window     Interactive viewer in an OpenGL window
//	turntable  Render numbered frames orbiting the model
//
// Controls (view and window):
//
//	W/S         - Move forward/back
//	A/D         - Strafe left/right
//	Q/E         - Move up/down
//	Arrows      - Yaw and pitch
//	F1/F2/F3    - Flat/Gouraud/Phong shading
//	F4          - Toggle perspective/orthographic
//	Esc         - Quit
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"syscall"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/taigrr/facet/internal/config"
	"github.com/taigrr/facet/pkg/models"
	"github.com/taigrr/facet/pkg/render"
)

var version = "dev"

func main() {
	root := newRootCmd()
	if err := fang.Execute(context.Background(), root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		os.Exit(1)
	}
}

// app holds the settings shared by every subcommand.
type app struct {
	configPath string
	logLevel   string
	fit        float64
	flags      config.Flags
	overlay    bool
	antialias  bool

	logger *log.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "facet",
		Short: "Software 3D renderer for images, terminals and windows",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), a.logLevel)
			if err != nil {
				return err
			}
			a.logger = logger

			fs := cmd.Flags()
			if fs.Changed("overlay") {
				a.flags.Overlay = &a.overlay
			}
			if fs.Changed("aa") {
				a.flags.Antialias = &a.antialias
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "JSON config file")
	pf.StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.Float64Var(&a.fit, "fit", 2, "center the model and scale its largest side to this size (0 keeps it as loaded)")

	root.AddCommand(
		newRenderCmd(a),
		newViewCmd(a),
		newWindowCmd(a),
		newTurntableCmd(a),
	)
	return root
}

func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "facet",
	}), nil
}

// addFrameFlags registers the flags that override config file values.
func (a *app) addFrameFlags(fs *pflag.FlagSet) {
	f := &a.flags
	fs.IntVar(&f.Width, "width", 0, "raster width in pixels")
	fs.IntVar(&f.Height, "height", 0, "raster height in pixels")
	fs.Float64Var(&f.FOV, "fov", 0, "vertical field of view in degrees")
	fs.StringVar(&f.Shading, "shading", "", "shading mode: flat, gouraud, phong")
	fs.StringVar(&f.Projection, "projection", "", "projection: perspective, orthographic")
	fs.StringVar(&f.Style, "style", "", "draw style: solid, wireframe, points")
	fs.StringVar(&f.Background, "bg", "", "background color (R,G,B)")
	fs.BoolVar(&a.overlay, "overlay", false, "draw the wireframe over solid meshes")
	fs.BoolVar(&a.antialias, "aa", false, "anti-aliased wireframe lines")
}

// loadConfig reads the config file and applies flag overrides.
func (a *app) loadConfig() (config.Config, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Resolve(a.flags); err != nil {
		return config.Config{}, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}

// loadModel loads a mesh by path or builtin name and fits it for viewing.
func (a *app) loadModel(path string) (*models.Mesh, error) {
	mesh, err := models.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	if a.fit > 0 {
		mesh.Fit(a.fit)
	}
	a.logger.Info("loaded model",
		"path", path,
		"vertices", mesh.VertexCount(),
		"faces", mesh.TriangleCount())
	return mesh, nil
}

func (a *app) load(path string) (config.Config, render.FrameConfig, *models.Mesh, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return config.Config{}, render.FrameConfig{}, nil, err
	}
	frame, err := cfg.Frame()
	if err != nil {
		return config.Config{}, render.FrameConfig{}, nil, err
	}
	mesh, err := a.loadModel(path)
	if err != nil {
		return config.Config{}, render.FrameConfig{}, nil, err
	}
	return cfg, frame, mesh, nil
}
