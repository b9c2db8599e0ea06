// Package config loads facet's JSON settings and merges command-line
// overrides into them.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/taigrr/facet/internal/control"
	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/render"
)

// ErrInvalid reports a setting outside its allowed range.
var ErrInvalid = errors.New("invalid config")

// Light holds the light model settings.
type Light struct {
	Position  [3]float64 `json:"position"`
	Ambient   float64    `json:"ambient"`
	Diffuse   float64    `json:"diffuse"`
	Specular  float64    `json:"specular"`
	Shininess float64    `json:"shininess"`
}

// Camera holds the starting camera pose.
type Camera struct {
	Position [3]float64 `json:"position"`
	Yaw      float64    `json:"yaw"`   // degrees
	Pitch    float64    `json:"pitch"` // degrees
}

// Config holds all render and viewer settings.
type Config struct {
	// Raster
	Width       int `json:"width"`
	Height      int `json:"height"`
	OutputScale int `json:"output_scale"`

	// Lens
	FOV         float64 `json:"fov"` // degrees
	Near        float64 `json:"near"`
	Far         float64 `json:"far"`
	OrthoHeight float64 `json:"ortho_height"`

	// Frame
	Shading    string `json:"shading"`
	Projection string `json:"projection"`
	Style      string `json:"style"`
	Overlay    bool   `json:"overlay"`
	Antialias  bool   `json:"antialias"`
	Background string `json:"background"` // "R,G,B"

	// Interaction
	FPS         int     `json:"fps"`
	MoveSpeed   float64 `json:"move_speed"`
	RotateSpeed float64 `json:"rotate_speed"`

	// Batch
	Workers int `json:"workers"`

	Light  Light  `json:"light"`
	Camera Camera `json:"camera"`
}

// Flags holds command-line overrides. Zero values mean "not set".
type Flags struct {
	Width       int
	Height      int
	FOV         float64
	Shading     string
	Projection  string
	Style       string
	Background  string
	FPS         int
	OutputScale int
	Workers     int
	Overlay     *bool // nil when the flag was not given
	Antialias   *bool
}

// Default returns the built-in settings: an 800x800 raster, 90° perspective
// lens, Phong shading and the default light.
func Default() Config {
	l := render.DefaultLighting()
	return Config{
		Width:       800,
		Height:      800,
		OutputScale: 1,
		FOV:         90,
		Near:        0.1,
		Far:         100,
		OrthoHeight: 2,
		Shading:     render.Phong.String(),
		Projection:  render.Perspective.String(),
		Style:       render.Solid.String(),
		Background:  "0,0,0",
		FPS:         60,
		MoveSpeed:   control.DefaultSpeeds().Move,
		RotateSpeed: control.DefaultSpeeds().Rotate,
		Workers:     4,
		Light: Light{
			Position:  [3]float64{l.Position.X, l.Position.Y, l.Position.Z},
			Ambient:   l.Ambient,
			Diffuse:   l.Diffuse,
			Specular:  l.Specular,
			Shininess: l.Shininess,
		},
		Camera: Camera{Position: [3]float64{0, 0, 5}},
	}
}

// Load reads a JSON config file over the defaults. Fields not set in the
// file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve applies command-line overrides. CLI flags take priority when
// non-zero/non-empty. Boolean flags take priority whenever they are set,
// so an explicit false turns off a value enabled in the file.
func (c *Config) Resolve(flags Flags) error {
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.FOV > 0 {
		c.FOV = flags.FOV
	}
	if flags.Shading != "" {
		c.Shading = flags.Shading
	}
	if flags.Projection != "" {
		c.Projection = flags.Projection
	}
	if flags.Style != "" {
		c.Style = flags.Style
	}
	if flags.Background != "" {
		c.Background = flags.Background
	}
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}
	if flags.OutputScale > 0 {
		c.OutputScale = flags.OutputScale
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Overlay != nil {
		c.Overlay = *flags.Overlay
	}
	if flags.Antialias != nil {
		c.Antialias = *flags.Antialias
	}
	return c.Validate()
}

// Validate checks ranges and that every mode name parses.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, c.Width, c.Height)
	case c.FOV <= 0 || c.FOV >= 180:
		return fmt.Errorf("%w: fov %v not in (0, 180)", ErrInvalid, c.FOV)
	case c.Near <= 0 || c.Far <= c.Near:
		return fmt.Errorf("%w: clip planes near=%v far=%v", ErrInvalid, c.Near, c.Far)
	case c.OrthoHeight <= 0:
		return fmt.Errorf("%w: ortho_height %v", ErrInvalid, c.OrthoHeight)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.FPS)
	case c.OutputScale <= 0:
		return fmt.Errorf("%w: output_scale %d", ErrInvalid, c.OutputScale)
	case c.Workers <= 0:
		return fmt.Errorf("%w: workers %d", ErrInvalid, c.Workers)
	case c.Light.Ambient < 0 || c.Light.Diffuse < 0 || c.Light.Specular < 0:
		return fmt.Errorf("%w: light coefficients ambient=%v diffuse=%v specular=%v must not be negative",
			ErrInvalid, c.Light.Ambient, c.Light.Diffuse, c.Light.Specular)
	case c.Light.Shininess < 0:
		return fmt.Errorf("%w: light shininess %v", ErrInvalid, c.Light.Shininess)
	}
	if _, err := c.Frame(); err != nil {
		return err
	}
	return nil
}

// Frame builds the per-frame render configuration. The aspect ratio is left
// to the renderer, which takes it from the framebuffer.
func (c Config) Frame() (render.FrameConfig, error) {
	shading, err := render.ParseShading(c.Shading)
	if err != nil {
		return render.FrameConfig{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	projection, err := render.ParseProjection(c.Projection)
	if err != nil {
		return render.FrameConfig{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	style, err := render.ParseStyle(c.Style)
	if err != nil {
		return render.FrameConfig{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	bg, err := ParseColor(c.Background)
	if err != nil {
		return render.FrameConfig{}, err
	}

	return render.FrameConfig{
		Shading:    shading,
		Projection: projection,
		Lens: render.Projection{
			FOV:         c.FOV * math.Pi / 180,
			Near:        c.Near,
			Far:         c.Far,
			OrthoHeight: c.OrthoHeight,
		},
		Background: bg,
		Style:      style,
		Overlay:    c.Overlay,
		Antialias:  c.Antialias,
		LineColor:  render.ColorWhite,
	}, nil
}

// Lighting returns the configured light model.
func (c Config) Lighting() render.Lighting {
	return render.Lighting{
		Position:  vec(c.Light.Position),
		Ambient:   c.Light.Ambient,
		Diffuse:   c.Light.Diffuse,
		Specular:  c.Light.Specular,
		Shininess: c.Light.Shininess,
	}
}

// NewCamera returns a camera at the configured starting pose.
func (c Config) NewCamera() *render.Camera {
	return &render.Camera{
		Position: vec(c.Camera.Position),
		Yaw:      c.Camera.Yaw * math.Pi / 180,
		Pitch:    render.ClampPitch(c.Camera.Pitch * math.Pi / 180),
	}
}

// Speeds returns the per-frame movement speeds.
func (c Config) Speeds() control.Speeds {
	return control.Speeds{Move: c.MoveSpeed, Rotate: c.RotateSpeed}
}

// ParseColor parses "R,G,B" with each channel in 0..255.
func ParseColor(s string) (color.RGBA, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return color.RGBA{}, fmt.Errorf("%w: color %q: want R,G,B", ErrInvalid, s)
	}
	var ch [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("%w: color %q: %v", ErrInvalid, s, err)
		}
		ch[i] = uint8(v)
	}
	return color.RGBA{ch[0], ch[1], ch[2], 255}, nil
}

func vec(a [3]float64) math3d.Vec3 {
	return math3d.V3(a[0], a[1], a[2])
}
