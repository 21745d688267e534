// Package config loads viewer settings from TOML.
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Scenes lists the scene names the viewer can build.
var Scenes = []string{"robot", "landscape", "tori", "vase", "cube", "model"}

// Config holds everything the viewer can be told from a file or flags.
type Config struct {
	FPS        int        `toml:"fps"`
	Background [3]float64 `toml:"background"`
	Scene      string     `toml:"scene"`
	Model      string     `toml:"model"` // glTF path for the "model" scene
	Seed       uint64     `toml:"seed"`
	Cull       bool       `toml:"cull"`
	Wireframe  bool       `toml:"wireframe"`

	Camera     Camera     `toml:"camera"`
	Projection Projection `toml:"projection"`
	Snapshot   Snapshot   `toml:"snapshot"`
}

// Camera is the initial camera placement.
type Camera struct {
	Eye    [3]float64 `toml:"eye"`
	Target [3]float64 `toml:"target"`
	Up     [3]float64 `toml:"up"`
}

// Projection optionally replaces the default projection. FOV is in degrees.
type Projection struct {
	Enabled bool    `toml:"enabled"`
	FOV     float64 `toml:"fov"`
	Near    float64 `toml:"near"`
	Far     float64 `toml:"far"`
}

// Snapshot sizes headless renders.
type Snapshot struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
	Scale  int `toml:"scale"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		FPS:        30,
		Background: [3]float64{0.05, 0.05, 0.1},
		Scene:      "robot",
		Seed:       1,
		Cull:       true,
		Camera: Camera{
			Eye:    [3]float64{0, 0, 10},
			Target: [3]float64{0, 0, 0},
			Up:     [3]float64{0, 1, 0},
		},
		Projection: Projection{FOV: 60, Near: 1, Far: 101},
		Snapshot:   Snapshot{Width: 320, Height: 240, Scale: 1},
	}
}

// Load reads path over the defaults. Unknown keys are errors.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads TOML from r over the defaults and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("%w: %s", ErrInvalid, strict.String())
		}
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate checks ranges and names.
func (c Config) Validate() error {
	switch {
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, c.FPS)
	case !slices.Contains(Scenes, c.Scene):
		return fmt.Errorf("%w: unknown scene %q", ErrInvalid, c.Scene)
	case c.Scene == "model" && c.Model == "":
		return fmt.Errorf("%w: scene \"model\" needs a model path", ErrInvalid)
	case c.Snapshot.Width <= 0 || c.Snapshot.Height <= 0:
		return fmt.Errorf("%w: snapshot size must be positive, got %dx%d",
			ErrInvalid, c.Snapshot.Width, c.Snapshot.Height)
	case c.Snapshot.Scale <= 0:
		return fmt.Errorf("%w: snapshot scale must be positive, got %d", ErrInvalid, c.Snapshot.Scale)
	}
	for i, v := range c.Background {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%w: background[%d] = %v not in [0, 1]", ErrInvalid, i, v)
		}
	}
	if c.Camera.Eye == c.Camera.Target {
		return fmt.Errorf("%w: camera eye and target coincide", ErrInvalid)
	}
	if c.Camera.Up == [3]float64{} {
		return fmt.Errorf("%w: camera up is zero", ErrInvalid)
	}
	if p := c.Projection; p.Enabled {
		if p.FOV <= 0 || p.FOV >= 180 {
			return fmt.Errorf("%w: fov %v not in (0, 180)", ErrInvalid, p.FOV)
		}
		if p.Near <= 0 || p.Near >= p.Far {
			return fmt.Errorf("%w: need 0 < near < far, got %v, %v", ErrInvalid, p.Near, p.Far)
		}
	}
	return nil
}
