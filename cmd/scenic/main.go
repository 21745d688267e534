// scenic - Terminal Scene Graph Viewer
// Renders scene graphs with a software rasterizer, in the terminal or to PNG.
//
// Controls:
//
//	W/S         - Orbit up/down
//	A/D         - Orbit left/right
//	+/-         - Zoom in/out
//	C           - Toggle frustum culling
//	X           - Toggle wireframe overlay
//	Space       - Pause/resume animation
//	P           - Save a snapshot PNG
//	R           - Reset camera
//	?           - Toggle HUD overlay
//	Esc         - Quit
package main

import (
	"context"
	"errors"
	"image/color"
	"math"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/taigrr/scenic/pkg/config"
	"github.com/taigrr/scenic/pkg/math3d"
	"github.com/taigrr/scenic/pkg/render"
	"github.com/taigrr/scenic/pkg/scene"
	"github.com/taigrr/scenic/pkg/scenes"
)

var version = "dev"

// options mirror the flags; only flags the user set override the config.
type options struct {
	configPath  string
	scene       string
	model       string
	fps         int
	seed        uint64
	cull        bool
	wireframe   bool
	snapshot    string
	width       int
	height      int
	scale       int
	frames      int
	sequence    int
	printConfig bool
}

func main() {
	if err := fang.Execute(context.Background(), newRootCmd(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "scenic",
		Short: "Terminal scene graph viewer",
		Long: `Renders scene graphs with a software rasterizer, in the terminal or to PNG.

Controls:
  W/S/A/D     Orbit camera
  +/-         Zoom in/out
  C           Toggle culling
  X           Toggle wireframe
  Space       Pause animation
  P           Save snapshot
  R           Reset view
  ?           Toggle HUD overlay
  Esc         Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd.Flags(), opts)
			if err != nil {
				return err
			}
			switch {
			case opts.printConfig:
				return cfg.Encode(cmd.OutOrStdout())
			case opts.sequence > 0:
				return runSequence(cmd.Context(), cfg, opts.snapshot, opts.frames, opts.sequence)
			case opts.snapshot != "":
				return runSnapshot(cfg, opts.snapshot, opts.frames)
			case !term.IsTerminal(os.Stdout.Fd()):
				return errors.New("stdout is not a terminal; use --snapshot for headless rendering")
			default:
				return run(cmd.Context(), cfg)
			}
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "path to a TOML config file")
	f.StringVarP(&opts.scene, "scene", "s", "robot", "scene to show: robot, landscape, tori, vase, cube, model")
	f.StringVarP(&opts.model, "model", "m", "", "glTF/GLB file for the model scene")
	f.IntVar(&opts.fps, "fps", 30, "target FPS")
	f.Uint64Var(&opts.seed, "seed", 1, "landscape seed")
	f.BoolVar(&opts.cull, "cull", true, "enable frustum culling")
	f.BoolVarP(&opts.wireframe, "wireframe", "x", false, "overlay triangle edges")
	f.StringVarP(&opts.snapshot, "snapshot", "o", "", "render headless to this PNG file and exit")
	f.IntVar(&opts.width, "width", 320, "snapshot width")
	f.IntVar(&opts.height, "height", 240, "snapshot height")
	f.IntVar(&opts.scale, "scale", 1, "snapshot upscale factor")
	f.IntVar(&opts.frames, "frames", 0, "animation frames to advance before a snapshot")
	f.IntVar(&opts.sequence, "sequence", 0, "render this many consecutive frames as numbered PNGs")
	f.BoolVar(&opts.printConfig, "print-config", false, "print the effective config as TOML and exit")
	return cmd
}

// loadConfig layers explicitly set flags over the config file over the
// defaults.
func loadConfig(flags *pflag.FlagSet, opts options) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return cfg, err
		}
	}

	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "scene":
			cfg.Scene = opts.scene
		case "model":
			cfg.Model = opts.model
			if !flags.Changed("scene") && opts.configPath == "" {
				cfg.Scene = "model"
			}
		case "fps":
			cfg.FPS = opts.fps
		case "seed":
			cfg.Seed = opts.seed
		case "cull":
			cfg.Cull = opts.cull
		case "wireframe":
			cfg.Wireframe = opts.wireframe
		case "width":
			cfg.Snapshot.Width = opts.width
		case "height":
			cfg.Snapshot.Height = opts.height
		case "scale":
			cfg.Snapshot.Scale = opts.scale
		}
	})
	return cfg, cfg.Validate()
}

// setup builds the configured scene and a render context drawing it.
func setup(cfg config.Config) (*scenes.Scene, *render.Context, error) {
	s, err := scenes.Build(cfg.Scene, scenes.Options{
		FPS:       cfg.FPS,
		Seed:      cfg.Seed,
		ModelPath: cfg.Model,
	})
	if err != nil {
		return nil, nil, err
	}

	m := s.Manager
	m.SetCulling(cfg.Cull)
	m.AddLight(scene.NewLight())
	if cfg.Camera != config.Default().Camera {
		applyCamera(m.Camera(), cfg.Camera)
	}

	ctx := render.NewContext()
	ctx.Background = toColor(cfg.Background)
	ctx.Wireframe = cfg.Wireframe
	ctx.SetSceneManager(m)
	return s, ctx, nil
}

// applyProjection sets the configured perspective for an aspect ratio, if
// enabled.
func applyProjection(f *scene.Frustum, p config.Projection, width, height int) {
	if !p.Enabled || width <= 0 || height <= 0 {
		return
	}
	f.SetPerspective(p.FOV*math.Pi/180, float64(width)/float64(height), p.Near, p.Far)
}

func applyCamera(c *scene.Camera, cc config.Camera) {
	c.CenterOfProjection = math3d.V3(cc.Eye[0], cc.Eye[1], cc.Eye[2])
	c.LookAt = math3d.V3(cc.Target[0], cc.Target[1], cc.Target[2])
	c.Up = math3d.V3(cc.Up[0], cc.Up[1], cc.Up[2])
}

func toColor(c [3]float64) color.RGBA {
	return color.RGBA{
		uint8(c[0]*255 + 0.5),
		uint8(c[1]*255 + 0.5),
		uint8(c[2]*255 + 0.5),
		255,
	}
}
