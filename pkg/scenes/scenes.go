// Package scenes builds the demo scenes shown by the viewer.
package scenes

import (
	"fmt"
	"math"

	"github.com/taigrr/scenic/pkg/math3d"
	"github.com/taigrr/scenic/pkg/models"
	"github.com/taigrr/scenic/pkg/scene"
)

// Options parameterize scene construction.
type Options struct {
	FPS       int
	Seed      uint64
	ModelPath string
}

// Scene is a graph ready to render, plus its per-frame animation.
type Scene struct {
	Name    string
	Manager *scene.GraphManager

	animate func()
}

// Update advances the scene's animation by one frame.
func (s *Scene) Update() {
	if s.animate != nil {
		s.animate()
	}
}

// Build constructs the named scene.
func Build(name string, opts Options) (*Scene, error) {
	opts.FPS = max(opts.FPS, 1)
	switch name {
	case "robot":
		return Robot(opts.FPS), nil
	case "landscape":
		return Landscape(opts.Seed), nil
	case "tori":
		return Tori(opts.FPS), nil
	case "vase":
		return Vase(opts.FPS)
	case "cube":
		return Cube(opts.FPS), nil
	case "model":
		return Model(opts.ModelPath, opts.FPS)
	default:
		return nil, fmt.Errorf("unknown scene %q", name)
	}
}

// shapeNode wraps vertex data placed by local, with a bounding radius that
// covers the largest scale in local.
func shapeNode(vd *models.VertexData, local math3d.Mat4) *scene.ShapeNode {
	s := scene.NewShape(vd)
	s.Transform = local
	return scene.NewShapeNode(s, vd.BoundingRadius()*maxScale(local))
}

// maxScale returns the longest basis vector length of m's upper 3x3.
func maxScale(m math3d.Mat4) float64 {
	var s float64
	for c := range 3 {
		col := m.Column(c)
		s = max(s, math.Sqrt(col.X*col.X+col.Y*col.Y+col.Z*col.Z))
	}
	return s
}

func mustGroup(children ...scene.Node) *scene.Group {
	g, err := scene.NewGroup(children...)
	if err != nil {
		panic(err)
	}
	return g
}

// Cube is a single spinning cube.
func Cube(fps int) *Scene {
	spin := mustGroup(shapeNode(models.Cube(), math3d.Identity()))
	root := mustGroup(spin)
	m := scene.NewGraphManager(root)
	m.Camera().CenterOfProjection = math3d.V3(0, 3, 8)

	angle := 0.0
	step := 1.0 / float64(fps)
	return &Scene{
		Name:    "cube",
		Manager: m,
		animate: func() {
			angle += step
			spin.Transform = math3d.RotateY(angle).Mul(math3d.RotateX(angle * 0.7))
		},
	}
}
