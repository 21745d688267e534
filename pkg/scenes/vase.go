package scenes

import (
	"fmt"

	"github.com/taigrr/scenic/pkg/math3d"
	"github.com/taigrr/scenic/pkg/models"
	"github.com/taigrr/scenic/pkg/scene"
)

// vaseProfile is a three segment cubic Bezier outline, radius along X.
var vaseProfile = []math3d.Vec2{
	{X: 0.1, Y: -2},
	{X: 1.6, Y: -2}, {X: 1.8, Y: -1}, {X: 1.2, Y: -0.2},
	{X: 0.6, Y: 0.6}, {X: 0.4, Y: 1.2}, {X: 0.6, Y: 1.6},
	{X: 0.8, Y: 1.9}, {X: 1.1, Y: 2}, {X: 1.0, Y: 2.2},
}

// Vase is a surface of revolution swept from a Bezier profile, turning
// slowly.
func Vase(fps int) (*Scene, error) {
	points, tangents, err := models.PiecewiseBezier(vaseProfile, 40)
	if err != nil {
		return nil, fmt.Errorf("vase profile: %w", err)
	}
	vd, err := models.Revolution(points, tangents, 32, math3d.V3(0.85, 0.55, 0.3))
	if err != nil {
		return nil, fmt.Errorf("vase surface: %w", err)
	}

	spin := mustGroup(shapeNode(vd, math3d.Identity()))
	m := scene.NewGraphManager(mustGroup(spin))
	m.Camera().CenterOfProjection = math3d.V3(0, 2, 9)

	var angle float64
	step := 0.5 / float64(fps)
	return &Scene{
		Name:    "vase",
		Manager: m,
		animate: func() {
			angle += step
			spin.Transform = math3d.RotateY(angle)
		},
	}, nil
}
