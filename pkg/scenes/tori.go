package scenes

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/taigrr/scenic/pkg/math3d"
	"github.com/taigrr/scenic/pkg/models"
	"github.com/taigrr/scenic/pkg/scene"
)

// toriGrid is the side length of the torus field.
const toriGrid = 9

// toriHue sweeps the hue across the grid so each torus is distinguishable.
func toriHue(i, j int) math3d.Vec3 {
	c := colorful.Hsv(360*float64(i*toriGrid+j)/(toriGrid*toriGrid), 0.6, 1)
	return math3d.V3(c.R, c.G, c.B)
}

// Tori is a large grid of spinning tori, most of which lie outside the view
// so culling has work to do.
func Tori(fps int) *Scene {
	torus := models.Torus(16, 1, 0.35)

	var spinners []*scene.Group
	field := mustGroup()
	for i := range toriGrid {
		for j := range toriGrid {
			spin := mustGroup(shapeNode(torus.Tint(toriHue(i, j)), math3d.Identity()))
			cell := mustGroup(spin)
			cell.Transform = math3d.Translate(math3d.V3(
				float64(i-toriGrid/2)*3,
				float64(j-toriGrid/2)*3,
				0,
			))
			field.MustAddChild(cell)
			spinners = append(spinners, spin)
		}
	}

	root := mustGroup(field)
	m := scene.NewGraphManager(root)
	m.Camera().CenterOfProjection = math3d.V3(0, -4, 8)

	var angle float64
	step := 1.0 / float64(fps)
	return &Scene{
		Name:    "tori",
		Manager: m,
		animate: func() {
			angle += step
			for k, s := range spinners {
				phase := float64(k) * 0.37
				s.Transform = math3d.RotateX(angle + phase).Mul(math3d.RotateY(0.5 * angle))
			}
			field.Transform = math3d.RotateZ(0.1 * math.Sin(angle*0.3))
		},
	}
}
