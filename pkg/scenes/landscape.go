package scenes

import (
	"math/rand/v2"

	"github.com/taigrr/scenic/pkg/math3d"
	"github.com/taigrr/scenic/pkg/models"
	"github.com/taigrr/scenic/pkg/scene"
)

// landscapeDetail is the diamond-square subdivision depth.
const landscapeDetail = 5

// Landscape is a static diamond-square terrain seen from above its edge.
// The same seed always gives the same terrain.
func Landscape(seed uint64) *Scene {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	root := mustGroup(shapeNode(models.Landscape(landscapeDetail, rng), math3d.Identity()))

	m := scene.NewGraphManager(root)
	cam := m.Camera()
	cam.CenterOfProjection = math3d.V3(0, -25, 15)
	cam.LookAt = math3d.V3(0, 0, 0)
	cam.Up = math3d.V3(0, 0, 1)

	return &Scene{Name: "landscape", Manager: m}
}
