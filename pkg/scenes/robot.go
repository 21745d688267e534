package scenes

import (
	"math"

	"github.com/taigrr/scenic/pkg/anim"
	"github.com/taigrr/scenic/pkg/math3d"
	"github.com/taigrr/scenic/pkg/models"
	"github.com/taigrr/scenic/pkg/scene"
)

// joint is a limb anchor whose swing rotates it about Y.
type joint struct {
	group  *scene.Group
	offset math3d.Vec3
	swing  *anim.Swing
}

func (j *joint) update() {
	j.group.Transform = math3d.Translate(j.offset).Mul(math3d.RotateY(j.swing.Update()))
}

// Robot is an articulated figure of cubes and cylinders walking in a circle.
// Arms and legs swing in opposite phase.
func Robot(fps int) *Scene {
	limb := math3d.Scale(math3d.V3(0.5, 0.5, 1))
	upper, lower := models.Cylinder(16), models.Cylinder(8)

	newLimb := func(offset math3d.Vec3, phase float64) *joint {
		elbow := mustGroup(shapeNode(lower, limb))
		elbow.Transform = math3d.Translate(math3d.V3(0, 0, -1.75))
		g := mustGroup(shapeNode(upper, limb), elbow)
		g.Transform = math3d.Translate(offset)
		return &joint{
			group:  g,
			offset: offset,
			swing:  anim.NewSwing(fps, math.Pi/6, 1.6, phase),
		}
	}

	joints := []*joint{
		newLimb(math3d.V3(0, 1.5, 0), 0),        // left shoulder
		newLimb(math3d.V3(0, -1.5, 0), math.Pi), // right shoulder
		newLimb(math3d.V3(0, 0.5, -2), math.Pi), // left hip
		newLimb(math3d.V3(0, -0.5, -2), 0),      // right hip
	}

	head := mustGroup(shapeNode(models.Cube(), math3d.ScaleUniform(0.8)))
	head.Transform = math3d.Translate(math3d.V3(0, 0, 2.3)).Mul(math3d.RotateX(math.Pi))

	torso := mustGroup(shapeNode(models.Cube(), math3d.Scale(math3d.V3(1, 1, 2))), head)
	for _, j := range joints {
		torso.MustAddChild(j.group)
	}
	torso.Transform = math3d.RotateZ(math.Pi / 2)

	root := mustGroup(torso)
	m := scene.NewGraphManager(root)
	m.Camera().CenterOfProjection = math3d.V3(0, -10, 10)

	var walk float64
	step := math.Pi / 4 / float64(fps)
	return &Scene{
		Name:    "robot",
		Manager: m,
		animate: func() {
			walk += step
			torso.Transform = math3d.RotateZ(walk).
				Mul(math3d.Translate(math3d.V3(3, 0, 0))).
				Mul(math3d.RotateZ(math.Pi / 2))
			for _, j := range joints {
				j.update()
			}
		},
	}
}
