package scenes

import (
	"fmt"

	"github.com/taigrr/scenic/pkg/math3d"
	"github.com/taigrr/scenic/pkg/models"
	"github.com/taigrr/scenic/pkg/scene"
)

// modelSize is the bounding radius loaded models are scaled to.
const modelSize = 3.0

// Model loads a glTF file, normalizes it to a common size and turns it.
func Model(path string, fps int) (*Scene, error) {
	mdl, err := models.LoadGLTF(path)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	return modelScene(mdl, fps), nil
}

func modelScene(mdl *models.Model, fps int) *Scene {
	scale := 1.0
	if mdl.Radius > 0 {
		scale = modelSize / mdl.Radius
	}
	node := shapeNode(mdl.Data, math3d.ScaleUniform(scale))
	node.Shape.Material = mdl.Material

	spin := mustGroup(node)
	m := scene.NewGraphManager(mustGroup(spin))
	m.Camera().CenterOfProjection = math3d.V3(0, 2, 10)

	var angle float64
	step := 0.6 / float64(fps)
	return &Scene{
		Name:    "model",
		Manager: m,
		animate: func() {
			angle += step
			spin.Transform = math3d.RotateY(angle)
		},
	}
}
