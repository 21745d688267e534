package scene

import "github.com/taigrr/scenic/pkg/math3d"

// LightType selects how a light's position and direction are interpreted.
type LightType int

const (
	PointLight LightType = iota
	DirectionalLight
	SpotLight
)

func (t LightType) String() string {
	switch t {
	case PointLight:
		return "point"
	case DirectionalLight:
		return "directional"
	case SpotLight:
		return "spot"
	default:
		return "unknown"
	}
}

// Light is a light source description. The software renderer does not shade,
// so lights are carried for other backends.
type Light struct {
	Type      LightType
	Position  math3d.Vec3
	Direction math3d.Vec3

	Diffuse  math3d.Vec3
	Specular math3d.Vec3
	Ambient  math3d.Vec3

	SpotExponent float64
	SpotCutoff   float64 // degrees
}

// NewLight returns a white directional light shining down -Z.
func NewLight() *Light {
	return &Light{
		Type:         DirectionalLight,
		Direction:    math3d.V3(0, 0, 1),
		Diffuse:      math3d.One3(),
		Specular:     math3d.One3(),
		Ambient:      math3d.Zero3(),
		SpotExponent: 0,
		SpotCutoff:   180,
	}
}
