package models

import "github.com/taigrr/scenic/pkg/math3d"

// Material describes surface appearance for backends that shade. The
// software renderer only uses per-vertex colors and carries the material
// through untouched.
type Material struct {
	Name    string
	Diffuse math3d.Vec3 // RGB in 0-1 range
}

// DefaultMaterial returns a white material.
func DefaultMaterial() *Material {
	return &Material{Name: "default", Diffuse: math3d.One3()}
}
