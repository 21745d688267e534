package scene

import (
	"math"

	"github.com/taigrr/scenic/pkg/math3d"
)

// Plane is a plane through Normal·p + D = 0.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// DistanceToPoint returns the signed distance from the plane to a point.
// Positive = on the side the normal points to.
func (p Plane) DistanceToPoint(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// cullPlanes approximate a symmetric 45° pyramid around -Z in camera space.
// Normals point outward.
var cullPlanes = func() [4]Plane {
	s := 1 / math.Sqrt2
	return [4]Plane{
		{Normal: math3d.V3(s, 0, s)},
		{Normal: math3d.V3(-s, 0, s)},
		{Normal: math3d.V3(0, s, s)},
		{Normal: math3d.V3(0, -s, s)},
	}
}()

// Frustum holds the camera-to-clip projection and the coarse visibility test
// used for culling. The two are configured independently: changing the
// projection does not move the culling planes.
type Frustum struct {
	Projection math3d.Mat4
}

// NewFrustum returns a frustum with the default projection (near 1, far
// 101, 90° field of view, square aspect).
func NewFrustum() *Frustum {
	f := &Frustum{}
	f.Reset()
	return f
}

// Reset restores the default projection.
func (f *Frustum) Reset() {
	f.Projection = math3d.Mat4FromRows(
		math3d.V4(1, 0, 0, 0),
		math3d.V4(0, 1, 0, 0),
		math3d.V4(0, 0, -1.02, -2.02),
		math3d.V4(0, 0, -1, 0),
	)
}

// SetPerspective replaces the projection with a symmetric perspective
// projection. fovy is in radians.
func (f *Frustum) SetPerspective(fovy, aspect, near, far float64) {
	f.Projection = math3d.Perspective(fovy, aspect, near, far)
}

// Planes returns the four culling planes.
func (f *Frustum) Planes() [4]Plane {
	return cullPlanes
}

// InBounds reports whether a sphere at camera-space point p with the given
// radius may be visible. The test is conservative and ignores near and far.
func (f *Frustum) InBounds(p math3d.Vec3, radius float64) bool {
	for _, pl := range cullPlanes {
		if pl.DistanceToPoint(p) >= radius {
			return false
		}
	}
	return true
}
