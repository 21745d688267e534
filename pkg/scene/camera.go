package scene

import "github.com/taigrr/scenic/pkg/math3d"

// Camera is defined by a center of projection, a look-at point and an up
// vector. Fields may be changed freely between frames.
type Camera struct {
	CenterOfProjection math3d.Vec3
	LookAt             math3d.Vec3
	Up                 math3d.Vec3
}

// NewCamera returns a camera at (0,0,10) looking at the origin with +Y up.
func NewCamera() *Camera {
	c := &Camera{}
	c.Reset()
	return c
}

// Reset restores the default placement.
func (c *Camera) Reset() {
	c.CenterOfProjection = math3d.V3(0, 0, 10)
	c.LookAt = math3d.Zero3()
	c.Up = math3d.Up()
}

// ViewMatrix returns the world-to-camera transform. It is rebuilt on every
// call.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	return math3d.LookAt(c.CenterOfProjection, c.LookAt, c.Up)
}

// Forward returns the unit viewing direction.
func (c *Camera) Forward() math3d.Vec3 {
	return c.LookAt.Sub(c.CenterOfProjection).Normalize()
}
