package render

import "github.com/taigrr/scenic/pkg/math3d"

// drawEdges outlines a triangle in WireColor. Edges with an endpoint behind
// the camera or far off screen are skipped; there is no line clipping.
func (c *Context) drawEdges(p [3]math3d.Vec4) {
	for i := range 3 {
		c.DrawLine3D(p[i], p[(i+1)%3])
	}
}

// DrawLine3D draws a line between two post-viewport homogeneous points,
// ignoring the depth buffer.
func (c *Context) DrawLine3D(a, b math3d.Vec4) {
	if c.color == nil || a.W <= 0 || b.W <= 0 {
		return
	}
	sa, sb := a.PerspectiveDivide(), b.PerspectiveDivide()
	if !onScreenish(sa, c.width, c.height) || !onScreenish(sb, c.width, c.height) {
		return
	}
	c.color.DrawLine(int(sa.X), int(sa.Y), int(sb.X), int(sb.Y), c.WireColor)
}

// onScreenish is a loose check that keeps Bresenham from walking far
// off-screen lines.
func onScreenish(p math3d.Vec3, width, height int) bool {
	w, h := float64(width), float64(height)
	return p.X > -w && p.X < 2*w && p.Y > -h && p.Y < 2*h
}
