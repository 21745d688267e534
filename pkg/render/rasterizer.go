package render

import (
	"image/color"
	"math"

	"github.com/taigrr/scenic/pkg/math3d"
)

// DrawTriangle rasterizes a triangle given post-viewport homogeneous
// positions (x and y already scaled to pixels, w the clip-space w) and
// per-corner colors.
//
// The position rows (x, y, w) form a matrix P. Column k of P⁻¹ evaluated at
// a pixel center (X, Y, 1) is corner k's barycentric weight divided by its
// w, so it is positive exactly when the pixel is inside the triangle, and
// the three values sum to the interpolated 1/w. Colors come out perspective
// correct as (P⁻¹·C)·(X, Y, 1) divided by that 1/w. Larger 1/w is nearer.
func (c *Context) DrawTriangle(positions [3]math3d.Vec4, colors [3]math3d.Vec3) {
	if c.color == nil {
		return
	}
	c.stats.Triangles++

	p0, p1, p2 := positions[0], positions[1], positions[2]
	if p0.W < 0 && p1.W < 0 && p2.W < 0 {
		c.stats.Behind++
		return
	}

	x0, x1, y0, y1 := 0, c.width, 0, c.height
	if p0.W > 0 && p1.W > 0 && p2.W > 0 {
		sx := [3]float64{p0.X / p0.W, p1.X / p1.W, p2.X / p2.W}
		sy := [3]float64{p0.Y / p0.W, p1.Y / p1.W, p2.Y / p2.W}
		x0, x1 = scanSpan(sx, c.width)
		y0, y1 = scanSpan(sy, c.height)
	}

	pmat := math3d.Mat3FromRows(
		math3d.V3(p0.X, p0.Y, p0.W),
		math3d.V3(p1.X, p1.Y, p1.W),
		math3d.V3(p2.X, p2.Y, p2.W),
	)
	pcoeff, ok := pmat.Inverse()
	if !ok {
		c.stats.Degenerate++
		return
	}
	ccoeff := pcoeff.Mul(math3d.Mat3FromRows(colors[0], colors[1], colors[2]))

	alpha, beta, gamma := pcoeff.Col(0), pcoeff.Col(1), pcoeff.Col(2)
	wInv := pcoeff.MulVec3(math3d.One3())
	red, green, blue := ccoeff.Col(0), ccoeff.Col(1), ccoeff.Col(2)

	for j := y0; j < y1; j++ {
		y := float64(j) + 0.5
		row := j * c.width
		for i := x0; i < x1; i++ {
			pt := math3d.V3(float64(i)+0.5, y, 1)
			if alpha.Dot(pt) <= 0 || beta.Dot(pt) <= 0 || gamma.Dot(pt) <= 0 {
				continue
			}
			w := wInv.Dot(pt)
			if w <= c.depth[row+i] {
				continue
			}
			c.depth[row+i] = w
			c.color.Pixels[row+i] = toRGBA(red.Dot(pt)/w, green.Dot(pt)/w, blue.Dot(pt)/w)
			c.stats.Pixels++
		}
	}
}

// scanSpan returns the half-open pixel range [lo, hi) covering the screen
// coordinates v, clamped to [0, limit].
func scanSpan(v [3]float64, limit int) (lo, hi int) {
	vmin := min(v[0], v[1], v[2])
	vmax := max(v[0], v[1], v[2])
	if math.IsNaN(vmin) || math.IsNaN(vmax) {
		return 0, limit
	}
	l := float64(limit)
	lo = int(math.Floor(min(max(vmin, 0), l) + 0.5))
	hi = int(math.Floor(max(min(vmax, l), 0) + 0.5))
	return lo, hi
}

// toRGBA converts a [0,1] color to 8 bits per channel, clamping out of
// range values.
func toRGBA(r, g, b float64) color.RGBA {
	return color.RGBA{channel(r), channel(g), channel(b), 255}
}

func channel(v float64) uint8 {
	switch {
	case !(v > 0): // also NaN
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}
