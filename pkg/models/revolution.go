package models

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/scenic/pkg/math3d"
)

// ErrControlPoints is returned when a piecewise curve is given the wrong
// number of control points.
var ErrControlPoints = errors.New("piecewise bezier needs 3*segments+1 control points")

// Bezier is a cubic Bezier curve in the XY plane, kept in power-basis form
// x(t) = a·t³ + b·t² + c·t + d.
type Bezier struct {
	a, b, c, d math3d.Vec2
}

// NewBezier creates the cubic curve with control points p0..p3.
func NewBezier(p0, p1, p2, p3 math3d.Vec2) Bezier {
	return Bezier{
		a: p0.Scale(-1).Add(p1.Scale(3)).Add(p2.Scale(-3)).Add(p3),
		b: p0.Scale(3).Add(p1.Scale(-6)).Add(p2.Scale(3)),
		c: p0.Scale(-3).Add(p1.Scale(3)),
		d: p0,
	}
}

// Eval returns the point and (unnormalized) tangent at parameter t.
func (bz Bezier) Eval(t float64) (point, tangent math3d.Vec2) {
	point = bz.d.Add(bz.c.Scale(t)).Add(bz.b.Scale(t * t)).Add(bz.a.Scale(t * t * t))
	tangent = bz.c.Add(bz.b.Scale(2 * t)).Add(bz.a.Scale(3 * t * t))
	return point, tangent
}

// PiecewiseBezier samples num evenly spaced parameters across a chain of
// cubic segments sharing end points. ctrl holds 3*segments+1 points.
func PiecewiseBezier(ctrl []math3d.Vec2, num int) (points, tangents []math3d.Vec2, err error) {
	if len(ctrl) < 4 || (len(ctrl)-1)%3 != 0 {
		return nil, nil, fmt.Errorf("%w: got %d", ErrControlPoints, len(ctrl))
	}
	num = max(num, 2)
	segments := (len(ctrl) - 1) / 3

	curves := make([]Bezier, segments)
	for i := range curves {
		o := i * 3
		curves[i] = NewBezier(ctrl[o], ctrl[o+1], ctrl[o+2], ctrl[o+3])
	}

	points = make([]math3d.Vec2, num)
	tangents = make([]math3d.Vec2, num)
	for i := range num {
		u := float64(i) / float64(num-1) * float64(segments)
		seg := min(int(u), segments-1)
		p, tan := curves[seg].Eval(u - float64(seg))
		points[i], tangents[i] = p, tan
	}
	return points, tangents, nil
}

// Revolution sweeps a profile in the XY plane (X is the radius) around the Y
// axis in k steps. Profile normals are the tangents rotated by 90°. Texture
// coordinates run along the profile (u) and around the axis (v).
func Revolution(profile, tangents []math3d.Vec2, k int, color math3d.Vec3) (*VertexData, error) {
	if len(profile) < 2 || len(tangents) != len(profile) {
		return nil, fmt.Errorf("revolution: need matching profile and tangents, got %d and %d",
			len(profile), len(tangents))
	}
	k = max(k, 3)
	np := len(profile)
	count := k * np

	v := make([]float64, 0, 3*count)
	n := make([]float64, 0, 3*count)
	uv := make([]float64, 0, 2*count)
	c := make([]float64, 0, 3*count)

	for i := range k {
		angle := 2 * math.Pi * float64(i) / float64(k)
		cos, sin := math.Cos(angle), math.Sin(angle)
		for j, p := range profile {
			t := tangents[j].Normalize()
			nx, ny := -t.Y, t.X
			v = append(v, cos*p.X, p.Y, sin*p.X)
			n = append(n, cos*nx, ny, sin*nx)
			uv = append(uv, float64(j)/float64(np), float64(i)/float64(k))
			c = append(c, color.X, color.Y, color.Z)
		}
	}

	indices := make([]int, 0, 6*k*(np-1))
	for i := range k {
		next := (i + 1) % k
		for j := range np - 1 {
			a := i*np + j
			b := i*np + j + 1
			d := next*np + j + 1
			e := next*np + j
			indices = append(indices, a, b, d, a, d, e)
		}
	}

	return NewVertexData(count, indices,
		Element{Color, c},
		Element{Position, v},
		Element{Normal, n},
		Element{TexCoord, uv},
	)
}
