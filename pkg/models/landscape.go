package models

import (
	"math/rand/v2"

	"github.com/taigrr/scenic/pkg/math3d"
)

// Landscape generates a (2^n+1) x (2^n+1) height field with the
// diamond-square algorithm. Heights are along Z; the grid spans roughly
// ±0.3·resolution in X and Y. Vertices are colored by height (water green,
// earth brown, rock grey). rng makes the terrain reproducible.
func Landscape(n int, rng *rand.Rand) *VertexData {
	n = max(n, 1)
	res := 1<<n + 1
	half := float64(res) * 0.3

	g := newHeightGrid(res)
	g.set(0, 0, math3d.V3(-half, -half, 0))
	g.set(res-1, 0, math3d.V3(half, -half, -10))
	g.set(0, res-1, math3d.V3(-half, half, 10))
	g.set(res-1, res-1, math3d.V3(half, half, -5))

	jitter := 6.0
	for step := res - 1; step >= 2; step /= 2 {
		g.diamond(rng, jitter, step)
		g.square(rng, jitter, step)
		jitter *= 0.75
	}

	normals := g.normals()

	count := res * res
	v := make([]float64, 0, 3*count)
	nrm := make([]float64, 0, 3*count)
	c := make([]float64, 0, 3*count)
	indices := make([]int, 0, 6*(res-1)*(res-1))

	for i := range res {
		for j := range res {
			p := g.at(i, j)
			v = append(v, p.X, p.Y, p.Z)
			nv := normals[i*res+j]
			nrm = append(nrm, nv.X, nv.Y, nv.Z)

			shade := p.Z/10 + (rng.Float64()-0.5)*0.25
			switch {
			case shade > 0.2:
				c = append(c, shade, shade, shade)
			case shade > -0.1:
				c = append(c, shade+0.2, (shade+0.2)*0.8, (shade+0.2)*0.2)
			default:
				c = append(c, 0, -shade, 0)
			}

			if i < res-1 && j < res-1 {
				a := i*res + j
				indices = append(indices,
					a, a+1, a+res+1,
					a, a+res, a+res+1,
				)
			}
		}
	}

	return mustVertexData(count, indices,
		Element{Color, c},
		Element{Position, v},
		Element{Normal, nrm},
	)
}

type heightGrid struct {
	res    int
	points []math3d.Vec3
	filled []bool
}

func newHeightGrid(res int) *heightGrid {
	return &heightGrid{
		res:    res,
		points: make([]math3d.Vec3, res*res),
		filled: make([]bool, res*res),
	}
}

func (g *heightGrid) at(i, j int) math3d.Vec3 {
	return g.points[i*g.res+j]
}

func (g *heightGrid) set(i, j int, p math3d.Vec3) {
	g.points[i*g.res+j] = p
	g.filled[i*g.res+j] = true
}

// diamond fills the center of every step x step square from its corners.
func (g *heightGrid) diamond(rng *rand.Rand, jitter float64, step int) {
	h := step / 2
	for i := h; i < g.res; i += step {
		for j := h; j < g.res; j += step {
			a := g.at(i-h, j-h)
			b := g.at(i+h, j-h)
			c := g.at(i-h, j+h)
			d := g.at(i+h, j+h)
			z := (a.Z+b.Z+c.Z+d.Z)/4 + (rng.Float64()-0.5)*jitter
			g.set(i, j, math3d.V3((a.X+d.X)/2, (a.Y+d.Y)/2, z))
		}
	}
}

// square fills the remaining edge midpoints from their available neighbors.
func (g *heightGrid) square(rng *rand.Rand, jitter float64, step int) {
	h := step / 2
	for i := 0; i < g.res; i += h {
		for j := 0; j < g.res; j += h {
			if g.filled[i*g.res+j] {
				continue
			}

			var sum, count float64
			var p math3d.Vec3
			left, right := j > 0, j < g.res-1
			up, down := i > 0, i < g.res-1
			if left {
				sum += g.at(i, j-h).Z
				count++
			}
			if right {
				sum += g.at(i, j+h).Z
				count++
			}
			if up {
				sum += g.at(i-h, j).Z
				count++
			}
			if down {
				sum += g.at(i+h, j).Z
				count++
			}

			if left && right {
				a, b := g.at(i, j-h), g.at(i, j+h)
				p.X, p.Y = (a.X+b.X)/2, (a.Y+b.Y)/2
			} else {
				a, b := g.at(i-h, j), g.at(i+h, j)
				p.X, p.Y = (a.X+b.X)/2, (a.Y+b.Y)/2
			}
			p.Z = sum/count + (rng.Float64()-0.5)*jitter
			g.set(i, j, p)
		}
	}
}

// normals averages the face normals of the two triangles in every cell.
func (g *heightGrid) normals() []math3d.Vec3 {
	res := g.res
	acc := make([]math3d.Vec3, res*res)
	for i := range res - 1 {
		for j := range res - 1 {
			a := g.at(i, j)
			b := g.at(i, j+1)
			c := g.at(i+1, j+1)
			d := g.at(i+1, j)

			n1 := c.Sub(a).Cross(b.Sub(a)).Normalize()
			n2 := d.Sub(a).Cross(c.Sub(a)).Normalize()

			acc[i*res+j] = acc[i*res+j].Add(n1).Add(n2)
			acc[(i+1)*res+j+1] = acc[(i+1)*res+j+1].Add(n1).Add(n2)
			acc[i*res+j+1] = acc[i*res+j+1].Add(n1)
			acc[(i+1)*res+j] = acc[(i+1)*res+j].Add(n2)
		}
	}
	for i := range acc {
		acc[i] = acc[i].Normalize()
	}
	return acc
}
