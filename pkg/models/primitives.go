package models

import (
	"math"

	"github.com/taigrr/scenic/pkg/math3d"
)

// Cube returns a 2x2x2 cube centered at the origin with one color per pair of
// opposite faces, per-face normals and unit texture coordinates. COLOR is
// declared before POSITION so each corner picks up its own color.
func Cube() *VertexData {
	v := []float64{
		-1, -1, 1, 1, -1, 1, 1, 1, 1, -1, 1, 1, // front
		-1, -1, -1, -1, -1, 1, -1, 1, 1, -1, 1, -1, // left
		1, -1, -1, -1, -1, -1, -1, 1, -1, 1, 1, -1, // back
		1, -1, 1, 1, -1, -1, 1, 1, -1, 1, 1, 1, // right
		1, 1, 1, 1, 1, -1, -1, 1, -1, -1, 1, 1, // top
		-1, -1, 1, -1, -1, -1, 1, -1, -1, 1, -1, 1, // bottom
	}
	faceNormals := []math3d.Vec3{
		{Z: 1}, {X: -1}, {Z: -1}, {X: 1}, {Y: 1}, {Y: -1},
	}
	faceColors := []math3d.Vec3{
		{X: 1}, {Y: 1}, {X: 1}, {Y: 1}, {Z: 1}, {Z: 1},
	}

	var n, c, uv []float64
	var indices []int
	for f := range 6 {
		for range 4 {
			n = append(n, faceNormals[f].X, faceNormals[f].Y, faceNormals[f].Z)
			c = append(c, faceColors[f].X, faceColors[f].Y, faceColors[f].Z)
		}
		uv = append(uv, 0, 0, 1, 0, 1, 1, 0, 1)
		b := f * 4
		indices = append(indices, b, b+2, b+3, b, b+1, b+2)
	}

	return mustVertexData(24, indices,
		Element{Color, c},
		Element{Position, v},
		Element{Normal, n},
		Element{TexCoord, uv},
	)
}

// Cylinder returns a closed cylinder of radius 1 along Z from -1 to 1 with
// seg segments. Rim vertices alternate black and white; cap centers are black.
func Cylinder(seg int) *VertexData {
	seg = max(seg, 3)
	ring := seg + 1 // center plus rim
	v := make([]float64, 0, 3*2*ring)
	c := make([]float64, 0, 3*2*ring)

	for _, z := range []float64{1, -1} {
		v = append(v, 0, 0, z)
		c = append(c, 0, 0, 0)
		for i := range seg {
			a := 2 * math.Pi * float64(i) / float64(seg)
			v = append(v, math.Sin(a), math.Cos(a), z)
			shade := float64(i % 2)
			c = append(c, shade, shade, shade)
		}
	}

	indices := make([]int, 0, seg*12)
	for i := 1; i <= seg; i++ {
		next := i%seg + 1
		indices = append(indices,
			0, i, next, // top cap
			next, i, i+ring, // side, top favored
			next, i+ring, next+ring, // side, bottom favored
			next+ring, i+ring, ring, // bottom cap
		)
	}

	return mustVertexData(2*ring, indices, Element{Color, c}, Element{Position, v})
}

// Torus returns a torus around the Z axis with ring radius major and tube
// radius minor, tessellated into seg x seg quads. Alternate rings are
// colored white and black.
func Torus(seg int, major, minor float64) *VertexData {
	seg = max(seg, 3)
	v := make([]float64, 0, 3*seg*seg)
	c := make([]float64, 0, 3*seg*seg)
	n := make([]float64, 0, 3*seg*seg)

	for i := range seg {
		a1 := 2 * math.Pi * float64(i) / float64(seg)
		shade := float64(i % 2)
		for j := range seg {
			a2 := 2 * math.Pi * float64(j) / float64(seg)
			ring := major + minor*math.Cos(a2)
			v = append(v, ring*math.Cos(a1), ring*math.Sin(a1), minor*math.Sin(a2))
			n = append(n, math.Cos(a2)*math.Cos(a1), math.Cos(a2)*math.Sin(a1), math.Sin(a2))
			c = append(c, shade, shade, shade)
		}
	}

	indices := make([]int, 0, seg*seg*6)
	for i := range seg {
		for j := range seg {
			a := i*seg + j
			b := i*seg + (j+1)%seg
			d := ((i+1)%seg)*seg + (j+1)%seg
			e := ((i+1)%seg)*seg + j
			indices = append(indices, a, b, d, a, d, e)
		}
	}

	return mustVertexData(seg*seg, indices, Element{Color, c}, Element{Position, v}, Element{Normal, n})
}

// mustVertexData is for generators whose output is valid by construction.
func mustVertexData(n int, indices []int, elements ...Element) *VertexData {
	vd, err := NewVertexData(n, indices, elements...)
	if err != nil {
		panic("models: generator produced invalid vertex data: " + err.Error())
	}
	return vd
}
