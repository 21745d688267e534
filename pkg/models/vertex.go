// Package models holds the vertex data consumed by the renderer and the
// generators and loaders that produce it.
package models

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/taigrr/scenic/pkg/math3d"
)

// Semantic identifies what an element's floats describe.
type Semantic int

const (
	Position Semantic = iota // x, y, z
	Color                    // r, g, b in [0, 1]
	Normal                   // nx, ny, nz
	TexCoord                 // u, v
)

// Stride returns the number of floats per vertex for the semantic.
func (s Semantic) Stride() int {
	if s == TexCoord {
		return 2
	}
	return 3
}

func (s Semantic) String() string {
	switch s {
	case Position:
		return "POSITION"
	case Color:
		return "COLOR"
	case Normal:
		return "NORMAL"
	case TexCoord:
		return "TEXCOORD"
	default:
		return fmt.Sprintf("Semantic(%d)", int(s))
	}
}

// Validation errors returned by NewVertexData.
var (
	ErrStride     = errors.New("element length does not match vertex count")
	ErrIndexCount = errors.New("index count is not a multiple of 3")
	ErrIndexRange = errors.New("index out of range")
	ErrSemantic   = errors.New("unknown semantic")
)

// Element is one attribute stream: Semantic.Stride() floats per vertex.
type Element struct {
	Semantic Semantic
	Data     []float64
}

// VertexData is an ordered list of elements plus a triangle-list index array.
// It is immutable once built; the slices returned by its accessors must not be
// modified.
type VertexData struct {
	n        int
	elements []Element
	indices  []int
}

// NewVertexData validates and copies n vertices worth of elements and the
// index list. A nil indices slice is allowed and means there is nothing to
// draw. Element order is preserved, since the renderer scans elements in the
// order given.
func NewVertexData(n int, indices []int, elements ...Element) (*VertexData, error) {
	vd := &VertexData{n: n}
	for i, e := range elements {
		if e.Semantic < Position || e.Semantic > TexCoord {
			return nil, fmt.Errorf("element %d: %w: %d", i, ErrSemantic, int(e.Semantic))
		}
		if len(e.Data) != n*e.Semantic.Stride() {
			return nil, fmt.Errorf("element %d (%s): %w: have %d floats, want %d",
				i, e.Semantic, ErrStride, len(e.Data), n*e.Semantic.Stride())
		}
		vd.elements = append(vd.elements, Element{Semantic: e.Semantic, Data: slices.Clone(e.Data)})
	}

	if indices != nil {
		if len(indices)%3 != 0 {
			return nil, fmt.Errorf("%w: %d", ErrIndexCount, len(indices))
		}
		for j, idx := range indices {
			if idx < 0 || idx >= n {
				return nil, fmt.Errorf("index %d: %w: %d not in [0, %d)", j, ErrIndexRange, idx, n)
			}
		}
		vd.indices = slices.Clone(indices)
	}
	return vd, nil
}

// VertexCount returns the number of vertices.
func (vd *VertexData) VertexCount() int {
	return vd.n
}

// Elements returns the attribute streams in declaration order.
func (vd *VertexData) Elements() []Element {
	return vd.elements
}

// Element returns the first element with the given semantic.
func (vd *VertexData) Element(s Semantic) (Element, bool) {
	for _, e := range vd.elements {
		if e.Semantic == s {
			return e, true
		}
	}
	return Element{}, false
}

// Indices returns the triangle-list indices, or nil if none were given.
func (vd *VertexData) Indices() []int {
	return vd.indices
}

// TriangleCount returns the number of triangles described by the indices.
func (vd *VertexData) TriangleCount() int {
	return len(vd.indices) / 3
}

// BoundingRadius returns the largest distance of any POSITION from the
// object-space origin, or 0 when there are no positions.
func (vd *VertexData) BoundingRadius() float64 {
	pos, ok := vd.Element(Position)
	if !ok {
		return 0
	}
	var maxSq float64
	for i := 0; i+2 < len(pos.Data); i += 3 {
		x, y, z := pos.Data[i], pos.Data[i+1], pos.Data[i+2]
		maxSq = max(maxSq, x*x+y*y+z*z)
	}
	return math.Sqrt(maxSq)
}

// Tint returns a copy of vd with every COLOR component multiplied by the
// matching channel of rgb. Data without a COLOR element is returned as is.
func (vd *VertexData) Tint(rgb math3d.Vec3) *VertexData {
	if _, ok := vd.Element(Color); !ok {
		return vd
	}
	out := &VertexData{n: vd.n, indices: vd.indices}
	for _, e := range vd.elements {
		if e.Semantic == Color {
			data := slices.Clone(e.Data)
			for i := 0; i+2 < len(data); i += 3 {
				data[i] *= rgb.X
				data[i+1] *= rgb.Y
				data[i+2] *= rgb.Z
			}
			e = Element{Semantic: Color, Data: data}
		}
		out.elements = append(out.elements, e)
	}
	return out
}
