package scene

import (
	"iter"
	"slices"

	"github.com/taigrr/scenic/pkg/math3d"
)

// RenderItem is a shape with its resolved world transform. Items are built
// per frame and should not be retained.
type RenderItem struct {
	Shape     *Shape
	Transform math3d.Mat4
}

// Manager is what a render context draws from.
type Manager interface {
	Camera() *Camera
	Frustum() *Frustum
	// All yields the render list lazily. Each call starts a fresh walk, so
	// changes made between frames are picked up.
	All() iter.Seq[RenderItem]
	Lights() []*Light
}

// base holds what every manager owns.
type base struct {
	camera  *Camera
	frustum *Frustum
	lights  []*Light
}

func newBase() base {
	return base{camera: NewCamera(), frustum: NewFrustum()}
}

func (b *base) Camera() *Camera   { return b.camera }
func (b *base) Frustum() *Frustum { return b.frustum }
func (b *base) Lights() []*Light  { return b.lights }

// AddLight appends a light.
func (b *base) AddLight(l *Light) { b.lights = append(b.lights, l) }

// ListManager draws a flat list of shapes with no culling.
type ListManager struct {
	base
	shapes []*Shape
}

// NewListManager creates an empty list manager with a default camera and
// frustum.
func NewListManager() *ListManager {
	return &ListManager{base: newBase()}
}

// AddShape appends a shape; it is drawn with its own transform.
func (m *ListManager) AddShape(s *Shape) {
	m.shapes = append(m.shapes, s)
}

// All yields every shape in insertion order.
func (m *ListManager) All() iter.Seq[RenderItem] {
	return func(yield func(RenderItem) bool) {
		for _, s := range m.shapes {
			if !yield(RenderItem{Shape: s, Transform: s.Transform}) {
				return
			}
		}
	}
}

// Items collects All.
func (m *ListManager) Items() []RenderItem { return slices.Collect(m.All()) }

// GraphManager flattens a scene graph, culling shapes outside the frustum
// when enabled.
type GraphManager struct {
	base
	root *Group
	cull bool
}

// NewGraphManager creates a manager for root with culling enabled.
func NewGraphManager(root *Group) *GraphManager {
	return &GraphManager{base: newBase(), root: root, cull: true}
}

// Root returns the root group.
func (m *GraphManager) Root() *Group { return m.root }

// SetCulling enables or disables frustum culling from the next Items call.
func (m *GraphManager) SetCulling(on bool) { m.cull = on }

// ToggleCulling flips culling and returns the new state.
func (m *GraphManager) ToggleCulling() bool {
	m.cull = !m.cull
	return m.cull
}

// Culling reports whether culling is enabled.
func (m *GraphManager) Culling() bool { return m.cull }

type stackEntry struct {
	node Node
	acc  math3d.Mat4
}

// Items collects All.
func (m *GraphManager) Items() []RenderItem { return slices.Collect(m.All()) }

// All walks the graph depth first with an explicit stack. Shapes are
// emitted in child insertion order with world transform
// root × ... × parent × shape.Transform. The camera and culling flag are
// read when iteration starts.
func (m *GraphManager) All() iter.Seq[RenderItem] {
	return func(yield func(RenderItem) bool) {
		if m.root != nil {
			m.walk(yield)
		}
	}
}

func (m *GraphManager) walk(yield func(RenderItem) bool) {
	var view math3d.Mat4
	if m.cull {
		view = m.camera.ViewMatrix()
	}

	stack := []stackEntry{{node: m.root, acc: math3d.Identity()}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch n := top.node.(type) {
		case *Group:
			acc := top.acc.Mul(n.Transform)
			// Reverse so the first child is popped first.
			for i := len(n.children) - 1; i >= 0; i-- {
				stack = append(stack, stackEntry{node: n.children[i], acc: acc})
			}
		case *ShapeNode:
			if n.Shape == nil {
				continue
			}
			world := top.acc.Mul(n.Shape.Transform)
			if m.cull {
				center := view.Mul(world).Translation()
				if !m.frustum.InBounds(center, n.Radius) {
					continue
				}
			}
			if !yield(RenderItem{Shape: n.Shape, Transform: world}) {
				return
			}
		}
	}
}
