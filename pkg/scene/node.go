// Package scene holds the scene graph, the camera and frustum that view it,
// and the managers that flatten it into per-frame render lists.
package scene

import (
	"errors"
	"fmt"

	"github.com/taigrr/scenic/pkg/math3d"
	"github.com/taigrr/scenic/pkg/models"
)

var (
	// ErrHasParent is returned when adding a node that already belongs to a group.
	ErrHasParent = errors.New("node already has a parent")
	// ErrCycle is returned when adding a group beneath itself.
	ErrCycle = errors.New("node would become its own ancestor")
)

// Shape is a drawable mesh placed by its own local transform.
type Shape struct {
	Data      *models.VertexData
	Material  *models.Material
	Transform math3d.Mat4
}

// NewShape wraps vertex data with an identity transform and the default
// material.
func NewShape(data *models.VertexData) *Shape {
	return &Shape{
		Data:      data,
		Material:  models.DefaultMaterial(),
		Transform: math3d.Identity(),
	}
}

// Node is a scene graph node. The only implementations are *Group and
// *ShapeNode.
type Node interface {
	Parent() *Group
	setParent(g *Group)
}

// Group owns an ordered list of children and a transform applied to all of
// them.
type Group struct {
	Transform math3d.Mat4

	parent   *Group
	children []Node
}

// NewGroup creates an empty group with an identity transform.
func NewGroup(children ...Node) (*Group, error) {
	g := &Group{Transform: math3d.Identity()}
	for _, c := range children {
		if err := g.AddChild(c); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Parent returns the group's parent, or nil for a root.
func (g *Group) Parent() *Group { return g.parent }

func (g *Group) setParent(p *Group) { g.parent = p }

// Children returns the children in insertion order.
func (g *Group) Children() []Node { return g.children }

// AddChild appends n to the end of the child list. A node may have only one
// parent and a group may not be added beneath itself.
func (g *Group) AddChild(n Node) error {
	if n == nil {
		return errors.New("nil node")
	}
	if n.Parent() != nil {
		return fmt.Errorf("add child: %w", ErrHasParent)
	}
	if child, ok := n.(*Group); ok {
		for a := g; a != nil; a = a.parent {
			if a == child {
				return fmt.Errorf("add child: %w", ErrCycle)
			}
		}
	}
	n.setParent(g)
	g.children = append(g.children, n)
	return nil
}

// MustAddChild is AddChild for graphs built from code, where a failure is a
// programming error.
func (g *Group) MustAddChild(n Node) *Group {
	if err := g.AddChild(n); err != nil {
		panic(err)
	}
	return g
}

// ShapeNode is a leaf referencing a shape and its object-space bounding
// radius.
type ShapeNode struct {
	Shape  *Shape
	Radius float64

	parent *Group
}

// DefaultRadius is the bounding radius used when none is given.
const DefaultRadius = 1.0

// NewShapeNode creates a leaf for s. A non-positive radius selects
// DefaultRadius.
func NewShapeNode(s *Shape, radius float64) *ShapeNode {
	if radius <= 0 {
		radius = DefaultRadius
	}
	return &ShapeNode{Shape: s, Radius: radius}
}

// Parent returns the group holding the node.
func (s *ShapeNode) Parent() *Group { return s.parent }

func (s *ShapeNode) setParent(p *Group) { s.parent = p }
