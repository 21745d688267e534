package scene

import (
	"math"
	"math/rand"
	"testing"

	"github.com/taigrr/scenic/pkg/math3d"
	"github.com/taigrr/scenic/pkg/models"
)

// BenchmarkInBounds benchmarks the coarse sphere test.
func BenchmarkInBounds(b *testing.B) {
	f := NewFrustum()

	b.Run("visible", func(b *testing.B) {
		p := math3d.V3(0, 0, -10)
		for b.Loop() {
			_ = f.InBounds(p, 1)
		}
	})

	b.Run("culled", func(b *testing.B) {
		p := math3d.V3(0, 0, 10)
		for b.Loop() {
			_ = f.InBounds(p, 1)
		}
	})
}

// BenchmarkTraversal benchmarks flattening a scene of many shapes, with and
// without culling.
func BenchmarkTraversal(b *testing.B) {
	rng := rand.New(rand.NewSource(42))
	cube := NewShape(models.Cube())

	root, _ := NewGroup()
	for range 50 {
		g, _ := NewGroup()
		g.Transform = math3d.Translate(math3d.V3(
			(rng.Float64()-0.5)*40,
			(rng.Float64()-0.5)*40,
			(rng.Float64()-0.5)*40,
		))
		for range 20 {
			s := *cube
			s.Transform = math3d.RotateY(rng.Float64() * 2 * math.Pi)
			g.MustAddChild(NewShapeNode(&s, math.Sqrt(3)))
		}
		root.MustAddChild(g)
	}
	m := NewGraphManager(root)

	for _, cull := range []bool{true, false} {
		name := "cull"
		if !cull {
			name = "nocull"
		}
		b.Run(name, func(b *testing.B) {
			m.SetCulling(cull)
			for b.Loop() {
				_ = m.Items()
			}
		})
	}
}
