package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/taigrr/scenic/pkg/math3d"
	"github.com/taigrr/scenic/pkg/models"
	"github.com/taigrr/scenic/pkg/scene"
)

var (
	red   = math3d.V3(1, 0, 0)
	green = math3d.V3(0, 1, 0)
	blue  = math3d.V3(0, 0, 1)
)

// newTestContext returns a sized context with a frame already begun.
func newTestContext(width, height int) *Context {
	c := NewContext()
	c.SetViewportSize(width, height)
	c.BeginFrame()
	return c
}

// screenVertex places a vertex at pixel (x, y) with clip-space w.
func screenVertex(x, y, w float64) math3d.Vec4 {
	return math3d.V4(x*w, y*w, 0, w)
}

func uniform(c math3d.Vec3) [3]math3d.Vec3 {
	return [3]math3d.Vec3{c, c, c}
}

// barycentric calculates barycentric coordinates for point (px, py) in triangle.
func barycentric(x0, y0, x1, y1, x2, y2, px, py float64) math3d.Vec3 {
	v0x, v0y := x2-x0, y2-y0
	v1x, v1y := x1-x0, y1-y0
	v2x, v2y := px-x0, py-y0

	dot00 := v0x*v0x + v0y*v0y
	dot01 := v0x*v1x + v0y*v1y
	dot02 := v0x*v2x + v0y*v2y
	dot11 := v1x*v1x + v1y*v1y
	dot12 := v1x*v2x + v1y*v2y

	invDenom := 1.0 / (dot00*dot11 - dot01*dot01)
	u := (dot11*dot02 - dot01*dot12) * invDenom
	v := (dot00*dot12 - dot01*dot02) * invDenom

	return math3d.V3(1-u-v, v, u)
}

func TestDrawTriangleBasic(t *testing.T) {
	c := newTestContext(30, 30)
	bg := c.Background

	c.DrawTriangle([3]math3d.Vec4{
		screenVertex(10, 10, 1),
		screenVertex(20, 10, 1),
		screenVertex(10, 20, 1),
	}, uniform(red))

	fb := c.ColorBuffer()
	if got := fb.GetPixel(12, 12); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("pixel (12,12) = %v, want red", got)
	}
	if got := fb.GetPixel(25, 25); got != bg {
		t.Errorf("pixel (25,25) = %v, want background %v", got, bg)
	}
	if d := c.Depth(12, 12); math.Abs(d-1) > 1e-9 {
		t.Errorf("depth at (12,12) = %v, want 1", d)
	}
	if c.Stats().Pixels == 0 {
		t.Error("no pixels counted")
	}
}

func TestDrawTriangleWindingIndependent(t *testing.T) {
	for _, name := range []string{"ccw", "cw"} {
		t.Run(name, func(t *testing.T) {
			c := newTestContext(30, 30)
			tri := [3]math3d.Vec4{
				screenVertex(5, 5, 1),
				screenVertex(25, 5, 1),
				screenVertex(5, 25, 1),
			}
			if name == "cw" {
				tri[1], tri[2] = tri[2], tri[1]
			}
			c.DrawTriangle(tri, uniform(green))
			if got := c.ColorBuffer().GetPixel(8, 8); got.G != 255 {
				t.Errorf("pixel (8,8) = %v, want green", got)
			}
		})
	}
}

func TestDepthOrderIndependent(t *testing.T) {
	near := [3]math3d.Vec4{
		screenVertex(0, 0, 1),
		screenVertex(30, 0, 1),
		screenVertex(0, 30, 1),
	}
	far := [3]math3d.Vec4{
		screenVertex(0, 0, 2),
		screenVertex(30, 0, 2),
		screenVertex(0, 30, 2),
	}

	tests := []struct {
		name  string
		first bool // draw near first
	}{
		{"far then near", false},
		{"near then far", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestContext(30, 30)
			if tc.first {
				c.DrawTriangle(near, uniform(red))
				c.DrawTriangle(far, uniform(blue))
			} else {
				c.DrawTriangle(far, uniform(blue))
				c.DrawTriangle(near, uniform(red))
			}
			for _, p := range [][2]int{{2, 2}, {10, 10}, {5, 20}} {
				if got := c.ColorBuffer().GetPixel(p[0], p[1]); got != (color.RGBA{255, 0, 0, 255}) {
					t.Errorf("pixel %v = %v, want red", p, got)
				}
			}
		})
	}
}

func TestDrawTriangleOutsideViewport(t *testing.T) {
	tests := []struct {
		name string
		tri  [3]math3d.Vec4
	}{
		{"right", [3]math3d.Vec4{screenVertex(40, 5, 1), screenVertex(50, 5, 1), screenVertex(40, 15, 1)}},
		{"below", [3]math3d.Vec4{screenVertex(5, 40, 2), screenVertex(15, 40, 2), screenVertex(5, 50, 2)}},
		{"left above", [3]math3d.Vec4{screenVertex(-20, -20, 1), screenVertex(-5, -20, 1), screenVertex(-20, -5, 1)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestContext(30, 30)
			c.DrawTriangle(tc.tri, uniform(red))
			if n := c.Stats().Pixels; n != 0 {
				t.Errorf("wrote %d pixels, want 0", n)
			}
			for i, p := range c.ColorBuffer().Pixels {
				if p != c.Background {
					t.Fatalf("pixel %d changed to %v", i, p)
				}
			}
		})
	}
}

func TestDrawTriangleMatchesBarycentric(t *testing.T) {
	const size = 32
	type vert struct{ x, y, w float64 }
	verts := [3]vert{{3.2, 4.1, 1}, {27.7, 6.3, 2}, {8.9, 28.4, 1.5}}

	c := newTestContext(size, size)
	var tri [3]math3d.Vec4
	for i, v := range verts {
		tri[i] = screenVertex(v.x, v.y, v.w)
	}
	c.DrawTriangle(tri, [3]math3d.Vec3{red, green, blue})
	fb := c.ColorBuffer()

	for j := range size {
		for i := range size {
			px, py := float64(i)+0.5, float64(j)+0.5
			bc := barycentric(verts[0].x, verts[0].y, verts[1].x, verts[1].y, verts[2].x, verts[2].y, px, py)

			// Skip pixels whose center sits on an edge.
			if math.Abs(bc.X) < 1e-9 || math.Abs(bc.Y) < 1e-9 || math.Abs(bc.Z) < 1e-9 {
				continue
			}
			inside := bc.X > 0 && bc.Y > 0 && bc.Z > 0
			got := fb.GetPixel(i, j)
			if !inside {
				if got != c.Background {
					t.Errorf("pixel (%d,%d) outside but drawn as %v", i, j, got)
				}
				continue
			}

			// Perspective-correct weights are bc_k/w_k normalized.
			q := math3d.V3(bc.X/verts[0].w, bc.Y/verts[1].w, bc.Z/verts[2].w)
			sum := q.X + q.Y + q.Z
			want := [3]float64{q.X / sum, q.Y / sum, q.Z / sum}
			have := [3]uint8{got.R, got.G, got.B}
			for k := range 3 {
				if math.Abs(float64(have[k])-want[k]*255) > 1 {
					t.Errorf("pixel (%d,%d) channel %d = %d, want %.1f", i, j, k, have[k], want[k]*255)
				}
			}
			if d := c.Depth(i, j); math.Abs(d-sum) > 1e-9 {
				t.Errorf("pixel (%d,%d) depth = %v, want %v", i, j, d, sum)
			}
		}
	}
}

func TestDrawTriangleSkips(t *testing.T) {
	tests := []struct {
		name           string
		tri            [3]math3d.Vec4
		wantBehind     int
		wantDegenerate int
	}{
		{
			name:       "behind camera",
			tri:        [3]math3d.Vec4{screenVertex(5, 5, -1), screenVertex(25, 5, -1), screenVertex(5, 25, -1)},
			wantBehind: 1,
		},
		{
			name:           "collinear",
			tri:            [3]math3d.Vec4{screenVertex(5, 5, 1), screenVertex(10, 10, 1), screenVertex(20, 20, 1)},
			wantDegenerate: 1,
		},
		{
			name:           "repeated vertex",
			tri:            [3]math3d.Vec4{screenVertex(5, 5, 1), screenVertex(5, 5, 1), screenVertex(20, 8, 1)},
			wantDegenerate: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestContext(30, 30)
			c.DrawTriangle(tc.tri, uniform(red))
			st := c.Stats()
			if st.Behind != tc.wantBehind || st.Degenerate != tc.wantDegenerate {
				t.Errorf("stats = %+v", st)
			}
			if st.Pixels != 0 {
				t.Errorf("wrote %d pixels", st.Pixels)
			}
			for i := range 30 {
				if d := c.Depth(i, i); !math.IsInf(d, -1) {
					t.Fatalf("depth (%d,%d) = %v, want -Inf", i, i, d)
				}
			}
		})
	}
}

func TestDrawTriangleStraddlingCamera(t *testing.T) {
	// Mixed w signs scan the whole viewport and must not panic.
	c := newTestContext(20, 20)
	c.DrawTriangle([3]math3d.Vec4{
		math3d.V4(5, 5, 0, 1),
		math3d.V4(-3, 12, 0, -1),
		math3d.V4(15, 2, 0, 1),
	}, uniform(red))
	if c.Stats().Triangles != 1 {
		t.Errorf("Triangles = %d, want 1", c.Stats().Triangles)
	}
}

func TestDisplayUnsized(t *testing.T) {
	m := scene.NewListManager()
	m.AddShape(scene.NewShape(models.Cube()))

	c := NewContext()
	c.SetSceneManager(m)
	c.Display()
	if c.ColorBuffer() != nil {
		t.Error("unsized context has a color buffer")
	}

	c.SetViewportSize(0, 10)
	c.Display()
	if w, h := c.Size(); w != 0 || h != 0 {
		t.Errorf("Size = %dx%d after invalid size", w, h)
	}
}

func TestDisplayWithoutManager(t *testing.T) {
	c := NewContext()
	c.SetViewportSize(10, 10)
	c.Display()
	if c.Stats().Items != 0 {
		t.Error("drew items without a manager")
	}
}

func TestDisplayCube(t *testing.T) {
	m := scene.NewListManager()
	m.AddShape(scene.NewShape(models.Cube()))

	c := NewContext()
	c.SetSceneManager(m)
	c.SetViewportSize(40, 40)
	c.Display()

	st := c.Stats()
	if st.Items != 1 || st.Triangles != 12 {
		t.Errorf("stats = %+v, want 1 item and 12 triangles", st)
	}
	// The front face (red) covers the center.
	if got := c.ColorBuffer().GetPixel(20, 20); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("center = %v, want red front face", got)
	}
	if got := c.ColorBuffer().GetPixel(0, 0); got != c.Background {
		t.Errorf("corner = %v, want background", got)
	}

	// A second frame starts from clean buffers.
	c.Display()
	if c.Stats().Pixels != st.Pixels {
		t.Errorf("second frame wrote %d pixels, first %d", c.Stats().Pixels, st.Pixels)
	}
}

func TestDisplayMissingIndices(t *testing.T) {
	vd, err := models.NewVertexData(3, nil, models.Element{
		Semantic: models.Position,
		Data:     []float64{0, 0, 0, 1, 0, 0, 0, 1, 0},
	})
	if err != nil {
		t.Fatal(err)
	}
	m := scene.NewListManager()
	m.AddShape(scene.NewShape(vd))

	c := NewContext()
	c.SetSceneManager(m)
	c.SetViewportSize(10, 10)
	c.Display()
	if st := c.Stats(); st.Items != 0 || st.Triangles != 0 {
		t.Errorf("stats = %+v, want nothing drawn", st)
	}
}

// attributeTriangle lands at pixels (10,30), (30,30), (20,10) in a 40x40
// viewport with the default camera and projection.
func attributeTriangle(t *testing.T, colorFirst bool) *scene.ListManager {
	t.Helper()
	pos := models.Element{Semantic: models.Position, Data: []float64{-5, -5, 0, 5, -5, 0, 0, 5, 0}}
	col := models.Element{Semantic: models.Color, Data: []float64{1, 0, 0, 1, 0, 0, 1, 0, 0}}
	elements := []models.Element{pos, col}
	if colorFirst {
		elements = []models.Element{col, pos}
	}
	vd, err := models.NewVertexData(3, []int{0, 1, 2}, elements...)
	if err != nil {
		t.Fatal(err)
	}
	m := scene.NewListManager()
	m.AddShape(scene.NewShape(vd))
	return m
}

func TestAttributeStateOrder(t *testing.T) {
	t.Run("color before position", func(t *testing.T) {
		c := NewContext()
		c.SetSceneManager(attributeTriangle(t, true))
		c.SetViewportSize(40, 40)
		c.Display()
		if got := c.ColorBuffer().GetPixel(12, 28); got != (color.RGBA{255, 0, 0, 255}) {
			t.Errorf("pixel near first corner = %v, want red", got)
		}
	})

	t.Run("position before color", func(t *testing.T) {
		c := NewContext()
		c.SetSceneManager(attributeTriangle(t, false))
		c.SetViewportSize(40, 40)

		// The first corner is emitted before any color is read, so it
		// carries the initial white.
		c.Display()
		if got := c.ColorBuffer().GetPixel(12, 28); got.R != 255 || got.G == 0 {
			t.Errorf("pixel near first corner = %v, want white tint", got)
		}

		// State survives frames: now every corner sees red.
		c.Display()
		if got := c.ColorBuffer().GetPixel(12, 28); got != (color.RGBA{255, 0, 0, 255}) {
			t.Errorf("second frame pixel = %v, want red", got)
		}
	})
}

func TestWireframeOverlay(t *testing.T) {
	c := newTestContext(30, 30)
	c.Wireframe = true
	c.WireColor = color.RGBA{0, 255, 0, 255}
	c.drawCorners([3]corner{
		{pos: screenVertex(5, 5, 1), color: red},
		{pos: screenVertex(25, 5, 1), color: red},
		{pos: screenVertex(5, 25, 1), color: red},
	})
	if got := c.ColorBuffer().GetPixel(15, 5); got != c.WireColor {
		t.Errorf("edge pixel = %v, want wire color", got)
	}
	if got := c.ColorBuffer().GetPixel(10, 10); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("interior pixel = %v, want red", got)
	}
}

func TestChannel(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-0.5, 0},
		{0, 0},
		{0.5, 128},
		{1, 255},
		{1.7, 255},
		{math.NaN(), 0},
	}
	for _, tc := range tests {
		if got := channel(tc.in); got != tc.want {
			t.Errorf("channel(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func BenchmarkDrawTriangle(b *testing.B) {
	c := newTestContext(200, 100)
	tri := [3]math3d.Vec4{
		screenVertex(10, 10, 1),
		screenVertex(190, 20, 2),
		screenVertex(60, 95, 1.5),
	}
	colors := [3]math3d.Vec3{red, green, blue}
	for b.Loop() {
		c.DrawTriangle(tri, colors)
	}
}

func BenchmarkDisplayTorus(b *testing.B) {
	m := scene.NewListManager()
	s := scene.NewShape(models.Torus(24, 2, 0.6))
	s.Transform = math3d.RotateX(0.7)
	m.AddShape(s)

	c := NewContext()
	c.SetSceneManager(m)
	c.SetViewportSize(160, 96)
	for b.Loop() {
		c.Display()
	}
}
