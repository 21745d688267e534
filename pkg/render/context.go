package render

import (
	"image/color"
	"math"

	"github.com/taigrr/scenic/pkg/math3d"
	"github.com/taigrr/scenic/pkg/models"
	"github.com/taigrr/scenic/pkg/scene"
)

// FrameStats counts what happened during the last frame.
type FrameStats struct {
	Items      int // render items drawn
	Triangles  int // triangles assembled
	Behind     int // skipped, all three w negative
	Degenerate int // skipped, singular position matrix
	Pixels     int // pixels that passed the depth test
}

// attribState is the current vertex attribute set. Elements read before a
// POSITION overwrite it; a POSITION emits a corner with the state as it is.
type attribState struct {
	color    math3d.Vec3
	normal   math3d.Vec3
	texCoord math3d.Vec2
}

type corner struct {
	pos      math3d.Vec4
	color    math3d.Vec3
	normal   math3d.Vec3
	texCoord math3d.Vec2
}

// Context is a software render context. It owns a color and depth buffer
// sized by SetViewportSize and draws whatever its scene manager yields.
// A Context is not safe for concurrent use.
type Context struct {
	// Background is the color buffer clear color.
	Background color.RGBA
	// Wireframe overlays triangle edges in WireColor after filling.
	Wireframe bool
	WireColor color.RGBA

	manager scene.Manager

	width, height int
	viewport      math3d.Mat4
	projection    math3d.Mat4
	color         *Framebuffer
	depth         []float64

	state attribState
	stats FrameStats
}

// NewContext returns an unsized context with a black background.
func NewContext() *Context {
	return &Context{
		Background: color.RGBA{0, 0, 0, 255},
		WireColor:  color.RGBA{255, 255, 255, 255},
		projection: math3d.Identity(),
		state:      attribState{color: math3d.One3()},
	}
}

// SetSceneManager sets the scene drawn by Display.
func (c *Context) SetSceneManager(m scene.Manager) {
	c.manager = m
}

// SetViewportSize reallocates the color and depth buffers and rebuilds the
// viewport matrix. Non-positive sizes leave the context unsized.
func (c *Context) SetViewportSize(width, height int) {
	if width <= 0 || height <= 0 {
		c.width, c.height = 0, 0
		c.color, c.depth = nil, nil
		return
	}
	c.width, c.height = width, height
	c.viewport = math3d.Viewport(width, height)
	c.color = NewFramebuffer(width, height)
	c.depth = make([]float64, width*height)
	c.clear()
}

// Size returns the viewport size, zero if unsized.
func (c *Context) Size() (width, height int) {
	return c.width, c.height
}

// ColorBuffer returns the current frame's pixels, or nil if unsized.
func (c *Context) ColorBuffer() *Framebuffer {
	return c.color
}

// Depth returns the reciprocal depth stored at (x, y), or -Inf when out of
// range or nothing has been drawn there.
func (c *Context) Depth(x, y int) float64 {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return math.Inf(-1)
	}
	return c.depth[y*c.width+x]
}

// Stats returns the counters for the last frame.
func (c *Context) Stats() FrameStats {
	return c.stats
}

// Display renders one full frame. It does nothing until both a scene
// manager and a viewport size have been set.
func (c *Context) Display() {
	if c.manager == nil || c.color == nil {
		return
	}
	c.BeginFrame()
	for item := range c.manager.All() {
		c.Draw(item)
	}
	c.EndFrame()
}

// BeginFrame picks up the current projection and clears both buffers.
func (c *Context) BeginFrame() {
	if c.manager != nil {
		c.projection = c.manager.Frustum().Projection
	}
	c.stats = FrameStats{}
	c.clear()
}

// EndFrame finishes a frame. Presentation is up to the caller.
func (c *Context) EndFrame() {}

func (c *Context) clear() {
	if c.color == nil {
		return
	}
	c.color.Clear(c.Background)

	// Copy doubling fill, much faster than a per-element loop.
	c.depth[0] = math.Inf(-1)
	for filled := 1; filled < len(c.depth); filled *= 2 {
		copy(c.depth[filled:], c.depth[:filled])
	}
}

// Draw rasterizes one render item with the current camera and projection.
func (c *Context) Draw(item scene.RenderItem) {
	if c.color == nil || item.Shape == nil || item.Shape.Data == nil {
		return
	}
	vd := item.Shape.Data
	indices := vd.Indices()
	if len(indices) == 0 {
		return
	}
	c.stats.Items++

	view := math3d.Identity()
	if c.manager != nil {
		view = c.manager.Camera().ViewMatrix()
	}
	t := c.viewport.Mul(c.projection).Mul(view).Mul(item.Transform)

	elements := vd.Elements()
	var tri [3]corner
	k := 0
	for _, i := range indices {
		for _, e := range elements {
			switch e.Semantic {
			case models.Position:
				p := math3d.V4(e.Data[i*3], e.Data[i*3+1], e.Data[i*3+2], 1)
				tri[k] = corner{
					pos:      t.MulVec4(p),
					color:    c.state.color,
					normal:   c.state.normal,
					texCoord: c.state.texCoord,
				}
				k++
			case models.Color:
				c.state.color = math3d.V3(e.Data[i*3], e.Data[i*3+1], e.Data[i*3+2])
			case models.Normal:
				c.state.normal = math3d.V3(e.Data[i*3], e.Data[i*3+1], e.Data[i*3+2])
			case models.TexCoord:
				c.state.texCoord = math3d.V2(e.Data[i*2], e.Data[i*2+1])
			}
			if k == 3 {
				c.drawCorners(tri)
				k = 0
			}
		}
	}
}

func (c *Context) drawCorners(tri [3]corner) {
	positions := [3]math3d.Vec4{tri[0].pos, tri[1].pos, tri[2].pos}
	c.DrawTriangle(positions, [3]math3d.Vec3{tri[0].color, tri[1].color, tri[2].color})
	if c.Wireframe {
		c.drawEdges(positions)
	}
}
