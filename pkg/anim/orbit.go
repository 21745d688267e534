package anim

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/scenic/pkg/math3d"
	"github.com/taigrr/scenic/pkg/scene"
)

// pitchLimit keeps the orbit away from the poles where the up vector
// degenerates.
const pitchLimit = math.Pi/2 - 0.05

// Orbit moves a camera on a sphere around its look-at point. Yaw and pitch
// coast after an impulse; distance eases toward a zoom target.
type Orbit struct {
	Yaw   Axis
	Pitch Axis

	Distance       float64
	TargetDistance float64
	MinDistance    float64
	MaxDistance    float64

	zoomSpring harmonica.Spring
	zoomVel    float64
	fps        int
	home       scene.Camera
}

// NewOrbit creates a controller starting from the camera's current
// placement, which Reset returns to.
func NewOrbit(fps int, cam *scene.Camera) *Orbit {
	o := &Orbit{
		fps:         fps,
		home:        *cam,
		zoomSpring:  harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
		MinDistance: 1,
		MaxDistance: 500,
	}
	o.Reset()
	return o
}

// Reset restores the starting placement and stops all motion.
func (o *Orbit) Reset() {
	o.Yaw = NewAxis(o.fps)
	o.Pitch = NewAxis(o.fps)
	o.zoomVel = 0

	offset := o.home.CenterOfProjection.Sub(o.home.LookAt)
	o.Distance = max(offset.Len(), o.MinDistance)
	o.TargetDistance = o.Distance
	if offset.Len() > 0 {
		o.Yaw.Position = math.Atan2(offset.X, offset.Z)
		o.Pitch.Position = math.Asin(offset.Y / offset.Len())
	}
}

// Zoom scales the target distance by factor.
func (o *Orbit) Zoom(factor float64) {
	o.TargetDistance = min(max(o.TargetDistance*factor, o.MinDistance), o.MaxDistance)
}

// Update advances one frame.
func (o *Orbit) Update() {
	o.Yaw.Update()
	o.Pitch.Update()
	if o.Pitch.Position > pitchLimit {
		o.Pitch.Position, o.Pitch.Velocity = pitchLimit, 0
	} else if o.Pitch.Position < -pitchLimit {
		o.Pitch.Position, o.Pitch.Velocity = -pitchLimit, 0
	}
	o.Distance, o.zoomVel = o.zoomSpring.Update(o.Distance, o.zoomVel, o.TargetDistance)
}

// Apply places cam on the orbit around the home look-at point.
func (o *Orbit) Apply(cam *scene.Camera) {
	yaw, pitch := o.Yaw.Position, o.Pitch.Position
	dir := math3d.V3(
		math.Cos(pitch)*math.Sin(yaw),
		math.Sin(pitch),
		math.Cos(pitch)*math.Cos(yaw),
	)
	cam.LookAt = o.home.LookAt
	cam.Up = o.home.Up
	cam.CenterOfProjection = o.home.LookAt.Add(dir.Scale(o.Distance))
}
