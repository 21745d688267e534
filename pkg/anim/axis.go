// Package anim drives scene parameters between frames with spring physics.
package anim

import "github.com/charmbracelet/harmonica"

// Axis tracks a position and a velocity that decays smoothly to zero.
type Axis struct {
	Position float64
	Velocity float64

	fps       int
	velSpring harmonica.Spring
	velAccel  float64 // spring velocity of Velocity itself
}

// NewAxis creates an axis stepped fps times per second.
func NewAxis(fps int) Axis {
	return Axis{
		fps: fps,
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update advances one frame: position moves by velocity, velocity decays.
func (a *Axis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// Impulse adds to the velocity.
func (a *Axis) Impulse(v float64) {
	a.Velocity += v
}

// Reset zeroes position and velocity.
func (a *Axis) Reset() {
	*a = NewAxis(a.fps)
}

// Settled reports whether the velocity has effectively stopped.
func (a *Axis) Settled() bool {
	return abs(a.Velocity) < 1e-4 && abs(a.velAccel) < 1e-4
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
