package anim

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Swing eases an angle after a sinusoidal target, giving joints a slightly
// lagged pendulum motion.
type Swing struct {
	Amplitude float64 // radians
	Period    float64 // seconds
	Phase     float64 // radians

	Angle float64

	fps    int
	frame  int
	spring harmonica.Spring
	vel    float64
}

// NewSwing creates a swing stepped fps times per second.
func NewSwing(fps int, amplitude, period, phase float64) *Swing {
	return &Swing{
		Amplitude: amplitude,
		Period:    period,
		Phase:     phase,
		fps:       fps,
		spring:    harmonica.NewSpring(harmonica.FPS(fps), 8.0, 0.7),
	}
}

// Target returns the angle the swing is currently chasing.
func (s *Swing) Target() float64 {
	if s.Period <= 0 {
		return 0
	}
	t := float64(s.frame) / float64(s.fps)
	return s.Amplitude * math.Sin(2*math.Pi*t/s.Period+s.Phase)
}

// Update advances one frame and returns the new angle.
func (s *Swing) Update() float64 {
	s.frame++
	s.Angle, s.vel = s.spring.Update(s.Angle, s.vel, s.Target())
	return s.Angle
}
