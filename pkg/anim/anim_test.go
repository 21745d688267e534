package anim

import (
	"math"
	"testing"

	"github.com/taigrr/scenic/pkg/math3d"
	"github.com/taigrr/scenic/pkg/scene"
)

func TestAxisDecays(t *testing.T) {
	a := NewAxis(60)
	a.Impulse(0.2)

	prev := a.Position
	for range 600 {
		a.Update()
	}
	if a.Position <= prev {
		t.Errorf("position did not advance: %v", a.Position)
	}
	if !a.Settled() {
		t.Errorf("velocity still %v after 10s", a.Velocity)
	}

	a.Reset()
	if a.Position != 0 || a.Velocity != 0 {
		t.Errorf("Reset left %+v", a)
	}
}

func TestOrbitKeepsDistance(t *testing.T) {
	cam := scene.NewCamera()
	o := NewOrbit(60, cam)

	tests := []struct {
		name       string
		yaw, pitch float64
	}{
		{"still", 0, 0},
		{"yaw", 0.3, 0},
		{"pitch", 0, 0.2},
		{"both", -0.4, -0.1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o.Reset()
			o.Yaw.Impulse(tc.yaw)
			o.Pitch.Impulse(tc.pitch)
			for range 30 {
				o.Update()
			}
			o.Apply(cam)
			d := cam.CenterOfProjection.Sub(cam.LookAt).Len()
			if math.Abs(d-10) > 1e-6 {
				t.Errorf("distance = %v, want 10", d)
			}
		})
	}
}

func TestOrbitResetRestoresCamera(t *testing.T) {
	cam := scene.NewCamera()
	cam.CenterOfProjection = math3d.V3(3, 4, 12)
	start := cam.CenterOfProjection

	o := NewOrbit(30, cam)
	o.Yaw.Impulse(1)
	for range 10 {
		o.Update()
	}
	o.Apply(cam)
	if cam.CenterOfProjection.Sub(start).Len() < 1e-3 {
		t.Fatal("camera did not move")
	}

	o.Reset()
	o.Apply(cam)
	if cam.CenterOfProjection.Sub(start).Len() > 1e-9 {
		t.Errorf("after reset camera at %v, want %v", cam.CenterOfProjection, start)
	}
}

func TestOrbitPitchClamped(t *testing.T) {
	o := NewOrbit(60, scene.NewCamera())
	o.Pitch.Impulse(10)
	for range 60 {
		o.Update()
		if math.Abs(o.Pitch.Position) > pitchLimit {
			t.Fatalf("pitch %v exceeds limit", o.Pitch.Position)
		}
	}
}

func TestOrbitZoom(t *testing.T) {
	o := NewOrbit(60, scene.NewCamera())
	o.Zoom(0.5)
	if o.TargetDistance != 5 {
		t.Errorf("TargetDistance = %v, want 5", o.TargetDistance)
	}
	for range 300 {
		o.Update()
	}
	if math.Abs(o.Distance-5) > 1e-3 {
		t.Errorf("Distance = %v, want ~5", o.Distance)
	}

	o.Zoom(1e-6)
	if o.TargetDistance != o.MinDistance {
		t.Errorf("TargetDistance = %v, want clamp to %v", o.TargetDistance, o.MinDistance)
	}
}

func TestSwingBounded(t *testing.T) {
	s := NewSwing(60, 0.5, 1, 0)
	var peak float64
	for range 300 {
		peak = max(peak, math.Abs(s.Update()))
	}
	if peak < 0.2 {
		t.Errorf("swing peak %v, want noticeable motion", peak)
	}
	if peak > 0.75 {
		t.Errorf("swing peak %v overshoots amplitude", peak)
	}
}

func TestSwingZeroPeriod(t *testing.T) {
	s := NewSwing(60, 1, 0, 0)
	for range 10 {
		if a := s.Update(); a != 0 {
			t.Fatalf("angle = %v, want 0 without a period", a)
		}
	}
}
