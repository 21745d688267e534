package scenes

import (
	"math"
	"testing"

	"github.com/taigrr/scenic/pkg/config"
	"github.com/taigrr/scenic/pkg/math3d"
	"github.com/taigrr/scenic/pkg/models"
	"github.com/taigrr/scenic/pkg/render"
)

func TestBuildAll(t *testing.T) {
	for _, name := range config.Scenes {
		if name == "model" {
			continue // needs a file
		}
		t.Run(name, func(t *testing.T) {
			s, err := Build(name, Options{FPS: 30, Seed: 3})
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			for range 5 {
				s.Update()
			}

			s.Manager.SetCulling(false)
			all := len(s.Manager.Items())
			s.Manager.SetCulling(true)
			visible := len(s.Manager.Items())
			if all == 0 {
				t.Fatal("scene has no shapes")
			}
			if visible == 0 {
				t.Error("nothing visible from the scene's camera")
			}
			if visible > all {
				t.Errorf("culling added items: %d > %d", visible, all)
			}

			c := render.NewContext()
			c.SetSceneManager(s.Manager)
			c.SetViewportSize(64, 48)
			c.Display()
			if c.Stats().Pixels == 0 {
				t.Error("frame wrote no pixels")
			}
		})
	}
}

func TestBuildUnknown(t *testing.T) {
	if _, err := Build("teapot", Options{}); err == nil {
		t.Error("expected error for unknown scene")
	}
	if _, err := Build("model", Options{ModelPath: "/nonexistent.glb"}); err == nil {
		t.Error("expected error for missing model")
	}
}

func TestToriCulls(t *testing.T) {
	s := Tori(30)
	s.Update()
	visible := len(s.Manager.Items())
	if visible >= toriGrid*toriGrid {
		t.Errorf("culling kept all %d tori", visible)
	}
}

func TestRobotAnimates(t *testing.T) {
	s := Robot(30)
	s.Manager.SetCulling(false)
	before := s.Manager.Items()
	for range 10 {
		s.Update()
	}
	after := s.Manager.Items()
	if len(before) != len(after) || len(before) != 10 {
		t.Fatalf("item counts %d, %d; want 10", len(before), len(after))
	}
	moved := 0
	for i := range before {
		if !before[i].Transform.ApproxEqual(after[i].Transform, 1e-9) {
			moved++
		}
	}
	if moved != len(before) {
		t.Errorf("%d of %d parts moved, want all", moved, len(before))
	}
}

func TestLandscapeSeeded(t *testing.T) {
	a := Landscape(9).Manager.Items()[0].Shape.Data
	b := Landscape(9).Manager.Items()[0].Shape.Data
	pa, _ := a.Element(models.Position)
	pb, _ := b.Element(models.Position)
	for i := range pa.Data {
		if pa.Data[i] != pb.Data[i] {
			t.Fatal("same seed gave different terrain")
		}
	}
}

func TestModelSceneScales(t *testing.T) {
	mdl := &models.Model{
		Name:     "cube",
		Data:     models.Cube(),
		Material: &models.Material{Name: "blue", Diffuse: math3d.V3(0, 0, 1)},
		Radius:   math.Sqrt(3),
	}
	s := modelScene(mdl, 30)
	s.Manager.SetCulling(false)
	items := s.Manager.Items()
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].Shape.Material.Name != "blue" {
		t.Error("material not carried to the shape")
	}
	if got := maxScale(items[0].Transform) * mdl.Radius; math.Abs(got-modelSize) > 1e-9 {
		t.Errorf("scaled radius = %v, want %v", got, modelSize)
	}
}

func TestMaxScale(t *testing.T) {
	tests := []struct {
		name string
		m    math3d.Mat4
		want float64
	}{
		{"identity", math3d.Identity(), 1},
		{"uniform", math3d.ScaleUniform(2.5), 2.5},
		{"limb", math3d.Scale(math3d.V3(0.5, 0.5, 1)), 1},
		{"rotated", math3d.RotateY(1).Mul(math3d.ScaleUniform(3)), 3},
		{"translated", math3d.Translate(math3d.V3(10, 0, 0)), 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := maxScale(tc.m); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("maxScale = %v, want %v", got, tc.want)
			}
		})
	}
}
