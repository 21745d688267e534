package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestDecodeOverlaysDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
scene = "landscape"
wireframe = true

[camera]
eye = [0, 20, 30]

[snapshot]
scale = 3
`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if cfg.Scene != "landscape" || !cfg.Wireframe {
		t.Errorf("scene/wireframe not applied: %+v", cfg)
	}
	if cfg.Camera.Eye != [3]float64{0, 20, 30} {
		t.Errorf("eye = %v", cfg.Camera.Eye)
	}
	// Untouched keys keep their defaults.
	if cfg.FPS != 30 || cfg.Camera.Up != [3]float64{0, 1, 0} || cfg.Snapshot.Width != 320 {
		t.Errorf("defaults lost: %+v", cfg)
	}
	if cfg.Snapshot.Scale != 3 {
		t.Errorf("scale = %d, want 3", cfg.Snapshot.Scale)
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"zero fps", "fps = 0"},
		{"unknown scene", `scene = "teapot"`},
		{"model without path", `scene = "model"`},
		{"background range", "background = [0, 2, 0]"},
		{"eye on target", "[camera]\neye = [0, 0, 0]"},
		{"near after far", "[projection]\nenabled = true\nnear = 10\nfar = 5"},
		{"fov too wide", "[projection]\nenabled = true\nfov = 200"},
		{"snapshot size", "[snapshot]\nwidth = 0"},
		{"unknown key", "colour = 3"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.doc))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("err = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestDecodeSyntaxError(t *testing.T) {
	_, err := Decode(strings.NewReader("fps = = 3"))
	if err == nil || errors.Is(err, ErrInvalid) {
		t.Errorf("err = %v, want a decode error", err)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	want := Default()
	want.Scene = "tori"
	want.Projection.Enabled = true

	var buf bytes.Buffer
	if err := want.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	path := filepath.Join(t.TempDir(), "scenic.toml")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("Load = %+v, want %+v", got, want)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
