package models

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/qmuntal/gltf"
)

// triangleDocument builds a one-triangle document with float positions and
// uint16 indices packed into a single buffer.
func triangleDocument(withMaterial bool) *gltf.Document {
	positions := []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}
	indices := []uint16{0, 1, 2}

	var data []byte
	for _, f := range positions {
		data = binary.LittleEndian.AppendUint32(data, math.Float32bits(f))
	}
	idxOffset := len(data)
	for _, i := range indices {
		data = binary.LittleEndian.AppendUint16(data, i)
	}

	doc := &gltf.Document{
		Buffers: []*gltf.Buffer{{ByteLength: len(data), Data: data}},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: idxOffset},
			{Buffer: 0, ByteOffset: idxOffset, ByteLength: len(data) - idxOffset},
		},
		Accessors: []*gltf.Accessor{
			{BufferView: gltf.Index(0), ComponentType: gltf.ComponentFloat, Count: 3, Type: gltf.AccessorVec3},
			{BufferView: gltf.Index(1), ComponentType: gltf.ComponentUshort, Count: 3, Type: gltf.AccessorScalar},
		},
		Meshes: []*gltf.Mesh{{
			Name: "tri",
			Primitives: []*gltf.Primitive{{
				Attributes: map[string]int{gltf.POSITION: 0},
				Indices:    gltf.Index(1),
			}},
		}},
	}
	if withMaterial {
		doc.Materials = []*gltf.Material{{
			Name: "red",
			PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: &[4]float64{1, 0, 0, 1},
			},
		}}
		doc.Meshes[0].Primitives[0].Material = gltf.Index(0)
	}
	return doc
}

func TestLoadGLTFInvalidPath(t *testing.T) {
	_, err := LoadGLTF("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestModelFromDocument(t *testing.T) {
	m, err := ModelFromDocument(triangleDocument(false), "tri.gltf")
	if err != nil {
		t.Fatalf("ModelFromDocument: %v", err)
	}
	if m.Data.VertexCount() != 3 {
		t.Errorf("VertexCount = %d, want 3", m.Data.VertexCount())
	}
	if m.Data.TriangleCount() != 1 {
		t.Errorf("TriangleCount = %d, want 1", m.Data.TriangleCount())
	}
	if math.Abs(m.Radius-1) > 1e-9 {
		t.Errorf("Radius = %v, want 1", m.Radius)
	}

	pos, ok := m.Data.Element(Position)
	if !ok {
		t.Fatal("missing POSITION element")
	}
	if pos.Data[3] != 1 || pos.Data[7] != 1 {
		t.Errorf("positions decoded wrong: %v", pos.Data)
	}

	// Color must precede position so the first corner picks it up.
	if got := m.Data.Elements()[0].Semantic; got != Color {
		t.Errorf("first element = %v, want COLOR", got)
	}
	col, _ := m.Data.Element(Color)
	for i, c := range col.Data {
		if c != 1 {
			t.Fatalf("color[%d] = %v, want white without material", i, c)
		}
	}
}

func TestModelFromDocumentMaterialColor(t *testing.T) {
	m, err := ModelFromDocument(triangleDocument(true), "tri.gltf")
	if err != nil {
		t.Fatalf("ModelFromDocument: %v", err)
	}
	if m.Material.Name != "red" {
		t.Errorf("Material.Name = %q, want red", m.Material.Name)
	}
	col, _ := m.Data.Element(Color)
	want := []float64{1, 0, 0, 1, 0, 0, 1, 0, 0}
	for i := range want {
		if col.Data[i] != want[i] {
			t.Fatalf("color = %v, want %v", col.Data, want)
		}
	}
}

func TestModelFromDocumentNoGeometry(t *testing.T) {
	_, err := ModelFromDocument(&gltf.Document{}, "empty.gltf")
	if !errors.Is(err, ErrNoGeometry) {
		t.Errorf("err = %v, want ErrNoGeometry", err)
	}
}

func TestReadIndicesRejectsFloat(t *testing.T) {
	doc := triangleDocument(false)
	if _, err := readIndices(doc, 0); err == nil {
		t.Error("expected error reading VEC3 accessor as indices")
	}
}
