package models

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/scenic/pkg/math3d"
)

// ErrNoGeometry is returned when a document has no triangle primitives with
// positions.
var ErrNoGeometry = errors.New("no triangle geometry")

// Model is a loaded mesh ready to be wrapped in a scene shape.
type Model struct {
	Name     string
	Data     *VertexData
	Material *Material
	Radius   float64 // object-space bounding radius
}

// LoadGLTF loads a .gltf or .glb file, merging every triangle primitive into
// a single VertexData.
func LoadGLTF(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return ModelFromDocument(doc, filepath.Base(path))
}

// ModelFromDocument converts an already decoded glTF document. Buffers must
// have their data resolved.
func ModelFromDocument(doc *gltf.Document, name string) (*Model, error) {
	var acc meshAccumulator
	for _, m := range doc.Meshes {
		if err := acc.addMesh(doc, m); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}
	if acc.count == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNoGeometry)
	}

	elements := []Element{{Color, acc.colors}, {Position, acc.positions}}
	if acc.hasNormals {
		elements = append(elements, Element{Normal, acc.normals})
	}
	if acc.hasUVs {
		elements = append(elements, Element{TexCoord, acc.uvs})
	}

	vd, err := NewVertexData(acc.count, acc.indices, elements...)
	if err != nil {
		return nil, fmt.Errorf("build vertex data: %w", err)
	}

	mat := DefaultMaterial()
	if acc.material != nil {
		mat = acc.material
	}
	return &Model{
		Name:     name,
		Data:     vd,
		Material: mat,
		Radius:   vd.BoundingRadius(),
	}, nil
}

// meshAccumulator concatenates primitives. Attributes a primitive lacks are
// zero-filled (colors use the primitive's base color) so every stream stays
// the same length.
type meshAccumulator struct {
	count      int
	positions  []float64
	colors     []float64
	normals    []float64
	uvs        []float64
	indices    []int
	hasNormals bool
	hasUVs     bool
	material   *Material
}

func (a *meshAccumulator) addMesh(doc *gltf.Document, m *gltf.Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var normals []math3d.Vec3
		if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
			if normals, err = readVec3Accessor(doc, idx); err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
			a.hasNormals = true
		}

		var uvs []math3d.Vec2
		if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			if uvs, err = readVec2Accessor(doc, idx); err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
			a.hasUVs = true
		}

		var colors []math3d.Vec3
		if idx, ok := prim.Attributes[gltf.COLOR_0]; ok {
			if colors, err = readColorAccessor(doc, idx); err != nil {
				return fmt.Errorf("read colors: %w", err)
			}
		}

		base := math3d.One3()
		if prim.Material != nil && *prim.Material < len(doc.Materials) {
			mat := materialFromGLTF(doc.Materials[*prim.Material])
			base = mat.Diffuse
			if a.material == nil {
				a.material = mat
			}
		}

		baseVertex := a.count
		for i, p := range positions {
			a.positions = append(a.positions, p.X, p.Y, p.Z)

			col := base
			if i < len(colors) {
				col = colors[i]
			}
			a.colors = append(a.colors, col.X, col.Y, col.Z)

			var n math3d.Vec3
			if i < len(normals) {
				n = normals[i]
			}
			a.normals = append(a.normals, n.X, n.Y, n.Z)

			var uv math3d.Vec2
			if i < len(uvs) {
				uv = uvs[i]
			}
			a.uvs = append(a.uvs, uv.X, uv.Y)
		}
		a.count += len(positions)

		if prim.Indices != nil {
			indices, err := readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
			for i := 0; i+2 < len(indices); i += 3 {
				a.indices = append(a.indices,
					baseVertex+indices[i], baseVertex+indices[i+1], baseVertex+indices[i+2])
			}
		} else {
			// No indices, assume sequential triangles
			for i := 0; i+2 < len(positions); i += 3 {
				a.indices = append(a.indices, baseVertex+i, baseVertex+i+1, baseVertex+i+2)
			}
		}
	}
	return nil
}

func materialFromGLTF(m *gltf.Material) *Material {
	mat := &Material{Name: m.Name, Diffuse: math3d.One3()}
	if m.PBRMetallicRoughness != nil && m.PBRMetallicRoughness.BaseColorFactor != nil {
		f := m.PBRMetallicRoughness.BaseColorFactor
		mat.Diffuse = math3d.V3(f[0], f[1], f[2])
	}
	return mat
}

// readVec3Accessor reads float VEC3 data from a glTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	floats, err := readFloatAccessor(doc, accessorIdx, gltf.AccessorVec3, 3)
	if err != nil {
		return nil, err
	}
	result := make([]math3d.Vec3, len(floats))
	for i, f := range floats {
		result[i] = math3d.V3(f[0], f[1], f[2])
	}
	return result, nil
}

// readVec2Accessor reads float VEC2 data from a glTF accessor.
func readVec2Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec2, error) {
	floats, err := readFloatAccessor(doc, accessorIdx, gltf.AccessorVec2, 2)
	if err != nil {
		return nil, err
	}
	result := make([]math3d.Vec2, len(floats))
	for i, f := range floats {
		result[i] = math3d.V2(f[0], f[1])
	}
	return result, nil
}

// readColorAccessor reads float VEC3 or VEC4 colors, dropping alpha.
func readColorAccessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	n := 3
	if accessor.Type == gltf.AccessorVec4 {
		n = 4
	}
	floats, err := readFloatAccessor(doc, accessorIdx, accessor.Type, n)
	if err != nil {
		return nil, err
	}
	result := make([]math3d.Vec3, len(floats))
	for i, f := range floats {
		result[i] = math3d.V3(f[0], f[1], f[2])
	}
	return result, nil
}

// readFloatAccessor reads count tuples of n little-endian float32 values.
func readFloatAccessor(doc *gltf.Document, accessorIdx int, want gltf.AccessorType, n int) ([][4]float64, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != want {
		return nil, fmt.Errorf("expected %v, got %v", want, accessor.Type)
	}
	if accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float components, got %v", accessor.ComponentType)
	}

	data, start, stride, err := accessorBytes(doc, accessor, 4*n)
	if err != nil {
		return nil, err
	}

	result := make([][4]float64, accessor.Count)
	for i := range accessor.Count {
		offset := start + i*stride
		if offset+4*n > len(data) {
			return nil, fmt.Errorf("accessor reads past end of buffer")
		}
		for j := range n {
			bits := binary.LittleEndian.Uint32(data[offset+j*4:])
			result[i][j] = float64(math.Float32frombits(bits))
		}
	}
	return result, nil
}

// readIndices reads SCALAR unsigned index data from a glTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", accessor.ComponentType)
	}

	data, start, stride, err := accessorBytes(doc, accessor, size)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := range accessor.Count {
		offset := start + i*stride
		if offset+size > len(data) {
			return nil, fmt.Errorf("accessor reads past end of buffer")
		}
		switch size {
		case 1:
			result[i] = int(data[offset])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(data[offset:]))
		case 4:
			result[i] = int(binary.LittleEndian.Uint32(data[offset:]))
		}
	}
	return result, nil
}

// accessorBytes resolves the buffer backing an accessor and returns it along
// with the first element offset and the element stride.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) (data []byte, start, stride int, err error) {
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor has no buffer view")
	}
	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]
	if buffer.Data == nil {
		return nil, 0, 0, fmt.Errorf("buffer has no data")
	}

	stride = bufferView.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	return buffer.Data, bufferView.ByteOffset + accessor.ByteOffset, stride, nil
}
