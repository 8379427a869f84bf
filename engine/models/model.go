package models

import (
	"fmt"
	m "math"

	"github.com/spaghettifunk/lathe/engine/core"
	"github.com/spaghettifunk/lathe/engine/math"
)

// SimpleModel is an indexed triangle list over interleaved float32 vertices,
// ready to be uploaded as one vertex buffer and one index buffer.
type SimpleModel struct {
	Layout   VertexLayout
	Vertices []float32
	Indices  []uint32
}

func NewSimpleModel(layout VertexLayout, vertices []float32, indices []uint32) *SimpleModel {
	return &SimpleModel{Layout: layout, Vertices: vertices, Indices: indices}
}

func (sm *SimpleModel) VertexCount() int {
	stride := sm.Layout.Stride()
	if stride == 0 {
		return 0
	}
	return len(sm.Vertices) / stride
}

func (sm *SimpleModel) IndexCount() int {
	return len(sm.Indices)
}

func (sm *SimpleModel) TriangleCount() int {
	return len(sm.Indices) / 3
}

func (sm *SimpleModel) IsEmpty() bool {
	return len(sm.Vertices) == 0 || len(sm.Indices) == 0
}

// Validate checks the buffer shapes and that every index names a vertex.
func (sm *SimpleModel) Validate() error {
	if err := sm.Layout.Validate(); err != nil {
		return err
	}
	if len(sm.Vertices)%sm.Layout.Stride() != 0 {
		return fmt.Errorf("%d components is not a multiple of stride %d: %w", len(sm.Vertices), sm.Layout.Stride(), core.ErrInvalidLayout)
	}
	if len(sm.Indices)%3 != 0 {
		return fmt.Errorf("%d indices do not form triangles: %w", len(sm.Indices), core.ErrInvalidLayout)
	}
	count := uint32(sm.VertexCount())
	for i, idx := range sm.Indices {
		if idx >= count {
			return fmt.Errorf("index %d at %d out of range [0, %d): %w", idx, i, count, core.ErrInvalidLayout)
		}
	}
	return nil
}

func (sm *SimpleModel) vertex(i int) []float32 {
	stride := sm.Layout.Stride()
	return sm.Vertices[i*stride : (i+1)*stride]
}

// Position returns vertex i as a 3D point; 2D layouts get z = 0.
func (sm *SimpleModel) Position(i int) math.Vec3 {
	v := sm.vertex(i)
	if sm.Layout.PositionSize == 2 {
		return math.NewVec3(float64(v[0]), float64(v[1]), 0)
	}
	return math.NewVec3(float64(v[0]), float64(v[1]), float64(v[2]))
}

// Normal returns the normal of vertex i, or the zero vector when the layout has none.
func (sm *SimpleModel) Normal(i int) math.Vec3 {
	offset := sm.Layout.NormalOffset()
	if offset < 0 {
		return math.NewVec3Zero()
	}
	v := sm.vertex(i)
	return math.NewVec3(float64(v[offset]), float64(v[offset+1]), float64(v[offset+2]))
}

func (sm *SimpleModel) Color(i int) math.Vec3 {
	offset := sm.Layout.ColorOffset()
	if offset < 0 {
		return math.NewVec3One()
	}
	v := sm.vertex(i)
	return math.NewVec3(float64(v[offset]), float64(v[offset+1]), float64(v[offset+2]))
}

func (sm *SimpleModel) UV(i int) math.Vec2 {
	offset := sm.Layout.UVOffset()
	if offset < 0 {
		return math.NewVec2Zero()
	}
	v := sm.vertex(i)
	return math.NewVec2(float64(v[offset]), float64(v[offset+1]))
}

// Extents returns the axis-aligned bounds of all positions.
func (sm *SimpleModel) Extents() math.Extents3D {
	count := sm.VertexCount()
	if count == 0 {
		return math.Extents3D{}
	}
	ext := math.Extents3D{
		Min: math.NewVec3(m.Inf(1), m.Inf(1), m.Inf(1)),
		Max: math.NewVec3(m.Inf(-1), m.Inf(-1), m.Inf(-1)),
	}
	for i := 0; i < count; i++ {
		p := sm.Position(i)
		ext.Min = math.NewVec3(m.Min(ext.Min.X, p.X), m.Min(ext.Min.Y, p.Y), m.Min(ext.Min.Z, p.Z))
		ext.Max = math.NewVec3(m.Max(ext.Max.X, p.X), m.Max(ext.Max.Y, p.Y), m.Max(ext.Max.Z, p.Z))
	}
	return ext
}

// Triangles calls fn with the corner positions of every triangle.
func (sm *SimpleModel) Triangles(fn func(a, b, c math.Vec3)) {
	for i := 0; i+2 < len(sm.Indices); i += 3 {
		fn(sm.Position(int(sm.Indices[i])), sm.Position(int(sm.Indices[i+1])), sm.Position(int(sm.Indices[i+2])))
	}
}
