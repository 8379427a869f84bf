package models

import "github.com/spaghettifunk/lathe/engine/math"

// CubeColors assigns one flat color per face.
type CubeColors struct {
	Front, Back, Right, Left, Top, Bottom math.Vec3
}

var DefaultCubeColors = CubeColors{
	Front:  math.NewVec3(1, 0, 0),
	Back:   math.NewVec3(0, 1, 1),
	Right:  math.NewVec3(0, 1, 0),
	Left:   math.NewVec3(1, 0, 1),
	Top:    math.NewVec3(0, 0, 1),
	Bottom: math.NewVec3(1, 1, 0),
}

type cubeFace struct {
	normal  math.Vec3
	color   math.Vec3
	corners [4]math.Vec3
}

// CubeModel builds a 2x2x2 cube centered on the origin with 4 vertices per
// face so every face keeps its own normal and color.
func CubeModel(colors CubeColors) *SimpleModel {
	v := math.NewVec3
	faces := []cubeFace{
		{v(0, 0, 1), colors.Front, [4]math.Vec3{v(-1, -1, 1), v(1, -1, 1), v(1, 1, 1), v(-1, 1, 1)}},
		{v(0, 0, -1), colors.Back, [4]math.Vec3{v(-1, -1, -1), v(-1, 1, -1), v(1, 1, -1), v(1, -1, -1)}},
		{v(0, 1, 0), colors.Top, [4]math.Vec3{v(-1, 1, -1), v(-1, 1, 1), v(1, 1, 1), v(1, 1, -1)}},
		{v(0, -1, 0), colors.Bottom, [4]math.Vec3{v(-1, -1, -1), v(1, -1, -1), v(1, -1, 1), v(-1, -1, 1)}},
		{v(1, 0, 0), colors.Right, [4]math.Vec3{v(1, -1, -1), v(1, 1, -1), v(1, 1, 1), v(1, -1, 1)}},
		{v(-1, 0, 0), colors.Left, [4]math.Vec3{v(-1, -1, -1), v(-1, -1, 1), v(-1, 1, 1), v(-1, 1, -1)}},
	}

	layout := VertexLayout{PositionSize: 3, Normal: true, Color: true}
	vertices := make([]float32, 0, 24*layout.Stride())
	indices := make([]uint32, 0, 36)
	for i, f := range faces {
		for _, c := range f.corners {
			vertices = append(vertices,
				float32(c.X), float32(c.Y), float32(c.Z),
				float32(f.normal.X), float32(f.normal.Y), float32(f.normal.Z),
				float32(f.color.X), float32(f.color.Y), float32(f.color.Z))
		}
		base := uint32(i * 4)
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return NewSimpleModel(layout, vertices, indices)
}

// RectangleModel is a unit quad centered on the origin.
func RectangleModel() *SimpleModel {
	return NewSimpleModel(LayoutPosition2UV, []float32{
		-0.5, -0.5, 0, 0,
		0.5, -0.5, 1, 0,
		0.5, 0.5, 1, 1,
		-0.5, 0.5, 0, 1,
	}, []uint32{0, 1, 2, 2, 3, 0})
}

// TriangleModel is a single triangle with red, green and blue corners.
func TriangleModel() *SimpleModel {
	return NewSimpleModel(LayoutPosition2Color, []float32{
		-0.5, -0.5, 1, 0, 0,
		0.5, -0.5, 0, 1, 0,
		0.0, 0.5, 0, 0, 1,
	}, []uint32{0, 1, 2})
}
