package geometry

import (
	"github.com/spaghettifunk/lathe/engine/math"
	"github.com/spaghettifunk/lathe/engine/models"
)

// FaceNormal returns the unit normal of the counter-clockwise triangle
// (a, b, c). Degenerate triangles report false.
func FaceNormal(a, b, c math.Vec3) (math.Vec3, bool) {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.LengthSquared() < degenerateLengthSq {
		return math.Vec3{}, false
	}
	return n.Normalize(), true
}

// GenerateNormals overwrites the normals of a model with area-weighted
// averages of the face normals around each vertex.
func GenerateNormals(sm *models.SimpleModel) {
	offset := sm.Layout.NormalOffset()
	if offset < 0 {
		return
	}
	sums := make([]math.Vec3, sm.VertexCount())
	for t := 0; t+2 < len(sm.Indices); t += 3 {
		i0, i1, i2 := sm.Indices[t], sm.Indices[t+1], sm.Indices[t+2]
		a, b, c := sm.Position(int(i0)), sm.Position(int(i1)), sm.Position(int(i2))
		// NOTE: the unnormalized cross product is twice the area, which weights the average.
		n := b.Sub(a).Cross(c.Sub(a))
		sums[i0] = sums[i0].Add(n)
		sums[i1] = sums[i1].Add(n)
		sums[i2] = sums[i2].Add(n)
	}

	stride := sm.Layout.Stride()
	for i, sum := range sums {
		if sum.LengthSquared() < degenerateLengthSq {
			continue
		}
		n := sum.Normalize()
		base := i*stride + offset
		sm.Vertices[base] = float32(n.X)
		sm.Vertices[base+1] = float32(n.Y)
		sm.Vertices[base+2] = float32(n.Z)
	}
}
