package geometry

import (
	m "math"

	"github.com/spaghettifunk/lathe/engine/math"
	"github.com/spaghettifunk/lathe/engine/models"
)

// PointsModel is an ordered list of 2D control points. Insertion order is
// significant; duplicates are allowed and removal is always explicit.
type PointsModel struct {
	points []math.Vec2
}

func NewPointsModel(points ...math.Vec2) *PointsModel {
	return &PointsModel{points: append([]math.Vec2(nil), points...)}
}

func (pm *PointsModel) Add(p math.Vec2) {
	pm.points = append(pm.points, p)
}

// Remove deletes the last point equal to p and reports whether one was found.
func (pm *PointsModel) Remove(p math.Vec2) bool {
	for i := len(pm.points) - 1; i >= 0; i-- {
		if pm.points[i] == p {
			pm.points = append(pm.points[:i], pm.points[i+1:]...)
			return true
		}
	}
	return false
}

// Nearest returns the index of the point closest to p within maxDistance,
// or -1.
func (pm *PointsModel) Nearest(p math.Vec2, maxDistance float64) int {
	best := -1
	bestDistance := m.Inf(1)
	for i, q := range pm.points {
		if d := q.Distance(p); d <= maxDistance && d < bestDistance {
			best = i
			bestDistance = d
		}
	}
	return best
}

// Toggle removes the point nearest to p if one lies within minDistance and
// appends p otherwise. It reports whether a point was added.
func (pm *PointsModel) Toggle(p math.Vec2, minDistance float64) bool {
	if i := pm.Nearest(p, minDistance); i >= 0 {
		pm.points = append(pm.points[:i], pm.points[i+1:]...)
		return false
	}
	pm.Add(p)
	return true
}

// Points returns a copy of the control points.
func (pm *PointsModel) Points() []math.Vec2 {
	return append([]math.Vec2(nil), pm.points...)
}

func (pm *PointsModel) Len() int {
	return len(pm.points)
}

// controlPolygon keeps the first four points as one cubic segment and
// continues the curve smoothly through every later point by mirroring the
// previous support points around the previous point.
func (pm *PointsModel) controlPolygon() []math.Vec2 {
	control := append([]math.Vec2(nil), pm.points[:4]...)
	for k := 4; k < len(pm.points); k++ {
		previous := pm.points[k-1]
		support1 := previous.Add(previous.Sub(pm.points[k-2]))
		support2 := previous.Add(previous.Sub(pm.points[k-3]))
		control = append(control, support1, support2, pm.points[k])
	}
	return control
}

// BezierCurve returns the flattened and simplified curve through the
// control points as a new model. Fewer than four points give an empty model.
func (pm *PointsModel) BezierCurve(tolerance, distance float64) *PointsModel {
	if len(pm.points) < 4 {
		return NewPointsModel()
	}
	curve := FlattenBezierSegments(pm.controlPolygon(), tolerance)
	return &PointsModel{points: SimplifyPolyline(curve, distance)}
}

// Squares emits one size x size marker quad per point, layout position2+uv2.
func (pm *PointsModel) Squares(size float64) *models.SimpleModel {
	half := size / 2
	vertices := make([]float32, 0, len(pm.points)*16)
	indices := make([]uint32, 0, len(pm.points)*6)
	for i, p := range pm.points {
		vertices = append(vertices,
			float32(p.X-half), float32(p.Y-half), 0, 0,
			float32(p.X-half), float32(p.Y+half), 0, 1,
			float32(p.X+half), float32(p.Y+half), 1, 1,
			float32(p.X+half), float32(p.Y-half), 1, 0,
		)
		base := uint32(i * 4)
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	}
	return models.NewSimpleModel(models.LayoutPosition2UV, vertices, indices)
}

// Lines emits a ribbon of the given width along the polyline, one quad per
// segment, layout position2+uv2. Zero-length segments are skipped.
func (pm *PointsModel) Lines(width float64) *models.SimpleModel {
	half := width / 2
	var vertices []float32
	var indices []uint32
	quads := uint32(0)
	for i := 0; i+1 < len(pm.points); i++ {
		a, b := pm.points[i], pm.points[i+1]
		direction := b.Sub(a)
		if direction.LengthSquared() == 0 {
			continue
		}
		offset := direction.Normalize().Perpendicular().MulScalar(half)
		for _, corner := range [4]struct {
			p    math.Vec2
			u, v float32
		}{
			{a.Sub(offset), 0, 0},
			{a.Add(offset), 0, 1},
			{b.Add(offset), 1, 1},
			{b.Sub(offset), 1, 0},
		} {
			vertices = append(vertices, float32(corner.p.X), float32(corner.p.Y), corner.u, corner.v)
		}
		base := quads * 4
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
		quads++
	}
	return models.NewSimpleModel(models.LayoutPosition2UV, vertices, indices)
}

// RevolutionBody flattens the control points and sweeps the resulting
// profile around axis.
func (pm *PointsModel) RevolutionBody(tolerance, distance float64, axis math.Vec3, segments int, capEnds bool) (*models.SimpleModel, error) {
	return RevolutionBody(pm.BezierCurve(tolerance, distance).points, axis, segments, capEnds)
}
