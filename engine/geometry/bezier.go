package geometry

import (
	m "math"

	"github.com/spaghettifunk/lathe/engine/math"
)

// MaxSubdivisionDepth bounds the De Casteljau recursion. At this depth a
// sub-curve is emitted as a straight chord whatever its flatness, so a
// tolerance of zero yields at most 2^16 chords per segment.
const MaxSubdivisionDepth = 16

// flatness compares both inner control points against the chord and returns
// the sum of the per-axis maxima of the squared deviations.
func flatness(p1, p2, p3, p4 math.Vec2) float64 {
	ux := sq(3*p2.X - 2*p1.X - p4.X)
	uy := sq(3*p2.Y - 2*p1.Y - p4.Y)
	vx := sq(3*p3.X - 2*p4.X - p1.X)
	vy := sq(3*p3.Y - 2*p4.Y - p1.Y)
	return m.Max(ux, vx) + m.Max(uy, vy)
}

func sq(x float64) float64 {
	return x * x
}

func lerp(a, b math.Vec2, t float64) math.Vec2 {
	return math.NewVec2(math.Lerp(a.X, b.X, t), math.Lerp(a.Y, b.Y, t))
}

func flattenSegment(p1, p2, p3, p4 math.Vec2, tolerance float64, depth int, out []math.Vec2) []math.Vec2 {
	if depth >= MaxSubdivisionDepth || flatness(p1, p2, p3, p4) < tolerance {
		if len(out) == 0 {
			out = append(out, p1)
		}
		return append(out, p4)
	}

	const t = 0.5
	q1 := lerp(p1, p2, t)
	q2 := lerp(p2, p3, t)
	q3 := lerp(p3, p4, t)
	r1 := lerp(q1, q2, t)
	r2 := lerp(q2, q3, t)
	red := lerp(r1, r2, t)

	out = flattenSegment(p1, q1, r1, red, tolerance, depth+1, out)
	return flattenSegment(red, r2, q3, p4, tolerance, depth+1, out)
}

// FlattenBezierSegments turns a chain of cubic segments sharing end points
// (p0..p3, p3..p6, ...) into a polyline. len(points) must be 3k+1; any
// trailing points are ignored.
func FlattenBezierSegments(points []math.Vec2, tolerance float64) []math.Vec2 {
	var out []math.Vec2
	for offset := 0; offset+3 < len(points); offset += 3 {
		out = flattenSegment(points[offset], points[offset+1], points[offset+2], points[offset+3], tolerance, 0, out)
	}
	return out
}

// distanceToSegmentSq is the squared distance from p to the closest point
// of the segment [a, b].
func distanceToSegmentSq(p, a, b math.Vec2) float64 {
	segment := b.Sub(a)
	lengthSq := segment.LengthSquared()
	if lengthSq == 0 {
		return p.Sub(a).LengthSquared()
	}
	t := math.Clamp(p.Sub(a).Dot(segment)/lengthSq, 0, 1)
	return p.Sub(a.Add(segment.MulScalar(t))).LengthSquared()
}

func simplify(points []math.Vec2, start, end int, epsilon float64, out []math.Vec2) []math.Vec2 {
	s := points[start]
	e := points[end-1]

	maxDistSq := 0.0
	maxIndex := start
	for i := start + 1; i < end-1; i++ {
		if d := distanceToSegmentSq(points[i], s, e); d > maxDistSq {
			maxDistSq = d
			maxIndex = i
		}
	}

	// only split at an interior point, or the recursion never shrinks
	if maxIndex > start && m.Sqrt(maxDistSq) > epsilon {
		out = simplify(points, start, maxIndex+1, epsilon, out)
		return simplify(points, maxIndex, end, epsilon, out)
	}

	if len(out) == 0 {
		out = append(out, s)
	}
	return append(out, e)
}

// SimplifyPolyline drops points closer than epsilon to the chord of their
// span (Douglas-Peucker). The first and last points are always kept. A
// negative epsilon behaves like 0 and keeps every point off the chord.
func SimplifyPolyline(points []math.Vec2, epsilon float64) []math.Vec2 {
	if len(points) < 2 {
		return append([]math.Vec2(nil), points...)
	}
	if epsilon < 0 {
		epsilon = 0
	}
	return simplify(points, 0, len(points), epsilon, nil)
}

// BezierCurve flattens the complete cubic segments of points with the
// given flatness tolerance, then simplifies the result so that no dropped
// point was farther than distance from the kept polyline. Fewer than four
// points give an empty curve.
func BezierCurve(points []math.Vec2, tolerance, distance float64) []math.Vec2 {
	if len(points) < 4 {
		return nil
	}
	finished := points[:len(points)-(len(points)-1)%3]
	return SimplifyPolyline(FlattenBezierSegments(finished, tolerance), distance)
}
