package geometry

import (
	"fmt"

	"github.com/spaghettifunk/lathe/engine/core"
	"github.com/spaghettifunk/lathe/engine/math"
	"github.com/spaghettifunk/lathe/engine/models"
)

// degenerateLengthSq marks tangents too short to give a direction.
const degenerateLengthSq = 1e-20

// RevolutionBody sweeps profile, a polyline in the z = 0 plane, around axis.
//
// The mesh has segments+1 rings of len(profile) vertices; ring s is the
// profile rotated by s*360/segments degrees and the last ring repeats the
// first so the texture seam has its own vertices. Vertex (s, i) is stored at
// s*len(profile)+i with layout position3+normal3+uv2. Normals and
// triangle winding face outwards whichever way the profile runs along the
// axis.
//
// With capEnds the axis must be exactly (0, 1, 0): two pole vertices are
// appended at (0, y, 0) of the first and last profile point and each is
// fan-triangulated against its ring.
//
// Fewer than four profile points give an empty model and no error.
func RevolutionBody(profile []math.Vec2, axis math.Vec3, segments int, capEnds bool) (*models.SimpleModel, error) {
	layout := models.LayoutPosition3NormalUV
	if segments < 1 {
		return nil, fmt.Errorf("revolution body with %d segments: %w", segments, core.ErrInvalidSegments)
	}
	if axis.LengthSquared() == 0 {
		return nil, fmt.Errorf("revolution body: %w", core.ErrZeroAxis)
	}
	if capEnds && axis != math.NewVec3Up() {
		return nil, fmt.Errorf("revolution body capped around %v: %w", axis, core.ErrUnsupportedCapAxis)
	}
	if len(profile) < 4 {
		return models.NewSimpleModel(layout, nil, nil), nil
	}

	axis = axis.Normalize()
	n := len(profile)
	rings := segments + 1

	positions := make([]math.Vec3, rings*n)
	for s := 0; s < segments; s++ {
		rotation := math.NewMat4Rotation(axis, math.Degrees(360*float64(s)/float64(segments)))
		for i, p := range profile {
			positions[s*n+i] = rotation.TransformPoint(p.ToVec3(0))
		}
	}
	copy(positions[segments*n:], positions[:n])

	normals := sweepNormals(positions, axis, segments, n)
	// a profile running against the axis sweeps an inside-out surface
	inverted := profile[n-1].Sub(profile[0]).ToVec3(0).Dot(axis) < 0
	if inverted {
		for i := range normals {
			normals[i] = normals[i].Negate()
		}
	}

	vertexCount := rings * n
	if capEnds {
		vertexCount += 2
	}
	vertices := make([]float32, 0, vertexCount*layout.Stride())
	for s := 0; s < rings; s++ {
		u := float64(s) / float64(segments)
		for i := 0; i < n; i++ {
			v := float64(i) / float64(n-1)
			if capEnds {
				v = float64(i+1) / float64(n+1)
			}
			vertices = appendVertex(vertices, positions[s*n+i], normals[s*n+i], math.NewVec2(u, v))
		}
	}

	indexCount := segments * (n - 1) * 6
	if capEnds {
		indexCount += segments * 6
	}
	indices := make([]uint32, 0, indexCount)
	for s := 0; s < segments; s++ {
		for i := 0; i < n-1; i++ {
			a := uint32(s*n + i)
			b := a + 1
			c := uint32((s+1)*n + i)
			d := c + 1
			indices = append(indices, a, c, d, a, d, b)
		}
	}

	if capEnds {
		first, last := profile[0], profile[n-1]
		firstNormal, lastNormal := math.NewVec3Down(), math.NewVec3Up()
		if inverted {
			firstNormal, lastNormal = lastNormal, firstNormal
		}
		vertices = appendVertex(vertices, math.NewVec3(0, first.Y, 0), firstNormal, math.NewVec2(0.5, 0))
		vertices = appendVertex(vertices, math.NewVec3(0, last.Y, 0), lastNormal, math.NewVec2(0.5, 1))

		bottom := uint32(rings * n)
		top := bottom + 1
		for s := 0; s < segments; s++ {
			a0 := uint32(s * n)
			c0 := uint32((s + 1) * n)
			indices = append(indices, bottom, c0, a0)

			aTop := a0 + uint32(n-1)
			cTop := c0 + uint32(n-1)
			indices = append(indices, top, aTop, cTop)
		}
	}

	if inverted {
		for k := 0; k < len(indices); k += 3 {
			indices[k+1], indices[k+2] = indices[k+2], indices[k+1]
		}
	}

	core.LogDebug("generated revolution body: %d profile points, %d segments, cap=%t, %d vertices, %d indices",
		n, segments, capEnds, vertexCount, len(indices))
	return models.NewSimpleModel(layout, vertices, indices), nil
}

func appendVertex(vertices []float32, p, normal math.Vec3, uv math.Vec2) []float32 {
	return append(vertices,
		float32(p.X), float32(p.Y), float32(p.Z),
		float32(normal.X), float32(normal.Y), float32(normal.Z),
		float32(uv.X), float32(uv.Y))
}

// sweepNormals crosses the sweep tangent with the profile tangent, both by
// central differences. The sweep wraps across the seam and the profile
// clamps at its ends. Points on the axis have no sweep tangent and take
// the axis, signed like the closest regular normal of the same ring.
func sweepNormals(positions []math.Vec3, axis math.Vec3, segments, n int) []math.Vec3 {
	normals := make([]math.Vec3, len(positions))
	degenerate := make([]bool, len(positions))

	for s := 0; s <= segments; s++ {
		prev, next := s-1, s+1
		if s == 0 {
			prev = segments - 1
		}
		if s == segments {
			next = 1
		}
		for i := 0; i < n; i++ {
			p := positions[s*n+i]
			sweep := positions[next*n+i].Sub(positions[prev*n+i])
			if sweep.LengthSquared() < degenerateLengthSq {
				// too few segments for a central difference, use the
				// analytic direction of motion
				sweep = axis.Cross(p)
			}
			profile := positions[s*n+math.Clamp(i+1, 0, n-1)].Sub(positions[s*n+math.Clamp(i-1, 0, n-1)])

			normal := sweep.Cross(profile)
			if normal.LengthSquared() < degenerateLengthSq {
				degenerate[s*n+i] = true
				continue
			}
			normals[s*n+i] = normal.Normalize()
		}

		for i := 0; i < n; i++ {
			if degenerate[s*n+i] {
				normals[s*n+i] = axisNormal(normals[s*n:(s+1)*n], degenerate[s*n:(s+1)*n], i, axis)
			}
		}
	}
	return normals
}

func axisNormal(ring []math.Vec3, degenerate []bool, i int, axis math.Vec3) math.Vec3 {
	for step := 1; step < len(ring); step++ {
		for _, j := range [2]int{i - step, i + step} {
			if j < 0 || j >= len(ring) || degenerate[j] {
				continue
			}
			if ring[j].Dot(axis) < 0 {
				return axis.Negate()
			}
			return axis
		}
	}
	return axis
}
