package geometry

import (
	"errors"
	m "math"
	"testing"

	"github.com/spaghettifunk/lathe/engine/core"
	"github.com/spaghettifunk/lathe/engine/math"
	"github.com/spaghettifunk/lathe/engine/models"
)

const tolerance = 1e-5

// cylinder is a radius 1 tube of height 4 sampled at five heights.
func cylinder() []math.Vec2 {
	return []math.Vec2{v2(1, 0), v2(1, 1), v2(1, 2), v2(1, 3), v2(1, 4)}
}

func isUnit(v math.Vec3) bool {
	return m.Abs(v.Length()-1) < tolerance
}

func radial(p math.Vec3) math.Vec3 {
	return math.NewVec3(p.X, 0, p.Z).Normalize()
}

func TestRevolutionBodyErrors(t *testing.T) {
	tests := []struct {
		name     string
		axis     math.Vec3
		segments int
		capEnds  bool
		want     error
	}{
		{"no segments", math.NewVec3Up(), 0, false, core.ErrInvalidSegments},
		{"negative segments", math.NewVec3Up(), -3, false, core.ErrInvalidSegments},
		{"zero axis", math.NewVec3Zero(), 8, false, core.ErrZeroAxis},
		{"cap around x", math.NewVec3Right(), 8, true, core.ErrUnsupportedCapAxis},
		{"cap around scaled y", math.NewVec3(0, 2, 0), 8, true, core.ErrUnsupportedCapAxis},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := RevolutionBody(cylinder(), tt.axis, tt.segments, tt.capEnds); !errors.Is(err, tt.want) {
				t.Errorf("RevolutionBody() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRevolutionBodyTooFewPoints(t *testing.T) {
	for n := 0; n < 4; n++ {
		sm, err := RevolutionBody(cylinder()[:n], math.NewVec3Up(), 8, true)
		if err != nil {
			t.Fatalf("RevolutionBody(%d points) error = %v", n, err)
		}
		if sm.VertexCount() != 0 || sm.IndexCount() != 0 {
			t.Errorf("RevolutionBody(%d points) = %d vertices, %d indices, want empty", n, sm.VertexCount(), sm.IndexCount())
		}
	}
}

func TestRevolutionBodyCounts(t *testing.T) {
	tests := []struct {
		name     string
		segments int
		capEnds  bool
		vertices int
		indices  int
	}{
		{"open", 8, false, 9 * 5, 8 * 4 * 6},
		{"capped", 8, true, 9*5 + 2, 8*4*6 + 8*6},
		{"single segment", 1, false, 2 * 5, 4 * 6},
		{"three segments capped", 3, true, 4*5 + 2, 3*4*6 + 3*6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm, err := RevolutionBody(cylinder(), math.NewVec3Up(), tt.segments, tt.capEnds)
			if err != nil {
				t.Fatalf("RevolutionBody() error = %v", err)
			}
			if sm.Layout != models.LayoutPosition3NormalUV {
				t.Errorf("layout = %v", sm.Layout)
			}
			if sm.VertexCount() != tt.vertices {
				t.Errorf("VertexCount() = %d, want %d", sm.VertexCount(), tt.vertices)
			}
			if sm.IndexCount() != tt.indices {
				t.Errorf("IndexCount() = %d, want %d", sm.IndexCount(), tt.indices)
			}
			if err := sm.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}

func TestRevolutionBodyRings(t *testing.T) {
	const segments, n = 8, 5
	sm, err := RevolutionBody(cylinder(), math.NewVec3Up(), segments, false)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < n; i++ {
		if got := sm.Position(i); !got.Compare(math.NewVec3(1, float64(i), 0), tolerance) {
			t.Errorf("ring 0 vertex %d = %v", i, got)
		}
		// a quarter turn about +Y takes +X to -Z
		if got := sm.Position(2*n + i); !got.Compare(math.NewVec3(0, float64(i), -1), tolerance) {
			t.Errorf("ring 2 vertex %d = %v", i, got)
		}
		if sm.Position(segments*n+i) != sm.Position(i) {
			t.Errorf("seam vertex %d = %v, want %v", i, sm.Position(segments*n+i), sm.Position(i))
		}
	}

	uv := sm.UV(2*n + 3)
	if !uv.Compare(v2(0.25, 0.75), tolerance) {
		t.Errorf("UV(2, 3) = %v, want (0.25, 0.75)", uv)
	}
	if uv := sm.UV(segments * n); !uv.Compare(v2(1, 0), tolerance) {
		t.Errorf("seam UV = %v, want (1, 0)", uv)
	}
}

func TestRevolutionBodyNormals(t *testing.T) {
	sm, err := RevolutionBody(cylinder(), math.NewVec3Up(), 8, false)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < sm.VertexCount(); i++ {
		got := sm.Normal(i)
		if want := radial(sm.Position(i)); !got.Compare(want, tolerance) {
			t.Errorf("Normal(%d) = %v, want %v", i, got, want)
		}
	}

	// every side triangle winds counter-clockwise seen from outside
	for k := 0; k < sm.IndexCount(); k += 3 {
		a, b, c := sm.Indices[k], sm.Indices[k+1], sm.Indices[k+2]
		face, ok := FaceNormal(sm.Position(int(a)), sm.Position(int(b)), sm.Position(int(c)))
		if !ok {
			t.Fatalf("triangle %d is degenerate", k/3)
		}
		if face.Dot(sm.Normal(int(a))) <= 0 {
			t.Errorf("triangle %d faces inwards: %v", k/3, face)
		}
	}
}

func TestRevolutionBodyCaps(t *testing.T) {
	const segments, n = 8, 5
	descending := cylinder()
	for i, j := 0, len(descending)-1; i < j; i, j = i+1, j-1 {
		descending[i], descending[j] = descending[j], descending[i]
	}

	tests := []struct {
		name        string
		profile     []math.Vec2
		firstPole   math.Vec3
		firstNormal math.Vec3
		lastPole    math.Vec3
		lastNormal  math.Vec3
	}{
		{"ascending", cylinder(), math.NewVec3(0, 0, 0), math.NewVec3Down(), math.NewVec3(0, 4, 0), math.NewVec3Up()},
		{"descending", descending, math.NewVec3(0, 4, 0), math.NewVec3Up(), math.NewVec3(0, 0, 0), math.NewVec3Down()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm, err := RevolutionBody(tt.profile, math.NewVec3Up(), segments, true)
			if err != nil {
				t.Fatal(err)
			}
			first, last := (segments+1)*n, (segments+1)*n+1

			if got := sm.Position(first); !got.Compare(tt.firstPole, tolerance) {
				t.Errorf("first pole = %v, want %v", got, tt.firstPole)
			}
			if got := sm.Position(last); !got.Compare(tt.lastPole, tolerance) {
				t.Errorf("last pole = %v, want %v", got, tt.lastPole)
			}
			if got := sm.Normal(first); !got.Compare(tt.firstNormal, tolerance) {
				t.Errorf("first pole normal = %v, want %v", got, tt.firstNormal)
			}
			if got := sm.Normal(last); !got.Compare(tt.lastNormal, tolerance) {
				t.Errorf("last pole normal = %v, want %v", got, tt.lastNormal)
			}
			if uv := sm.UV(2*n + 3); !uv.Compare(v2(0.25, 4.0/6.0), tolerance) {
				t.Errorf("capped UV(2, 3) = %v", uv)
			}

			// the side points away from the axis
			for i := 0; i < first; i++ {
				if got, want := sm.Normal(i), radial(sm.Position(i)); !got.Compare(want, tolerance) {
					t.Errorf("side Normal(%d) = %v, want %v", i, got, want)
				}
			}

			// every face agrees with the normals of its vertices
			sideIndices := segments * (n - 1) * 6
			poles := map[uint32]int{}
			for k := 0; k < sm.IndexCount(); k += 3 {
				tri := sm.Indices[k : k+3]
				face, ok := FaceNormal(sm.Position(int(tri[0])), sm.Position(int(tri[1])), sm.Position(int(tri[2])))
				if !ok {
					t.Fatalf("triangle %v is degenerate", tri)
				}
				if k < sideIndices {
					if face.Dot(sm.Normal(int(tri[0]))) <= 0 {
						t.Errorf("side triangle %v faces inwards: %v", tri, face)
					}
					continue
				}
				poles[tri[0]]++
				if want := sm.Normal(int(tri[0])); !face.Compare(want, tolerance) {
					t.Errorf("cap triangle %v faces %v, want %v", tri, face, want)
				}
			}
			if poles[uint32(first)] != segments || poles[uint32(last)] != segments {
				t.Errorf("pole fans = %v, want %d triangles each", poles, segments)
			}
		})
	}
}

func TestRevolutionBodyProfileOnAxis(t *testing.T) {
	vase := []math.Vec2{v2(0, 0), v2(1, 0.2), v2(1, 2), v2(0.5, 3)}
	sm, err := RevolutionBody(vase, math.NewVec3Up(), 12, true)
	if err != nil {
		t.Fatal(err)
	}
	if err := sm.Validate(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < sm.VertexCount(); i++ {
		if got := sm.Normal(i); !isUnit(got) {
			t.Errorf("Normal(%d) = %v, want unit length", i, got)
		}
	}
	// the profile starts on the axis, where the body closes downwards
	for s := 0; s <= 12; s++ {
		if got := sm.Normal(s * len(vase)); !got.Compare(math.NewVec3Down(), tolerance) {
			t.Errorf("ring %d axis normal = %v, want (0, -1, 0)", s, got)
		}
	}
}

func TestRevolutionBodyTiltedAxis(t *testing.T) {
	axis := math.NewVec3(1, 1, 0)
	sm, err := RevolutionBody(cylinder(), axis, 6, false)
	if err != nil {
		t.Fatal(err)
	}
	unit := axis.Normalize()
	for i := 0; i < sm.VertexCount(); i++ {
		// rotation keeps the distance to the axis line
		p := sm.Position(i)
		original := cylinder()[i%5].ToVec3(0)
		gotDist := p.Sub(unit.MulScalar(p.Dot(unit))).Length()
		wantDist := original.Sub(unit.MulScalar(original.Dot(unit))).Length()
		if m.Abs(gotDist-wantDist) > tolerance {
			t.Errorf("vertex %d is %v from the axis, want %v", i, gotDist, wantDist)
		}
		if !isUnit(sm.Normal(i)) {
			t.Errorf("Normal(%d) = %v, want unit length", i, sm.Normal(i))
		}
	}
}

func TestGenerateNormalsMatchesSweep(t *testing.T) {
	const segments, n = 8, 5
	sm, err := RevolutionBody(cylinder(), math.NewVec3Up(), segments, false)
	if err != nil {
		t.Fatal(err)
	}
	generated := models.NewSimpleModel(sm.Layout, append([]float32(nil), sm.Vertices...), sm.Indices)
	GenerateNormals(generated)

	// the seam rings and profile ends only see faces on one side
	for s := 1; s < segments; s++ {
		for i := 1; i < n-1; i++ {
			k := s*n + i
			if got, want := generated.Normal(k), sm.Normal(k); !got.Compare(want, tolerance) {
				t.Errorf("generated Normal(%d, %d) = %v, want %v", s, i, got, want)
			}
		}
	}
}

func TestGenerateNormalsWithoutNormalAttribute(t *testing.T) {
	sm := models.RectangleModel()
	before := append([]float32(nil), sm.Vertices...)
	GenerateNormals(sm)
	for i := range before {
		if sm.Vertices[i] != before[i] {
			t.Fatalf("vertex data changed at %d", i)
		}
	}
}

func TestFaceNormal(t *testing.T) {
	n, ok := FaceNormal(math.NewVec3(0, 0, 0), math.NewVec3(1, 0, 0), math.NewVec3(0, 1, 0))
	if !ok || !n.Compare(math.NewVec3(0, 0, 1), tolerance) {
		t.Errorf("FaceNormal() = %v, %t", n, ok)
	}
	if _, ok := FaceNormal(math.NewVec3(0, 0, 0), math.NewVec3(1, 1, 1), math.NewVec3(2, 2, 2)); ok {
		t.Error("FaceNormal() of collinear points reported ok")
	}
}
