package export

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/spaghettifunk/lathe/engine/core"
	"github.com/spaghettifunk/lathe/engine/geometry"
	"github.com/spaghettifunk/lathe/engine/math"
	"github.com/spaghettifunk/lathe/engine/models"
)

// Triangles converts the indexed triangles of model to sdfx triangles,
// dropping the ones without area (fan triangles at a pole that lies on
// the profile, for instance).
func Triangles(model *models.SimpleModel) []*sdf.Triangle3 {
	mesh := make([]*sdf.Triangle3, 0, model.TriangleCount())
	model.Triangles(func(a, b, c math.Vec3) {
		if _, ok := geometry.FaceNormal(a, b, c); !ok {
			return
		}
		mesh = append(mesh, &sdf.Triangle3{toV3(a), toV3(b), toV3(c)})
	})
	return mesh
}

func toV3(v math.Vec3) v3.Vec {
	return v3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

// WriteSTL saves model as a binary STL file and returns the number of
// facets written.
func WriteSTL(path string, model *models.SimpleModel) (int, error) {
	if err := model.Validate(); err != nil {
		return 0, fmt.Errorf("export %s: %w", path, err)
	}
	mesh := Triangles(model)
	if err := render.SaveSTL(path, mesh); err != nil {
		return 0, fmt.Errorf("export %s: %w", path, err)
	}
	core.LogInfo("wrote %s (%d facets)", path, len(mesh))
	return len(mesh), nil
}
