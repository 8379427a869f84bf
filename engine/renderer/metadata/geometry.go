package metadata

import (
	"github.com/google/uuid"
	"github.com/spaghettifunk/lathe/engine/math"
	"github.com/spaghettifunk/lathe/engine/models"
)

/** @brief The geometry system configuration. */
type GeometrySystemConfig struct {
	/**
	 * @brief NOTE: The maximum number of geometries that can be registered
	 * at once.
	 */
	MaxGeometryCount uint32
}

type GeometryReference struct {
	ReferenceCount uint64
	Geometry       *Geometry
	/** @brief Drop the geometry once the last reference is released. */
	AutoRelease bool
}

/**
 * @brief Represents generated geometry in the world, ready to
 * be handed to whatever consumes vertex and index buffers.
 */
type Geometry struct {
	/** @brief The geometry identifier. Stable across re-registration. */
	ID uuid.UUID
	/** @brief The geometry generation. Incremented every time the geometry changes. */
	Generation uint64
	/** @brief The center of the geometry in local coordinates. */
	Center math.Vec3
	/** @brief The extents of the geometry in local coordinates. */
	Extents math.Extents3D
	/** @brief The geometry name. */
	Name string
	/** @brief The vertex and index data, with its layout. */
	Model *models.SimpleModel
}

func NewGeometry(name string, model *models.SimpleModel) *Geometry {
	g := &Geometry{
		ID:   uuid.New(),
		Name: name,
	}
	g.SetModel(model)
	return g
}

// SetModel swaps the buffers and recomputes the bounds. It does not touch
// the generation.
func (g *Geometry) SetModel(model *models.SimpleModel) {
	g.Model = model
	g.Extents = model.Extents()
	g.Center = g.Extents.Min.Add(g.Extents.Max).MulScalar(0.5)
}
