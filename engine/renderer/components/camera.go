package components

import (
	"github.com/spaghettifunk/lathe/engine/math"
)

/**
 * @brief Represents a camera that can be used for
 * a variety of things, especially rendering. Ideally,
 * these are created and managed by the camera system.
 *
 * Cameras are matrix factories: nothing is cached and every call
 * recomputes from the current transform and lens parameters.
 */
type Camera interface {
	/** @brief The transform shared with whoever moves the camera. */
	Transform() *math.Transform
	/** @brief The world to eye matrix, the transform itself. */
	View() math.Mat4
	/** @brief The eye to clip matrix. */
	Projection() math.Mat4
}

/** @brief The name of the default parallel camera. */
const DEFAULT_PARALLEL_CAMERA_NAME string = "parallel"

/** @brief The name of the default perspective camera. */
const DEFAULT_PERSPECTIVE_CAMERA_NAME string = "perspective"

// ParallelProjectionCamera maps Box onto the clip cube without
// perspective division.
type ParallelProjectionCamera struct {
	transform *math.Transform
	Box       math.BoundingBox
}

func NewParallelProjectionCamera(transform *math.Transform, box math.BoundingBox) *ParallelProjectionCamera {
	return &ParallelProjectionCamera{transform: transform, Box: box}
}

func (c *ParallelProjectionCamera) Transform() *math.Transform {
	return c.transform
}

func (c *ParallelProjectionCamera) View() math.Mat4 {
	return c.transform.AsMatrix()
}

func (c *ParallelProjectionCamera) Projection() math.Mat4 {
	return math.NewMat4Parallel(c.Box)
}

// PerspectiveProjectionCamera is described by its lens: the vertical view
// angle, the width/height aspect ratio and the clip distances.
type PerspectiveProjectionCamera struct {
	transform   *math.Transform
	ViewAngle   math.Angle
	AspectRatio float64
	Near        float64
	Far         float64
}

func NewPerspectiveProjectionCamera(transform *math.Transform, viewAngle math.Angle, aspectRatio, near, far float64) *PerspectiveProjectionCamera {
	return &PerspectiveProjectionCamera{
		transform:   transform,
		ViewAngle:   viewAngle,
		AspectRatio: aspectRatio,
		Near:        near,
		Far:         far,
	}
}

func (c *PerspectiveProjectionCamera) Transform() *math.Transform {
	return c.transform
}

func (c *PerspectiveProjectionCamera) View() math.Mat4 {
	return c.transform.AsMatrix()
}

// Frustum returns the near-plane box the lens parameters describe.
func (c *PerspectiveProjectionCamera) Frustum() math.BoundingBox {
	return math.NewFrustumBox(c.ViewAngle, c.AspectRatio, c.Near, c.Far)
}

func (c *PerspectiveProjectionCamera) Projection() math.Mat4 {
	return math.NewMat4Perspective(c.Frustum())
}
