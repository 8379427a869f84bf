package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float64
}

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float64
}

// Vec4 represents a 4D vector
type Vec4 struct {
	X, Y, Z, W float64
}

/** @brief a 2x2 matrix stored row-major. */
type Mat2 struct {
	Data [4]float64
}

/** @brief a 3x3 matrix stored row-major, typically a normal matrix. */
type Mat3 struct {
	Data [9]float64
}

/**
 * @brief a 4x4 matrix stored row-major, typically used to represent object transformations.
 * Vectors are columns, so a vertex goes through P · V · M · v and the translation
 * lives in elements 3, 7 and 11.
 */
type Mat4 struct {
	/** @brief The matrix elements */
	Data [16]float64
}

/**
 * @brief The six planes of a viewing volume. Parallel cameras map it to clip space
 * directly, perspective cameras use it as the frustum at the near plane.
 */
type BoundingBox struct {
	Near, Far   float64
	Left, Right float64
	Bottom, Top float64
}

/**
 * @brief Represents the extents of a 2d object.
 */
type Extents2D struct {
	/** @brief The minimum extents of the object. */
	Min Vec2
	/** @brief The maximum extents of the object. */
	Max Vec2
}

/**
 * @brief Represents the extents of a 3d object.
 */
type Extents3D struct {
	/** @brief The minimum extents of the object. */
	Min Vec3
	/** @brief The maximum extents of the object. */
	Max Vec3
}

/**
 * @brief Represents the transform of an object in the world.
 * Rotation holds Euler angles in degrees applied X, then Y, then Z.
 * Cameras and widgets share one *Transform and mutate it in place.
 */
type Transform struct {
	Position Vec3
	Rotation Vec3
	Scale    Vec3
}
