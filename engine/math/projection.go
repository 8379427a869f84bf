package math

import m "math"

/**
 * @brief Returns a matrix that moves points by position.
 */
func NewMat4Translation(position Vec3) Mat4 {
	out := NewMat4Identity()
	out.Data[3] = position.X
	out.Data[7] = position.Y
	out.Data[11] = position.Z
	return out
}

/**
 * @brief Returns a scale matrix using the provided scale.
 */
func NewMat4Scale(scale Vec3) Mat4 {
	out := NewMat4Identity()
	out.Data[0] = scale.X
	out.Data[5] = scale.Y
	out.Data[10] = scale.Z
	return out
}

/**
 * @brief Returns a right-handed rotation of angle about axis. The axis is
 * normalized first; a zero axis produces NaN elements.
 */
func NewMat4Rotation(axis Vec3, angle Angle) Mat4 {
	a := axis.Normalize()
	x, y, z := a.X, a.Y, a.Z
	s, c := m.Sincos(angle.Radians())
	mc := 1 - c
	return Mat4{Data: [16]float64{
		x*x*mc + c, x*y*mc - z*s, x*z*mc + y*s, 0,
		y*x*mc + z*s, y*y*mc + c, y*z*mc - x*s, 0,
		x*z*mc - y*s, y*z*mc + x*s, z*z*mc + c, 0,
		0, 0, 0, 1,
	}}
}

func NewMat4RotationX(angle Angle) Mat4 {
	return NewMat4Rotation(Vec3{1, 0, 0}, angle)
}

func NewMat4RotationY(angle Angle) Mat4 {
	return NewMat4Rotation(Vec3{0, 1, 0}, angle)
}

func NewMat4RotationZ(angle Angle) Mat4 {
	return NewMat4Rotation(Vec3{0, 0, 1}, angle)
}

/**
 * @brief Creates an orthographic projection that maps box onto the [-1, 1]
 * cube. Z is negated so a right-handed eye space looks down -Z.
 */
func NewMat4Parallel(box BoundingBox) Mat4 {
	l, r := box.Left, box.Right
	b, t := box.Bottom, box.Top
	n, f := box.Near, box.Far
	return Mat4{Data: [16]float64{
		2 / (r - l), 0, 0, -(r + l) / (r - l),
		0, 2 / (t - b), 0, -(t + b) / (t - b),
		0, 0, -2 / (f - n), -(f + n) / (f - n),
		0, 0, 0, 1,
	}}
}

/**
 * @brief Creates a frustum projection whose near plane is box. The resulting
 * w equals -z of the eye-space point.
 */
func NewMat4Perspective(box BoundingBox) Mat4 {
	l, r := box.Left, box.Right
	b, t := box.Bottom, box.Top
	n, f := box.Near, box.Far
	return Mat4{Data: [16]float64{
		2 * n / (r - l), 0, (r + l) / (r - l), 0,
		0, 2 * n / (t - b), (t + b) / (t - b), 0,
		0, 0, -(f + n) / (f - n), -2 * f * n / (f - n),
		0, 0, -1, 0,
	}}
}

// NewFrustumBox turns lens parameters into the symmetric near-plane box used
// by NewMat4Perspective.
func NewFrustumBox(viewAngle Angle, aspectRatio, near, far float64) BoundingBox {
	top := near * m.Tan(viewAngle.Radians()/2)
	right := top * aspectRatio
	return BoundingBox{
		Near:   near,
		Far:    far,
		Left:   -right,
		Right:  right,
		Bottom: -top,
		Top:    top,
	}
}

// RotatePoint rotates p about an axis through the origin.
func RotatePoint(p Vec3, axis Vec3, angle Angle) Vec3 {
	return NewMat4Rotation(axis, angle).Mul(NewMat4Translation(p)).ToPosition()
}
