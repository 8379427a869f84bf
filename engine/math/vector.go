package math

import m "math"

// Vector 2
// ------------------------------------------

func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func NewVec2Zero() Vec2 {
	return Vec2{}
}

func NewVec2One() Vec2 {
	return Vec2{1.0, 1.0}
}

/**
 *  Adds other to v and returns a copy of the result.
 */
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

/**
 * Subtracts other from v and returns a copy of the result.
 */
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

func (v Vec2) Mul(other Vec2) Vec2 {
	return Vec2{v.X * other.X, v.Y * other.Y}
}

func (v Vec2) Div(other Vec2) Vec2 {
	return Vec2{v.X / other.X, v.Y / other.Y}
}

func (v Vec2) MulScalar(scalar float64) Vec2 {
	return Vec2{v.X * scalar, v.Y * scalar}
}

func (v Vec2) Dot(other Vec2) float64 {
	return v.X*other.X + v.Y*other.Y
}

func (v Vec2) Sum() float64 {
	return v.X + v.Y
}

func (v Vec2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vec2) Length() float64 {
	return m.Sqrt(v.LengthSquared())
}

/**
 * @brief Returns a unit copy of v. The zero vector yields NaN components.
 */
func (v Vec2) Normalize() Vec2 {
	length := v.Length()
	return Vec2{v.X / length, v.Y / length}
}

/**
 * @brief Returns a vector perpendicular to v, rotated 90 degrees counter-clockwise.
 */
func (v Vec2) Perpendicular() Vec2 {
	return Vec2{-v.Y, v.X}
}

/**
 * @brief Compares all elements of v and other and ensures the difference
 * is less than tolerance.
 */
func (v Vec2) Compare(other Vec2, tolerance float64) bool {
	if m.Abs(v.X-other.X) > tolerance {
		return false
	}
	if m.Abs(v.Y-other.Y) > tolerance {
		return false
	}
	return true
}

func (v Vec2) Distance(other Vec2) float64 {
	return v.Sub(other).Length()
}

func (v Vec2) ToVec3(z float64) Vec3 {
	return Vec3{v.X, v.Y, z}
}

// ------------------------------------------
// Vector 3
// ------------------------------------------

func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func NewVec3Zero() Vec3 {
	return Vec3{}
}

func NewVec3One() Vec3 {
	return Vec3{1.0, 1.0, 1.0}
}

func NewVec3Up() Vec3 {
	return Vec3{0.0, 1.0, 0.0}
}

func NewVec3Down() Vec3 {
	return Vec3{0.0, -1.0, 0.0}
}

func NewVec3Right() Vec3 {
	return Vec3{1.0, 0.0, 0.0}
}

func NewVec3Forward() Vec3 {
	return Vec3{0.0, 0.0, -1.0}
}

func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

func (v Vec3) Mul(other Vec3) Vec3 {
	return Vec3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

func (v Vec3) Div(other Vec3) Vec3 {
	return Vec3{v.X / other.X, v.Y / other.Y, v.Z / other.Z}
}

func (v Vec3) MulScalar(scalar float64) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

func (v Vec3) Sum() float64 {
	return v.X + v.Y + v.Z
}

func (v Vec3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v Vec3) Length() float64 {
	return m.Sqrt(v.LengthSquared())
}

/**
 * @brief Returns a unit copy of v. The zero vector yields NaN components;
 * callers that need a defined result must check the length first.
 */
func (v Vec3) Normalize() Vec3 {
	length := v.Length()
	return Vec3{v.X / length, v.Y / length, v.Z / length}
}

func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

/**
 * @brief Calculates and returns the cross product of v and other.
 * The cross product is a new vector which is orthogonal to both vectors.
 */
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

func (v Vec3) Compare(other Vec3, tolerance float64) bool {
	if m.Abs(v.X-other.X) > tolerance {
		return false
	}
	if m.Abs(v.Y-other.Y) > tolerance {
		return false
	}
	if m.Abs(v.Z-other.Z) > tolerance {
		return false
	}
	return true
}

func (v Vec3) Distance(other Vec3) float64 {
	return v.Sub(other).Length()
}

func (v Vec3) ToVec4(w float64) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}

// ------------------------------------------
// Vector 4
// ------------------------------------------

func NewVec4(x, y, z, w float64) Vec4 {
	return Vec4{X: x, Y: y, Z: z, W: w}
}

func NewVec4Zero() Vec4 {
	return Vec4{}
}

func NewVec4One() Vec4 {
	return Vec4{1.0, 1.0, 1.0, 1.0}
}

func (v Vec4) ToVec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

func (v Vec4) Add(other Vec4) Vec4 {
	return Vec4{v.X + other.X, v.Y + other.Y, v.Z + other.Z, v.W + other.W}
}

func (v Vec4) Sub(other Vec4) Vec4 {
	return Vec4{v.X - other.X, v.Y - other.Y, v.Z - other.Z, v.W - other.W}
}

func (v Vec4) Mul(other Vec4) Vec4 {
	return Vec4{v.X * other.X, v.Y * other.Y, v.Z * other.Z, v.W * other.W}
}

func (v Vec4) Div(other Vec4) Vec4 {
	return Vec4{v.X / other.X, v.Y / other.Y, v.Z / other.Z, v.W / other.W}
}

func (v Vec4) MulScalar(scalar float64) Vec4 {
	return Vec4{v.X * scalar, v.Y * scalar, v.Z * scalar, v.W * scalar}
}

func (v Vec4) Dot(other Vec4) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z + v.W*other.W
}

func (v Vec4) Sum() float64 {
	return v.X + v.Y + v.Z + v.W
}

func (v Vec4) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z + v.W*v.W
}

func (v Vec4) Length() float64 {
	return m.Sqrt(v.LengthSquared())
}

func (v Vec4) Normalize() Vec4 {
	length := v.Length()
	return Vec4{v.X / length, v.Y / length, v.Z / length, v.W / length}
}

func (v Vec4) Compare(other Vec4, tolerance float64) bool {
	if m.Abs(v.X-other.X) > tolerance {
		return false
	}
	if m.Abs(v.Y-other.Y) > tolerance {
		return false
	}
	if m.Abs(v.Z-other.Z) > tolerance {
		return false
	}
	if m.Abs(v.W-other.W) > tolerance {
		return false
	}
	return true
}

func (v Vec4) Distance(other Vec4) float64 {
	return v.Sub(other).Length()
}
