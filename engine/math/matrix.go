package math

import (
	"fmt"
	m "math"

	"github.com/spaghettifunk/lathe/engine/core"
	"golang.org/x/exp/slices"
)

// InverseEpsilon is the smallest absolute determinant an invertible matrix may have.
const InverseEpsilon = 1e-6

// cofactor expands the determinant of the minor that remains after removing
// ignoreRows and ignoreCols, always along the first remaining row. The order of
// operations is kept fixed so results round the same way for every size.
func cofactor(values []float64, dim int, ignoreRows, ignoreCols []int) float64 {
	for row := 0; row < dim; row++ {
		if slices.Contains(ignoreRows, row) {
			continue
		}

		result := 0.0
		colNum := 0
		for col := 0; col < dim; col++ {
			if slices.Contains(ignoreCols, col) {
				continue
			}

			cellValue := values[row*dim+col]
			if len(ignoreRows) == dim-1 {
				return cellValue
			}

			multiplier := 1.0
			if colNum%2 != 0 {
				multiplier = -1.0
			}
			adj := cofactor(values, dim, append(slices.Clone(ignoreRows), row), append(slices.Clone(ignoreCols), col))
			result += multiplier * cellValue * adj

			colNum++
		}
		return result
	}
	return 0
}

func determinant(values []float64, dim int) float64 {
	return cofactor(values, dim, nil, nil)
}

// inverse writes the adjugate divided by the determinant into out.
func inverse(values []float64, dim int, out []float64) error {
	det := determinant(values, dim)
	if m.Abs(det) < InverseEpsilon {
		return fmt.Errorf("inverse of %dx%d matrix (determinant %g): %w", dim, dim, det, core.ErrSingularMatrix)
	}
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			multiplier := 1.0
			if (i+j)%2 != 0 {
				multiplier = -1.0
			}
			elem := cofactor(values, dim, []int{j}, []int{i})
			out[i*dim+j] = multiplier * elem / det
		}
	}
	return nil
}

func multiply(a, b []float64, dim int, out []float64) {
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			sum := 0.0
			for k := 0; k < dim; k++ {
				sum += a[i*dim+k] * b[k*dim+j]
			}
			out[i*dim+j] = sum
		}
	}
}

func transpose(values []float64, dim int, out []float64) {
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			out[j*dim+i] = values[i*dim+j]
		}
	}
}

func compare(a, b []float64, tolerance float64) bool {
	for i := range a {
		if m.Abs(a[i]-b[i]) > tolerance {
			return false
		}
	}
	return true
}

func checkElementCount(values []float64, dim int) error {
	if len(values) != dim*dim {
		return fmt.Errorf("%dx%d matrix needs %d elements, got %d: %w", dim, dim, dim*dim, len(values), core.ErrInvalidElementCount)
	}
	return nil
}

// ------------------------------------------
// Matrix 2
// ------------------------------------------

// NewMat2 builds a matrix from exactly 4 row-major values.
func NewMat2(values ...float64) (Mat2, error) {
	var mt Mat2
	if err := checkElementCount(values, 2); err != nil {
		return mt, err
	}
	copy(mt.Data[:], values)
	return mt, nil
}

func NewMat2Identity() Mat2 {
	return Mat2{Data: [4]float64{1, 0, 0, 1}}
}

func (mt Mat2) Clone() Mat2 {
	return mt
}

func (mt Mat2) At(row, col int) float64 {
	return mt.Data[row*2+col]
}

func (mt *Mat2) Set(row, col int, value float64) {
	mt.Data[row*2+col] = value
}

func (mt Mat2) Add(other Mat2) Mat2 {
	for i := range mt.Data {
		mt.Data[i] += other.Data[i]
	}
	return mt
}

func (mt Mat2) Sub(other Mat2) Mat2 {
	for i := range mt.Data {
		mt.Data[i] -= other.Data[i]
	}
	return mt
}

func (mt Mat2) Mul(other Mat2) Mat2 {
	var out Mat2
	multiply(mt.Data[:], other.Data[:], 2, out.Data[:])
	return out
}

func (mt Mat2) Transpose() Mat2 {
	var out Mat2
	transpose(mt.Data[:], 2, out.Data[:])
	return out
}

func (mt Mat2) Determinant() float64 {
	return determinant(mt.Data[:], 2)
}

func (mt Mat2) Inverse() (Mat2, error) {
	var out Mat2
	err := inverse(mt.Data[:], 2, out.Data[:])
	return out, err
}

func (mt Mat2) Compare(other Mat2, tolerance float64) bool {
	return compare(mt.Data[:], other.Data[:], tolerance)
}

// ------------------------------------------
// Matrix 3
// ------------------------------------------

// NewMat3 builds a matrix from exactly 9 row-major values.
func NewMat3(values ...float64) (Mat3, error) {
	var mt Mat3
	if err := checkElementCount(values, 3); err != nil {
		return mt, err
	}
	copy(mt.Data[:], values)
	return mt, nil
}

func NewMat3Identity() Mat3 {
	return Mat3{Data: [9]float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}}
}

func (mt Mat3) Clone() Mat3 {
	return mt
}

func (mt Mat3) At(row, col int) float64 {
	return mt.Data[row*3+col]
}

func (mt *Mat3) Set(row, col int, value float64) {
	mt.Data[row*3+col] = value
}

func (mt Mat3) Add(other Mat3) Mat3 {
	for i := range mt.Data {
		mt.Data[i] += other.Data[i]
	}
	return mt
}

func (mt Mat3) Sub(other Mat3) Mat3 {
	for i := range mt.Data {
		mt.Data[i] -= other.Data[i]
	}
	return mt
}

func (mt Mat3) Mul(other Mat3) Mat3 {
	var out Mat3
	multiply(mt.Data[:], other.Data[:], 3, out.Data[:])
	return out
}

func (mt Mat3) MulVec3(v Vec3) Vec3 {
	d := mt.Data
	return Vec3{
		X: d[0]*v.X + d[1]*v.Y + d[2]*v.Z,
		Y: d[3]*v.X + d[4]*v.Y + d[5]*v.Z,
		Z: d[6]*v.X + d[7]*v.Y + d[8]*v.Z,
	}
}

func (mt Mat3) Transpose() Mat3 {
	var out Mat3
	transpose(mt.Data[:], 3, out.Data[:])
	return out
}

func (mt Mat3) Determinant() float64 {
	return determinant(mt.Data[:], 3)
}

func (mt Mat3) Inverse() (Mat3, error) {
	var out Mat3
	err := inverse(mt.Data[:], 3, out.Data[:])
	return out, err
}

func (mt Mat3) Compare(other Mat3, tolerance float64) bool {
	return compare(mt.Data[:], other.Data[:], tolerance)
}

// ------------------------------------------
// Matrix 4
// ------------------------------------------

// NewMat4 builds a matrix from exactly 16 row-major values.
func NewMat4(values ...float64) (Mat4, error) {
	var mt Mat4
	if err := checkElementCount(values, 4); err != nil {
		return mt, err
	}
	copy(mt.Data[:], values)
	return mt, nil
}

/**
 * @brief Creates and returns an identity matrix:
 *
 * {
 *   {1, 0, 0, 0},
 *   {0, 1, 0, 0},
 *   {0, 0, 1, 0},
 *   {0, 0, 0, 1}
 * }
 */
func NewMat4Identity() Mat4 {
	return Mat4{Data: [16]float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}
}

func (mt Mat4) Clone() Mat4 {
	return mt
}

func (mt Mat4) At(row, col int) float64 {
	return mt.Data[row*4+col]
}

func (mt *Mat4) Set(row, col int, value float64) {
	mt.Data[row*4+col] = value
}

func (mt Mat4) Add(other Mat4) Mat4 {
	for i := range mt.Data {
		mt.Data[i] += other.Data[i]
	}
	return mt
}

func (mt Mat4) Sub(other Mat4) Mat4 {
	for i := range mt.Data {
		mt.Data[i] -= other.Data[i]
	}
	return mt
}

/**
 * @brief Returns the result of multiplying mt and other, mt on the left.
 */
func (mt Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	multiply(mt.Data[:], other.Data[:], 4, out.Data[:])
	return out
}

func (mt Mat4) MulVec4(v Vec4) Vec4 {
	d := mt.Data
	return Vec4{
		X: d[0]*v.X + d[1]*v.Y + d[2]*v.Z + d[3]*v.W,
		Y: d[4]*v.X + d[5]*v.Y + d[6]*v.Z + d[7]*v.W,
		Z: d[8]*v.X + d[9]*v.Y + d[10]*v.Z + d[11]*v.W,
		W: d[12]*v.X + d[13]*v.Y + d[14]*v.Z + d[15]*v.W,
	}
}

// TransformPoint applies mt to p with w = 1 and drops the resulting w.
func (mt Mat4) TransformPoint(p Vec3) Vec3 {
	return mt.MulVec4(p.ToVec4(1)).ToVec3()
}

// TransformDirection applies the linear part of mt to d.
func (mt Mat4) TransformDirection(d Vec3) Vec3 {
	return mt.MulVec4(d.ToVec4(0)).ToVec3()
}

func (mt Mat4) Transpose() Mat4 {
	var out Mat4
	transpose(mt.Data[:], 4, out.Data[:])
	return out
}

func (mt Mat4) Determinant() float64 {
	return determinant(mt.Data[:], 4)
}

func (mt Mat4) Inverse() (Mat4, error) {
	var out Mat4
	err := inverse(mt.Data[:], 4, out.Data[:])
	return out, err
}

func (mt Mat4) Compare(other Mat4, tolerance float64) bool {
	return compare(mt.Data[:], other.Data[:], tolerance)
}

// ToPosition returns the translation column.
func (mt Mat4) ToPosition() Vec3 {
	return Vec3{mt.Data[3], mt.Data[7], mt.Data[11]}
}

// ToMat3 drops the last row and column.
func (mt Mat4) ToMat3() Mat3 {
	d := mt.Data
	return Mat3{Data: [9]float64{
		d[0], d[1], d[2],
		d[4], d[5], d[6],
		d[8], d[9], d[10],
	}}
}

// NormalMatrix is the inverse transpose of the upper 3x3 block, used to
// carry normals through a model-view matrix that scales non-uniformly.
func (mt Mat4) NormalMatrix() (Mat3, error) {
	inv, err := mt.ToMat3().Inverse()
	if err != nil {
		return Mat3{}, fmt.Errorf("normal matrix: %w", err)
	}
	return inv.Transpose(), nil
}
