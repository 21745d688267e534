package math3d

import "math"

// SingularEpsilon is the determinant magnitude below which a Mat3 is treated
// as singular by Inverse.
const SingularEpsilon = 1e-12

// Mat3 is a 3x3 matrix stored in column-major order, like Mat4.
//
// | 0  3  6 |
// | 1  4  7 |
// | 2  5  8 |
type Mat3 [9]float64

// Mat3FromRows builds a matrix whose rows are r0, r1 and r2.
func Mat3FromRows(r0, r1, r2 Vec3) Mat3 {
	return Mat3{
		r0.X, r1.X, r2.X,
		r0.Y, r1.Y, r2.Y,
		r0.Z, r1.Z, r2.Z,
	}
}

// Get returns the element at (row, col).
func (m Mat3) Get(row, col int) float64 {
	return m[row+col*3]
}

// Row returns row i.
func (m Mat3) Row(i int) Vec3 {
	return Vec3{m[i], m[i+3], m[i+6]}
}

// Col returns column j.
func (m Mat3) Col(j int) Vec3 {
	return Vec3{m[j*3], m[j*3+1], m[j*3+2]}
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat3) Mul(b Mat3) Mat3 {
	var m Mat3
	for col := range 3 {
		for row := range 3 {
			var sum float64
			for k := range 3 {
				sum += a[row+k*3] * b[k+col*3]
			}
			m[row+col*3] = sum
		}
	}
	return m
}

// MulVec3 returns m * v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[3]*v.Y + m[6]*v.Z,
		m[1]*v.X + m[4]*v.Y + m[7]*v.Z,
		m[2]*v.X + m[5]*v.Y + m[8]*v.Z,
	}
}

// Determinant returns the determinant of the matrix.
func (m Mat3) Determinant() float64 {
	return m[0]*(m[4]*m[8]-m[7]*m[5]) -
		m[3]*(m[1]*m[8]-m[7]*m[2]) +
		m[6]*(m[1]*m[5]-m[4]*m[2])
}

// Inverse returns the inverse of m. ok is false when |det| is below
// SingularEpsilon or the result is not finite, in which case the returned
// matrix is the zero matrix.
func (m Mat3) Inverse() (inv Mat3, ok bool) {
	det := m.Determinant()
	if math.Abs(det) < SingularEpsilon || math.IsNaN(det) || math.IsInf(det, 0) {
		return Mat3{}, false
	}
	invDet := 1.0 / det

	// Adjugate (transposed cofactors), scaled by 1/det.
	inv[0] = (m[4]*m[8] - m[7]*m[5]) * invDet
	inv[1] = -(m[1]*m[8] - m[7]*m[2]) * invDet
	inv[2] = (m[1]*m[5] - m[4]*m[2]) * invDet
	inv[3] = -(m[3]*m[8] - m[6]*m[5]) * invDet
	inv[4] = (m[0]*m[8] - m[6]*m[2]) * invDet
	inv[5] = -(m[0]*m[5] - m[3]*m[2]) * invDet
	inv[6] = (m[3]*m[7] - m[6]*m[4]) * invDet
	inv[7] = -(m[0]*m[7] - m[6]*m[1]) * invDet
	inv[8] = (m[0]*m[4] - m[3]*m[1]) * invDet

	for _, v := range inv {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Mat3{}, false
		}
	}
	return inv, true
}
