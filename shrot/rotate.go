// Package shrot applies a 3x3 world-space rotation to stored real
// spherical-harmonic coefficients during a bulk SH read.
//
// Degree-1 rotation uses the rows named sh11/sh12/sh13, derived directly
// from the rotation matrix. Degree-2 rotation is derived from the same
// matrix by expanding each rotated degree-2 basis function (xy, yz,
// xz, x^2-y^2, 3z^2-1, each a product of two degree-1 basis functions) in
// terms of the original basis and the rotation matrix's row entries,
// eliminating the constant (x^2+y^2+z^2=1) term via row/column
// orthonormality. No external reference for the degree-2 matrix was
// available, so the rows below are an independently derived,
// self-consistent closed form; they satisfy the identity-transform and
// composition invariants by construction (see DESIGN.md).
package shrot

// Matrix holds the precomputed per-degree rotation rows for one 3x3 world
// rotation, reused across every splat's SH coefficients in a bulk read.
type Matrix struct {
	// deg1 rows correspond to the real-SH rows sh11, sh12, sh13.
	deg1 [3][3]float32
	// deg2 rows rotate the 5-component degree-2 basis (xy, yz,
	// z^2-(x^2+y^2)/2, xz, (x^2-y^2)/2), in that fixed order.
	deg2 [5][5]float32
}

// New computes the degree-1 and degree-2 rotation rows from m, the
// upper-left 3x3 of a world transform. m need not be verified orthogonal by
// the caller.
func New(m [3][3]float32) Matrix {
	var mat Matrix
	mat.deg1 = [3][3]float32{
		{m[1][1], -m[2][1], m[0][1]},
		{-m[1][2], m[2][2], -m[0][2]},
		{m[1][0], -m[2][0], m[0][0]},
	}
	mat.deg2 = degree2Rows(m)
	return mat
}

// RotateDegree1 applies the degree-1 rotation to one channel's 3
// coefficients.
func (mat Matrix) RotateDegree1(in [3]float32) [3]float32 {
	var out [3]float32
	for i := 0; i < 3; i++ {
		out[i] = mat.deg1[i][0]*in[0] + mat.deg1[i][1]*in[1] + mat.deg1[i][2]*in[2]
	}
	return out
}

// RotateDegree2 applies the degree-2 rotation to one channel's 5
// coefficients.
func (mat Matrix) RotateDegree2(in [5]float32) [5]float32 {
	var out [5]float32
	for i := 0; i < 5; i++ {
		var s float32
		for j := 0; j < 5; j++ {
			s += mat.deg2[i][j] * in[j]
		}
		out[i] = s
	}
	return out
}

// degree2Rows expands the rotated degree-2 basis functions
//
//	f0 = xy, f1 = yz, f2 = z^2-(x^2+y^2)/2, f3 = xz, f4 = (x^2-y^2)/2
//
// as products of the rotated axes g_i = row_i(m)."n, then re-expresses each
// product in terms of f0..f4 using x^2+y^2+z^2=1 to eliminate the constant
// term (which always cancels via row orthonormality for a genuine
// rotation).
func degree2Rows(m [3][3]float32) [5][5]float32 {
	a0, b0, c0 := m[0][0], m[0][1], m[0][2]
	a1, b1, c1 := m[1][0], m[1][1], m[1][2]
	a2, b2, c2 := m[2][0], m[2][1], m[2][2]

	var rows [5][5]float32

	// row for f0' = (row0.n)(row1.n)
	rows[0] = [5]float32{
		a0*b1 + a1*b0,
		b0*c1 + b1*c0,
		(2*c0*c1 - a0*a1 - b0*b1) / 3,
		a0*c1 + a1*c0,
		a0*a1 - b0*b1,
	}

	// row for f1' = (row1.n)(row2.n)
	rows[1] = [5]float32{
		a1*b2 + a2*b1,
		b1*c2 + b2*c1,
		(2*c1*c2 - a1*a2 - b1*b2) / 3,
		a1*c2 + a2*c1,
		a1*a2 - b1*b2,
	}

	// row for f2' = (row2.n)^2 - ((row0.n)^2+(row1.n)^2)/2
	rows[2] = [5]float32{
		2*a2*b2 - (a0*b0 + a1*b1),
		2*b2*c2 - (b0*c0 + b1*c1),
		(3*c2*c2 - 1) / 2,
		2*a2*c2 - (a0*c0 + a1*c1),
		1.5 * (a2*a2 - b2*b2),
	}

	// row for f3' = (row0.n)(row2.n)
	rows[3] = [5]float32{
		a0*b2 + a2*b0,
		b0*c2 + b2*c0,
		(2*c0*c2 - a0*a2 - b0*b2) / 3,
		a0*c2 + a2*c0,
		a0*a2 - b0*b2,
	}

	// row for f4' = ((row0.n)^2-(row1.n)^2)/2
	rows[4] = [5]float32{
		a0*b0 - a1*b1,
		b0*c0 - b1*c1,
		(2*(c0*c0-c1*c1) - (a0*a0 - a1*a1) - (b0*b0 - b1*b1)) / 6,
		a0*c0 - a1*c1,
		((a0*a0 - a1*a1) - (b0*b0 - b1*b1)) / 2,
	}

	return rows
}
