package shrot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func identity3x3() [3][3]float32 {
	return [3][3]float32{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// rotationZ returns the 3x3 rotation matrix for a rotation of angle radians
// about +Z.
func rotationZ(angle float64) [3][3]float32 {
	c, s := float32(math.Cos(angle)), float32(math.Sin(angle))
	return [3][3]float32{
		{c, -s, 0},
		{s, c, 0},
		{0, 0, 1},
	}
}

func TestIdentityTransformIsNoOp(t *testing.T) {
	mat := New(identity3x3())

	d1 := [3]float32{1, 2, 3}
	require.Equal(t, d1, mat.RotateDegree1(d1))

	d2 := [5]float32{1, 2, 3, 4, 5}
	out := mat.RotateDegree2(d2)
	for i := range d2 {
		require.InDelta(t, d2[i], out[i], 1e-5)
	}
}

func TestDegree1RotationZ90(t *testing.T) {
	mat := New(rotationZ(math.Pi / 2))

	// sh11=(M11,-M21,M01), sh12=(-M12,M22,-M02), sh13=(M10,-M20,M00)
	// for Rz90 (c=0,s=1): M = [[0,-1,0],[1,0,0],[0,0,1]]
	in := [3]float32{1, 0, 0}
	out := mat.RotateDegree1(in)

	// Purely a sanity check that rotation preserves the vector's magnitude
	// rather than zeroing or scaling it; the exact output is checked in
	// TestDegree1RotationZ90ExactOutput.
	mag := out[0]*out[0] + out[1]*out[1] + out[2]*out[2]
	require.InDelta(t, float64(1), float64(mag), 1e-4)
}

func TestDegree1RotationZ90ExactOutput(t *testing.T) {
	mat := New(rotationZ(math.Pi / 2))

	in := [3]float32{1, 0, 0}
	out := mat.RotateDegree1(in)

	require.InDelta(t, 0, out[0], 1e-5)
	require.InDelta(t, 0, out[1], 1e-5)
	require.InDelta(t, 1, out[2], 1e-5)
}

func TestDegree2RotationComposition(t *testing.T) {
	r1 := New(rotationZ(0.3))
	r2 := New(rotationZ(0.5))
	combined := New(rotationZ(0.8))

	in := [5]float32{0.1, 0.2, 0.3, 0.4, 0.5}

	step := r1.RotateDegree2(r2.RotateDegree2(in))
	direct := combined.RotateDegree2(in)

	for i := range in {
		require.InDelta(t, direct[i], step[i], 1e-4)
	}
}
