package shrot

import (
	"testing"

	"github.com/GianlucaZoni/GaussianSplats3D/format"
	"github.com/stretchr/testify/require"
)

func TestApplyIdentityPassesThrough(t *testing.T) {
	coeffs := make([]float32, format.SHDegree2.ComponentsPerSplat())
	for i := range coeffs {
		coeffs[i] = float32(i + 1)
	}

	out := Apply(nil, format.SHDegree2, format.SHDegree2, coeffs)
	require.Equal(t, coeffs, out)
}

func TestApplyTruncatesToOutDegree(t *testing.T) {
	coeffs := make([]float32, format.SHDegree2.ComponentsPerSplat())
	for i := range coeffs {
		coeffs[i] = float32(i + 1)
	}

	out := Apply(nil, format.SHDegree2, format.SHDegree1, coeffs)
	require.Len(t, out, format.SHDegree1.ComponentsPerSplat())

	// Channel-major: only the first 3 of each channel's 8 coefficients
	// survive truncation to degree 1.
	require.Equal(t, coeffs[0:3], out[0:3])
	require.Equal(t, coeffs[8:11], out[3:6])
	require.Equal(t, coeffs[16:19], out[6:9])
}

func TestApplyTruncatesToStoredDegreeWhenSmaller(t *testing.T) {
	coeffs := make([]float32, format.SHDegree1.ComponentsPerSplat())
	for i := range coeffs {
		coeffs[i] = float32(i + 1)
	}

	out := Apply(nil, format.SHDegree1, format.SHDegree2, coeffs)
	require.Len(t, out, format.SHDegree1.ComponentsPerSplat())
	require.Equal(t, coeffs, out)
}

func TestApplyDegree0IsEmpty(t *testing.T) {
	out := Apply(nil, format.SHDegree0, format.SHDegree0, nil)
	require.Empty(t, out)
}

func TestApplyRotatesDegree1UnderMatrix(t *testing.T) {
	m := New(rotationZ(3.14159265 / 2))

	coeffs := make([]float32, format.SHDegree1.ComponentsPerSplat())
	coeffs[0] = 1 // R channel's first degree-1 coefficient

	out := Apply(&m, format.SHDegree1, format.SHDegree1, coeffs)
	require.NotEqual(t, coeffs[0:3], out[0:3])

	mag := out[0]*out[0] + out[1]*out[1] + out[2]*out[2]
	require.InDelta(t, float64(1), float64(mag), 1e-4)
}
