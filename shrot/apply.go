package shrot

import "github.com/GianlucaZoni/GaussianSplats3D/format"

// Apply rotates one splat's channel-major SH coefficients (3 channels of
// storedDegree.ComponentsPerChannel() coefficients each) and truncates to
// outDegree: output degree is min(outDegree, storedDegree) and output
// indices mirror the input's channel-major layout.
//
// mat is nil for the identity transform: coefficients are truncated to
// outDegree but otherwise passed through unchanged.
func Apply(mat *Matrix, storedDegree, outDegree format.SHDegree, coeffs []float32) []float32 {
	effDegree := outDegree
	if storedDegree < effDegree {
		effDegree = storedDegree
	}

	kStored := storedDegree.ComponentsPerChannel()
	kOut := effDegree.ComponentsPerChannel()
	out := make([]float32, 3*kOut)

	for ch := 0; ch < 3; ch++ {
		channel := coeffs[ch*kStored : ch*kStored+kStored]
		dst := out[ch*kOut : ch*kOut+kOut]

		if effDegree == format.SHDegree0 {
			continue
		}

		var d1 [3]float32
		copy(d1[:], channel[0:3])
		if mat != nil {
			d1 = mat.RotateDegree1(d1)
		}
		copy(dst[0:3], d1[:])

		if effDegree != format.SHDegree2 {
			continue
		}

		var d2 [5]float32
		copy(d2[:], channel[3:8])
		if mat != nil {
			d2 = mat.RotateDegree2(d2)
		}
		copy(dst[3:8], d2[:])
	}

	return out
}
