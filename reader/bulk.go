package reader

import (
	"fmt"
	"math"

	"github.com/GianlucaZoni/GaussianSplats3D/endian"
	"github.com/GianlucaZoni/GaussianSplats3D/errs"
	"github.com/GianlucaZoni/GaussianSplats3D/format"
	"github.com/GianlucaZoni/GaussianSplats3D/internal/fingerprint"
	"github.com/GianlucaZoni/GaussianSplats3D/numeric"
	"github.com/GianlucaZoni/GaussianSplats3D/shrot"
	"gonum.org/v1/gonum/mat"
)

// FillCenters writes the world-space centers of splats [srcFrom, srcTo]
// (inclusive, global indices) into out starting at destFrom*3, applying
// transform if non-nil.
func (r *Reader) FillCenters(out []float32, transform *Transform, srcFrom, srcTo, destFrom int) {
	for g := srcFrom; g <= srcTo; g++ {
		c := r.Center(g)
		if transform != nil {
			c = transform.apply(c)
		}
		idx := (destFrom + (g - srcFrom)) * 3
		out[idx], out[idx+1], out[idx+2] = c.X, c.Y, c.Z
	}
}

// FillColors writes the RGBA colors of splats [srcFrom, srcTo] into out
// starting at destFrom*4; any alpha below minimumAlpha is rewritten to 0 in
// the output only (stored bytes are untouched).
func (r *Reader) FillColors(out []uint8, minimumAlpha uint8, srcFrom, srcTo, destFrom int) {
	for g := srcFrom; g <= srcTo; g++ {
		c := r.Color(g)
		if c[3] < minimumAlpha {
			c[3] = 0
		}
		idx := (destFrom + (g - srcFrom)) * 4
		out[idx], out[idx+1], out[idx+2], out[idx+3] = c[0], c[1], c[2], c[3]
	}
}

// covarianceElements computes the upper-triangular 6 elements of
// Sigma = (R*S)^T * (R*S), in the order (0,0),(1,0),(2,0),(1,1),(2,1),(2,2),
// optionally conjugated by transform's linear part (T*Sigma*T^T).
func (r *Reader) covarianceElements(g int, transform *Transform) [6]float32 {
	rot := r.Rotation(g)
	scale := r.Scale(g)
	rm := rot.RotationMatrix()

	m := mat.NewDense(3, 3, []float64{
		float64(rm[0][0]) * float64(scale.X), float64(rm[0][1]) * float64(scale.Y), float64(rm[0][2]) * float64(scale.Z),
		float64(rm[1][0]) * float64(scale.X), float64(rm[1][1]) * float64(scale.Y), float64(rm[1][2]) * float64(scale.Z),
		float64(rm[2][0]) * float64(scale.X), float64(rm[2][1]) * float64(scale.Y), float64(rm[2][2]) * float64(scale.Z),
	})

	var sigma mat.Dense
	sigma.Mul(m.T(), m)

	if transform != nil {
		t := transform.Linear
		tm := mat.NewDense(3, 3, []float64{
			float64(t[0][0]), float64(t[0][1]), float64(t[0][2]),
			float64(t[1][0]), float64(t[1][1]), float64(t[1][2]),
			float64(t[2][0]), float64(t[2][1]), float64(t[2][2]),
		})
		var tmp, conj mat.Dense
		tmp.Mul(tm, &sigma)
		conj.Mul(&tmp, tm.T())
		sigma = conj
	}

	return [6]float32{
		float32(sigma.At(0, 0)),
		float32(sigma.At(1, 0)),
		float32(sigma.At(2, 0)),
		float32(sigma.At(1, 1)),
		float32(sigma.At(2, 1)),
		float32(sigma.At(2, 2)),
	}
}

// FillCovariances writes the 6-element upper-triangular covariance of
// splats [srcFrom, srcTo] into out (packed as half-float if desiredLevel is
// LevelCompressed, else f32), starting at destFrom*6 elements.
func (r *Reader) FillCovariances(out []byte, transform *Transform, srcFrom, srcTo, destFrom int, desiredLevel format.CompressionLevel) {
	engine := endian.GetLittleEndianEngine()
	width := 4
	if desiredLevel == format.LevelCompressed {
		width = 2
	}

	for g := srcFrom; g <= srcTo; g++ {
		elems := r.covarianceElements(g, transform)
		base := (destFrom + (g - srcFrom)) * 6 * width
		for i, v := range elems {
			off := base + i*width
			if desiredLevel == format.LevelCompressed {
				engine.PutUint16(out[off:], numeric.FloatToHalf(v))
			} else {
				engine.PutUint32(out[off:], math.Float32bits(v))
			}
		}
	}
}

// FillSphericalHarmonics writes the rotated, degree-truncated SH
// coefficients of splats [srcFrom, srcTo] into out, channel-major, starting
// at destFrom*outStride elements, where outStride = 3*((outDegree+1)^2-1).
// Output is packed as half-float bytes if desiredOutputCompressionLevel is
// LevelCompressed, else as f32 bytes, regardless of the level the source
// buffer was stored at; this mirrors FillCovariances's packing.
func (r *Reader) FillSphericalHarmonics(out []byte, outDegree format.SHDegree, transform *Transform, srcFrom, srcTo, destFrom int, desiredOutputCompressionLevel format.CompressionLevel) {
	var rotator *shrot.Matrix
	if transform != nil {
		m := shrot.New(transform.Linear)
		rotator = &m
	}

	outStride := outDegree.ComponentsPerSplat()

	engine := endian.GetLittleEndianEngine()
	width := 4
	if desiredOutputCompressionLevel == format.LevelCompressed {
		width = 2
	}

	for g := srcFrom; g <= srcTo; g++ {
		coeffs := r.sphericalHarmonics(g)
		rotated := shrot.Apply(rotator, r.file.SHDegree, outDegree, coeffs)
		base := (destFrom + (g - srcFrom)) * outStride * width
		for i, v := range rotated {
			off := base + i*width
			if desiredOutputCompressionLevel == format.LevelCompressed {
				engine.PutUint16(out[off:], numeric.FloatToHalf(v))
			} else {
				engine.PutUint32(out[off:], math.Float32bits(v))
			}
		}
	}
}

// SectionFingerprint returns a non-format diagnostic content fingerprint of
// section i's raw payload bytes (bucket tables + splat data; the section
// header record is not included), suitable for cache invalidation or change detection. It is not part of
// the on-disk format.
//
// Returns errs.ErrSectionIndexOutOfRange if i is outside [0, SectionCount()).
func (r *Reader) SectionFingerprint(i int) (uint64, error) {
	if i < 0 || i >= len(r.sections) {
		return 0, fmt.Errorf("%w: section %d, have %d", errs.ErrSectionIndexOutOfRange, i, len(r.sections))
	}
	sv := r.sections[i]
	end := sv.payloadOffset + int(sv.header.StorageSizeBytes)
	return fingerprint.Of(r.buf[sv.payloadOffset:end]), nil
}
