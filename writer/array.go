package writer

import (
	"github.com/GianlucaZoni/GaussianSplats3D/format"
	"github.com/GianlucaZoni/GaussianSplats3D/splat"
)

// UncompressedSplat is the writer's input representation of one splat,
// exposing the stable numeric fields (X, Y, Z, SCALE0..2, ROTATION0..3,
// FDC0..2, OPACITY, FRC0..FRC23) with explicit presence flags so defaulting
// does not depend on zero-value ambiguity.
type UncompressedSplat struct {
	X, Y, Z float32

	// Scale and Rotation are used only if HasGeometry is true; otherwise the
	// defaults of splat.DefaultScale / splat.DefaultQuaternion are written.
	Scale       [3]float32
	Rotation    splat.Quaternion
	HasGeometry bool

	// Color is FDC0..2 (RGB). Used only if HasColor is true; otherwise
	// (255, 0, 0) is written.
	Color   [3]uint8
	HasColor bool

	// Opacity is used only if HasOpacity is true; otherwise 255 is assumed
	// both for storage defaulting and for the minimum-alpha filter.
	Opacity   uint8
	HasOpacity bool

	// SH holds FRC0..FRC23, channel-major, length must equal the array's
	// SHDegree.ComponentsPerSplat() (0, 9 or 24).
	SH []float32
}

// effectiveOpacity returns the opacity value to compare against the writer's
// minimumAlpha filter, applying the "missing opacity = 255" default.
func (s UncompressedSplat) effectiveOpacity() uint8 {
	if !s.HasOpacity {
		return 255
	}
	return s.Opacity
}

// Array is one uncompressed input array; each Array becomes one section of
// the output buffer.
type Array struct {
	Splats []UncompressedSplat
	// SHDegree is this array's SH degree. All arrays in a single Write call
	// must agree; the first array's degree is canonical.
	SHDegree format.SHDegree

	// BlockSizeFactor and BucketSizeFactor multiply the writer's global
	// BlockSize/BucketSize for this section only. Zero means 1.0 (no
	// adjustment).
	BlockSizeFactor  float32
	BucketSizeFactor float32

	// MaxSplatCount optionally pre-provisions this section's splat region
	// larger than the number of splats that survive filtering, to support a
	// grow-in-place producer. Zero means "exactly the surviving splat count"
	// (the common case). A non-zero value smaller than the surviving splat
	// count is rejected with errs.ErrSplatCountExceeded rather than silently
	// grown.
	MaxSplatCount uint32
}

func (a Array) blockSizeFactor() float32 {
	if a.BlockSizeFactor == 0 {
		return 1
	}
	return a.BlockSizeFactor
}

func (a Array) bucketSizeFactor() float32 {
	if a.BucketSizeFactor == 0 {
		return 1
	}
	return a.BucketSizeFactor
}
