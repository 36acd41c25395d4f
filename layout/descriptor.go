// Package layout computes the per-splat field sizes and byte offsets for a
// given (compression level, SH degree) pair.
package layout

import (
	"github.com/GianlucaZoni/GaussianSplats3D/errs"
	"github.com/GianlucaZoni/GaussianSplats3D/format"
)

// Descriptor holds the per-field byte sizes for one (level, degree) pair.
// All fields within a splat are naturally aligned; field order within a
// splat is always: center, scale, rotation, color, SH.
type Descriptor struct {
	Level format.CompressionLevel
	SH    format.SHDegree

	BytesPerCenter   int
	BytesPerScale    int
	BytesPerRotation int
	BytesPerColor    int

	// SHComponentsPerSplat is 3*((degree+1)^2-1).
	SHComponentsPerSplat int
	// SHBytesPerSplat is SHComponentsPerSplat * (4 at level 0, 2 at level 1).
	SHBytesPerSplat int

	// BytesPerSplat is the sum of all field bytes above, in field order.
	BytesPerSplat int

	// ScaleRange is the maximum absolute quantized position delta (1 at
	// level 0, 32767 at level 1).
	ScaleRange int
}

// Offsets within a splat's float/half-float view, measured in units of the
// field width (4 bytes at level 0, 2 bytes at level 1).
const (
	SplatCenterOffsetFloat   = 0
	SplatScaleOffsetFloat    = 3
	SplatRotationOffsetFloat = 6
)

// New computes the Descriptor for the given (level, degree) pair.
//
// Returns errs.ErrInvalidCompressionLevel if level is outside {0,1}, or
// errs.ErrInvalidSHDegree if degree is outside {0,1,2}.
func New(level format.CompressionLevel, degree format.SHDegree) (Descriptor, error) {
	if !level.Valid() {
		return Descriptor{}, errs.ErrInvalidCompressionLevel
	}
	if !degree.Valid() {
		return Descriptor{}, errs.ErrInvalidSHDegree
	}

	d := Descriptor{
		Level:                level,
		SH:                   degree,
		BytesPerColor:        4, // u8 x 4, same at both levels
		SHComponentsPerSplat: degree.ComponentsPerSplat(),
	}

	switch level {
	case format.LevelFull:
		d.BytesPerCenter = 12 // f32 x 3
		d.BytesPerScale = 12  // f32 x 3
		d.BytesPerRotation = 16 // f32 x 4
		d.SHBytesPerSplat = d.SHComponentsPerSplat * 4
		d.ScaleRange = 1
	case format.LevelCompressed:
		d.BytesPerCenter = 6 // u16 x 3
		d.BytesPerScale = 6  // f16 x 3
		d.BytesPerRotation = 8 // f16 x 4
		d.SHBytesPerSplat = d.SHComponentsPerSplat * 2
		d.ScaleRange = 32767
	}

	d.BytesPerSplat = d.BytesPerCenter + d.BytesPerScale + d.BytesPerRotation + d.BytesPerColor + d.SHBytesPerSplat

	return d, nil
}
