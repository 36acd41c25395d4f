package writer

import (
	"math"

	"github.com/GianlucaZoni/GaussianSplats3D/endian"
	"github.com/GianlucaZoni/GaussianSplats3D/format"
	"github.com/GianlucaZoni/GaussianSplats3D/layout"
	"github.com/GianlucaZoni/GaussianSplats3D/numeric"
	"github.com/GianlucaZoni/GaussianSplats3D/splat"
)

// endianEngine is the subset of endian.EndianEngine used by the encode
// helpers below.
type endianEngine interface {
	PutUint16([]byte, uint16)
	PutUint32([]byte, uint32)
}

// encodeSplat writes one splat's fixed-size record into dst (already sized to
// desc.BytesPerSplat), in field order center/scale/rotation/color/SH.
// bucketCenter and blockSize describe the splat's assigned bucket and are
// used only at compression level 1.
func encodeSplat(dst []byte, s UncompressedSplat, bucketCenter splat.Vec3, blockSize float32, desc layout.Descriptor, level format.CompressionLevel) {
	engine := endian.GetLittleEndianEngine()

	scale := splat.Vec3{X: splat.DefaultScale, Y: splat.DefaultScale, Z: splat.DefaultScale}
	rotation := splat.DefaultQuaternion
	if s.HasGeometry {
		scale = splat.Vec3{X: s.Scale[0], Y: s.Scale[1], Z: s.Scale[2]}
		rotation = s.Rotation
	}
	rotation = rotation.Normalize()

	color := [3]uint8{255, 0, 0}
	if s.HasColor {
		color = s.Color
	}
	opacity := s.effectiveOpacity()

	off := 0
	switch level {
	case format.LevelFull:
		off += encodeCenterFull(dst[off:], s.X, s.Y, s.Z, engine)
		off += encodeScaleFull(dst[off:], scale, engine)
		off += encodeRotationFull(dst[off:], rotation, engine)
	case format.LevelCompressed:
		scaleFactor := float32(desc.ScaleRange) / (blockSize / 2)
		off += encodeCenterQuantized(dst[off:], splat.Vec3{X: s.X, Y: s.Y, Z: s.Z}, bucketCenter, scaleFactor, desc.ScaleRange, engine)
		off += encodeScaleHalf(dst[off:], scale, engine)
		off += encodeRotationHalf(dst[off:], rotation, engine)
	}

	off += encodeColor(dst[off:], color, opacity)
	encodeSH(dst[off:], s.SH, level, engine)
}

func encodeCenterFull(dst []byte, x, y, z float32, engine endianEngine) int {
	engine.PutUint32(dst[0:], math.Float32bits(x))
	engine.PutUint32(dst[4:], math.Float32bits(y))
	engine.PutUint32(dst[8:], math.Float32bits(z))
	return 12
}

func encodeScaleFull(dst []byte, s splat.Vec3, engine endianEngine) int {
	engine.PutUint32(dst[0:], math.Float32bits(s.X))
	engine.PutUint32(dst[4:], math.Float32bits(s.Y))
	engine.PutUint32(dst[8:], math.Float32bits(s.Z))
	return 12
}

// encodeRotationFull writes the quaternion in on-disk storage order
// (w, x, y, z); the writer's external API uses user-facing (x, y, z, w).
func encodeRotationFull(dst []byte, q splat.Quaternion, engine endianEngine) int {
	engine.PutUint32(dst[0:], math.Float32bits(q.W))
	engine.PutUint32(dst[4:], math.Float32bits(q.X))
	engine.PutUint32(dst[8:], math.Float32bits(q.Y))
	engine.PutUint32(dst[12:], math.Float32bits(q.Z))
	return 16
}

// encodeCenterQuantized writes the bucket-relative quantized position:
// round((xi-bucketCenter.i)*scaleFactor)+scaleRange, clamped to
// [0, 2*scaleRange+1].
func encodeCenterQuantized(dst []byte, c, bucketCenter splat.Vec3, scaleFactor float32, scaleRange int, engine endianEngine) int {
	engine.PutUint16(dst[0:], quantizeAxis(c.X-bucketCenter.X, scaleFactor, scaleRange))
	engine.PutUint16(dst[2:], quantizeAxis(c.Y-bucketCenter.Y, scaleFactor, scaleRange))
	engine.PutUint16(dst[4:], quantizeAxis(c.Z-bucketCenter.Z, scaleFactor, scaleRange))
	return 6
}

func quantizeAxis(delta, scaleFactor float32, scaleRange int) uint16 {
	r := float32(scaleRange)
	q := float32(math.Round(float64(delta*scaleFactor))) + r
	return uint16(numeric.ClampF32(q, 0, 2*r+1))
}

func encodeScaleHalf(dst []byte, s splat.Vec3, engine endianEngine) int {
	engine.PutUint16(dst[0:], numeric.FloatToHalf(s.X))
	engine.PutUint16(dst[2:], numeric.FloatToHalf(s.Y))
	engine.PutUint16(dst[4:], numeric.FloatToHalf(s.Z))
	return 6
}

func encodeRotationHalf(dst []byte, q splat.Quaternion, engine endianEngine) int {
	engine.PutUint16(dst[0:], numeric.FloatToHalf(q.W))
	engine.PutUint16(dst[2:], numeric.FloatToHalf(q.X))
	engine.PutUint16(dst[4:], numeric.FloatToHalf(q.Y))
	engine.PutUint16(dst[6:], numeric.FloatToHalf(q.Z))
	return 8
}

func encodeColor(dst []byte, rgb [3]uint8, alpha uint8) int {
	dst[0] = rgb[0]
	dst[1] = rgb[1]
	dst[2] = rgb[2]
	dst[3] = alpha
	return 4
}

func encodeSH(dst []byte, sh []float32, level format.CompressionLevel, engine endianEngine) {
	for i, v := range sh {
		switch level {
		case format.LevelFull:
			engine.PutUint32(dst[i*4:], math.Float32bits(v))
		case format.LevelCompressed:
			engine.PutUint16(dst[i*2:], numeric.FloatToHalf(v))
		}
	}
}
