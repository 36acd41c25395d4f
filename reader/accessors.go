package reader

import (
	"math"

	"github.com/GianlucaZoni/GaussianSplats3D/endian"
	"github.com/GianlucaZoni/GaussianSplats3D/format"
	"github.com/GianlucaZoni/GaussianSplats3D/numeric"
	"github.com/GianlucaZoni/GaussianSplats3D/splat"
)

// recordOffset returns the byte offset, within r.buf, of global splat g's
// fixed-size record, along with the owning section's index.
func (r *Reader) recordOffset(g int) (sectionIdx, offset int) {
	sectionIdx = r.globalToSection[g]
	local := r.globalToLocal[g]
	sv := r.sections[sectionIdx]
	offset = sv.payloadOffset + sv.header.DataBaseOffset() + local*r.desc.BytesPerSplat
	return sectionIdx, offset
}

// bucketIndexForLocal resolves the bucket a local splat index belongs to:
// full buckets are found by division, partially-filled buckets by linear
// scan of the per-section partial-length table.
func (r *Reader) bucketIndexForLocal(sectionIdx, local int) int {
	sv := r.sections[sectionIdx]
	h := sv.header
	fullSpan := int(h.FullBucketCount) * int(h.BucketSize)
	if local < fullSpan {
		return local / int(h.BucketSize)
	}

	engine := endian.GetLittleEndianEngine()
	tableBase := sv.payloadOffset
	running := fullSpan
	for scanPos := 0; scanPos < int(h.PartiallyFilledBucketCount); scanPos++ {
		length := int(engine.Uint32(r.buf[tableBase+scanPos*4:]))
		if local < running+length {
			return int(h.FullBucketCount) + scanPos
		}
		running += length
	}

	// Out-of-range local index: undefined behavior, caller's responsibility.
	// Return the last bucket rather than panic.
	return int(h.FullBucketCount) + int(h.PartiallyFilledBucketCount) - 1
}

// bucketCenter reads bucket bucketIdx's world-space center from section
// sectionIdx's bucket-center table (level 1 only).
func (r *Reader) bucketCenter(sectionIdx, bucketIdx int) splat.Vec3 {
	sv := r.sections[sectionIdx]
	base := sv.payloadOffset + sv.header.PartialBucketTableSize() + bucketIdx*12

	return splat.Vec3{
		X: math.Float32frombits(endian.GetLittleEndianEngine().Uint32(r.buf[base:])),
		Y: math.Float32frombits(endian.GetLittleEndianEngine().Uint32(r.buf[base+4:])),
		Z: math.Float32frombits(endian.GetLittleEndianEngine().Uint32(r.buf[base+8:])),
	}
}

// Center returns global splat g's world-space center.
func (r *Reader) Center(g int) splat.Vec3 {
	sectionIdx, off := r.recordOffset(g)
	engine := endian.GetLittleEndianEngine()

	if r.desc.Level == format.LevelFull {
		return splat.Vec3{
			X: math.Float32frombits(engine.Uint32(r.buf[off:])),
			Y: math.Float32frombits(engine.Uint32(r.buf[off+4:])),
			Z: math.Float32frombits(engine.Uint32(r.buf[off+8:])),
		}
	}

	local := r.globalToLocal[g]
	bucketIdx := r.bucketIndexForLocal(sectionIdx, local)
	center := r.bucketCenter(sectionIdx, bucketIdx)
	sv := r.sections[sectionIdx]
	scaleFactor := sv.header.CompressionScaleFactor()
	scaleRange := float32(sv.header.CompressionScaleRange)

	ux := float32(engine.Uint16(r.buf[off:]))
	uy := float32(engine.Uint16(r.buf[off+2:]))
	uz := float32(engine.Uint16(r.buf[off+4:]))

	return splat.Vec3{
		X: (ux-scaleRange)*scaleFactor + center.X,
		Y: (uy-scaleRange)*scaleFactor + center.Y,
		Z: (uz-scaleRange)*scaleFactor + center.Z,
	}
}

// Scale returns global splat g's scale vector.
func (r *Reader) Scale(g int) splat.Vec3 {
	_, off := r.recordOffset(g)
	base := off + r.desc.BytesPerCenter
	engine := endian.GetLittleEndianEngine()

	if r.desc.Level == format.LevelFull {
		return splat.Vec3{
			X: math.Float32frombits(engine.Uint32(r.buf[base:])),
			Y: math.Float32frombits(engine.Uint32(r.buf[base+4:])),
			Z: math.Float32frombits(engine.Uint32(r.buf[base+8:])),
		}
	}

	return splat.Vec3{
		X: numeric.HalfToFloat(engine.Uint16(r.buf[base:])),
		Y: numeric.HalfToFloat(engine.Uint16(r.buf[base+2:])),
		Z: numeric.HalfToFloat(engine.Uint16(r.buf[base+4:])),
	}
}

// Rotation returns global splat g's rotation, converted from the on-disk
// (w,x,y,z) storage order to the user-facing (x,y,z,w) order.
func (r *Reader) Rotation(g int) splat.Quaternion {
	_, off := r.recordOffset(g)
	base := off + r.desc.BytesPerCenter + r.desc.BytesPerScale
	engine := endian.GetLittleEndianEngine()

	var w, x, y, z float32
	if r.desc.Level == format.LevelFull {
		w = math.Float32frombits(engine.Uint32(r.buf[base:]))
		x = math.Float32frombits(engine.Uint32(r.buf[base+4:]))
		y = math.Float32frombits(engine.Uint32(r.buf[base+8:]))
		z = math.Float32frombits(engine.Uint32(r.buf[base+12:]))
	} else {
		w = numeric.HalfToFloat(engine.Uint16(r.buf[base:]))
		x = numeric.HalfToFloat(engine.Uint16(r.buf[base+2:]))
		y = numeric.HalfToFloat(engine.Uint16(r.buf[base+4:]))
		z = numeric.HalfToFloat(engine.Uint16(r.buf[base+6:]))
	}

	return splat.Quaternion{X: x, Y: y, Z: z, W: w}
}

// Color returns global splat g's RGBA color.
func (r *Reader) Color(g int) [4]uint8 {
	_, off := r.recordOffset(g)
	base := off + r.desc.BytesPerCenter + r.desc.BytesPerScale + r.desc.BytesPerRotation
	return [4]uint8{r.buf[base], r.buf[base+1], r.buf[base+2], r.buf[base+3]}
}

// sphericalHarmonics returns global splat g's stored SH coefficients,
// channel-major, decoded to f32.
func (r *Reader) sphericalHarmonics(g int) []float32 {
	_, off := r.recordOffset(g)
	base := off + r.desc.BytesPerCenter + r.desc.BytesPerScale + r.desc.BytesPerRotation + r.desc.BytesPerColor
	engine := endian.GetLittleEndianEngine()

	n := r.desc.SHComponentsPerSplat
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		if r.desc.Level == format.LevelFull {
			out[i] = math.Float32frombits(engine.Uint32(r.buf[base+i*4:]))
		} else {
			out[i] = numeric.HalfToFloat(engine.Uint16(r.buf[base+i*2:]))
		}
	}
	return out
}
