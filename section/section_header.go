package section

import (
	"math"

	"github.com/GianlucaZoni/GaussianSplats3D/endian"
	"github.com/GianlucaZoni/GaussianSplats3D/errs"
)

// SectionHeaderSize is the fixed size in bytes of one per-section header
// record. maxSectionCount of these follow immediately after the FileHeader.
const SectionHeaderSize = 1024

// SectionHeader describes one section: its splat counts, bucket geometry and
// quantization parameters, and the byte offsets to its three payload
// regions.
type SectionHeader struct {
	SplatCount             uint32
	MaxSplatCount          uint32
	BucketSize             uint32 // 0 at compression level 0
	BucketCount            uint32 // 0 at compression level 0
	BucketBlockSize        float32
	BucketStorageSizeBytes uint16 // 0 at level 0, 12 at level 1
	CompressionScaleRange  uint32 // 0 at level 0
	StorageSizeBytes       uint32 // total bytes of this section's payload region
	FullBucketCount        uint32
	PartiallyFilledBucketCount uint32
}

const (
	offSectionSplatCount          = 0
	offSectionMaxSplatCount       = 4
	offBucketSize                 = 8
	offBucketCount                = 12
	offBucketBlockSize            = 16
	offBucketStorageSizeBytes     = 20
	offCompressionScaleRange      = 24
	offStorageSizeBytes           = 28
	offFullBucketCount            = 32
	offPartiallyFilledBucketCount = 36
)

// CompressionScaleFactor returns (bucketBlockSize/2) / compressionScaleRange,
// the factor that turns a stored u16 delta (minus the scale range) back into
// a bucket-relative world-space position delta.
// Returns 0 if CompressionScaleRange is 0 (level 0, uncompressed).
func (h SectionHeader) CompressionScaleFactor() float32 {
	if h.CompressionScaleRange == 0 {
		return 0
	}
	return (h.BucketBlockSize / 2) / float32(h.CompressionScaleRange)
}

// Bytes serializes h into a SectionHeaderSize-byte slice.
func (h SectionHeader) Bytes() []byte {
	b := make([]byte, SectionHeaderSize)
	engine := endian.GetLittleEndianEngine()

	engine.PutUint32(b[offSectionSplatCount:], h.SplatCount)
	engine.PutUint32(b[offSectionMaxSplatCount:], h.MaxSplatCount)
	engine.PutUint32(b[offBucketSize:], h.BucketSize)
	engine.PutUint32(b[offBucketCount:], h.BucketCount)
	engine.PutUint32(b[offBucketBlockSize:], math.Float32bits(h.BucketBlockSize))
	engine.PutUint16(b[offBucketStorageSizeBytes:], h.BucketStorageSizeBytes)
	engine.PutUint32(b[offCompressionScaleRange:], h.CompressionScaleRange)
	engine.PutUint32(b[offStorageSizeBytes:], h.StorageSizeBytes)
	engine.PutUint32(b[offFullBucketCount:], h.FullBucketCount)
	engine.PutUint32(b[offPartiallyFilledBucketCount:], h.PartiallyFilledBucketCount)

	return b
}

// ParseSectionHeader parses a SectionHeader from data, which must be at
// least SectionHeaderSize bytes.
func ParseSectionHeader(data []byte) (SectionHeader, error) {
	if len(data) < SectionHeaderSize {
		return SectionHeader{}, errs.ErrInvalidHeaderSize
	}

	engine := endian.GetLittleEndianEngine()

	return SectionHeader{
		SplatCount:                 engine.Uint32(data[offSectionSplatCount:]),
		MaxSplatCount:              engine.Uint32(data[offSectionMaxSplatCount:]),
		BucketSize:                 engine.Uint32(data[offBucketSize:]),
		BucketCount:                engine.Uint32(data[offBucketCount:]),
		BucketBlockSize:            math.Float32frombits(engine.Uint32(data[offBucketBlockSize:])),
		BucketStorageSizeBytes:     engine.Uint16(data[offBucketStorageSizeBytes:]),
		CompressionScaleRange:      engine.Uint32(data[offCompressionScaleRange:]),
		StorageSizeBytes:           engine.Uint32(data[offStorageSizeBytes:]),
		FullBucketCount:            engine.Uint32(data[offFullBucketCount:]),
		PartiallyFilledBucketCount: engine.Uint32(data[offPartiallyFilledBucketCount:]),
	}, nil
}

// PartialBucketTableSize returns the byte size of the partial-bucket-length
// table region (region 1 of the section payload).
func (h SectionHeader) PartialBucketTableSize() int {
	return int(h.PartiallyFilledBucketCount) * 4
}

// BucketCenterTableSize returns the byte size of the bucket-center table
// region (region 2 of the section payload; empty at compression level 0).
func (h SectionHeader) BucketCenterTableSize() int {
	return int(h.BucketCount) * 3 * 4
}

// DataBaseOffset returns the byte offset, relative to the section's base
// (the start of region 1), at which the splat payload (region 3) begins.
func (h SectionHeader) DataBaseOffset() int {
	return h.PartialBucketTableSize() + h.BucketCenterTableSize()
}
