// Package writer assembles one or more uncompressed splat arrays into a
// single contiguous gsplat buffer: file header, section headers, and
// per-section payloads (bucket tables + splat data).
package writer

import (
	"fmt"
	"math"

	"github.com/GianlucaZoni/GaussianSplats3D/bucket"
	"github.com/GianlucaZoni/GaussianSplats3D/endian"
	"github.com/GianlucaZoni/GaussianSplats3D/errs"
	"github.com/GianlucaZoni/GaussianSplats3D/format"
	"github.com/GianlucaZoni/GaussianSplats3D/internal/options"
	"github.com/GianlucaZoni/GaussianSplats3D/internal/pool"
	"github.com/GianlucaZoni/GaussianSplats3D/layout"
	"github.com/GianlucaZoni/GaussianSplats3D/section"
	"github.com/GianlucaZoni/GaussianSplats3D/splat"
)

// Writer assembles uncompressed splat arrays into a gsplat buffer.
//
// A Writer is not reusable across unrelated buffers beyond calling Write
// multiple times with the same configuration; it holds no per-call state.
type Writer struct {
	cfg *Config
}

// New creates a Writer with the format's default parameters, overridden by
// opts.
func New(opts ...Option) (*Writer, error) {
	cfg := NewConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if !cfg.CompressionLevel.Valid() {
		return nil, errs.ErrInvalidCompressionLevel
	}

	return &Writer{cfg: cfg}, nil
}

// preparedSection holds the per-section intermediate state computed before
// byte assembly: the surviving (post-filter) splats, their bucket
// partitioning, and the byte layout they will occupy.
type preparedSection struct {
	splats     []UncompressedSplat
	buckets    bucket.Result
	maxSplats  uint32
	blockSize  float32
	bucketSize uint32
}

// Write filters, buckets, quantizes and assembles arrays into a single
// contiguous buffer. Each array becomes one section, in the order given.
//
// Returns errs.ErrMixedSHDegree if arrays disagree on SH degree (the first
// array's degree is canonical), errs.ErrNoSplatsWritten if every splat in
// every array is filtered out by the opacity threshold,
// errs.ErrSectionCountExceeded if len(arrays) exceeds a configured
// MaxSectionCount, or errs.ErrSplatCountExceeded if an array's declared
// MaxSplatCount is smaller than its surviving splat count.
func (w *Writer) Write(arrays []Array) ([]byte, error) {
	if len(arrays) == 0 {
		return nil, fmt.Errorf("%w: no input arrays", errs.ErrNoSplatsWritten)
	}

	shDegree := arrays[0].SHDegree
	if !shDegree.Valid() {
		return nil, errs.ErrInvalidSHDegree
	}
	for i, a := range arrays[1:] {
		if a.SHDegree != shDegree {
			return nil, fmt.Errorf("%w: array %d has degree %s, array 0 has %s", errs.ErrMixedSHDegree, i+1, a.SHDegree, shDegree)
		}
	}

	desc, err := layout.New(w.cfg.CompressionLevel, shDegree)
	if err != nil {
		return nil, err
	}

	maxSectionCount := uint32(len(arrays))
	if w.cfg.MaxSectionCount != 0 {
		if maxSectionCount > w.cfg.MaxSectionCount {
			return nil, errs.ErrSectionCountExceeded
		}
		maxSectionCount = w.cfg.MaxSectionCount
	}

	prepared := make([]preparedSection, len(arrays))
	totalSplats := 0
	for i, a := range arrays {
		ps, err := prepareSection(a, w.cfg)
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}
		prepared[i] = ps
		totalSplats += len(ps.splats)
	}
	if totalSplats == 0 {
		return nil, errs.ErrNoSplatsWritten
	}

	sectionBytes := make([][]byte, len(arrays))
	sectionHeaders := make([]section.SectionHeader, len(arrays))
	for i, ps := range prepared {
		payload, hdr := encodeSection(ps, desc, w.cfg.CompressionLevel)
		sectionBytes[i] = payload
		sectionHeaders[i] = hdr
	}

	fileHeader := section.FileHeader{
		VersionMajor:     0,
		VersionMinor:     1,
		MaxSectionCount:  maxSectionCount,
		SectionCount:     uint32(len(arrays)),
		MaxSplatCount:    maxSplatCountAcross(prepared),
		SplatCount:       uint32(totalSplats),
		CompressionLevel: w.cfg.CompressionLevel,
		SceneCenter:      w.cfg.SceneCenter,
		SHDegree:         shDegree,
	}

	return assembleBuffer(fileHeader, sectionHeaders, sectionBytes, maxSectionCount)
}

// maxSplatCountAcross returns the largest per-section MaxSplatCount across
// prepared sections; this is recorded in the file header as a convenience
// summary field and has no normative meaning of its own (each section header
// carries its own authoritative MaxSplatCount).
func maxSplatCountAcross(prepared []preparedSection) uint32 {
	var max uint32
	for _, p := range prepared {
		if p.maxSplats > max {
			max = p.maxSplats
		}
	}
	return max
}

// prepareSection filters a's splats by opacity and partitions the survivors
// into buckets.
func prepareSection(a Array, cfg *Config) (preparedSection, error) {
	blockSize := cfg.BlockSize * a.blockSizeFactor()
	bucketSizeF := float32(cfg.BucketSize) * a.bucketSizeFactor()
	bucketSize := int(bucketSizeF)
	if bucketSize < 1 {
		bucketSize = 1
	}

	survivors := make([]UncompressedSplat, 0, len(a.Splats))
	for _, s := range a.Splats {
		if s.effectiveOpacity() < cfg.MinimumAlpha {
			continue
		}
		survivors = append(survivors, s)
	}

	maxSplats := a.MaxSplatCount
	if maxSplats == 0 {
		maxSplats = uint32(len(survivors))
	} else if maxSplats < uint32(len(survivors)) {
		return preparedSection{}, fmt.Errorf("%w: %d surviving splats exceed declared MaxSplatCount %d", errs.ErrSplatCountExceeded, len(survivors), maxSplats)
	}

	if len(survivors) == 0 {
		return preparedSection{
			maxSplats:  maxSplats,
			blockSize:  blockSize,
			bucketSize: uint32(bucketSize),
		}, nil
	}

	centers := make([]splat.Vec3, len(survivors))
	for i, s := range survivors {
		centers[i] = splat.Vec3{X: s.X, Y: s.Y, Z: s.Z}
	}

	buckets := bucket.Build(centers, blockSize, bucketSize)

	return preparedSection{
		splats:     survivors,
		buckets:    buckets,
		maxSplats:  maxSplats,
		blockSize:  blockSize,
		bucketSize: uint32(bucketSize),
	}, nil
}

// encodeSection writes one section's payload region (partial-bucket table,
// bucket-center table, splat data) and returns it alongside its header.
func encodeSection(ps preparedSection, desc layout.Descriptor, level format.CompressionLevel) ([]byte, section.SectionHeader) {
	allBuckets := ps.buckets.All()
	fullCount := len(ps.buckets.FullBuckets)
	partialCount := len(ps.buckets.PartiallyFullBuckets)

	partialTableSize := partialCount * 4
	var bucketCenterTableSize int
	if level == format.LevelCompressed {
		bucketCenterTableSize = len(allBuckets) * 3 * 4
	}
	dataSize := int(ps.maxSplats) * desc.BytesPerSplat
	payloadSize := partialTableSize + bucketCenterTableSize + dataSize

	buf := make([]byte, payloadSize)
	engine := endian.GetLittleEndianEngine()

	// Region 1: partial-bucket-length table.
	off := 0
	for _, b := range ps.buckets.PartiallyFullBuckets {
		engine.PutUint32(buf[off:], uint32(len(b.Splats))) //nolint: gosec
		off += 4
	}

	// Region 2: bucket-center table (level 1 only).
	if level == format.LevelCompressed {
		for _, b := range allBuckets {
			engine.PutUint32(buf[off:], math.Float32bits(b.Center.X))
			engine.PutUint32(buf[off+4:], math.Float32bits(b.Center.Y))
			engine.PutUint32(buf[off+8:], math.Float32bits(b.Center.Z))
			off += 12
		}
	}

	// Region 3: splat data, walking buckets in (full ... partial) order.
	dataBase := off
	outIdx := 0
	for _, b := range allBuckets {
		for _, localIdx := range b.Splats {
			s := ps.splats[localIdx]
			dst := buf[dataBase+outIdx*desc.BytesPerSplat : dataBase+(outIdx+1)*desc.BytesPerSplat]
			encodeSplat(dst, s, b.Center, ps.blockSize, desc, level)
			outIdx++
		}
	}

	hdr := section.SectionHeader{
		SplatCount:                 uint32(len(ps.splats)),
		MaxSplatCount:              ps.maxSplats,
		StorageSizeBytes:           uint32(payloadSize),
		FullBucketCount:            uint32(fullCount),
		PartiallyFilledBucketCount: uint32(partialCount),
	}
	if level == format.LevelCompressed {
		hdr.BucketSize = ps.bucketSize
		hdr.BucketCount = uint32(len(allBuckets))
		hdr.BucketBlockSize = ps.blockSize
		hdr.BucketStorageSizeBytes = 12
		hdr.CompressionScaleRange = uint32(desc.ScaleRange)
	}

	return buf, hdr
}

// assembleBuffer concatenates the file header, padded section headers, and
// section payloads into one contiguous buffer.
func assembleBuffer(fileHeader section.FileHeader, headers []section.SectionHeader, payloads [][]byte, maxSectionCount uint32) ([]byte, error) {
	total := section.FileHeaderSize + int(maxSectionCount)*section.SectionHeaderSize
	for _, p := range payloads {
		total += len(p)
	}

	buf := pool.GetWriterBuffer()
	defer pool.PutWriterBuffer(buf)
	buf.Reset()
	buf.ExtendOrGrow(total)
	out := buf.Bytes()
	// The pooled buffer may carry stale bytes from a previous user; the
	// reserved (pre-provisioned) section-header slots below are never
	// written to otherwise, so the whole buffer must start from zero.
	for i := range out {
		out[i] = 0
	}

	off := 0
	off += copy(out[off:], fileHeader.Bytes())

	for i := 0; i < int(maxSectionCount); i++ {
		if i < len(headers) {
			off += copy(out[off:], headers[i].Bytes())
		} else {
			off += section.SectionHeaderSize // zeroed reserved header
		}
	}

	for _, p := range payloads {
		off += copy(out[off:], p)
	}

	result := make([]byte, total)
	copy(result, out)

	return result, nil
}
