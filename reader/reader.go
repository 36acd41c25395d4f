// Package reader provides random-access and bulk-fill views over a gsplat
// buffer assembled by the writer package.
package reader

import (
	"github.com/GianlucaZoni/GaussianSplats3D/errs"
	"github.com/GianlucaZoni/GaussianSplats3D/layout"
	"github.com/GianlucaZoni/GaussianSplats3D/section"
)

// sectionView holds one section's header plus the byte offset of its
// payload region (region 1, the partial-bucket-length table) within the
// shared buffer.
type sectionView struct {
	header        section.SectionHeader
	payloadOffset int
}

// Reader is a non-owning view over a gsplat buffer. All accessors borrow
// from buf; the caller must not reallocate or mutate buf's data region
// while a Reader is in use.
type Reader struct {
	buf      []byte
	file     section.FileHeader
	sections []sectionView
	desc     layout.Descriptor

	// globalToSection[g] and globalToLocal[g] map a global splat index to
	// its owning section and the local index within that section.
	globalToSection []int
	globalToLocal   []int
}

// New parses buf's file header and maxSectionCount section headers and
// builds the global-to-local splat index maps.
//
// Returns errs.ErrInvalidHeaderSize if buf is shorter than the file header,
// errs.ErrUnsupportedVersion/errs.ErrInvalidCompressionLevel/
// errs.ErrInvalidSHDegree from header validation, or errs.ErrBufferTruncated
// if section offsets computed from the headers exceed len(buf).
func New(buf []byte) (*Reader, error) {
	fileHeader, err := section.ParseFileHeader(buf)
	if err != nil {
		return nil, err
	}

	desc, err := layout.New(fileHeader.CompressionLevel, fileHeader.SHDegree)
	if err != nil {
		return nil, err
	}

	sections := make([]sectionView, fileHeader.MaxSectionCount)
	offset := section.FileHeaderSize + int(fileHeader.MaxSectionCount)*section.SectionHeaderSize

	for i := 0; i < int(fileHeader.MaxSectionCount); i++ {
		hdrOffset := section.FileHeaderSize + i*section.SectionHeaderSize
		if hdrOffset+section.SectionHeaderSize > len(buf) {
			return nil, errs.ErrBufferTruncated
		}

		hdr, err := section.ParseSectionHeader(buf[hdrOffset:])
		if err != nil {
			return nil, err
		}

		if offset+int(hdr.StorageSizeBytes) > len(buf) {
			return nil, errs.ErrBufferTruncated
		}

		sections[i] = sectionView{
			header:        hdr,
			payloadOffset: offset,
		}

		offset += int(hdr.StorageSizeBytes)
	}

	r := &Reader{
		buf:      buf,
		file:     fileHeader,
		sections: sections,
		desc:     desc,
	}
	r.rebuildIndexMaps()

	return r, nil
}

// rebuildIndexMaps recomputes globalToSection/globalToLocal from the
// per-section headers (sized to the sum of every section's MaxSplatCount, but
// only entries below each section's current SplatCount are meaningful).
func (r *Reader) rebuildIndexMaps() {
	total := 0
	for _, s := range r.sections {
		total += int(s.header.MaxSplatCount)
	}

	r.globalToSection = make([]int, total)
	r.globalToLocal = make([]int, total)

	g := 0
	for si, s := range r.sections {
		for local := 0; local < int(s.header.MaxSplatCount); local++ {
			r.globalToSection[g] = si
			r.globalToLocal[g] = local
			g++
		}
	}
}

// SectionCount returns the number of sections currently published in the
// file header, a growing visibility counter for producers writing in place.
func (r *Reader) SectionCount() int { return int(r.file.SectionCount) }

// SplatCount returns the number of splats currently published in the file
// header.
func (r *Reader) SplatCount() int { return int(r.file.SplatCount) }

// UpdateLoadedCounts republishes the file-level splat/section counts a
// producer has made visible. Callers are responsible for only increasing
// these values.
func (r *Reader) UpdateLoadedCounts(sectionCount, splatCount uint32) {
	r.file.SectionCount = sectionCount
	r.file.SplatCount = splatCount
}
