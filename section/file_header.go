package section

import (
	"math"

	"github.com/GianlucaZoni/GaussianSplats3D/endian"
	"github.com/GianlucaZoni/GaussianSplats3D/errs"
	"github.com/GianlucaZoni/GaussianSplats3D/format"
	"github.com/GianlucaZoni/GaussianSplats3D/splat"
)

// FileHeaderSize is the fixed size in bytes of the buffer's leading header.
// The section-header region begins immediately after it, at offset
// FileHeaderSize.
const FileHeaderSize = 4096

// MaxVersionMajor is the highest header major version this package knows how
// to parse. Parsing a buffer with a higher major version fails with
// errs.ErrUnsupportedVersion.
const MaxVersionMajor = 0

// FileHeader is the fixed 4096-byte header at the start of the buffer. Only
// the first 38 bytes are meaningful; the remainder is reserved and must be
// zero.
type FileHeader struct {
	VersionMajor uint8
	VersionMinor uint8

	MaxSectionCount uint32
	SectionCount    uint32
	MaxSplatCount   uint32
	SplatCount      uint32

	CompressionLevel format.CompressionLevel
	SceneCenter      splat.Vec3
	SHDegree         format.SHDegree
}

// byte offsets within FileHeader.
const (
	offVersionMajor     = 0
	offVersionMinor     = 1
	offMaxSectionCount  = 4
	offSectionCount     = 8
	offMaxSplatCount    = 12
	offSplatCount       = 16
	offCompressionLevel = 20
	offSceneCenter      = 24
	offSHDegree         = 36
)

// Bytes serializes h into a FileHeaderSize-byte slice. Reserved bytes are
// zero.
func (h FileHeader) Bytes() []byte {
	b := make([]byte, FileHeaderSize)
	engine := endian.GetLittleEndianEngine()

	b[offVersionMajor] = h.VersionMajor
	b[offVersionMinor] = h.VersionMinor
	engine.PutUint32(b[offMaxSectionCount:], h.MaxSectionCount)
	engine.PutUint32(b[offSectionCount:], h.SectionCount)
	engine.PutUint32(b[offMaxSplatCount:], h.MaxSplatCount)
	engine.PutUint32(b[offSplatCount:], h.SplatCount)
	engine.PutUint16(b[offCompressionLevel:], uint16(h.CompressionLevel))
	engine.PutUint32(b[offSceneCenter:], math.Float32bits(h.SceneCenter.X))
	engine.PutUint32(b[offSceneCenter+4:], math.Float32bits(h.SceneCenter.Y))
	engine.PutUint32(b[offSceneCenter+8:], math.Float32bits(h.SceneCenter.Z))
	engine.PutUint16(b[offSHDegree:], uint16(h.SHDegree))

	return b
}

// ParseFileHeader parses a FileHeader from data, which must be at least
// FileHeaderSize bytes.
//
// Returns errs.ErrInvalidHeaderSize if data is too short,
// errs.ErrUnsupportedVersion if VersionMajor exceeds MaxVersionMajor,
// errs.ErrInvalidCompressionLevel or errs.ErrInvalidSHDegree if those fields
// hold unknown values.
func ParseFileHeader(data []byte) (FileHeader, error) {
	if len(data) < FileHeaderSize {
		return FileHeader{}, errs.ErrInvalidHeaderSize
	}

	engine := endian.GetLittleEndianEngine()

	h := FileHeader{
		VersionMajor:     data[offVersionMajor],
		VersionMinor:     data[offVersionMinor],
		MaxSectionCount:  engine.Uint32(data[offMaxSectionCount:]),
		SectionCount:     engine.Uint32(data[offSectionCount:]),
		MaxSplatCount:    engine.Uint32(data[offMaxSplatCount:]),
		SplatCount:       engine.Uint32(data[offSplatCount:]),
		CompressionLevel: format.CompressionLevel(engine.Uint16(data[offCompressionLevel:])),
		SceneCenter: splat.Vec3{
			X: math.Float32frombits(engine.Uint32(data[offSceneCenter:])),
			Y: math.Float32frombits(engine.Uint32(data[offSceneCenter+4:])),
			Z: math.Float32frombits(engine.Uint32(data[offSceneCenter+8:])),
		},
		SHDegree: format.SHDegree(engine.Uint16(data[offSHDegree:])),
	}

	if h.VersionMajor > MaxVersionMajor {
		return FileHeader{}, errs.ErrUnsupportedVersion
	}
	if !h.CompressionLevel.Valid() {
		return FileHeader{}, errs.ErrInvalidCompressionLevel
	}
	if !h.SHDegree.Valid() {
		return FileHeader{}, errs.ErrInvalidSHDegree
	}

	return h, nil
}
