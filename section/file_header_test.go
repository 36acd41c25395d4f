package section

import (
	"testing"

	"github.com/GianlucaZoni/GaussianSplats3D/format"
	"github.com/GianlucaZoni/GaussianSplats3D/splat"
	"github.com/stretchr/testify/require"
)

func TestFileHeaderRoundTrip(t *testing.T) {
	h := FileHeader{
		VersionMajor:     0,
		VersionMinor:     1,
		MaxSectionCount:  4,
		SectionCount:     2,
		MaxSplatCount:    1000,
		SplatCount:       500,
		CompressionLevel: format.LevelCompressed,
		SceneCenter:      splat.Vec3{X: 1.5, Y: -2.5, Z: 3.5},
		SHDegree:         format.SHDegree2,
	}

	data := h.Bytes()
	require.Len(t, data, FileHeaderSize)

	parsed, err := ParseFileHeader(data)
	require.NoError(t, err)
	require.Equal(t, h, parsed)
}

func TestParseFileHeaderRejectsShortBuffer(t *testing.T) {
	_, err := ParseFileHeader(make([]byte, 10))
	require.Error(t, err)
}

func TestParseFileHeaderRejectsUnsupportedVersion(t *testing.T) {
	h := FileHeader{VersionMajor: MaxVersionMajor + 1}
	_, err := ParseFileHeader(h.Bytes())
	require.Error(t, err)
}

func TestParseFileHeaderRejectsInvalidCompressionLevel(t *testing.T) {
	data := make([]byte, FileHeaderSize)
	data[offCompressionLevel] = 9
	_, err := ParseFileHeader(data)
	require.Error(t, err)
}
