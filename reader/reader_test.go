package reader

import (
	"testing"

	"github.com/GianlucaZoni/GaussianSplats3D/errs"
	"github.com/GianlucaZoni/GaussianSplats3D/format"
	"github.com/GianlucaZoni/GaussianSplats3D/section"
	"github.com/GianlucaZoni/GaussianSplats3D/splat"
	"github.com/GianlucaZoni/GaussianSplats3D/writer"
	"github.com/stretchr/testify/require"
)

func sampleSplats() []writer.UncompressedSplat {
	return []writer.UncompressedSplat{
		{
			X: 1, Y: 2, Z: 3,
			Scale:       [3]float32{0.5, 0.5, 0.5},
			Rotation:    splat.Quaternion{X: 0, Y: 0, Z: 0, W: 1},
			HasGeometry: true,
			Color:       [3]uint8{10, 20, 30},
			HasColor:    true,
			Opacity:     200,
			HasOpacity:  true,
		},
		{
			X: -1, Y: -2, Z: -3,
			Scale:       [3]float32{1, 1, 1},
			Rotation:    splat.Quaternion{X: 0.5, Y: 0.5, Z: 0.5, W: 0.5},
			HasGeometry: true,
			Color:       [3]uint8{40, 50, 60},
			HasColor:    true,
			Opacity:     255,
			HasOpacity:  true,
		},
	}
}

func TestWriteReadRoundTripLevelFull(t *testing.T) {
	w, err := writer.New(writer.WithCompressionLevel(format.LevelFull))
	require.NoError(t, err)

	buf, err := w.Write([]writer.Array{{Splats: sampleSplats(), SHDegree: format.SHDegree0}})
	require.NoError(t, err)

	r, err := New(buf)
	require.NoError(t, err)
	require.Equal(t, 2, r.SplatCount())

	c0 := r.Center(0)
	require.InDelta(t, 1.0, c0.X, 1e-5)
	require.InDelta(t, 2.0, c0.Y, 1e-5)
	require.InDelta(t, 3.0, c0.Z, 1e-5)

	col0 := r.Color(0)
	require.Equal(t, [4]uint8{10, 20, 30, 200}, col0)

	rot1 := r.Rotation(1)
	require.InDelta(t, 0.5, rot1.X, 1e-5)
	require.InDelta(t, 0.5, rot1.Y, 1e-5)
	require.InDelta(t, 0.5, rot1.Z, 1e-5)
	require.InDelta(t, 0.5, rot1.W, 1e-5)
}

func TestWriteReadRoundTripLevelCompressed(t *testing.T) {
	w, err := writer.New(
		writer.WithCompressionLevel(format.LevelCompressed),
		writer.WithBlockSize(10),
	)
	require.NoError(t, err)

	buf, err := w.Write([]writer.Array{{Splats: sampleSplats(), SHDegree: format.SHDegree0}})
	require.NoError(t, err)

	r, err := New(buf)
	require.NoError(t, err)

	c0 := r.Center(0)
	require.InDelta(t, 1.0, c0.X, 0.01)
	require.InDelta(t, 2.0, c0.Y, 0.01)
	require.InDelta(t, 3.0, c0.Z, 0.01)
}

func TestMinimumAlphaFiltersSplats(t *testing.T) {
	splats := sampleSplats()
	splats[0].Opacity = 5 // below a minimumAlpha of 10

	w, err := writer.New(writer.WithMinimumAlpha(10))
	require.NoError(t, err)

	buf, err := w.Write([]writer.Array{{Splats: splats, SHDegree: format.SHDegree0}})
	require.NoError(t, err)

	r, err := New(buf)
	require.NoError(t, err)
	require.Equal(t, 1, r.SplatCount())
}

func TestFillColorsZeroesLowAlphaInOutputOnly(t *testing.T) {
	w, err := writer.New()
	require.NoError(t, err)

	buf, err := w.Write([]writer.Array{{Splats: sampleSplats(), SHDegree: format.SHDegree0}})
	require.NoError(t, err)

	r, err := New(buf)
	require.NoError(t, err)

	out := make([]uint8, 2*4)
	r.FillColors(out, 255, 0, 1, 0)
	require.Equal(t, uint8(0), out[3]) // splat 0 has opacity 200 < 255
	require.Equal(t, uint8(255), out[7])

	// Stored byte is untouched.
	require.Equal(t, uint8(200), r.Color(0)[3])
}

func TestMixedSHDegreeRejected(t *testing.T) {
	w, err := writer.New()
	require.NoError(t, err)

	arrays := []writer.Array{
		{Splats: sampleSplats(), SHDegree: format.SHDegree0},
		{Splats: sampleSplats(), SHDegree: format.SHDegree1},
	}

	_, err = w.Write(arrays)
	require.Error(t, err)
}

func TestNewRejectsTruncatedSectionHeader(t *testing.T) {
	w, err := writer.New()
	require.NoError(t, err)

	buf, err := w.Write([]writer.Array{{Splats: sampleSplats(), SHDegree: format.SHDegree0}})
	require.NoError(t, err)

	// Cut the buffer off partway through the lone section's header table,
	// before any payload bytes exist: too short for New to even parse the
	// section header.
	_, err = New(buf[:section.FileHeaderSize+section.SectionHeaderSize/2])
	require.ErrorIs(t, err, errs.ErrBufferTruncated)
}

func TestNewRejectsTruncatedSectionPayload(t *testing.T) {
	w, err := writer.New()
	require.NoError(t, err)

	buf, err := w.Write([]writer.Array{{Splats: sampleSplats(), SHDegree: format.SHDegree0}})
	require.NoError(t, err)

	// The section header parses fine, but its declared storageSizeBytes
	// claims more payload than remains in the truncated buffer.
	_, err = New(buf[:len(buf)-1])
	require.ErrorIs(t, err, errs.ErrBufferTruncated)
}
