package writer

import (
	"math"
	"testing"

	"github.com/GianlucaZoni/GaussianSplats3D/endian"
	"github.com/GianlucaZoni/GaussianSplats3D/format"
	"github.com/GianlucaZoni/GaussianSplats3D/layout"
	"github.com/GianlucaZoni/GaussianSplats3D/numeric"
	"github.com/GianlucaZoni/GaussianSplats3D/splat"
	"github.com/stretchr/testify/require"
)

func TestEncodeSplatFullPrecisionRoundTripsCenter(t *testing.T) {
	desc, err := layout.New(format.LevelFull, format.SHDegree0)
	require.NoError(t, err)

	dst := make([]byte, desc.BytesPerSplat)
	s := plainSplat(1.5, -2.5, 3.5)
	encodeSplat(dst, s, splat.Vec3{}, 0, desc, format.LevelFull)

	engine := endian.GetLittleEndianEngine()
	x := math.Float32frombits(engine.Uint32(dst[0:]))
	y := math.Float32frombits(engine.Uint32(dst[4:]))
	z := math.Float32frombits(engine.Uint32(dst[8:]))
	require.Equal(t, float32(1.5), x)
	require.Equal(t, float32(-2.5), y)
	require.Equal(t, float32(3.5), z)
}

func TestEncodeSplatQuantizedCenterIsBucketRelative(t *testing.T) {
	desc, err := layout.New(format.LevelCompressed, format.SHDegree0)
	require.NoError(t, err)

	dst := make([]byte, desc.BytesPerSplat)
	bucketCenter := splat.Vec3{X: 10, Y: 10, Z: 10}
	s := plainSplat(10, 10, 10) // splat sits exactly at the bucket center

	encodeSplat(dst, s, bucketCenter, 4.0, desc, format.LevelCompressed)

	engine := endian.GetLittleEndianEngine()
	ux := engine.Uint16(dst[0:])
	uy := engine.Uint16(dst[2:])
	uz := engine.Uint16(dst[4:])

	// delta=0 must quantize to exactly the mid-point (scaleRange).
	require.Equal(t, uint16(desc.ScaleRange), ux)
	require.Equal(t, uint16(desc.ScaleRange), uy)
	require.Equal(t, uint16(desc.ScaleRange), uz)
}

func TestQuantizeAxisClampsToRange(t *testing.T) {
	scaleRange := 32767
	// A huge delta must clamp to the maximum code, never overflow uint16.
	got := quantizeAxis(1e9, 1.0, scaleRange)
	require.Equal(t, uint16(2*scaleRange+1), got)

	got = quantizeAxis(-1e9, 1.0, scaleRange)
	require.Equal(t, uint16(0), got)
}

func TestEncodeSplatDefaultsMissingGeometryAndColor(t *testing.T) {
	desc, err := layout.New(format.LevelFull, format.SHDegree0)
	require.NoError(t, err)

	dst := make([]byte, desc.BytesPerSplat)
	s := UncompressedSplat{X: 0, Y: 0, Z: 0}
	encodeSplat(dst, s, splat.Vec3{}, 0, desc, format.LevelFull)

	engine := endian.GetLittleEndianEngine()
	scaleOff := desc.BytesPerCenter
	sx := math.Float32frombits(engine.Uint32(dst[scaleOff:]))
	require.Equal(t, splat.DefaultScale, sx)

	colorOff := desc.BytesPerCenter + desc.BytesPerScale + desc.BytesPerRotation
	require.Equal(t, [4]byte{255, 0, 0, 255}, [4]byte{dst[colorOff], dst[colorOff+1], dst[colorOff+2], dst[colorOff+3]})
}

func TestEncodeSHHalfPrecision(t *testing.T) {
	dst := make([]byte, 4)
	engine := endian.GetLittleEndianEngine()
	encodeSH(dst, []float32{0.25, -0.5}, format.LevelCompressed, engine)

	require.Equal(t, float32(0.25), numeric.HalfToFloat(engine.Uint16(dst[0:])))
	require.Equal(t, float32(-0.5), numeric.HalfToFloat(engine.Uint16(dst[2:])))
}
