package layout

import (
	"testing"

	"github.com/GianlucaZoni/GaussianSplats3D/format"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		level         format.CompressionLevel
		degree        format.SHDegree
		wantBytesPer  int
		wantScaleRange int
	}{
		{"level0 degree0", format.LevelFull, format.SHDegree0, 12 + 12 + 16 + 4, 1},
		{"level0 degree1", format.LevelFull, format.SHDegree1, 12 + 12 + 16 + 4 + 9*4, 1},
		{"level0 degree2", format.LevelFull, format.SHDegree2, 12 + 12 + 16 + 4 + 24*4, 1},
		{"level1 degree0", format.LevelCompressed, format.SHDegree0, 6 + 6 + 8 + 4, 32767},
		{"level1 degree2", format.LevelCompressed, format.SHDegree2, 6 + 6 + 8 + 4 + 24*2, 32767},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(tt.level, tt.degree)
			require.NoError(t, err)
			require.Equal(t, tt.wantBytesPer, d.BytesPerSplat)
			require.Equal(t, tt.wantScaleRange, d.ScaleRange)
		})
	}
}

func TestNewInvalid(t *testing.T) {
	_, err := New(format.CompressionLevel(9), format.SHDegree0)
	require.Error(t, err)

	_, err = New(format.LevelFull, format.SHDegree(9))
	require.Error(t, err)
}
