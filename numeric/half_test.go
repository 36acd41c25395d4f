package numeric

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFloatToHalfRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   float32
	}{
		{"zero", 0},
		{"one", 1},
		{"negative one", -1},
		{"small fraction", 0.01},
		{"large value", 1000.5},
		{"negative fraction", -0.125},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := FloatToHalf(tt.in)
			back := HalfToFloat(h)
			require.InDelta(t, float64(tt.in), float64(back), 0.01)
		})
	}
}

func TestFloatToHalfSaturatesToInfinity(t *testing.T) {
	h := FloatToHalf(1e10)
	require.True(t, HalfToFloat(h) > 60000)
}

func TestClamp(t *testing.T) {
	require.Equal(t, int32(5), ClampI32(10, 0, 5))
	require.Equal(t, int32(0), ClampI32(-10, 0, 5))
	require.Equal(t, int32(3), ClampI32(3, 0, 5))

	require.Equal(t, float32(5), ClampF32(10, 0, 5))
	require.Equal(t, float32(0), ClampF32(-10, 0, 5))
}
