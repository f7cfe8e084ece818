package generators_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faiface/replay"
	"github.com/faiface/replay/generators"
)

func take(t *testing.T, s replay.Source[float64], n int) []float64 {
	t.Helper()
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		x, ok := s.Next()
		require.True(t, ok)
		out = append(out, x)
	}
	return out
}

func TestSineTone(t *testing.T) {
	s, err := generators.SineTone(8000, 2000)
	require.NoError(t, err)
	got := take(t, s, 5)
	want := []float64{0, 1, 0, -1, 0}
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9)
	}
	assert.Equal(t, 1, s.Channels())
	_, known := s.TotalDuration()
	assert.False(t, known)
	_, known = s.CurrentFrameLen()
	assert.False(t, known)
}

func TestShapes(t *testing.T) {
	tests := []struct {
		shape string
		want  []float64
	}{
		{"square", []float64{1, 1, -1, -1, 1}},
		{"triangle", []float64{-1, 0, 1, 0, -1}},
		{"sawtooth", []float64{-1, -0.5, 0, 0.5, -1}},
		{"sawtooth-reversed", []float64{1, 0.5, 0, -0.5, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.shape, func(t *testing.T) {
			tone, ok := generators.Tone(tt.shape)
			require.True(t, ok)
			s, err := tone(8000, 2000)
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.want, take(t, s, len(tt.want)), 1e-9)
		})
	}

	_, ok := generators.Tone("noise")
	assert.False(t, ok)
}

func TestNyquist(t *testing.T) {
	_, err := generators.SineTone(8000, 4000)
	assert.Error(t, err)
	_, err = generators.SquareTone(0, 440)
	assert.Error(t, err)
}

func TestTakeTone(t *testing.T) {
	s, err := generators.SineTone(44100, 440)
	require.NoError(t, err)
	tone := replay.Take(44100, s)
	d, known := tone.TotalDuration()
	assert.True(t, known)
	assert.Equal(t, float64(1), math.Round(d.Seconds()))

	r := replay.RepeatWithCount(tone, 3)
	d, known = r.TotalDuration()
	assert.True(t, known)
	assert.InDelta(t, 3.0, d.Seconds(), 1e-6)
}

func TestShapesAreKnown(t *testing.T) {
	for _, shape := range generators.Shapes {
		_, ok := generators.Tone(shape)
		assert.True(t, ok, shape)
	}
}
