package replay_test

import (
	"math"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/faiface/replay"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestFormatEncodeDecode(t *testing.T) {
	formats := make(chan replay.Format)
	go func() {
		defer close(formats)
		for _, sampleRate := range []replay.SampleRate{100, 2347, 44100, 48000} {
			for _, numChannels := range []int{1, 2, 3, 4} {
				for _, precision := range []int{1, 2, 3, 4, 5, 6} {
					formats <- replay.Format{
						SampleRate:  sampleRate,
						NumChannels: numChannels,
						Precision:   precision,
					}
				}
			}
		}
	}()

	for format := range formats {
		for i := 0; i < 20; i++ {
			deviation := 2.0 / (math.Pow(2, float64(format.Precision)*8) - 2)
			x := rand.Float64()*2 - 1

			tmp := make([]byte, format.Precision)
			require.Equal(t, format.Precision, format.EncodeSigned(tmp, x))
			decoded, _ := format.DecodeSigned(tmp)
			require.InDelta(t, x, decoded, deviation, "signed decoded value is too different (format: %+v)", format)

			format.EncodeUnsigned(tmp, x)
			decoded, _ = format.DecodeUnsigned(tmp)
			require.InDelta(t, x, decoded, deviation, "unsigned decoded value is too different (format: %+v)", format)
		}
	}
}

func TestFormatEncodeClamps(t *testing.T) {
	f := replay.Format{SampleRate: 44100, NumChannels: 1, Precision: 2}
	tmp := make([]byte, 2)

	f.EncodeSigned(tmp, 3)
	assert.Equal(t, []byte{0xff, 0x7f}, tmp)
	f.EncodeSigned(tmp, -3)
	assert.Equal(t, []byte{0x01, 0x80}, tmp)

	x, n := f.DecodeSigned([]byte{0x01, 0x80})
	assert.Equal(t, 2, n)
	assert.Equal(t, -1.0, x)
}

func TestSampleRate(t *testing.T) {
	sr := replay.SampleRate(8000)
	assert.Equal(t, 500*time.Microsecond, sr.D(4))
	assert.Equal(t, 8000, sr.N(time.Second))
}

func TestBufferedReadsInputOnce(t *testing.T) {
	data := randomData(100)
	input := newOneShot(data)
	input.frameLen = 7

	b := replay.Buffer[float64](input)
	clone, another := b.Clone(), b.Clone()

	require.Equal(t, data, collect[float64](b))
	pulls := input.pulls

	require.Equal(t, data, collect[float64](clone))
	require.Equal(t, data, collect[float64](another))
	assert.Empty(t, collect[float64](b.Clone()), "a clone of a drained cursor is drained too")
	assert.Equal(t, pulls, input.pulls, "the input must not be read again")
}

func TestBufferedPullsPastEndOnce(t *testing.T) {
	input := newOneShot(randomData(10))
	b := replay.Buffer[float64](input)

	require.Len(t, collect[float64](b), 10)
	assert.Equal(t, 11, input.pulls)
	assert.Equal(t, [2]interface{}{0, true}, frameLen[float64](b))

	require.Empty(t, collect[float64](b.Clone()))
	_, ok := b.Next()
	assert.False(t, ok)
	assert.Equal(t, 11, input.pulls, "the input must be asked past its end only once")
}

func TestBufferedCloneIsIndependent(t *testing.T) {
	data := randomData(50)
	b := replay.Buffer[float64](newOneShot(data))

	require.Equal(t, data[:20], collectN[float64](b, 20))
	clone := b.Clone()
	require.Equal(t, data[20:30], collectN[float64](clone, 10))
	require.Equal(t, data[20:], collect[float64](b))
	require.Equal(t, data[30:], collect[float64](clone))
}

func TestBufferedFrames(t *testing.T) {
	input := newOneShot([]float64{1, 2, 3, 4, 5})
	input.frameLen = 2
	input.channels = 2
	input.rate = 48000
	b := replay.Buffer[float64](input)

	assert.Equal(t, [2]interface{}{2, true}, frameLen[float64](b))
	assert.Equal(t, 2, b.Channels())
	assert.Equal(t, replay.SampleRate(48000), b.SampleRate())

	collectN[float64](b, 1)
	assert.Equal(t, [2]interface{}{1, true}, frameLen[float64](b))

	// the cursor moves to the next frame right after the last sample of the current one
	collectN[float64](b, 1)
	assert.Equal(t, [2]interface{}{2, true}, frameLen[float64](b))

	collectN[float64](b, 3)
	assert.Equal(t, [2]interface{}{0, true}, frameLen[float64](b))
	assert.Equal(t, 1, b.Channels())
	assert.Equal(t, replay.SampleRate(44100), b.SampleRate())
}

func TestBufferedUnknownFrameLen(t *testing.T) {
	data := randomData(3*32768 + 5)
	b := replay.Buffer[float64](newOneShot(data))

	// unknown frame lengths are cut into frames of bounded size
	n, known := b.CurrentFrameLen()
	assert.True(t, known)
	assert.Equal(t, 32768, n)
	require.Equal(t, data, collect[float64](b))
}

func TestBufferedFormatChange(t *testing.T) {
	b := replay.Buffer(replay.Chain(
		replay.FromSamples(1, 8000, 0, []int16{1, 2}),
		replay.FromSamples(2, 16000, 0, []int16{3, 4}),
	))

	assert.Equal(t, 1, b.Channels())
	collectN[int16](b, 2)
	assert.Equal(t, 2, b.Channels())
	assert.Equal(t, replay.SampleRate(16000), b.SampleRate())
	assert.Equal(t, []int16{3, 4}, collect[int16](b))
}

func TestBufferedEmpty(t *testing.T) {
	b := replay.Buffer(replay.Empty[float32](2, 8000))
	_, ok := b.Next()
	assert.False(t, ok)
	assert.Equal(t, [2]interface{}{0, true}, frameLen[float32](b))
	d, known := b.TotalDuration()
	assert.True(t, known)
	assert.Zero(t, d)
}

func TestBufferedPropagatesErr(t *testing.T) {
	input := newOneShot(randomData(10))
	b := replay.Buffer[float64](input)
	assert.NoError(t, b.Err())

	input.err = errors.New("broken")
	assert.EqualError(t, b.Clone().Err(), "broken")
}

func TestBufferedConcurrentClones(t *testing.T) {
	data := randomData(200000)
	input := newOneShot(data)
	input.frameLen = 1000
	b := replay.Buffer[float64](input)

	var (
		wg      sync.WaitGroup
		results = make([][]float64, 8)
	)
	for i := range results {
		wg.Add(1)
		go func(i int, clone *replay.Buffered[float64]) {
			defer wg.Done()
			results[i] = collect[float64](clone)
		}(i, b.Clone())
	}
	wg.Wait()

	for _, got := range results {
		require.Equal(t, data, got)
	}
	// the input reports the end through its frame length, so every pull yields a sample
	assert.Equal(t, len(data), input.pulls)
}
