package generators

import (
	"math"

	"github.com/faiface/replay"
)

// SineTone creates a Source which will produce an infinite sine wave with the given frequency.
// sr must be more than two times greater than freq, otherwise this function will return an error.
func SineTone(sr replay.SampleRate, freq float64) (replay.Source[float64], error) {
	return newOscillator("sine", sr, freq, func(t float64) float64 {
		return math.Sin(t * 2.0 * math.Pi)
	})
}
