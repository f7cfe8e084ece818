package generators

import "github.com/faiface/replay"

// TriangleTone creates a Source which will produce an infinite triangle wave with the given
// frequency, rising from -1 to +1 in the first half of every period.
// sr must be more than two times greater than freq, otherwise this function will return an error.
func TriangleTone(sr replay.SampleRate, freq float64) (replay.Source[float64], error) {
	return newOscillator("triangle", sr, freq, func(t float64) float64 {
		if t < 0.5 {
			return 4.0*t - 1.0
		}
		return 3.0 - 4.0*t
	})
}
