package generators

import "github.com/faiface/replay"

// SquareTone creates a Source which will produce an infinite square wave with the given frequency.
// sr must be more than two times greater than freq, otherwise this function will return an error.
func SquareTone(sr replay.SampleRate, freq float64) (replay.Source[float64], error) {
	return newOscillator("square", sr, freq, func(t float64) float64 {
		if t < 0.5 {
			return 1.0
		}
		return -1.0
	})
}
