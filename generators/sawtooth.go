package generators

import "github.com/faiface/replay"

// SawtoothTone creates a Source which will produce an infinite sawtooth wave with the given
// frequency.
// sr must be more than two times greater than freq, otherwise this function will return an error.
func SawtoothTone(sr replay.SampleRate, freq float64) (replay.Source[float64], error) {
	return newOscillator("sawtooth", sr, freq, func(t float64) float64 {
		return 2.0*t - 1.0
	})
}

// SawtoothToneReversed is like SawtoothTone, but the slope is negative.
func SawtoothToneReversed(sr replay.SampleRate, freq float64) (replay.Source[float64], error) {
	return newOscillator("sawtooth", sr, freq, func(t float64) float64 {
		return 2.0*(1-t) - 1.0
	})
}

// Shapes lists the wave shapes known to Tone.
var Shapes = []string{"sine", "square", "triangle", "sawtooth", "sawtooth-reversed"}

// Tone returns the generator of the named wave shape, one of Shapes.
func Tone(shape string) (func(sr replay.SampleRate, freq float64) (replay.Source[float64], error), bool) {
	switch shape {
	case "sine":
		return SineTone, true
	case "square":
		return SquareTone, true
	case "triangle":
		return TriangleTone, true
	case "sawtooth":
		return SawtoothTone, true
	case "sawtooth-reversed":
		return SawtoothToneReversed, true
	}
	return nil, false
}
