// Package generators implements infinite mono Sources of basic waveforms. Use replay.Take to
// limit their length and effects.Volume to change their amplitude.
package generators

import (
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/faiface/replay"
)

// oscillator plays wave, a function of the phase in [0, 1), at a fixed frequency.
type oscillator struct {
	rate replay.SampleRate
	wave func(t float64) float64
	dt   float64
	t    float64
}

func newOscillator(name string, sr replay.SampleRate, freq float64, wave func(t float64) float64) (replay.Source[float64], error) {
	if sr <= 0 {
		return nil, errors.Errorf("%s tone generator: invalid sample rate %d", name, sr)
	}
	dt := freq / float64(sr)
	if dt < 0 || dt >= 1.0/2.0 {
		return nil, errors.Errorf("%s tone generator: samplerate must be at least 2 times greater than frequency", name)
	}
	return &oscillator{rate: sr, wave: wave, dt: dt}, nil
}

func (o *oscillator) Next() (x float64, ok bool) {
	x = o.wave(o.t)
	_, o.t = math.Modf(o.t + o.dt)
	return x, true
}

func (o *oscillator) CurrentFrameLen() (n int, known bool)         { return 0, false }
func (o *oscillator) Channels() int                                { return 1 }
func (o *oscillator) SampleRate() replay.SampleRate                { return o.rate }
func (o *oscillator) TotalDuration() (d time.Duration, known bool) { return 0, false }
func (o *oscillator) Err() error                                   { return nil }
