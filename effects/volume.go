package effects

import (
	"math"
	"time"

	"github.com/faiface/replay"
)

// Volume adjusts the volume of the wrapped Source in a human-natural way. Human's perception of
// volume is roughly logarithmic, so every value is multiplied by Base^Volume. Volume 0 leaves the
// Source unchanged, Silent mutes it. The fields may be changed during playback while the speaker
// is locked.
type Volume[S replay.Sample] struct {
	Source replay.Source[S]
	Base   float64
	Volume float64
	Silent bool
}

func (v *Volume[S]) Next() (x S, ok bool) {
	x, ok = v.Source.Next()
	if !ok {
		return x, false
	}
	if v.Silent {
		return 0, true
	}
	return fromFloat[S](float64(x) * math.Pow(v.Base, v.Volume)), true
}

func (v *Volume[S]) CurrentFrameLen() (n int, known bool)         { return v.Source.CurrentFrameLen() }
func (v *Volume[S]) Channels() int                                { return v.Source.Channels() }
func (v *Volume[S]) SampleRate() replay.SampleRate                { return v.Source.SampleRate() }
func (v *Volume[S]) TotalDuration() (d time.Duration, known bool) { return v.Source.TotalDuration() }
func (v *Volume[S]) Err() error                                   { return v.Source.Err() }
