package effects

import (
	"time"

	"github.com/faiface/replay"
)

// Pan balances the stereo frames of the wrapped Source between the left and the right channel.
// The Pan field value of -1 means that both original channels go through the left channel. The
// value of +1 means the same for the right channel. The value of 0 changes nothing.
type Pan[S replay.Sample] struct {
	Source replay.Source[S]
	Pan    float64
	p      pairs[S]
}

func (p *Pan[S]) balance(l, r float64) (float64, float64) {
	switch {
	case p.Pan < 0:
		return l + -p.Pan*r, r - -p.Pan*r
	case p.Pan > 0:
		return l - p.Pan*l, r + p.Pan*l
	}
	return l, r
}

// Next returns the next value balanced by Pan.
func (p *Pan[S]) Next() (x S, ok bool) {
	return p.p.next(p.Source, p.balance)
}

func (p *Pan[S]) CurrentFrameLen() (n int, known bool)         { return p.p.currentFrameLen(p.Source) }
func (p *Pan[S]) Channels() int                                { return p.p.channelsOf(p.Source) }
func (p *Pan[S]) SampleRate() replay.SampleRate                { return p.p.sampleRateOf(p.Source) }
func (p *Pan[S]) TotalDuration() (d time.Duration, known bool) { return p.Source.TotalDuration() }
func (p *Pan[S]) Err() error                                   { return p.Source.Err() }
