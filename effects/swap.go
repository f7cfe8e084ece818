package effects

import (
	"time"

	"github.com/faiface/replay"
)

// pairs maps the left and right values of stereo samples. The right value is held back until
// the next call, together with the metadata of the frame it came from.
type pairs[S replay.Sample] struct {
	pending  bool
	right    S
	frameLen int
	known    bool
	channels int
	rate     replay.SampleRate
}

func (p *pairs[S]) next(s replay.Source[S], f func(l, r float64) (float64, float64)) (x S, ok bool) {
	if p.pending {
		p.pending = false
		return p.right, true
	}
	ch, rate := s.Channels(), s.SampleRate()
	n, known := s.CurrentFrameLen()
	l, ok := s.Next()
	if !ok || ch != 2 {
		return l, ok
	}
	r, ok := s.Next()
	if !ok {
		return l, true
	}
	lf, rf := f(float64(l), float64(r))
	p.pending, p.right = true, fromFloat[S](rf)
	p.frameLen, p.known = n-1, known
	p.channels, p.rate = ch, rate
	return fromFloat[S](lf), true
}

func (p *pairs[S]) currentFrameLen(s replay.Source[S]) (n int, known bool) {
	if p.pending {
		return p.frameLen, p.known
	}
	return s.CurrentFrameLen()
}

func (p *pairs[S]) channelsOf(s replay.Source[S]) int {
	if p.pending {
		return p.channels
	}
	return s.Channels()
}

func (p *pairs[S]) sampleRateOf(s replay.Source[S]) replay.SampleRate {
	if p.pending {
		return p.rate
	}
	return s.SampleRate()
}

// Swap swaps the left and right channel of the stereo frames of the wrapped Source. Frames
// with a different number of channels pass through unchanged.
type Swap[S replay.Sample] struct {
	Source replay.Source[S]
	p      pairs[S]
}

func swap(l, r float64) (float64, float64) { return r, l }

func (s *Swap[S]) Next() (x S, ok bool) {
	return s.p.next(s.Source, swap)
}

func (s *Swap[S]) CurrentFrameLen() (n int, known bool)         { return s.p.currentFrameLen(s.Source) }
func (s *Swap[S]) Channels() int                                { return s.p.channelsOf(s.Source) }
func (s *Swap[S]) SampleRate() replay.SampleRate                { return s.p.sampleRateOf(s.Source) }
func (s *Swap[S]) TotalDuration() (d time.Duration, known bool) { return s.Source.TotalDuration() }

// Err propagates the wrapped Source's errors.
func (s *Swap[S]) Err() error {
	return s.Source.Err()
}
