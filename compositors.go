package replay

import "time"

// FromSamples returns a Source which plays the given interleaved samples. The samples are split
// into frames of frameLen samples, the last one possibly shorter. If frameLen is not positive,
// all samples form a single frame.
//
// The returned Source does not copy samples, so they must not be modified while it's in use.
func FromSamples[S Sample](channels int, rate SampleRate, frameLen int, samples []S) Source[S] {
	if channels < 1 {
		channels = 1
	}
	return &sliceSource[S]{
		samples:  samples,
		frameLen: frameLen,
		channels: channels,
		rate:     rate,
	}
}

// Empty returns a Source which yields no samples and lasts for zero duration.
func Empty[S Sample](channels int, rate SampleRate) Source[S] {
	return FromSamples[S](channels, rate, 0, nil)
}

type sliceSource[S Sample] struct {
	samples  []S
	pos      int
	frameLen int
	channels int
	rate     SampleRate
}

func (s *sliceSource[S]) Next() (sample S, ok bool) {
	if s.pos >= len(s.samples) {
		return sample, false
	}
	sample = s.samples[s.pos]
	s.pos++
	return sample, true
}

func (s *sliceSource[S]) CurrentFrameLen() (n int, known bool) {
	left := len(s.samples) - s.pos
	if s.frameLen <= 0 {
		return left, true
	}
	n = s.frameLen - s.pos%s.frameLen
	if n > left {
		n = left
	}
	return n, true
}

func (s *sliceSource[S]) Channels() int          { return s.channels }
func (s *sliceSource[S]) SampleRate() SampleRate { return s.rate }
func (s *sliceSource[S]) Err() error             { return nil }

func (s *sliceSource[S]) TotalDuration() (d time.Duration, known bool) {
	return s.rate.D(len(s.samples) / s.channels), true
}

// Take returns a Source which plays at most n samples from s.
//
// The reported duration is the shorter of s's duration and the duration of n samples in s's
// initial format, so taking from an infinite Source yields a Source of known duration.
//
// The returned Source propagates s's errors through Err.
func Take[S Sample](n int, s Source[S]) Source[S] {
	return &take[S]{
		s:          s,
		numSamples: n,
		duration:   s.SampleRate().D(n / s.Channels()),
	}
}

type take[S Sample] struct {
	s          Source[S]
	currSample int
	numSamples int
	duration   time.Duration
}

func (t *take[S]) Next() (sample S, ok bool) {
	if t.currSample >= t.numSamples {
		return sample, false
	}
	sample, ok = t.s.Next()
	if ok {
		t.currSample++
	}
	return sample, ok
}

func (t *take[S]) CurrentFrameLen() (n int, known bool) {
	left := t.numSamples - t.currSample
	if left <= 0 {
		return 0, true
	}
	n, known = t.s.CurrentFrameLen()
	if !known || n > left {
		return left, true
	}
	return n, true
}

func (t *take[S]) Channels() int          { return t.s.Channels() }
func (t *take[S]) SampleRate() SampleRate { return t.s.SampleRate() }
func (t *take[S]) Err() error             { return t.s.Err() }

func (t *take[S]) TotalDuration() (d time.Duration, known bool) {
	d, known = t.s.TotalDuration()
	if !known || d > t.duration {
		return t.duration, true
	}
	return d, true
}

// Chain takes zero or more Sources and returns a Source which plays them one by one without
// pauses. The format may change from one Source to the next, the boundary between them is
// always a frame boundary.
//
// The total duration is known only if the durations of all the Sources are known.
//
// The returned Source propagates the error of the first Source that has one.
func Chain[S Sample](s ...Source[S]) Source[S] {
	return &chain[S]{s: s}
}

type chain[S Sample] struct {
	s []Source[S]
	i int
}

func (c *chain[S]) Next() (sample S, ok bool) {
	for c.i < len(c.s) {
		if sample, ok = c.s[c.i].Next(); ok {
			return sample, true
		}
		c.i++
	}
	return sample, false
}

// active returns the Source which will produce the next sample, skipping over drained ones
// without consuming anything. It returns nil if there are no Sources.
func (c *chain[S]) active() Source[S] {
	if len(c.s) == 0 {
		return nil
	}
	for j := c.i; j < len(c.s); j++ {
		if n, known := c.s[j].CurrentFrameLen(); !known || n > 0 {
			return c.s[j]
		}
	}
	return c.s[len(c.s)-1]
}

func (c *chain[S]) CurrentFrameLen() (n int, known bool) {
	a := c.active()
	if a == nil {
		return 0, true
	}
	return a.CurrentFrameLen()
}

func (c *chain[S]) Channels() int {
	a := c.active()
	if a == nil {
		return 1
	}
	return a.Channels()
}

func (c *chain[S]) SampleRate() SampleRate {
	a := c.active()
	if a == nil {
		return 44100
	}
	return a.SampleRate()
}

func (c *chain[S]) TotalDuration() (d time.Duration, known bool) {
	for _, s := range c.s {
		sd, ok := s.TotalDuration()
		if !ok {
			return 0, false
		}
		d += sd
	}
	return d, true
}

func (c *chain[S]) Err() error {
	for _, s := range c.s {
		if err := s.Err(); err != nil {
			return err
		}
	}
	return nil
}
