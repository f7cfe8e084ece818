package replay

import (
	"math"
	"time"
)

// RepeatWithCount returns a Source which plays s count times back to back.
//
// s is read only once. Its samples are cached by a Buffered and every repeated pass starts from a
// fresh clone of the Buffered, so s may be a one-shot Source, like a decoder of a non-seekable
// stream. The memory used is bounded by one pass worth of samples, regardless of count.
//
// A count of 0 yields no samples at all.
//
// The returned Source propagates s's errors through Err.
func RepeatWithCount[S Sample](s Source[S], count uint32) *Repeating[S] {
	template := Buffer(s)
	return &Repeating[S]{
		live:      template.Clone(),
		template:  template,
		total:     count,
		remaining: count,
	}
}

// Repeating is a Source which plays a Buffered Source a fixed number of times. Create it with
// RepeatWithCount.
type Repeating[S Sample] struct {
	live     *Buffered[S] // current pass
	template *Buffered[S] // start of every pass, never advanced
	total    uint32
	// remaining counts the passes left including the one in progress. It drops to 0 only when
	// the Repeating is drained for good.
	remaining uint32
}

// Next returns the next sample of the current pass. When the current pass runs out, the next
// pass starts from the beginning of the cached audio.
func (r *Repeating[S]) Next() (sample S, ok bool) {
	if r.remaining == 0 {
		return sample, false
	}
	if sample, ok = r.live.Next(); ok {
		return sample, true
	}
	if r.remaining > 1 {
		r.remaining--
		r.live = r.template.Clone()
		if sample, ok = r.live.Next(); ok {
			return sample, true
		}
		// the cached audio is empty, no pass will ever produce anything
	}
	r.remaining = 0
	return sample, false
}

// atSeam reports whether the current pass has nothing left in its current frame, which means
// the next sample, if any, comes from the start of the next pass.
func (r *Repeating[S]) atSeam() bool {
	n, known := r.live.CurrentFrameLen()
	return known && n == 0
}

// CurrentFrameLen returns the frame length of the current pass. At the end of a pass, it
// returns the length of the first frame of the next pass.
func (r *Repeating[S]) CurrentFrameLen() (n int, known bool) {
	if r.atSeam() {
		return r.template.CurrentFrameLen()
	}
	return r.live.CurrentFrameLen()
}

// Channels returns the number of channels of the current frame. At the end of a pass, including
// the last one, it returns the number of channels of the first frame of the audio.
func (r *Repeating[S]) Channels() int {
	if r.atSeam() {
		return r.template.Channels()
	}
	return r.live.Channels()
}

// SampleRate returns the sample rate of the current frame. At the end of a pass, including the
// last one, it returns the sample rate of the first frame of the audio.
func (r *Repeating[S]) SampleRate() SampleRate {
	if r.atSeam() {
		return r.template.SampleRate()
	}
	return r.live.SampleRate()
}

// TotalDuration returns the duration of one pass multiplied by the requested count. It does not
// change as the Repeating is played.
func (r *Repeating[S]) TotalDuration() (d time.Duration, known bool) {
	d, known = r.template.TotalDuration()
	if !known {
		return 0, false
	}
	return mulDuration(d, r.total), true
}

// Err propagates the wrapped Source's errors.
func (r *Repeating[S]) Err() error {
	return r.live.Err()
}

// Pass returns the 1-based number of the pass which the last sample returned by Next belongs to,
// and the requested count. Once the Repeating is drained, current equals total.
func (r *Repeating[S]) Pass() (current, total uint32) {
	if r.remaining == 0 {
		return r.total, r.total
	}
	return r.total - r.remaining + 1, r.total
}

// Clone returns a copy of r which shares the cached audio with r, but plays independently of r.
func (r *Repeating[S]) Clone() *Repeating[S] {
	return &Repeating[S]{
		live:      r.live.Clone(),
		template:  r.template.Clone(),
		total:     r.total,
		remaining: r.remaining,
	}
}

func mulDuration(d time.Duration, n uint32) time.Duration {
	if n != 0 && d > math.MaxInt64/time.Duration(n) {
		return math.MaxInt64
	}
	return d * time.Duration(n)
}
