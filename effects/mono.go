package effects

import (
	"time"

	"github.com/faiface/replay"
)

// Mono converts the wrapped Source to a mono Source by averaging the channels of every
// sample. A trailing partial sample is dropped.
//
// The returned Source propagates s's errors through Err.
func Mono[S replay.Sample](s replay.Source[S]) replay.Source[S] {
	return &mono[S]{s}
}

type mono[S replay.Sample] struct {
	s replay.Source[S]
}

func (m *mono[S]) Next() (x S, ok bool) {
	// the format of the current frame, before reading advances it
	ch := m.s.Channels()
	if ch <= 1 {
		return m.s.Next()
	}
	var sum float64
	for i := 0; i < ch; i++ {
		v, ok := m.s.Next()
		if !ok {
			return x, false
		}
		sum += float64(v)
	}
	return fromFloat[S](sum / float64(ch)), true
}

func (m *mono[S]) CurrentFrameLen() (n int, known bool) {
	n, known = m.s.CurrentFrameLen()
	if known {
		if ch := m.s.Channels(); ch > 1 {
			n /= ch
		}
	}
	return n, known
}

func (m *mono[S]) Channels() int                                { return 1 }
func (m *mono[S]) SampleRate() replay.SampleRate                { return m.s.SampleRate() }
func (m *mono[S]) TotalDuration() (d time.Duration, known bool) { return m.s.TotalDuration() }
func (m *mono[S]) Err() error                                   { return m.s.Err() }
