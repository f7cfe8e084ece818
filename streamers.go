package replay

// ToStreamer returns a Streamer which plays s as stereo frames. Mono audio is played on both
// channels, channels past the second one are dropped.
//
// The number of channels is queried before each frame is read, so s may change its format
// between frames.
//
// The returned Streamer propagates s's errors through Err.
func ToStreamer[S Sample](s Source[S]) Streamer {
	return &sourceStreamer[S]{s: s}
}

type sourceStreamer[S Sample] struct {
	s Source[S]
}

func (ss *sourceStreamer[S]) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) {
		channels := ss.s.Channels()
		if channels < 1 {
			channels = 1
		}
		var (
			frame [2]float64
			read  int
		)
		for c := 0; c < channels; c++ {
			x, ok := ss.s.Next()
			if !ok {
				break
			}
			if c < len(frame) {
				frame[c] = SampleFloat(x)
			}
			read++
		}
		if read == 0 {
			break
		}
		if channels == 1 {
			frame[1] = frame[0]
		}
		samples[n] = frame
		n++
		if read < channels {
			break
		}
	}
	return n, n > 0
}

func (ss *sourceStreamer[S]) Err() error {
	return ss.s.Err()
}

// Seq takes zero or more Streamers and returns a Streamer which streams them one by one without pauses.
//
// Seq does not propagate errors from the Streamers.
func Seq(s ...Streamer) Streamer {
	i := 0
	return StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i < len(s) && len(samples) > 0 {
			sn, sok := s[i].Stream(samples)
			samples = samples[sn:]
			n, ok = n+sn, ok || sok
			if !sok {
				i++
			}
		}
		return n, ok
	})
}

// Callback returns a Streamer, which does not stream any samples, but instead calls f the first
// time its Stream method is called.
func Callback(f func()) Streamer {
	return StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if f != nil {
			f()
			f = nil
		}
		return 0, false
	})
}
