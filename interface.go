package replay

import "time"

// Sample is a single interleaved channel value. A frame of stereo audio consists of two
// consecutive Samples, the left one first.
type Sample interface {
	int16 | float32 | float64
}

// SampleFloat converts s to a float64 in the range [-1, +1].
func SampleFloat[S Sample](s S) float64 {
	switch x := any(s).(type) {
	case int16:
		return float64(x) / (1<<15 - 1)
	case float32:
		return float64(x)
	case float64:
		return x
	}
	return 0
}

// Source is a finite sequence of interleaved audio samples together with the metadata needed to
// interpret them.
//
// The metadata methods describe the sample that the next call to Next will return. They must not
// change the state of the Source, so calling them any number of times is safe.
type Source[S Sample] interface {
	// Next returns the next sample. Once Next returns ok == false, the Source is drained and
	// every following call also returns ok == false.
	Next() (sample S, ok bool)

	// CurrentFrameLen returns the number of samples left in the current frame. All samples in a
	// frame share the same number of channels and sample rate. If known is false, the current
	// frame lasts until the end of the Source. A known length of 0 means that the Source is at
	// a frame boundary with nothing left in the current frame.
	CurrentFrameLen() (n int, known bool)

	// Channels returns the number of interleaved channels of the current frame.
	Channels() int

	// SampleRate returns the number of frames per second of the current frame.
	SampleRate() SampleRate

	// TotalDuration returns the duration of the whole Source, if known.
	TotalDuration() (d time.Duration, known bool)

	// Err returns an error which occurred while producing samples. Adapters propagate the
	// errors of the Sources they wrap.
	Err() error
}

// SampleRate is the number of frames played per second.
type SampleRate int

// D returns the duration of n frames.
func (sr SampleRate) D(n int) time.Duration {
	return time.Second * time.Duration(n) / time.Duration(sr)
}

// N returns the number of frames that last for d duration.
func (sr SampleRate) N(d time.Duration) int {
	return int(d * time.Duration(sr) / time.Second)
}

// Streamer is able to stream a finite or infinite sequence of stereo frames. It is the
// interface consumed by the Mixer and the speaker.
//
// Stream copies at most len(samples) next frames into samples and returns the number of frames
// streamed. ok is false once the Streamer is drained and n is 0.
type Streamer interface {
	Stream(samples [][2]float64) (n int, ok bool)
	Err() error
}

// StreamerFunc is a Streamer created by simply wrapping a streaming function (usually a
// closure, which encloses a time tracking variable). This sometimes simplifies creating new
// streamers.
//
// Example:
//
//	noise := StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
//		for i := range samples {
//			samples[i][0] = rand.Float64()*2 - 1
//			samples[i][1] = rand.Float64()*2 - 1
//		}
//		return len(samples), true
//	})
type StreamerFunc func(samples [][2]float64) (n int, ok bool)

// Stream calls the wrapped streaming function.
func (sf StreamerFunc) Stream(samples [][2]float64) (n int, ok bool) {
	return sf(samples)
}

// Err always returns nil.
func (sf StreamerFunc) Err() error {
	return nil
}
