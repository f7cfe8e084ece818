package replay

import (
	"fmt"
	"sync"
	"time"
)

// Format is the format of an encoded audio stream.
type Format struct {
	// SampleRate is the number of frames per second.
	SampleRate SampleRate

	// NumChannels is the number of channels. The value of 1 is mono, the value of 2 is stereo.
	// The samples should always be interleaved.
	NumChannels int

	// Precision is the number of bytes used to encode a single channel value.
	Precision int
}

// Width returns the number of bytes per one frame (all channels).
//
// This is equal to f.NumChannels * f.Precision.
func (f Format) Width() int {
	return f.NumChannels * f.Precision
}

// EncodeSigned encodes a single channel value in f.Precision bytes to p in signed format.
func (f Format) EncodeSigned(p []byte, x float64) (n int) {
	return encodeFloat(true, p, f.Precision, norm(x))
}

// EncodeUnsigned encodes a single channel value in f.Precision bytes to p in unsigned format.
func (f Format) EncodeUnsigned(p []byte, x float64) (n int) {
	return encodeFloat(false, p, f.Precision, norm(x))
}

// DecodeSigned decodes a single channel value encoded in f.Precision bytes from p in signed
// format.
func (f Format) DecodeSigned(p []byte) (x float64, n int) {
	return decodeFloat(true, p, f.Precision)
}

// DecodeUnsigned decodes a single channel value encoded in f.Precision bytes from p in unsigned
// format.
func (f Format) DecodeUnsigned(p []byte) (x float64, n int) {
	return decodeFloat(false, p, f.Precision)
}

func encodeFloat(signed bool, p []byte, precision int, x float64) (n int) {
	if precision < 1 || precision > 7 {
		panic(fmt.Errorf("format: encode: invalid precision: %d", precision))
	}
	var xUint64 uint64
	if signed {
		xUint64 = floatToSigned(precision, x)
	} else {
		xUint64 = floatToUnsigned(precision, x)
	}
	for i := 0; i < precision; i++ {
		p[i] = byte(xUint64)
		xUint64 >>= 8
	}
	return precision
}

func decodeFloat(signed bool, p []byte, precision int) (x float64, n int) {
	if precision < 1 || precision > 7 {
		panic(fmt.Errorf("format: decode: invalid precision: %d", precision))
	}
	var xUint64 uint64
	for i := precision - 1; i >= 0; i-- {
		xUint64 <<= 8
		xUint64 += uint64(p[i])
	}
	if signed {
		return signedToFloat(precision, xUint64), precision
	}
	return unsignedToFloat(precision, xUint64), precision
}

func floatToSigned(precision int, x float64) uint64 {
	if x < 0 {
		compl := uint64(-x * float64(uint64(1)<<uint(precision*8-1)-1))
		return uint64(1)<<uint(precision*8) - compl
	}
	return uint64(x * float64(uint64(1)<<uint(precision*8-1)-1))
}

func floatToUnsigned(precision int, x float64) uint64 {
	return uint64((x + 1) / 2 * float64(uint64(1)<<uint(precision*8)-1))
}

func signedToFloat(precision int, xUint64 uint64) float64 {
	if xUint64 >= uint64(1)<<uint(precision*8-1) {
		compl := uint64(1)<<uint(precision*8) - xUint64
		return -float64(int64(compl)) / float64(uint64(1)<<uint(precision*8-1)-1)
	}
	return float64(int64(xUint64)) / float64(uint64(1)<<uint(precision*8-1)-1)
}

func unsignedToFloat(precision int, xUint64 uint64) float64 {
	return float64(xUint64)/float64(uint64(1)<<uint(precision*8)-1)*2 - 1
}

func norm(x float64) float64 {
	if x < -1 {
		return -1
	}
	if x > +1 {
		return +1
	}
	return x
}

// maxFrameLen caps the number of samples read from the input into one cached frame.
const maxFrameLen = 32768

type frame[S Sample] struct {
	samples  []S
	channels int
	rate     SampleRate
}

// cache materializes the frames of a one-shot Source. Frames are only ever appended. Once done,
// the input is never read again.
type cache[S Sample] struct {
	mu     sync.Mutex
	input  Source[S]
	frames []frame[S]
	done   bool

	duration      time.Duration
	durationKnown bool
}

// frame returns the i-th frame, pulling frames from the input until it is available. ok is
// false if the input ends before the i-th frame.
func (c *cache[S]) frame(i int) (f frame[S], ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for len(c.frames) <= i {
		if c.done {
			return frame[S]{}, false
		}
		f, ok := c.extract()
		if !ok {
			c.done = true
			return frame[S]{}, false
		}
		c.frames = append(c.frames, f)
	}
	return c.frames[i], true
}

func (c *cache[S]) extract() (f frame[S], ok bool) {
	n, known := c.input.CurrentFrameLen()
	if known && n == 0 {
		return frame[S]{}, false
	}
	if !known || n > maxFrameLen {
		n = maxFrameLen
	}
	f = frame[S]{
		samples:  make([]S, 0, n),
		channels: c.input.Channels(),
		rate:     c.input.SampleRate(),
	}
	for len(f.samples) < n {
		s, ok := c.input.Next()
		if !ok {
			c.done = true
			break
		}
		f.samples = append(f.samples, s)
	}
	if len(f.samples) == 0 {
		return frame[S]{}, false
	}
	return f, true
}

func (c *cache[S]) err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input.Err()
}

// Buffer wraps s into a Buffered, which remembers every sample it reads from s. Clones of the
// returned Buffered share the remembered samples, so s is never read more than once, no matter
// how many times the audio is replayed.
//
// The first frame of s is read right away, the rest is read lazily as the Buffered or any of its
// clones get to it.
func Buffer[S Sample](s Source[S]) *Buffered[S] {
	c := &cache[S]{input: s}
	c.duration, c.durationKnown = s.TotalDuration()
	b := &Buffered[S]{c: c}
	b.load(0)
	return b
}

// Buffered is a cursor into a cache of samples read from a one-shot Source. Use Clone to obtain
// another cursor positioned at the same place.
//
// Distinct clones may be used from distinct goroutines. A single Buffered is not safe for
// concurrent use.
type Buffered[S Sample] struct {
	c     *cache[S]
	cur   frame[S]
	index int
	pos   int
	end   bool
}

func (b *Buffered[S]) load(i int) {
	f, ok := b.c.frame(i)
	b.cur, b.index, b.pos, b.end = f, i, 0, !ok
}

// Next returns the next sample. The cursor moves on to the next frame as soon as the last
// sample of the current one is returned.
func (b *Buffered[S]) Next() (sample S, ok bool) {
	if b.end {
		return sample, false
	}
	sample = b.cur.samples[b.pos]
	b.pos++
	if b.pos >= len(b.cur.samples) {
		b.load(b.index + 1)
	}
	return sample, true
}

// CurrentFrameLen returns the number of samples left in the current cached frame, or 0 once the
// Buffered is drained.
func (b *Buffered[S]) CurrentFrameLen() (n int, known bool) {
	if b.end {
		return 0, true
	}
	return len(b.cur.samples) - b.pos, true
}

// Channels returns the number of channels of the current frame, or 1 once the Buffered is
// drained.
func (b *Buffered[S]) Channels() int {
	if b.end {
		return 1
	}
	return b.cur.channels
}

// SampleRate returns the sample rate of the current frame, or 44100 once the Buffered is
// drained.
func (b *Buffered[S]) SampleRate() SampleRate {
	if b.end {
		return 44100
	}
	return b.cur.rate
}

// TotalDuration returns the total duration reported by the wrapped Source when it was buffered.
func (b *Buffered[S]) TotalDuration() (d time.Duration, known bool) {
	return b.c.duration, b.c.durationKnown
}

// Err propagates the wrapped Source's errors.
func (b *Buffered[S]) Err() error {
	return b.c.err()
}

// Clone returns a new cursor at the current position of b. Reading from either one does not
// move the other.
func (b *Buffered[S]) Clone() *Buffered[S] {
	clone := *b
	return &clone
}
