// Package pcm implements decoding and encoding of raw signed little-endian PCM audio.
package pcm

import (
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/faiface/replay"
)

// Decode takes a Reader containing audio data in raw PCM format and returns a Source, which
// plays that audio as interleaved channel values. The duration of raw PCM data is unknown.
func Decode(r io.Reader, format replay.Format) replay.Source[float64] {
	return &stream{
		r:   r,
		f:   format,
		buf: make([]byte, 512*format.Width()),
	}
}

type stream struct {
	r   io.Reader
	f   replay.Format
	buf []byte
	len int
	pos int
	eof bool
	err error
}

func (s *stream) Err() error { return s.err }

func (s *stream) Next() (x float64, ok bool) {
	width := s.f.Precision
	// if there's not enough data for a full value, get more
	if s.len-s.pos < width && !s.refill() {
		return 0, false
	}
	x, _ = s.f.DecodeSigned(s.buf[s.pos:])
	s.pos += width
	// read ahead so that the end is known as soon as the last value is returned
	s.refill()
	return x, true
}

func (s *stream) refill() bool {
	width := s.f.Precision
	for !s.eof && s.len-s.pos < width {
		// if there's a partial value, move it to the beginning of the buffer
		size := s.len - s.pos
		if size != 0 {
			copy(s.buf, s.buf[s.pos:s.len])
		}
		s.len = size
		s.pos = 0
		nbytes, err := s.r.Read(s.buf[s.len:])
		s.len += nbytes
		if err != nil {
			if err != io.EOF {
				s.err = errors.Wrap(err, "pcm")
			}
			s.eof = true
		}
	}
	return s.len-s.pos >= width
}

func (s *stream) CurrentFrameLen() (n int, known bool) {
	if s.eof && s.len-s.pos < s.f.Precision {
		return 0, true
	}
	return 0, false
}

func (s *stream) Channels() int                                { return s.f.NumChannels }
func (s *stream) SampleRate() replay.SampleRate                { return s.f.SampleRate }
func (s *stream) TotalDuration() (d time.Duration, known bool) { return 0, false }
