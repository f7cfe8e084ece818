// Package mp3 implements audio data decoding in MP3 format.
package mp3

import (
	"io"
	"time"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/pkg/errors"

	"github.com/faiface/replay"
)

const (
	gomp3NumChannels   = 2
	gomp3Precision     = 2
	gomp3BytesPerFrame = gomp3NumChannels * gomp3Precision
)

// Decode takes a ReadCloser containing audio data in MP3 format and returns a Decoder, which
// plays that audio as interleaved stereo channel values.
//
// Do not close the supplied ReadCloser, instead, use the Close method of the returned Decoder
// when you want to release the resources.
func Decode(rc io.ReadCloser) (s *Decoder, format replay.Format, err error) {
	defer func() {
		if err != nil {
			rc.Close()
			err = errors.Wrap(err, "mp3")
		}
	}()
	d, err := gomp3.NewDecoder(rc)
	if err != nil {
		return nil, replay.Format{}, err
	}
	format = replay.Format{
		SampleRate:  replay.SampleRate(d.SampleRate()),
		NumChannels: gomp3NumChannels,
		Precision:   gomp3Precision,
	}
	s = &Decoder{
		closer: rc,
		d:      d,
		f:      format,
		buf:    make([]byte, 512*gomp3BytesPerFrame),
	}
	s.refill()
	return s, format, nil
}

// Decoder plays an MP3 stream. It implements replay.Source[float64].
type Decoder struct {
	closer io.Closer
	d      *gomp3.Decoder
	f      replay.Format
	buf    []byte
	len    int
	pos    int
	eof    bool
	err    error
}

// refill reads decoded bytes until at least one full value is buffered or the stream ends.
func (d *Decoder) refill() {
	for !d.eof && d.len-d.pos < gomp3Precision {
		size := d.len - d.pos
		if size != 0 {
			copy(d.buf, d.buf[d.pos:d.len])
		}
		d.len, d.pos = size, 0
		n, err := d.d.Read(d.buf[d.len:])
		d.len += n
		if err != nil {
			if err != io.EOF {
				d.err = errors.Wrap(err, "mp3")
			}
			d.eof = true
		}
	}
}

func (d *Decoder) Next() (x float64, ok bool) {
	if d.len-d.pos < gomp3Precision {
		return 0, false
	}
	x, n := d.f.DecodeSigned(d.buf[d.pos:])
	d.pos += n
	d.refill()
	return x, true
}

// CurrentFrameLen is unknown until the stream ends. The decoded stream never changes format.
func (d *Decoder) CurrentFrameLen() (n int, known bool) {
	if d.len-d.pos < gomp3Precision {
		return 0, true
	}
	return 0, false
}

func (d *Decoder) Channels() int {
	return d.f.NumChannels
}

func (d *Decoder) SampleRate() replay.SampleRate {
	return d.f.SampleRate
}

// TotalDuration is known only if the input is an io.Seeker.
func (d *Decoder) TotalDuration() (time.Duration, bool) {
	length := d.d.Length()
	if length < 0 {
		return 0, false
	}
	return d.f.SampleRate.D(int(length / gomp3BytesPerFrame)), true
}

func (d *Decoder) Err() error {
	return d.err
}

func (d *Decoder) Close() error {
	err := d.closer.Close()
	if err != nil {
		return errors.Wrap(err, "mp3")
	}
	return nil
}
