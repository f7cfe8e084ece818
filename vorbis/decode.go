// Package vorbis implements audio data decoding in ogg/vorbis format.
package vorbis

import (
	"io"
	"time"

	"github.com/jfreymuth/oggvorbis"
	"github.com/pkg/errors"

	"github.com/faiface/replay"
)

const vorbisPrecision = 2

// Decode takes a ReadCloser containing audio data in ogg/vorbis format and returns a Decoder,
// which plays that audio as interleaved channel values.
//
// Do not close the supplied ReadCloser, instead, use the Close method of the returned Decoder
// when you want to release the resources.
func Decode(rc io.ReadCloser) (s *Decoder, format replay.Format, err error) {
	defer func() {
		if err != nil {
			rc.Close()
			err = errors.Wrap(err, "ogg/vorbis")
		}
	}()
	r, err := oggvorbis.NewReader(rc)
	if err != nil {
		return nil, replay.Format{}, err
	}
	if r.Channels() <= 0 || r.SampleRate() <= 0 {
		return nil, replay.Format{}, errors.New("invalid header")
	}
	format = replay.Format{
		SampleRate:  replay.SampleRate(r.SampleRate()),
		NumChannels: r.Channels(),
		Precision:   vorbisPrecision,
	}
	d := &Decoder{
		closer: rc,
		r:      r,
		f:      format,
		length: r.Length(),
		buf:    make([]float32, 512*format.NumChannels),
	}
	d.refill()
	return d, format, nil
}

// Decoder plays an ogg/vorbis stream. It implements replay.Source[float64].
type Decoder struct {
	closer io.Closer
	r      *oggvorbis.Reader
	f      replay.Format
	length int64 // samples per channel, 0 if unknown
	buf    []float32
	len    int
	pos    int
	err    error
}

func (d *Decoder) refill() {
	d.len, d.pos = 0, 0
	for d.len == 0 && d.err == nil && d.r != nil {
		n, err := d.r.Read(d.buf)
		d.len = n
		if err == io.EOF {
			d.r = nil
		} else if err != nil {
			d.err = errors.Wrap(err, "ogg/vorbis")
		}
	}
}

func (d *Decoder) Next() (x float64, ok bool) {
	if d.pos >= d.len {
		return 0, false
	}
	x = float64(d.buf[d.pos])
	d.pos++
	if d.pos >= d.len {
		d.refill()
	}
	return x, true
}

// CurrentFrameLen is unknown until the stream ends, because the format of an ogg/vorbis stream
// never changes.
func (d *Decoder) CurrentFrameLen() (n int, known bool) {
	if d.pos >= d.len {
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

// TotalDuration is known only for seekable input, where the stream length can be determined.
func (d *Decoder) TotalDuration() (time.Duration, bool) {
	if d.length <= 0 {
		return 0, false
	}
	return d.f.SampleRate.D(int(d.length)), true
}

func (d *Decoder) Err() error {
	return d.err
}

func (d *Decoder) Close() error {
	err := d.closer.Close()
	if err != nil {
		return errors.Wrap(err, "ogg/vorbis")
	}
	return nil
}
