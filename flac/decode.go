// Package flac implements audio data decoding in FLAC format.
package flac

import (
	"io"
	"time"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/pkg/errors"

	"github.com/faiface/replay"
)

// Decode takes a ReadCloser containing audio data in FLAC format and returns a Decoder, which
// plays that audio as interleaved channel values. Every FLAC frame is reported as a separate
// frame of the Decoder.
//
// Do not close the supplied ReadCloser, instead, use the Close method of the returned Decoder
// when you want to release the resources.
func Decode(rc io.ReadCloser) (s *Decoder, format replay.Format, err error) {
	d := &Decoder{rc: rc}
	defer func() { // hacky way to always close rc if an error occurred
		if err != nil {
			d.rc.Close()
		}
	}()
	d.stream, err = flac.New(rc)
	if err != nil {
		return nil, replay.Format{}, errors.Wrap(err, "flac")
	}
	info := d.stream.Info
	if info.NChannels == 0 || info.SampleRate == 0 {
		return nil, replay.Format{}, errors.New("flac: invalid stream info")
	}
	format = replay.Format{
		SampleRate:  replay.SampleRate(info.SampleRate),
		NumChannels: int(info.NChannels),
		Precision:   int(info.BitsPerSample+7) / 8,
	}
	d.format = format
	d.bps = info.BitsPerSample
	d.refill()
	return d, format, nil
}

// Decoder plays a FLAC stream. It implements replay.Source[float64].
type Decoder struct {
	rc     io.ReadCloser
	stream *flac.Stream
	format replay.Format
	bps    uint8
	buf    []float64 // interleaved values of the current FLAC frame
	pos    int
	eof    bool
	err    error
}

// refill decodes the next FLAC frame into the buffer.
func (d *Decoder) refill() {
	d.buf, d.pos = d.buf[:0], 0
	if d.eof {
		return
	}
	f, err := d.stream.ParseNext()
	if err != nil {
		if err != io.EOF {
			d.err = errors.Wrap(err, "flac")
		}
		d.eof = true
		return
	}
	d.load(f)
}

// load interleaves the subframes of f into the buffer.
func (d *Decoder) load(f *frame.Frame) {
	channels := len(f.Subframes)
	if channels == 0 {
		return
	}
	n := len(f.Subframes[0].Samples)
	if cap(d.buf) < n*channels {
		d.buf = make([]float64, 0, n*channels)
	}
	q := 1 / float64(int64(1)<<(d.bps-1))
	for i := 0; i < n; i++ {
		for _, sub := range f.Subframes {
			d.buf = append(d.buf, float64(sub.Samples[i])*q)
		}
	}
}

// Next returns the next channel value. The following FLAC frame is decoded as soon as the last
// value of the current one is returned.
func (d *Decoder) Next() (x float64, ok bool) {
	if d.pos >= len(d.buf) {
		return 0, false
	}
	x = d.buf[d.pos]
	d.pos++
	if d.pos >= len(d.buf) {
		d.refill()
	}
	return x, true
}

// CurrentFrameLen returns the number of values left in the current FLAC frame.
func (d *Decoder) CurrentFrameLen() (n int, known bool) {
	return len(d.buf) - d.pos, true
}

func (d *Decoder) Channels() int {
	return d.format.NumChannels
}

func (d *Decoder) SampleRate() replay.SampleRate {
	return d.format.SampleRate
}

// TotalDuration returns the duration declared in the stream info, which is unknown if the
// encoder did not fill it in.
func (d *Decoder) TotalDuration() (time.Duration, bool) {
	if d.stream.Info.NSamples == 0 {
		return 0, false
	}
	return d.format.SampleRate.D(int(d.stream.Info.NSamples)), true
}

func (d *Decoder) Err() error {
	return d.err
}

func (d *Decoder) Close() error {
	err := d.rc.Close()
	if err != nil {
		return errors.Wrap(err, "flac")
	}
	return nil
}
