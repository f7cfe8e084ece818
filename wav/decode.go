// Package wav implements audio data decoding and encoding in WAVE format.
package wav

import (
	"encoding/binary"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/faiface/replay"
)

// Decode takes a ReadCloser containing audio data in WAVE format and returns a Decoder, which
// plays that audio as interleaved channel values. Only the canonical 44 byte header is
// supported.
//
// Do not close the supplied ReadCloser, instead, use the Close method of the returned Decoder
// when you want to release the resources.
func Decode(rc io.ReadCloser) (s *Decoder, format replay.Format, err error) {
	d := &Decoder{rc: rc}
	defer func() { // hacky way to always close rc if an error occured
		if err != nil {
			d.rc.Close()
		}
	}()
	if err := binary.Read(rc, binary.LittleEndian, &d.h); err != nil {
		return nil, replay.Format{}, errors.Wrap(err, "wav")
	}
	if string(d.h.RiffMark[:]) != "RIFF" {
		return nil, replay.Format{}, errors.New("wav: missing RIFF at the beginning")
	}
	if string(d.h.WaveMark[:]) != "WAVE" {
		return nil, replay.Format{}, errors.New("wav: unsupported file type")
	}
	if string(d.h.FmtMark[:]) != "fmt " {
		return nil, replay.Format{}, errors.New("wav: missing format chunk marker")
	}
	if string(d.h.DataMark[:]) != "data" {
		return nil, replay.Format{}, errors.New("wav: missing data chunk marker")
	}
	if d.h.FormatType != 1 {
		return nil, replay.Format{}, errors.New("wav: unsupported format type")
	}
	if d.h.NumChans <= 0 {
		return nil, replay.Format{}, errors.New("wav: invalid number of channels (less than 1)")
	}
	if d.h.BitsPerSample != 8 && d.h.BitsPerSample != 16 && d.h.BitsPerSample != 24 {
		return nil, replay.Format{}, errors.New("wav: unsupported number of bits per sample, 8, 16 or 24 are supported")
	}
	if d.h.SampleRate <= 0 {
		return nil, replay.Format{}, errors.New("wav: invalid sample rate")
	}
	if d.h.DataSize < 0 {
		return nil, replay.Format{}, errors.New("wav: invalid data size")
	}
	d.f = replay.Format{
		SampleRate:  replay.SampleRate(d.h.SampleRate),
		NumChannels: int(d.h.NumChans),
		Precision:   int(d.h.BitsPerSample / 8),
	}
	d.buf = make([]byte, 0, 512*d.f.Width())
	return d, d.f, nil
}

type header struct {
	RiffMark      [4]byte
	FileSize      int32
	WaveMark      [4]byte
	FmtMark       [4]byte
	FormatSize    int32
	FormatType    int16
	NumChans      int16
	SampleRate    int32
	ByteRate      int32
	BytesPerFrame int16
	BitsPerSample int16
	DataMark      [4]byte
	DataSize      int32
}

// Decoder plays the data chunk of a WAVE file. It implements replay.Source[float64].
type Decoder struct {
	rc  io.ReadCloser
	h   header
	f   replay.Format
	buf []byte
	off int   // next unread byte in buf
	pos int32 // number of data bytes read from rc
	err error
}

// Next decodes the next channel value.
func (d *Decoder) Next() (x float64, ok bool) {
	if d.off >= len(d.buf) && !d.refill() {
		return 0, false
	}
	if d.f.Precision == 1 {
		x, _ = d.f.DecodeUnsigned(d.buf[d.off:])
	} else {
		x, _ = d.f.DecodeSigned(d.buf[d.off:])
	}
	d.off += d.f.Precision
	return x, true
}

func (d *Decoder) refill() bool {
	if d.err != nil || d.pos >= d.h.DataSize {
		return false
	}
	numBytes := int32(cap(d.buf))
	if numBytes > d.h.DataSize-d.pos {
		numBytes = d.h.DataSize - d.pos
	}
	p := d.buf[:numBytes]
	n, err := io.ReadFull(d.rc, p)
	switch {
	case err == io.EOF || err == io.ErrUnexpectedEOF:
		// the file is shorter than its header says
		d.h.DataSize = d.pos + int32(n)
	case err != nil:
		d.err = errors.Wrap(err, "wav")
		return false
	}
	n -= n % d.f.Precision
	d.buf, d.off = p[:n], 0
	d.pos += int32(n)
	return n > 0
}

// CurrentFrameLen returns the number of channel values left. The whole file is a single frame.
func (d *Decoder) CurrentFrameLen() (n int, known bool) {
	if d.err != nil {
		return 0, true
	}
	left := int(d.h.DataSize-d.pos) + len(d.buf) - d.off
	return left / d.f.Precision, true
}

// Channels returns the number of channels of the file.
func (d *Decoder) Channels() int {
	return d.f.NumChannels
}

// SampleRate returns the sample rate of the file.
func (d *Decoder) SampleRate() replay.SampleRate {
	return d.f.SampleRate
}

// TotalDuration returns the duration of the data chunk as declared by the header.
func (d *Decoder) TotalDuration() (time.Duration, bool) {
	return d.f.SampleRate.D(int(d.h.DataSize) / d.f.Width()), true
}

func (d *Decoder) Err() error {
	return d.err
}

func (d *Decoder) Close() error {
	err := d.rc.Close()
	if err != nil {
		return errors.Wrap(err, "wav")
	}
	return nil
}
