package wav

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/faiface/replay"
)

// Encode writes all audio produced by s to w in WAVE format. The channel values of s are
// written as they come, so s should have format.NumChannels channels.
//
// Format precision must be 1, 2 or 3 bytes.
func Encode[S replay.Sample](w io.WriteSeeker, s replay.Source[S], format replay.Format) (err error) {
	defer func() {
		if err != nil {
			err = errors.Wrap(err, "wav")
		}
	}()

	if format.NumChannels <= 0 {
		return errors.New("invalid number of channels (less than 1)")
	}
	if format.Precision != 1 && format.Precision != 2 && format.Precision != 3 {
		return errors.New("unsupported precision, 1, 2 or 3 is supported")
	}

	h := header{
		RiffMark:      [4]byte{'R', 'I', 'F', 'F'},
		FileSize:      -1, // finalization
		WaveMark:      [4]byte{'W', 'A', 'V', 'E'},
		FmtMark:       [4]byte{'f', 'm', 't', ' '},
		FormatSize:    16,
		FormatType:    1,
		NumChans:      int16(format.NumChannels),
		SampleRate:    int32(format.SampleRate),
		ByteRate:      int32(int(format.SampleRate) * format.NumChannels * format.Precision),
		BytesPerFrame: int16(format.NumChannels * format.Precision),
		BitsPerSample: int16(format.Precision) * 8,
		DataMark:      [4]byte{'d', 'a', 't', 'a'},
		DataSize:      -1, // finalization
	}
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return err
	}

	var (
		bw      = bufio.NewWriter(w)
		buffer  = make([]byte, format.Precision)
		written int
	)
	for {
		x, ok := s.Next()
		if !ok {
			break
		}
		switch {
		case format.Precision == 1:
			format.EncodeUnsigned(buffer, replay.SampleFloat(x))
		case format.Precision == 2 || format.Precision == 3:
			format.EncodeSigned(buffer, replay.SampleFloat(x))
		default:
			panic(fmt.Errorf("encode: invalid precision: %d", format.Precision))
		}
		nn, err := bw.Write(buffer)
		if err != nil {
			return err
		}
		written += nn
	}
	if err := s.Err(); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}

	// finalize header
	h.FileSize = int32(36 + written) // RIFF chunk size excludes the first 8 bytes
	h.DataSize = int32(written)
	if _, err := w.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return err
	}
	if _, err := w.Seek(0, io.SeekEnd); err != nil {
		return err
	}

	return nil
}
