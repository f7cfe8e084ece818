package pcm

import (
	"bufio"
	"io"

	"github.com/pkg/errors"

	"github.com/faiface/replay"
)

// Encode writes all audio produced by s to w in raw PCM format. The channel values of s are
// written as they come, in format.Precision bytes each.
func Encode[S replay.Sample](w io.Writer, s replay.Source[S], format replay.Format) error {
	var (
		bw     = bufio.NewWriter(w)
		buffer = make([]byte, 512*format.Precision)
		offset int
	)
	for {
		x, ok := s.Next()
		if ok {
			offset += format.EncodeSigned(buffer[offset:], replay.SampleFloat(x))
		}
		if offset == len(buffer) || (!ok && offset > 0) {
			if _, err := bw.Write(buffer[:offset]); err != nil {
				return errors.Wrap(err, "pcm")
			}
			offset = 0
		}
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		return err
	}
	return errors.Wrap(bw.Flush(), "pcm")
}
