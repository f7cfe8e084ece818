package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/faiface/replay"
	"github.com/faiface/replay/flac"
	"github.com/faiface/replay/mp3"
	"github.com/faiface/replay/vorbis"
	"github.com/faiface/replay/wav"
)

// decoder is an opened audio file.
type decoder interface {
	replay.Source[float64]
	io.Closer
}

// detect returns the kind of audio data starting with magic, or "" if it's unsupported.
func detect(magic []byte) string {
	switch {
	case bytes.HasPrefix(magic, []byte("RIFF")):
		return "wav"
	case bytes.HasPrefix(magic, []byte("fLaC")):
		return "flac"
	case bytes.HasPrefix(magic, []byte("OggS")):
		return "vorbis"
	case bytes.HasPrefix(magic, []byte("ID3")),
		bytes.HasPrefix(magic, []byte{0xFF, 0xFB}),
		bytes.HasPrefix(magic, []byte{0xFF, 0xF3}),
		bytes.HasPrefix(magic, []byte{0xFF, 0xF2}):
		return "mp3"
	}
	return ""
}

func decodeWith[D decoder](decode func(io.ReadCloser) (D, replay.Format, error), rc io.ReadCloser) (decoder, replay.Format, error) {
	d, format, err := decode(rc)
	if err != nil {
		return nil, replay.Format{}, err
	}
	return d, format, nil
}

// open opens and decodes the audio file at path. The kind of the file is detected from its
// first bytes.
func open(path string) (d decoder, format replay.Format, kind string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, replay.Format{}, "", err
	}

	var magic [4]byte
	n, err := io.ReadFull(f, magic[:])
	if err != nil && err != io.ErrUnexpectedEOF {
		f.Close()
		return nil, replay.Format{}, "", errors.Wrap(err, path)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, replay.Format{}, "", errors.Wrap(err, path)
	}

	kind = detect(magic[:n])
	switch kind {
	case "wav":
		d, format, err = decodeWith(wav.Decode, f)
	case "flac":
		d, format, err = decodeWith(flac.Decode, f)
	case "vorbis":
		d, format, err = decodeWith(vorbis.Decode, f)
	case "mp3":
		d, format, err = decodeWith(mp3.Decode, f)
	default:
		f.Close()
		return nil, replay.Format{}, "", errors.Errorf("%s: unsupported format with magic %x", path, magic[:n])
	}
	if err != nil {
		return nil, replay.Format{}, "", errors.Wrap(err, path)
	}
	return d, format, kind, nil
}

// describe returns the track name to show for the file at path.
func describe(log *logrus.Entry, path, kind string) string {
	if kind != "mp3" {
		return filepath.Base(path)
	}
	tags, err := mp3.ReadTags(path)
	if err != nil {
		log.WithError(err).Debug("no tags")
		return filepath.Base(path)
	}
	return tags.Describe(path)
}

func formatFields(format replay.Format) logrus.Fields {
	return logrus.Fields{
		"rate":      int(format.SampleRate),
		"channels":  format.NumChannels,
		"precision": format.Precision,
	}
}
