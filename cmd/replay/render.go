package main

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/faiface/replay"
	"github.com/faiface/replay/pcm"
	"github.com/faiface/replay/wav"
)

type renderCmd struct {
	EffectFlags `embed:""`

	Out       string `short:"o" required:"" type:"path" help:"Output file."`
	Raw       bool   `help:"Write raw signed little-endian PCM instead of WAV."`
	Precision int    `short:"p" default:"2" help:"Bytes per channel value, 1, 2 or 3."`
	File      string `arg:"" type:"existingfile" help:"Audio file to render."`
}

func (c *renderCmd) Run(g *globals, log *logrus.Entry) error {
	d, format, _, err := open(c.File)
	if err != nil {
		return err
	}
	defer d.Close()

	r := replay.RepeatWithCount[float64](d, g.Count)
	out := c.apply(r, g.Volume)
	format = replay.Format{
		SampleRate:  format.SampleRate,
		NumChannels: out.Channels(),
		Precision:   c.Precision,
	}
	return render(log, c.Out, c.Raw, out, format)
}

// render encodes s to a new file at path.
func render(log *logrus.Entry, path string, raw bool, s replay.Source[float64], format replay.Format) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "render")
	}
	start := time.Now()
	if raw {
		err = pcm.Encode(f, s, format)
	} else {
		err = wav.Encode(f, s, format)
	}
	if cerr := f.Close(); err == nil {
		err = errors.Wrap(cerr, "render")
	}
	if err != nil {
		return err
	}

	fields := formatFields(format)
	fields["out"] = path
	fields["elapsed"] = time.Since(start).Round(time.Millisecond)
	if d, known := s.TotalDuration(); known {
		fields["duration"] = d
	}
	log.WithFields(fields).Info("rendered")
	return nil
}
