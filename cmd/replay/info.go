package main

import (
	"github.com/sirupsen/logrus"

	"github.com/faiface/replay"
)

type infoCmd struct {
	File string `arg:"" type:"existingfile" help:"Audio file to inspect."`
}

func (c *infoCmd) Run(g *globals, log *logrus.Entry) error {
	d, format, kind, err := open(c.File)
	if err != nil {
		return err
	}
	defer d.Close()

	fields := formatFields(format)
	fields["file"] = c.File
	fields["kind"] = kind
	fields["track"] = describe(log, c.File, kind)
	fields["count"] = g.Count
	if pass, known := d.TotalDuration(); known {
		fields["duration"] = pass
	}
	r := replay.RepeatWithCount[float64](d, g.Count)
	if total, known := r.TotalDuration(); known {
		fields["total"] = total
	}
	log.WithFields(fields).Info("audio")
	return nil
}
