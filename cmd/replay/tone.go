package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/faiface/replay"
	"github.com/faiface/replay/effects"
	"github.com/faiface/replay/generators"
)

type toneCmd struct {
	Shape    string        `short:"s" default:"sine" help:"Wave shape, one of ${shapes}."`
	Freq     float64       `short:"f" default:"440" help:"Frequency in Hz."`
	Duration time.Duration `default:"1s" help:"Duration of a single pass."`
	Rate     int           `short:"r" default:"44100" help:"Sample rate in Hz."`
	Out      string        `short:"o" type:"path" help:"Render to this WAV file instead of playing."`
}

// generator returns the generator of the shape, suggesting a known shape if there's no such one.
func (c *toneCmd) generator() (func(replay.SampleRate, float64) (replay.Source[float64], error), error) {
	tone, ok := generators.Tone(c.Shape)
	if ok {
		return tone, nil
	}
	matches := fuzzy.RankFindFold(c.Shape, generators.Shapes)
	if len(matches) == 0 {
		return nil, errors.Errorf("unknown shape %q", c.Shape)
	}
	sort.Sort(matches)
	return nil, errors.Errorf("unknown shape %q, did you mean %q?", c.Shape, matches[0].Target)
}

func (c *toneCmd) Run(g *globals, log *logrus.Entry) error {
	tone, err := c.generator()
	if err != nil {
		return err
	}
	rate := replay.SampleRate(c.Rate)
	s, err := tone(rate, c.Freq)
	if err != nil {
		return err
	}

	r := replay.RepeatWithCount(replay.Take(rate.N(c.Duration), s), g.Count)
	volume := &effects.Volume[float64]{Source: r, Base: 2, Volume: g.Volume}
	log.WithFields(logrus.Fields{
		"shape":    c.Shape,
		"freq":     c.Freq,
		"rate":     c.Rate,
		"duration": c.Duration,
		"count":    g.Count,
	}).Debug("tone")

	if c.Out != "" {
		return render(log, c.Out, false, volume, replay.Format{SampleRate: rate, NumChannels: 1, Precision: 2})
	}
	return play(log, rate, &session{
		title:  fmt.Sprintf("%s %v Hz", c.Shape, c.Freq),
		rate:   rate,
		r:      r,
		volume: volume,
	}, false)
}
