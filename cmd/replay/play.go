package main

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/faiface/replay"
	"github.com/faiface/replay/effects"
	"github.com/faiface/replay/speaker"
)

// EffectFlags select the effects applied after repeating.
type EffectFlags struct {
	Mono bool    `help:"Downmix to a single channel."`
	Swap bool    `help:"Swap the left and right channels."`
	Pan  float64 `default:"0" help:"Balance between the left (-1) and the right (+1) channel."`
}

func (e EffectFlags) apply(s replay.Source[float64], volume float64) *effects.Volume[float64] {
	if e.Swap {
		s = &effects.Swap[float64]{Source: s}
	}
	if e.Pan != 0 {
		s = &effects.Pan[float64]{Source: s, Pan: e.Pan}
	}
	if e.Mono {
		s = effects.Mono(s)
	}
	return &effects.Volume[float64]{Source: s, Base: 2, Volume: volume}
}

type playCmd struct {
	EffectFlags `embed:""`

	UI   bool   `name:"ui" help:"Show a status screen, quit with ESC or q."`
	File string `arg:"" type:"existingfile" help:"Audio file to play."`
}

func (c *playCmd) Run(g *globals, log *logrus.Entry) error {
	d, format, kind, err := open(c.File)
	if err != nil {
		return err
	}
	defer d.Close()

	title := describe(log, c.File, kind)
	log.WithFields(formatFields(format)).WithFields(logrus.Fields{
		"file":  c.File,
		"track": title,
		"count": g.Count,
	}).Info("playing")

	r := replay.RepeatWithCount[float64](d, g.Count)
	return play(log, format.SampleRate, &session{
		title:  title,
		rate:   format.SampleRate,
		r:      r,
		volume: c.apply(r, g.Volume),
	}, c.UI)
}

// session is the state of a playback shared between the speaker and the UI. Access it only while
// the speaker is locked.
type session struct {
	title     string
	rate      replay.SampleRate
	r         *replay.Repeating[float64]
	volume    *effects.Volume[float64]
	transport *transport
}

// transport counts the played frames and pauses the wrapped Streamer by streaming silence.
type transport struct {
	replay.Streamer
	paused bool
	played int
}

func (t *transport) Stream(samples [][2]float64) (n int, ok bool) {
	if t.paused {
		for i := range samples {
			samples[i] = [2]float64{}
		}
		return len(samples), true
	}
	n, ok = t.Streamer.Stream(samples)
	t.played += n
	return n, ok
}

// play plays the session through the speaker and returns when it's over or the user quits the
// UI.
func play(log *logrus.Entry, rate replay.SampleRate, s *session, withUI bool) error {
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return err
	}
	defer speaker.Close()

	s.transport = &transport{Streamer: replay.ToStreamer[float64](s.volume)}
	done := make(chan struct{})
	speaker.Play(replay.Seq(s.transport, replay.Callback(func() {
		close(done)
	})))

	if withUI {
		if err := runUI(s, done); err != nil {
			return err
		}
	} else {
		watch(log, s, done)
	}

	speaker.Lock()
	err := s.transport.Err()
	speaker.Unlock()
	return errors.Wrap(err, "playback")
}

// watch logs the start of every pass until done is closed.
func watch(log *logrus.Entry, s *session, done <-chan struct{}) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	var last uint32
	for {
		select {
		case <-done:
			speaker.Lock()
			played := s.rate.D(s.transport.played)
			speaker.Unlock()
			log.WithField("played", played.Round(time.Millisecond)).Info("done")
			return
		case <-ticker.C:
			speaker.Lock()
			pass, total := s.r.Pass()
			speaker.Unlock()
			if pass != last && total > 0 {
				log.WithField("pass", pass).Debug("pass started")
				last = pass
			}
		}
	}
}
