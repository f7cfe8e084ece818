// Command replay plays, renders and inspects audio repeated a fixed number of times.
package main

import (
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/pkg/profile"

	"github.com/faiface/replay/generators"
	"github.com/faiface/replay/internal/config"
	"github.com/faiface/replay/internal/log"
)

// globals contains the flags that apply to every command. They may be defaulted in the config
// file.
type globals struct {
	Count   uint32  `short:"c" default:"1" help:"Number of times to play the audio."`
	Volume  float64 `short:"v" default:"0" help:"Volume as a power of two, 0 leaves the audio unchanged."`
	Debug   bool    `short:"d" help:"Log debug messages."`
	Profile string  `type:"path" placeholder:"DIR" help:"Write a CPU profile to DIR."`
}

type cli struct {
	Globals globals `embed:""`

	Play   playCmd   `cmd:"" help:"Play an audio file through the speaker."`
	Render renderCmd `cmd:"" help:"Render repeated audio to a WAV or raw PCM file."`
	Tone   toneCmd   `cmd:"" help:"Play or render a generated tone."`
	Info   infoCmd   `cmd:"" help:"Log the format and durations of an audio file."`
}

func main() {
	var c cli
	parser := kong.Must(&c,
		kong.Name("replay"),
		kong.Description("Play audio a fixed number of times back to back."),
		kong.UsageOnError(),
		kong.Vars{"shapes": strings.Join(generators.Shapes, ", ")},
	)

	cfgArgs, err := config.Load()
	parser.FatalIfErrorf(err)

	ctx, err := parser.Parse(config.Args(os.Args[1:], cfgArgs))
	parser.FatalIfErrorf(err)

	var prof interface{ Stop() }
	if c.Globals.Profile != "" {
		prof = profile.Start(profile.CPUProfile, profile.ProfilePath(c.Globals.Profile), profile.Quiet)
	}

	logger := log.New(os.Stderr, c.Globals.Debug)
	err = ctx.Run(&c.Globals, logger)
	if prof != nil {
		prof.Stop()
	}
	ctx.FatalIfErrorf(err)
}
