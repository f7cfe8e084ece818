package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faiface/replay"
	"github.com/faiface/replay/internal/log"
	"github.com/faiface/replay/wav"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		magic []byte
		kind  string
	}{
		{[]byte("RIFF"), "wav"},
		{[]byte("fLaC"), "flac"},
		{[]byte("OggS"), "vorbis"},
		{[]byte("ID3\x04"), "mp3"},
		{[]byte{0xFF, 0xFB, 0x90, 0x00}, "mp3"},
		{[]byte{0xFF, 0xF3}, "mp3"},
		{[]byte("RI"), ""},
		{[]byte("MThd"), ""},
		{nil, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.kind, detect(tt.magic), "%q", tt.magic)
	}
}

func writeWAV(t *testing.T, format replay.Format, data []float64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, wav.Encode(f, replay.FromSamples(format.NumChannels, format.SampleRate, 0, data), format))
	require.NoError(t, f.Close())
	return path
}

func readWAV(t *testing.T, path string) ([]float64, replay.Format) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	d, format, err := wav.Decode(f)
	require.NoError(t, err)
	defer d.Close()
	var out []float64
	for {
		x, ok := d.Next()
		if !ok {
			break
		}
		out = append(out, x)
	}
	require.NoError(t, d.Err())
	return out, format
}

func TestOpen(t *testing.T) {
	format := replay.Format{SampleRate: 8000, NumChannels: 2, Precision: 2}
	path := writeWAV(t, format, []float64{0.5, -0.5, 0.25, -0.25})

	d, got, kind, err := open(path)
	require.NoError(t, err)
	defer d.Close()
	assert.Equal(t, "wav", kind)
	assert.Equal(t, format, got)

	bad := filepath.Join(t.TempDir(), "bad.mid")
	require.NoError(t, os.WriteFile(bad, []byte("MThd...."), 0o644))
	_, _, _, err = open(bad)
	assert.ErrorContains(t, err, "unsupported format")

	_, _, _, err = open(filepath.Join(t.TempDir(), "missing.wav"))
	assert.Error(t, err)
}

func TestRenderCmd(t *testing.T) {
	format := replay.Format{SampleRate: 8000, NumChannels: 2, Precision: 2}
	data := []float64{0.5, -0.5, 0.25, -0.25, 0, 0.125}
	in := writeWAV(t, format, data)
	out := filepath.Join(t.TempDir(), "out.wav")

	cmd := &renderCmd{Out: out, Precision: 2, File: in}
	require.NoError(t, cmd.Run(&globals{Count: 3}, log.New(io.Discard, false)))

	got, gotFormat := readWAV(t, out)
	assert.Equal(t, format, gotFormat)
	require.Len(t, got, 3*len(data))
	for i := range got {
		assert.InDelta(t, data[i%len(data)], got[i], 1e-4)
	}
}

func TestRenderCmdMonoRaw(t *testing.T) {
	format := replay.Format{SampleRate: 8000, NumChannels: 2, Precision: 2}
	in := writeWAV(t, format, []float64{0.5, 0.25, -0.5, -0.25})
	out := filepath.Join(t.TempDir(), "out.pcm")

	cmd := &renderCmd{EffectFlags: EffectFlags{Mono: true}, Out: out, Raw: true, Precision: 2, File: in}
	require.NoError(t, cmd.Run(&globals{Count: 2}, log.New(io.Discard, false)))

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	// 2 passes of 2 mono values, 2 bytes each
	assert.Len(t, b, 2*2*2)
	assert.Equal(t, b[:4], b[4:])
}

func TestToneCmdRender(t *testing.T) {
	out := filepath.Join(t.TempDir(), "tone.wav")
	cmd := &toneCmd{Shape: "square", Freq: 1000, Duration: 10 * time.Millisecond, Rate: 8000, Out: out}
	require.NoError(t, cmd.Run(&globals{Count: 4}, log.New(io.Discard, false)))

	got, format := readWAV(t, out)
	assert.Equal(t, replay.Format{SampleRate: 8000, NumChannels: 1, Precision: 2}, format)
	require.Len(t, got, 4*80)
	assert.InDelta(t, 1, got[0], 1e-4)
	assert.InDelta(t, -1, got[4], 1e-4)
	assert.Equal(t, got[:80], got[80:160])
}

func TestToneCmdUnknownShape(t *testing.T) {
	cmd := &toneCmd{Shape: "sqr", Freq: 440, Duration: time.Second, Rate: 8000, Out: "unused.wav"}
	err := cmd.Run(&globals{Count: 1}, log.New(io.Discard, false))
	assert.EqualError(t, err, `unknown shape "sqr", did you mean "square"?`)

	cmd.Shape = "xyz"
	err = cmd.Run(&globals{Count: 1}, log.New(io.Discard, false))
	assert.EqualError(t, err, `unknown shape "xyz"`)
}

func TestInfoCmd(t *testing.T) {
	format := replay.Format{SampleRate: 8000, NumChannels: 1, Precision: 2}
	in := writeWAV(t, format, make([]float64, 8000))

	var buf bytes.Buffer
	cmd := &infoCmd{File: in}
	require.NoError(t, cmd.Run(&globals{Count: 3}, log.New(&buf, false)))
	assert.Contains(t, buf.String(), "duration=1s")
	assert.Contains(t, buf.String(), "total=3s")
	assert.Contains(t, buf.String(), "kind=wav")
}
