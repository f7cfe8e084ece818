// Package speaker implements playback of replay.Streamer values through physical speakers.
package speaker

import (
	"io"
	"sync"

	"github.com/hajimehoshi/oto/v2"
	"github.com/pkg/errors"

	"github.com/faiface/replay"
)

const channelCount = 2
const bitDepthInBytes = 2
const bytesPerSample = bitDepthInBytes * channelCount

var (
	mu      sync.Mutex
	mixer   replay.Mixer
	context *oto.Context
	player  oto.Player
)

// Init initializes audio playback through speaker. Must be called before using this package.
//
// The bufferSize argument specifies the number of samples of the speaker's buffer. Bigger
// bufferSize means lower CPU usage and more reliable playback. Lower bufferSize means better
// responsiveness and less delay.
func Init(sampleRate replay.SampleRate, bufferSize int) error {
	if context != nil {
		return errors.New("speaker cannot be initialized more than once")
	}

	mixer = replay.Mixer{}

	var err error
	var readyChan chan struct{}
	context, readyChan, err = oto.NewContext(int(sampleRate), channelCount, bitDepthInBytes)
	if err != nil {
		return errors.Wrap(err, "failed to initialize speaker")
	}
	<-readyChan

	player = context.NewPlayer(newReaderFromStreamer(&mixer))
	if bs, ok := player.(oto.BufferSizeSetter); ok {
		bs.SetBufferSize(bufferSize * bytesPerSample)
	}
	player.Play()

	return nil
}

// Close stops the playback and removes all playing Streamers.
func Close() {
	if player != nil {
		player.Close()
		player = nil
		Clear()
	}
}

// Lock locks the speaker. While locked, speaker won't pull new data from the playing Streamers. Lock
// if you want to modify any currently playing Streamers to avoid race conditions.
//
// Always lock speaker for as little time as possible, to avoid playback glitches.
func Lock() {
	mu.Lock()
}

// Unlock unlocks the speaker. Call after modifying any currently playing Streamer.
func Unlock() {
	mu.Unlock()
}

// Play starts playing all provided Streamers through the speaker.
func Play(s ...replay.Streamer) {
	mu.Lock()
	mixer.Add(s...)
	mu.Unlock()
}

// Clear removes all currently playing Streamers from the speaker.
func Clear() {
	mu.Lock()
	mixer.Clear()
	mu.Unlock()
}

// sampleReader is a wrapper for replay.Streamer to implement io.Reader.
type sampleReader struct {
	s   replay.Streamer
	buf [][2]float64
}

func newReaderFromStreamer(s replay.Streamer) *sampleReader {
	return &sampleReader{
		s: s,
	}
}

// Read pulls frames from the streamer and fills buf with the encoded
// frames. Read expects the size of buf be divisible by the length
// of a frame (= channel count * bit depth in bytes).
func (s *sampleReader) Read(buf []byte) (n int, err error) {
	if len(buf)%bytesPerSample != 0 {
		return 0, errors.New("requested number of bytes do not align with the samples")
	}
	ns := len(buf) / bytesPerSample
	if len(s.buf) < ns {
		s.buf = make([][2]float64, ns)
	}
	mu.Lock()
	ns, ok := s.s.Stream(s.buf[:ns])
	mu.Unlock()
	if !ok {
		if s.s.Err() != nil {
			return 0, errors.Wrap(s.s.Err(), "streamer returned error when requesting samples")
		}
		if ns == 0 {
			return 0, io.EOF
		}
	}

	// 16-bit little-endian, the same layout as the stereo 2-byte replay.Format
	format := replay.Format{NumChannels: channelCount, Precision: bitDepthInBytes}
	for i := range s.buf[:ns] {
		for c := range s.buf[i] {
			format.EncodeSigned(buf[i*bytesPerSample+c*bitDepthInBytes:], s.buf[i][c])
		}
	}

	return ns * bytesPerSample, nil
}
