package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faiface/replay/internal/config"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "replay.conf")
	require.NoError(t, os.WriteFile(path, []byte("--count=3\n  --volume=-0.5\t--mono\n"), 0o644))

	fields, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"--count=3", "--volume=-0.5", "--mono"}, fields)
}

func TestLoadFileMissing(t *testing.T) {
	fields, err := config.LoadFile(filepath.Join(t.TempDir(), "nope.conf"))
	assert.NoError(t, err)
	assert.Nil(t, fields)
}

func TestLoadFileUnreadable(t *testing.T) {
	_, err := config.LoadFile(t.TempDir())
	assert.Error(t, err)
}

func TestArgs(t *testing.T) {
	fields := []string{"--count=3"}
	assert.Equal(t,
		[]string{"--count=3", "play", "--count=5", "song.wav"},
		config.Args([]string{"play", "--count=5", "song.wav"}, fields),
	)
	assert.Equal(t, []string{"--count=3"}, fields)
	assert.Equal(t, []string{"info"}, config.Args([]string{"info"}, nil))
}
