package log

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, true)
	assert.Equal(t, logrus.DebugLevel, l.Logger.GetLevel())
	assert.NotEmpty(t, l.Data["run"])

	l.WithField("pass", 2).Debug("pass started")
	assert.Contains(t, buf.String(), "pass=2")
	assert.Contains(t, buf.String(), "pass started")
}

func TestNewQuiet(t *testing.T) {
	if debug {
		t.Skip("REPLAY_DEBUG is set")
	}
	var buf bytes.Buffer
	l := New(&buf, false)
	l.Debug("hidden")
	assert.Empty(t, buf.String())
	assert.NotEqual(t, l.Data["run"], New(&buf, false).Data["run"])
}
