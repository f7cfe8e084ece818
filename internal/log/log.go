// Package log provides the logger of the replay command.
package log

import (
	"io"
	"os"
	"strconv"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
)

var debug bool

func init() {
	var err error
	debug, err = strconv.ParseBool(os.Getenv("REPLAY_DEBUG"))
	if err != nil {
		debug = false
	}
}

// New returns a new logger writing to w. Debug messages are enabled if verbose is set or the
// REPLAY_DEBUG environment variable is true. Every entry carries the id of the run, so that
// entries of concurrent runs sharing a log can be told apart.
func New(w io.Writer, verbose bool) *logrus.Entry {
	l := logrus.New()
	l.SetOutput(w)
	if debug || verbose {
		l.SetLevel(logrus.DebugLevel)
	}
	return l.WithField("run", xid.New().String())
}
