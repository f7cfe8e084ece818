// Package config loads the default arguments of the replay command.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
)

// File is the path of the config file relative to the XDG config directory.
var File = filepath.Join("replay", "replay.conf")

// Load reads the config file and returns its whitespace separated fields. They are meant to be
// prepended to the command line arguments, so the file holds default flags, for example:
//
//	--count=3 --volume=-0.5
//
// A missing config file is not an error.
func Load() ([]string, error) {
	path, err := xdg.ConfigFile(File)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve config path")
	}
	return LoadFile(path)
}

// LoadFile is like Load, but reads the config file at path.
func LoadFile(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to read config file")
	}
	return strings.Fields(string(b)), nil
}

// Args prepends the config fields to the command line arguments args, without the program
// name. Flags given explicitly come later and override the defaults.
func Args(args, fields []string) []string {
	return append(fields[:len(fields):len(fields)], args...)
}
