package mp3

import (
	"fmt"
	"path/filepath"

	"github.com/bogem/id3v2"
	"github.com/pkg/errors"
)

// Tags holds the ID3v2 tags of an MP3 file that are relevant for playback.
type Tags struct {
	Title  string
	Artist string
}

// ReadTags parses the title and artist from the ID3v2 tag of the file at path. Files without
// a tag yield empty Tags.
func ReadTags(path string) (Tags, error) {
	tag, err := id3v2.Open(path, id3v2.Options{
		Parse:       true,
		ParseFrames: []string{"Title", "Artist"},
	})
	if err != nil {
		return Tags{}, errors.Wrap(err, "mp3")
	}
	defer tag.Close()
	return Tags{Title: tag.Title(), Artist: tag.Artist()}, nil
}

// Describe returns a human readable description of a track, falling back to the file name
// if there is no title.
func (t Tags) Describe(path string) string {
	if t.Title == "" {
		return filepath.Base(path)
	}
	if t.Artist == "" {
		return t.Title
	}
	return fmt.Sprintf("%s - %s", t.Artist, t.Title)
}
