package library

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/dhowden/tag"
	"github.com/google/uuid"
)

// Song is a single library entry addressed by a short alias.
type Song struct {
	ID          string `json:"id"`
	Alias       string `json:"alias"`
	URI         string `json:"uri"`
	Description string `json:"description,omitempty"`
}

// SongFromFile builds a Song for a local audio file, filling the
// description from the file's tags when they are readable.
func SongFromFile(alias, path string) (Song, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Song{}, errors.Wrapf(err, "could not find file %q", path)
	}
	if info.IsDir() {
		return Song{}, errors.Newf("%q is a directory, not an audio file", path)
	}

	return Song{
		ID:          uuid.NewString(),
		Alias:       alias,
		URI:         path,
		Description: describeFile(path),
	}, nil
}

// describeFile reads "Artist - Title" out of the file's tags. Files
// with no usable tags get an empty description.
func describeFile(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return ""
	}

	switch {
	case m.Artist() != "" && m.Title() != "":
		return fmt.Sprintf("%s - %s", m.Artist(), m.Title())
	case m.Title() != "":
		return m.Title()
	default:
		return ""
	}
}
