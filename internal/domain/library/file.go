package library

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// Version is the current on-disk document version.
const Version = 1

// document is the JSON shape of a saved library.
type document struct {
	Version   int                 `json:"version"`
	Songs     []Song              `json:"songs"`
	Playlists map[string][]string `json:"playlists"`
}

// Save writes the library as JSON, creating parent directories as
// needed.
func (l *Library) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "failed to create library directory")
	}

	doc := document{
		Version:   Version,
		Songs:     l.Songs(),
		Playlists: make(map[string][]string, len(l.playlists)),
	}
	for name, aliases := range l.playlists {
		doc.Playlists[name] = append([]string(nil), aliases...)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode library")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "failed to write library file")
	}
	return nil
}

// Load reads a library document from path. A missing file yields an
// empty library so first runs work without setup.
func Load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, errors.Wrap(err, "failed to read library file")
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse library file")
	}
	if doc.Version != Version {
		return nil, errors.Newf("unsupported library version %d", doc.Version)
	}

	l := New()
	for _, s := range doc.Songs {
		if err := l.AddSong(s, false); err != nil {
			return nil, errors.Wrapf(err, "invalid song entry %q", s.Alias)
		}
	}
	for name, aliases := range doc.Playlists {
		l.playlists[name] = append([]string(nil), aliases...)
	}
	return l, nil
}
