// Package library stores songs and playlists behind short aliases so
// user-facing commands never deal in raw URIs.
package library

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// Errors
var (
	ErrSongNotFound     = errors.New("song not found in library")
	ErrPlaylistNotFound = errors.New("playlist not found in library")
	ErrAlreadyExists    = errors.New("already exists in library")
)

// Library holds songs keyed by alias and playlists as ordered lists of
// song aliases. Getters return copies; callers cannot mutate internal
// state through them.
type Library struct {
	songs     map[string]Song
	playlists map[string][]string
}

// New creates an empty library.
func New() *Library {
	return &Library{
		songs:     make(map[string]Song),
		playlists: make(map[string][]string),
	}
}

// AddSong registers a song under its alias. Overwriting an existing
// alias must be asked for explicitly.
func (l *Library) AddSong(s Song, overwrite bool) error {
	if s.Alias == "" {
		return errors.New("song alias must not be empty")
	}
	if existing, ok := l.songs[s.Alias]; ok && !overwrite {
		return errors.Wrapf(ErrAlreadyExists, "song %q (%s)", s.Alias, existing.URI)
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	l.songs[s.Alias] = s
	return nil
}

// Song returns the song registered under alias.
func (l *Library) Song(alias string) (Song, error) {
	s, ok := l.songs[alias]
	if !ok {
		return Song{}, errors.Wrapf(ErrSongNotFound, "%q", alias)
	}
	return s, nil
}

// Songs lists all songs ordered by alias.
func (l *Library) Songs() []Song {
	songs := make([]Song, 0, len(l.songs))
	for _, s := range l.songs {
		songs = append(songs, s)
	}
	sort.Slice(songs, func(i, j int) bool { return songs[i].Alias < songs[j].Alias })
	return songs
}

// CreatePlaylist creates an empty playlist under name.
func (l *Library) CreatePlaylist(name string, overwrite bool) error {
	if name == "" {
		return errors.New("playlist name must not be empty")
	}
	if _, ok := l.playlists[name]; ok && !overwrite {
		return errors.Wrapf(ErrAlreadyExists, "playlist %q", name)
	}
	l.playlists[name] = []string{}
	return nil
}

// AddToPlaylist appends a registered song alias to a playlist.
func (l *Library) AddToPlaylist(playlist, songAlias string) error {
	if _, ok := l.playlists[playlist]; !ok {
		return errors.Wrapf(ErrPlaylistNotFound, "%q", playlist)
	}
	if _, ok := l.songs[songAlias]; !ok {
		return errors.Wrapf(ErrSongNotFound, "%q", songAlias)
	}
	l.playlists[playlist] = append(l.playlists[playlist], songAlias)
	return nil
}

// RemoveFromPlaylist removes the first occurrence of a song alias from
// a playlist.
func (l *Library) RemoveFromPlaylist(playlist, songAlias string) error {
	aliases, ok := l.playlists[playlist]
	if !ok {
		return errors.Wrapf(ErrPlaylistNotFound, "%q", playlist)
	}
	for i, a := range aliases {
		if a == songAlias {
			l.playlists[playlist] = append(aliases[:i], aliases[i+1:]...)
			return nil
		}
	}
	return errors.Wrapf(ErrSongNotFound, "%q in playlist %q", songAlias, playlist)
}

// Playlist returns the song aliases of a playlist, in order.
func (l *Library) Playlist(name string) ([]string, error) {
	aliases, ok := l.playlists[name]
	if !ok {
		return nil, errors.Wrapf(ErrPlaylistNotFound, "%q", name)
	}
	return append([]string(nil), aliases...), nil
}

// Playlists lists all playlist names, sorted.
func (l *Library) Playlists() []string {
	names := make([]string, 0, len(l.playlists))
	for name := range l.playlists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve turns a name into the ordered URI sequence to play,
// preferring playlists over individual songs. This is the boundary the
// scheduler consumes: it only ever sees URIs, never aliases.
func (l *Library) Resolve(name string) ([]string, error) {
	if aliases, ok := l.playlists[name]; ok {
		uris := make([]string, 0, len(aliases))
		for _, alias := range aliases {
			s, err := l.Song(alias)
			if err != nil {
				return nil, errors.Wrapf(err, "playlist %q", name)
			}
			uris = append(uris, s.URI)
		}
		return uris, nil
	}

	s, err := l.Song(name)
	if err != nil {
		return nil, err
	}
	return []string{s.URI}, nil
}
