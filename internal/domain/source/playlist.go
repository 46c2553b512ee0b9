package source

// Playlist plays a fixed sequence of items once, front to back.
type Playlist struct {
	items  []string
	cursor int
}

// NewPlaylist creates a playlist over a copy of items. An empty sequence
// is legal and behaves as already exhausted.
func NewPlaylist(items []string) *Playlist {
	return &Playlist{items: append([]string(nil), items...)}
}

// Advance returns the item under the cursor and moves it forward.
func (p *Playlist) Advance() (string, bool) {
	if p.cursor >= len(p.items) {
		return "", false
	}
	item := p.items[p.cursor]
	p.cursor++
	return item, true
}
