package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// drain pulls up to max items from a source and returns everything it
// yielded before exhausting (or hitting max).
func drain(t *testing.T, s Source, max int) []string {
	t.Helper()

	items := make([]string, 0, max)
	for range max {
		item, ok := s.Advance()
		if !ok {
			return items
		}
		items = append(items, item)
	}
	return items
}

func TestPlaylist_Advance(t *testing.T) {
	tests := []struct {
		name     string
		items    []string
		expected []string
	}{
		{
			name:     "empty playlist is already exhausted",
			items:    []string{},
			expected: []string{},
		},
		{
			name:     "single item",
			items:    []string{"song.mp3"},
			expected: []string{"song.mp3"},
		},
		{
			name:     "items come out front to back",
			items:    []string{"a.mp3", "b.mp3", "c.mp3"},
			expected: []string{"a.mp3", "b.mp3", "c.mp3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlaylist(tt.items)
			assert.Equal(t, tt.expected, drain(t, p, 10))
		})
	}
}

func TestPlaylist_ExhaustionIsIdempotent(t *testing.T) {
	p := NewPlaylist([]string{"a.mp3"})

	_, ok := p.Advance()
	assert.True(t, ok)

	// Every call after the last item keeps reporting exhausted.
	for range 5 {
		_, ok := p.Advance()
		assert.False(t, ok)
	}
}

func TestPlaylist_CopiesInput(t *testing.T) {
	items := []string{"a.mp3", "b.mp3"}
	p := NewPlaylist(items)
	items[0] = "mutated.mp3"

	item, ok := p.Advance()
	assert.True(t, ok)
	assert.Equal(t, "a.mp3", item)
}
