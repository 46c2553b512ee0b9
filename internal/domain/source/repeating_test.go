package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepeating_FiniteRepeats(t *testing.T) {
	tests := []struct {
		name     string
		items    []string
		times    int
		expected []string
	}{
		{
			name:     "zero repeats plays the sequence once",
			items:    []string{"a", "b"},
			times:    0,
			expected: []string{"a", "b"},
		},
		{
			name:     "one repeat plays the sequence twice",
			items:    []string{"a", "b"},
			times:    1,
			expected: []string{"a", "b", "a", "b"},
		},
		{
			name:     "single item repeated",
			items:    []string{"x"},
			times:    3,
			expected: []string{"x", "x", "x", "x"},
		},
		{
			name:     "empty sequence is exhausted regardless of count",
			items:    []string{},
			times:    5,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRepeating(tt.items, tt.times)
			assert.Equal(t, tt.expected, drain(t, r, 50))

			// Exhaustion stays exhausted.
			_, ok := r.Advance()
			assert.False(t, ok)
		})
	}
}

func TestRepeating_Forever(t *testing.T) {
	r := NewRepeating([]string{"a", "b"}, RepeatForever)

	for i := range 1000 {
		item, ok := r.Advance()
		assert.True(t, ok)
		if i%2 == 0 {
			assert.Equal(t, "a", item)
		} else {
			assert.Equal(t, "b", item)
		}
	}
}

func TestRepeating_ForeverWithEmptySequence(t *testing.T) {
	r := NewRepeating(nil, RepeatForever)

	_, ok := r.Advance()
	assert.False(t, ok)
}
