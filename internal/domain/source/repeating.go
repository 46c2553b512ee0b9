package source

// RepeatForever makes a Repeating source replay its items indefinitely.
const RepeatForever = -1

// Repeating replays a fixed sequence of items. A repeat count of n plays
// the sequence n+1 times in total; RepeatForever never exhausts.
type Repeating struct {
	items     []string
	cursor    int
	remaining int
}

// NewRepeating creates a repeating source over a copy of items. Any
// negative times is treated as RepeatForever. A zero-length sequence is
// immediately exhausted regardless of the repeat count.
func NewRepeating(items []string, times int) *Repeating {
	if times < 0 {
		times = RepeatForever
	}
	return &Repeating{items: append([]string(nil), items...), remaining: times}
}

// Advance returns the item under the cursor, wrapping back to the start
// while repeats remain.
func (r *Repeating) Advance() (string, bool) {
	if len(r.items) == 0 {
		return "", false
	}
	if r.cursor >= len(r.items) {
		if r.remaining == 0 {
			return "", false
		}
		r.cursor = 0
		if r.remaining > 0 {
			r.remaining--
		}
	}
	item := r.items[r.cursor]
	r.cursor++
	return item, true
}
