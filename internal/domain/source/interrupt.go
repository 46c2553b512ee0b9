package source

// Interrupt is the tree root. It drains a FIFO queue of override items
// before consulting its fallback source, so anything pushed here plays
// ahead of the rest of the tree no matter what state the fallback is in.
type Interrupt struct {
	pending  []string
	fallback Source
}

// NewInterrupt creates an interrupt source over the given fallback,
// conventionally a Switch.
func NewInterrupt(fallback Source) *Interrupt {
	return &Interrupt{fallback: fallback}
}

// Push enqueues items to play ahead of the fallback, in order.
func (i *Interrupt) Push(items ...string) {
	i.pending = append(i.pending, items...)
}

// Clear drops all still-pending override items. Items already returned
// by Advance are unaffected, and the fallback's state is untouched.
func (i *Interrupt) Clear() {
	i.pending = nil
}

// Pending reports how many override items are waiting.
func (i *Interrupt) Pending() int {
	return len(i.pending)
}

// Advance pops the front override item if any are pending, otherwise
// delegates to the fallback.
func (i *Interrupt) Advance() (string, bool) {
	if len(i.pending) > 0 {
		item := i.pending[0]
		i.pending = i.pending[1:]
		return item, true
	}
	if i.fallback == nil {
		return "", false
	}
	return i.fallback.Advance()
}
