package source

// Chain plays an ordered list of child sources front to back, advancing
// to the next child once the current one is exhausted. Children before
// the cursor are never revisited.
type Chain struct {
	children []Source
	cursor   int
}

// NewChain creates a chain over the given children, in order.
func NewChain(children ...Source) *Chain {
	return &Chain{children: children}
}

// Append adds a child at the tail. Appending is legal at any time,
// including after the chain has reported exhaustion: the cursor is not a
// terminal state, so a revived chain serves the new child next.
func (c *Chain) Append(child Source) {
	c.children = append(c.children, child)
}

// Advance delegates to the child under the cursor, skipping past
// exhausted children until one yields an item or none remain.
func (c *Chain) Advance() (string, bool) {
	for c.cursor < len(c.children) {
		if item, ok := c.children[c.cursor].Advance(); ok {
			return item, true
		}
		c.cursor++
	}
	return "", false
}
