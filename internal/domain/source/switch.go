package source

// Switch delegates to a single active source that can be swapped out
// wholesale at any time. Replacing the active source discards whatever
// state the previous one still held.
type Switch struct {
	active Source
}

// NewSwitch creates a switch with no active source; it reports exhausted
// until one is set.
func NewSwitch() *Switch {
	return &Switch{}
}

// Set replaces the active source.
func (s *Switch) Set(src Source) {
	s.active = src
}

// Advance delegates to the active source.
func (s *Switch) Advance() (string, bool) {
	if s.active == nil {
		return "", false
	}
	return s.active.Advance()
}
