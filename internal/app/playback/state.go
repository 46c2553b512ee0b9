// Package playback composes the scheduling tree and drives the native
// player by pulling one item at a time from the root.
package playback

// State represents the playback state.
type State int

const (
	StateIdle    State = iota // Nothing playing (tree exhausted or stopped)
	StatePlaying              // Track is playing
	StatePaused               // Track is paused
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}
