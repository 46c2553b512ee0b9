package playback

// EventType represents a playback event type.
type EventType int

const (
	EventTrackStarted  EventType = iota // Scheduler handed a new track to the player
	EventPlaybackEnded                  // Source tree exhausted, player stopped
	EventStateChanged                   // Pause/resume/stop
	EventDeviceChanged                  // Output device selection changed
)

// String returns the string representation of the event type.
func (e EventType) String() string {
	switch e {
	case EventTrackStarted:
		return "track_started"
	case EventPlaybackEnded:
		return "playback_ended"
	case EventStateChanged:
		return "state_changed"
	case EventDeviceChanged:
		return "device_changed"
	default:
		return "unknown"
	}
}

// Event represents a playback event.
type Event struct {
	Type  EventType
	Item  string // Track URI or device description, depending on Type
	State State
}
