// Package audio wraps the native playback backend.
package audio

// DeviceNode is one record in a native output-device enumeration. The
// platform hands devices back as a singly linked sequence; callers walk
// it exactly once and must return the head to ReleaseOutputs when done.
type DeviceNode struct {
	Name        string // backend identifier, used for selection
	Description string // human-readable description
	Next        *DeviceNode
}

// Outputs is the native device-enumeration capability: one call that
// snapshots the available output devices and one that releases the
// snapshot. The head returned by EnumerateOutputs is owned by the caller
// until it is passed back to ReleaseOutputs.
type Outputs interface {
	EnumerateOutputs() (*DeviceNode, error)
	ReleaseOutputs(head *DeviceNode)
}
