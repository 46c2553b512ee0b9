// Package device materializes native audio output enumerations into a
// stable, indexable registry.
package device

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/osheim/noisebox/internal/infra/audio"
)

// Errors
var (
	ErrReleased       = errors.New("device registry used after release")
	ErrDeviceNotFound = errors.New("device not found")
)

// Device is one audio output device from a registry snapshot.
type Device struct {
	Name        string // backend identifier, used for selection
	Description string // human-readable description
}

// Registry owns one native enumeration snapshot for its lifetime. The
// native linked records are walked exactly once at construction and
// turned into an indexable list plus a name lookup, so nothing
// downstream ever touches the native sequence. Release must be called
// exactly once when the snapshot is no longer needed; every other
// accessor fails after that.
type Registry struct {
	outputs  audio.Outputs
	head     *audio.DeviceNode
	devices  []Device
	byName   map[string]int
	released bool
}

// NewRegistry snapshots the native output devices in enumeration order.
// The empty device name aliases the first device, mirroring how the
// backend treats an unset output.
func NewRegistry(outputs audio.Outputs) (*Registry, error) {
	head, err := outputs.EnumerateOutputs()
	if err != nil {
		return nil, errors.Wrap(err, "failed to enumerate output devices")
	}

	r := &Registry{
		outputs: outputs,
		head:    head,
		byName:  make(map[string]int),
	}
	for node := head; node != nil; node = node.Next {
		r.devices = append(r.devices, Device{Name: node.Name, Description: node.Description})
		r.byName[node.Name] = len(r.devices) - 1
	}
	if _, ok := r.byName[""]; !ok && len(r.devices) > 0 {
		r.byName[""] = 0
	}
	return r, nil
}

// Release hands the native snapshot back to the platform. Calling it
// again is a no-op, but any other accessor fails once released.
func (r *Registry) Release() {
	if r.released {
		return
	}
	r.outputs.ReleaseOutputs(r.head)
	r.head = nil
	r.released = true
}

// DeviceAt returns the device at a stable numeric index.
func (r *Registry) DeviceAt(index int) (Device, error) {
	if r.released {
		return Device{}, ErrReleased
	}
	if index < 0 || index >= len(r.devices) {
		return Device{}, errors.Wrapf(ErrDeviceNotFound, "no device at index %d", index)
	}
	return r.devices[index], nil
}

// DeviceNamed returns the device with the given backend name. The empty
// name resolves to the synthetic default.
func (r *Registry) DeviceNamed(name string) (Device, error) {
	if r.released {
		return Device{}, ErrReleased
	}
	idx, ok := r.byName[name]
	if !ok {
		return Device{}, errors.Wrapf(ErrDeviceNotFound, "no device named %q", name)
	}
	return r.devices[idx], nil
}

// Render lists the devices as index/description pairs in enumeration
// order, one per line.
func (r *Registry) Render() (string, error) {
	if r.released {
		return "", ErrReleased
	}
	var b strings.Builder
	for i, d := range r.devices {
		fmt.Fprintf(&b, "\t%d: %s\n", i, d.Description)
	}
	return b.String(), nil
}
