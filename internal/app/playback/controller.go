package playback

import (
	"sync"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osheim/noisebox/internal/app/device"
	"github.com/osheim/noisebox/internal/domain/source"
	"github.com/osheim/noisebox/internal/infra/audio"
)

// Player is the native playback surface the controller drives. The
// controller pushes exactly one URI at a time and learns about natural
// track completion through the callback registered with SetOnTrackEnd.
type Player interface {
	Start(uri string) error
	Stop()
	SetPaused(paused bool)
	TogglePause() bool
	Paused() bool
	Playing() bool
	SetOutput(name string) error
	CurrentOutput() string
	SetOnTrackEnd(fn func())
}

// Controller owns the scheduling tree and the device registry.
//
// The tree is Interrupt → Switch → Chain: interrupts always play first,
// the switch holds whichever chain a play command installed, and the
// chain collects queued playlists. One mutex serializes every mutation
// and every traversal; cursor advances and tail appends are not atomic
// with respect to each other.
type Controller struct {
	mu sync.Mutex

	player  Player
	outputs audio.Outputs

	root     *source.Interrupt
	switcher *source.Switch
	chain    *source.Chain
	registry *device.Registry

	eventCh chan Event
	closed  bool
}

// NewController builds the standard tree and takes the first device
// snapshot.
func NewController(player Player, outputs audio.Outputs) (*Controller, error) {
	registry, err := device.NewRegistry(outputs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to snapshot output devices")
	}

	chain := source.NewChain()
	switcher := source.NewSwitch()
	switcher.Set(chain)
	root := source.NewInterrupt(switcher)

	c := &Controller{
		player:   player,
		outputs:  outputs,
		root:     root,
		switcher: switcher,
		chain:    chain,
		registry: registry,
		eventCh:  make(chan Event, 10),
	}
	player.SetOnTrackEnd(c.onTrackEnd)
	return c, nil
}

// Events returns the event channel.
func (c *Controller) Events() <-chan Event {
	return c.eventCh
}

// Play discards everything queued so far and plays items now. The old
// chain and whatever remained beneath it are gone for good, pending
// interrupts are cleared so stale overrides cannot cut into the new
// set, and the player is kicked immediately.
func (c *Controller) Play(items []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	chain := source.NewChain(source.NewPlaylist(items))
	c.chain = chain
	c.switcher.Set(chain)
	c.root.Clear()

	zlog.Debug().Msgf("playback: reset chain with %d item(s)", len(items))
	return c.startNextLocked()
}

// Queue appends items to the tail of the current chain. They become
// reachable once everything queued before them is exhausted.
func (c *Controller) Queue(items []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.chain.Append(source.NewPlaylist(items))
	zlog.Debug().Msgf("playback: queued %d item(s)", len(items))
}

// QueueRepeat appends items as a repeating set. times < 0 repeats
// forever; note that anything queued behind a forever set is never
// reached.
func (c *Controller) QueueRepeat(items []string, times int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.chain.Append(source.NewRepeating(items, times))
	zlog.Debug().Msgf("playback: queued %d repeating item(s), times=%d", len(items), times)
}

// Interrupt schedules items ahead of everything in the fallback tree
// without disturbing its state. If nothing is playing the first item
// starts immediately; otherwise the current track finishes first.
func (c *Controller) Interrupt(items []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.root.Push(items...)
	if !c.player.Playing() && !c.player.Paused() {
		return c.startNextLocked()
	}
	return nil
}

// ClearInterrupts drops all still-pending interrupt items.
func (c *Controller) ClearInterrupts() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.root.Clear()
}

// Skip abandons the current track and pulls the next item from the
// tree.
func (c *Controller) Skip() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startNextLocked()
}

// Stop halts playback. Queued content stays scheduled; Skip picks it
// back up.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.player.Stop()
	c.sendEventLocked(Event{Type: EventStateChanged, State: StateIdle})
}

// SetPaused pauses or resumes the current track.
func (c *Controller) SetPaused(paused bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.player.SetPaused(paused)
	c.sendEventLocked(Event{Type: EventStateChanged, State: c.stateLocked()})
}

// TogglePause flips the pause state and reports true if now paused.
func (c *Controller) TogglePause() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	paused := c.player.TogglePause()
	c.sendEventLocked(Event{Type: EventStateChanged, State: c.stateLocked()})
	return paused
}

// Paused reports true if playback is paused.
func (c *Controller) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.player.Paused()
}

// Playing reports true if a track is actively playing.
func (c *Controller) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.player.Playing()
}

// ListDevices refreshes the device snapshot and renders it. The prior
// snapshot is always released first so two never coexist.
func (c *Controller) ListDevices() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.registry.Release()
	registry, err := device.NewRegistry(c.outputs)
	if err != nil {
		return "", errors.Wrap(err, "failed to refresh output devices")
	}
	c.registry = registry
	return registry.Render()
}

// SelectDevice routes playback to the device at the given index from
// the current snapshot.
func (c *Controller) SelectDevice(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	d, err := c.registry.DeviceAt(index)
	if err != nil {
		return err
	}
	if err := c.player.SetOutput(d.Name); err != nil {
		return errors.Wrapf(err, "failed to select device %d", index)
	}
	zlog.Info().Msgf("playback: output device set to %s", d.Description)
	c.sendEventLocked(Event{Type: EventDeviceChanged, Item: d.Description, State: c.stateLocked()})
	return nil
}

// CurrentDevice describes the device the player is routed to.
func (c *Controller) CurrentDevice() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	d, err := c.registry.DeviceNamed(c.player.CurrentOutput())
	if err != nil {
		return "", err
	}
	return d.Description, nil
}

// Close stops playback, releases the device snapshot and closes the
// event channel. The player itself is owned by the caller.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.player.Stop()
	c.registry.Release()
	close(c.eventCh)
}

// onTrackEnd runs when the player reports natural track completion.
func (c *Controller) onTrackEnd() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	if err := c.startNextLocked(); err != nil {
		zlog.Error().Msgf("playback: failed to start next track: %v", err)
		c.player.Stop()
	}
}

// startNextLocked pulls one item from the root and hands it to the
// player. Exhaustion is a normal outcome, not an error: the player is
// stopped and the caller is told there is nothing left to play.
func (c *Controller) startNextLocked() error {
	item, ok := c.root.Advance()
	if !ok {
		zlog.Debug().Msg("playback: source tree exhausted, stopping")
		c.player.Stop()
		c.sendEventLocked(Event{Type: EventPlaybackEnded, State: StateIdle})
		return nil
	}
	if err := c.player.Start(item); err != nil {
		return errors.Wrapf(err, "failed to start %q", item)
	}
	c.sendEventLocked(Event{Type: EventTrackStarted, Item: item, State: StatePlaying})
	return nil
}

func (c *Controller) stateLocked() State {
	switch {
	case c.player.Playing():
		return StatePlaying
	case c.player.Paused():
		return StatePaused
	default:
		return StateIdle
	}
}

// sendEventLocked sends an event without blocking. Must be called with
// the lock held.
func (c *Controller) sendEventLocked(e Event) {
	if c.closed {
		return
	}
	select {
	case c.eventCh <- e:
	default:
		// Channel full, drop event.
	}
}
