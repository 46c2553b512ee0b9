package playback

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osheim/noisebox/internal/app/device"
	"github.com/osheim/noisebox/internal/infra/audio"
)

// fakePlayer records every Start call and lets tests simulate natural
// track completion.
type fakePlayer struct {
	started  []string
	stops    int
	playing  bool
	paused   bool
	output   string
	onEnd    func()
	startErr error
}

func (p *fakePlayer) Start(uri string) error {
	if p.startErr != nil {
		return p.startErr
	}
	p.started = append(p.started, uri)
	p.playing = true
	p.paused = false
	return nil
}

func (p *fakePlayer) Stop() {
	p.stops++
	p.playing = false
	p.paused = false
}

func (p *fakePlayer) SetPaused(paused bool) {
	if p.playing || p.paused {
		p.paused = paused
	}
}

func (p *fakePlayer) TogglePause() bool {
	p.paused = !p.paused
	return p.paused
}

func (p *fakePlayer) Paused() bool  { return p.paused }
func (p *fakePlayer) Playing() bool { return p.playing && !p.paused }

func (p *fakePlayer) SetOutput(name string) error { p.output = name; return nil }
func (p *fakePlayer) CurrentOutput() string       { return p.output }
func (p *fakePlayer) SetOnTrackEnd(fn func())     { p.onEnd = fn }

// finishTrack simulates the native player reaching the end of the
// current track.
func (p *fakePlayer) finishTrack() {
	p.playing = false
	p.onEnd()
}

// fakeOutputs serves a fixed device list, the way device tests do.
type fakeOutputs struct {
	names        []string
	descriptions []string
	releases     int
}

func (f *fakeOutputs) EnumerateOutputs() (*audio.DeviceNode, error) {
	var head *audio.DeviceNode
	for i := len(f.names) - 1; i >= 0; i-- {
		head = &audio.DeviceNode{Name: f.names[i], Description: f.descriptions[i], Next: head}
	}
	return head, nil
}

func (f *fakeOutputs) ReleaseOutputs(head *audio.DeviceNode) { f.releases++ }

func newTestController(t *testing.T) (*Controller, *fakePlayer, *fakeOutputs) {
	t.Helper()

	player := &fakePlayer{}
	outputs := &fakeOutputs{
		names:        []string{"", "hdmi", "usb"},
		descriptions: []string{"Built-in Output", "HDMI", "USB DAC"},
	}
	c, err := NewController(player, outputs)
	require.NoError(t, err)
	return c, player, outputs
}

// drainEvents empties the event channel without blocking.
func drainEvents(c *Controller) []Event {
	var events []Event
	for {
		select {
		case e := <-c.Events():
			events = append(events, e)
		default:
			return events
		}
	}
}

func TestController_PlayThroughToExhaustion(t *testing.T) {
	c, player, _ := newTestController(t)

	require.NoError(t, c.Play([]string{"s1", "s2"}))
	assert.Equal(t, []string{"s1"}, player.started)

	player.finishTrack()
	assert.Equal(t, []string{"s1", "s2"}, player.started)

	player.finishTrack()
	assert.Equal(t, []string{"s1", "s2"}, player.started)
	assert.False(t, player.playing)

	events := drainEvents(c)
	require.NotEmpty(t, events)
	assert.Equal(t, EventPlaybackEnded, events[len(events)-1].Type)
}

func TestController_QueueExtendsLiveChain(t *testing.T) {
	c, player, _ := newTestController(t)

	require.NoError(t, c.Play([]string{"s1"}))
	assert.Equal(t, []string{"s1"}, player.started)

	c.Queue([]string{"s2"})

	player.finishTrack()
	assert.Equal(t, []string{"s1", "s2"}, player.started)

	player.finishTrack()
	assert.Equal(t, []string{"s1", "s2"}, player.started)
}

func TestController_QueueAfterExhaustionIsReachable(t *testing.T) {
	c, player, _ := newTestController(t)

	require.NoError(t, c.Play([]string{"s1"}))
	player.finishTrack()
	assert.False(t, player.playing)

	c.Queue([]string{"s2"})
	require.NoError(t, c.Skip())
	assert.Equal(t, []string{"s1", "s2"}, player.started)
}

func TestController_PlayDiscardsQueuedContent(t *testing.T) {
	c, player, _ := newTestController(t)

	require.NoError(t, c.Play([]string{"a", "b"}))
	c.Queue([]string{"c"})

	// Destructive reset: b and c are gone, only x remains upcoming.
	require.NoError(t, c.Play([]string{"x"}))
	player.finishTrack()

	assert.Equal(t, []string{"a", "x"}, player.started)
	assert.False(t, player.playing)
}

func TestController_QueueRepeat(t *testing.T) {
	c, player, _ := newTestController(t)

	c.QueueRepeat([]string{"a", "b"}, 1)
	require.NoError(t, c.Skip())

	for range 3 {
		player.finishTrack()
	}
	assert.Equal(t, []string{"a", "b", "a", "b"}, player.started)

	player.finishTrack()
	assert.Equal(t, []string{"a", "b", "a", "b"}, player.started)
	assert.False(t, player.playing)
}

func TestController_InterruptTakesPriority(t *testing.T) {
	c, player, _ := newTestController(t)

	require.NoError(t, c.Play([]string{"s1", "s2"}))
	require.NoError(t, c.Interrupt([]string{"i1", "i2"}))

	// Current track keeps playing; overrides drain FIFO afterwards.
	assert.Equal(t, []string{"s1"}, player.started)
	player.finishTrack()
	player.finishTrack()
	player.finishTrack()
	assert.Equal(t, []string{"s1", "i1", "i2", "s2"}, player.started)
}

func TestController_InterruptWhileIdleStartsImmediately(t *testing.T) {
	c, player, _ := newTestController(t)

	require.NoError(t, c.Interrupt([]string{"i1"}))
	assert.Equal(t, []string{"i1"}, player.started)
}

func TestController_ClearInterrupts(t *testing.T) {
	c, player, _ := newTestController(t)

	require.NoError(t, c.Play([]string{"s1", "s2"}))
	require.NoError(t, c.Interrupt([]string{"i1", "i2"}))
	c.ClearInterrupts()

	player.finishTrack()
	assert.Equal(t, []string{"s1", "s2"}, player.started)
}

func TestController_PlayClearsPendingInterrupts(t *testing.T) {
	c, player, _ := newTestController(t)

	require.NoError(t, c.Interrupt([]string{"i1", "i2", "i3"}))
	assert.Equal(t, []string{"i1"}, player.started)

	// The fresh play must not be cut into by stale overrides.
	require.NoError(t, c.Play([]string{"p"}))
	player.finishTrack()

	assert.Equal(t, []string{"i1", "p"}, player.started)
	assert.False(t, player.playing)
}

func TestController_SkipAdvances(t *testing.T) {
	c, player, _ := newTestController(t)

	require.NoError(t, c.Play([]string{"s1", "s2", "s3"}))
	require.NoError(t, c.Skip())
	assert.Equal(t, []string{"s1", "s2"}, player.started)
}

func TestController_StartFailureSurfaces(t *testing.T) {
	c, player, _ := newTestController(t)

	player.startErr = errors.New("decode failed")
	assert.Error(t, c.Play([]string{"broken"}))
}

func TestController_DeviceOperations(t *testing.T) {
	c, player, outputs := newTestController(t)

	listing, err := c.ListDevices()
	require.NoError(t, err)
	assert.Equal(t, "\t0: Built-in Output\n\t1: HDMI\n\t2: USB DAC\n", listing)
	// Refreshing released the snapshot taken at construction.
	assert.Equal(t, 1, outputs.releases)

	// The player starts out on the synthetic default.
	desc, err := c.CurrentDevice()
	require.NoError(t, err)
	assert.Equal(t, "Built-in Output", desc)

	require.NoError(t, c.SelectDevice(1))
	assert.Equal(t, "hdmi", player.output)

	desc, err = c.CurrentDevice()
	require.NoError(t, err)
	assert.Equal(t, "HDMI", desc)

	err = c.SelectDevice(7)
	assert.True(t, errors.Is(err, device.ErrDeviceNotFound))
}

func TestController_CloseReleasesSnapshot(t *testing.T) {
	c, _, outputs := newTestController(t)

	c.Close()
	assert.Equal(t, 1, outputs.releases)

	// Idempotent: the snapshot is not released twice.
	c.Close()
	assert.Equal(t, 1, outputs.releases)
}
