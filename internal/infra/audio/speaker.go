package audio

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"
)

// DefaultOutputName is the one device the speaker backend can address:
// the platform default sink.
const DefaultOutputName = "default"

// SpeakerConfig holds the decoded speaker backend settings.
type SpeakerConfig struct {
	SampleRate int `mapstructure:"sample_rate" default:"44100" validate:"gt=0"`
	BufferMs   int `mapstructure:"buffer_ms" default:"100" validate:"gt=0,lte=2000"`
}

// Speaker plays local audio files through the platform default output.
// It reports track completion through the callback registered with
// SetOnTrackEnd and never fetches the next track on its own.
type Speaker struct {
	mu sync.Mutex

	config   SpeakerConfig
	rate     beep.SampleRate
	file     *os.File
	streamer beep.StreamSeekCloser
	ctrl     *beep.Ctrl
	playing  bool
	paused   bool
	output   string
	onEnd    func()
}

// NewSpeaker decodes the backend settings and initializes the native
// output at the configured sample rate.
func NewSpeaker(settings map[string]any) (*Speaker, error) {
	var config SpeakerConfig
	if err := mapstructure.Decode(settings, &config); err != nil {
		return nil, errors.Wrap(err, "failed to decode settings")
	}
	if err := defaults.Set(&config); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}
	zlog.Debug().Msgf("speaker config: %+v", config)
	if err := validator.New().Struct(config); err != nil {
		return nil, errors.Wrap(err, "validation failed")
	}

	rate := beep.SampleRate(config.SampleRate)
	buffer := rate.N(time.Duration(config.BufferMs) * time.Millisecond)
	if err := speaker.Init(rate, buffer); err != nil {
		return nil, errors.Wrap(err, "failed to initialize speaker")
	}

	return &Speaker{
		config: config,
		rate:   rate,
		output: DefaultOutputName,
	}, nil
}

// SetOnTrackEnd registers the callback fired when a track plays to its
// natural end. Stop and Start do not fire it.
func (s *Speaker) SetOnTrackEnd(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onEnd = fn
}

// Start begins playback of the file at uri, replacing whatever was
// playing before.
func (s *Speaker) Start(uri string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()

	f, err := os.Open(uri)
	if err != nil {
		return errors.Wrapf(err, "failed to open %q", uri)
	}

	streamer, format, err := decode(f, uri)
	if err != nil {
		_ = f.Close()
		return err
	}

	var stream beep.Streamer = streamer
	if format.SampleRate != s.rate {
		stream = beep.Resample(4, format.SampleRate, s.rate, streamer)
	}

	s.file = f
	s.streamer = streamer
	s.ctrl = &beep.Ctrl{Streamer: stream}
	s.playing = true
	s.paused = false

	end := s.onEnd
	speaker.Play(beep.Seq(s.ctrl, beep.Callback(func() {
		// The callback runs on the mixer goroutine; hand off so the
		// scheduler can start the next track without deadlocking it.
		if end != nil {
			go end()
		}
	})))

	zlog.Debug().Msgf("speaker: started %s (rate=%v)", uri, format.SampleRate)
	return nil
}

// Stop halts playback and releases the current stream.
func (s *Speaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Speaker) stopLocked() {
	if !s.playing && s.streamer == nil {
		return
	}

	speaker.Clear()

	if s.streamer != nil {
		_ = s.streamer.Close()
		s.streamer = nil
	}
	if s.file != nil {
		_ = s.file.Close()
		s.file = nil
	}
	s.ctrl = nil
	s.playing = false
	s.paused = false
}

// SetPaused pauses or resumes the current track.
func (s *Speaker) SetPaused(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctrl == nil {
		return
	}
	speaker.Lock()
	s.ctrl.Paused = paused
	speaker.Unlock()
	s.paused = paused
}

// TogglePause flips the pause state and reports true if now paused.
func (s *Speaker) TogglePause() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctrl == nil {
		return false
	}
	speaker.Lock()
	s.ctrl.Paused = !s.ctrl.Paused
	s.paused = s.ctrl.Paused
	speaker.Unlock()
	return s.paused
}

// Paused reports true if currently paused, false in all other cases
// including stopped.
func (s *Speaker) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing && s.paused
}

// Playing reports true if a track is actively playing.
func (s *Speaker) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing && !s.paused
}

// SetOutput selects the output device by backend name. The speaker
// backend routes everything through the platform default sink, so only
// that device is addressable.
func (s *Speaker) SetOutput(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name != "" && name != DefaultOutputName {
		return errors.Newf("speaker backend cannot address output %q", name)
	}
	s.output = DefaultOutputName
	return nil
}

// CurrentOutput returns the backend name of the device in use.
func (s *Speaker) CurrentOutput() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.output
}

// EnumerateOutputs snapshots the outputs the backend can address. The
// list has a single record for the platform default sink.
func (s *Speaker) EnumerateOutputs() (*DeviceNode, error) {
	return &DeviceNode{
		Name:        DefaultOutputName,
		Description: "System default output",
	}, nil
}

// ReleaseOutputs releases an enumeration snapshot. The speaker backend
// holds no native memory behind its records, so this is a no-op.
func (s *Speaker) ReleaseOutputs(head *DeviceNode) {}

// Close stops playback and shuts the native output down.
func (s *Speaker) Close() error {
	s.Stop()
	speaker.Close()
	return nil
}

// decode picks a decoder from the file extension.
func decode(f *os.File, uri string) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(uri)) {
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	case ".wav":
		return wav.Decode(f)
	case ".ogg":
		return vorbis.Decode(f)
	default:
		return nil, beep.Format{}, errors.Newf("unsupported audio format: %q", filepath.Ext(uri))
	}
}
