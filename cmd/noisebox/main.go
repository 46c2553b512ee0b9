// Package main provides the noisebox entry point.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/osheim/noisebox/internal/app/playback"
	"github.com/osheim/noisebox/internal/app/shell"
	"github.com/osheim/noisebox/internal/domain/library"
	"github.com/osheim/noisebox/internal/infra/audio"
	"github.com/osheim/noisebox/internal/infra/config"
	"github.com/osheim/noisebox/internal/infra/logger"
)

var (
	app        = kingpin.New("noisebox", "NoiseBox personal audio player")
	configPath = app.Flag("config", "Path to config file").Default(config.DefaultPath()).String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stderr)").String()

	// devices command
	devicesCmd = app.Command("devices", "List audio output devices and exit")
)

func init() {
	// start command (default) - no need to store the command
	app.Command("start", "Start the interactive player (default)").Default()
}

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	// Parse command
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	// Initialize logger. Logs go to stderr so they don't tangle with
	// the interactive prompt on stdout.
	loggerConfig := logger.Config{
		Output: "stderr",
		Level:  "info",
	}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = *logfile
		loggerConfig.File = *logfile
	}
	if err := logger.Init(loggerConfig); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	// Load config
	zlog.Debug().Msgf("Loading config from %s", *configPath)
	cfg, err := config.Load(*configPath)
	if err != nil {
		zlog.Fatal().Msgf("Failed to load config: %v", err)
	}

	if err := run(cfg, command); err != nil {
		zlog.Error().Msgf("noisebox error: %v", err)
		os.Exit(1)
	}
}

// run executes the main player logic. Using a separate function ensures
// defer statements are executed even when returning with an error.
func run(cfg *config.Config, command string) error {
	player, err := newPlayer(cfg)
	if err != nil {
		return err
	}
	defer player.Close()

	controller, err := playback.NewController(player, player)
	if err != nil {
		return errors.Wrap(err, "failed to create playback controller")
	}
	defer controller.Close()

	if command == devicesCmd.FullCommand() {
		listing, err := controller.ListDevices()
		if err != nil {
			return err
		}
		fmt.Print(listing)
		return nil
	}

	lib, err := library.Load(cfg.Library.Path)
	if err != nil {
		return errors.Wrap(err, "failed to load media library")
	}
	zlog.Info().Msgf("Loaded library from %s (%d songs)", cfg.Library.Path, len(lib.Songs()))

	go reportEvents(controller)

	return shell.New(controller, lib, cfg.Library.Path, os.Stdin, os.Stdout).Run()
}

// newPlayer builds the audio backend selected by the config.
func newPlayer(cfg *config.Config) (*audio.Speaker, error) {
	switch cfg.Audio.Backend {
	case "speaker":
		player, err := audio.NewSpeaker(cfg.Audio.Settings)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create speaker backend")
		}
		return player, nil
	default:
		return nil, errors.Newf("unsupported audio backend: %s", cfg.Audio.Backend)
	}
}

// reportEvents logs scheduler events until the controller closes.
func reportEvents(controller *playback.Controller) {
	for ev := range controller.Events() {
		switch ev.Type {
		case playback.EventTrackStarted:
			zlog.Info().Msgf("Now playing: %s", ev.Item)
		case playback.EventPlaybackEnded:
			zlog.Info().Msg("Nothing left to play")
		case playback.EventDeviceChanged:
			zlog.Info().Msgf("Output device: %s", ev.Item)
		case playback.EventStateChanged:
			zlog.Debug().Msgf("Playback state: %s", ev.State)
		}
	}
}
