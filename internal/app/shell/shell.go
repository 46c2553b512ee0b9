// Package shell implements the interactive command prompt.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osheim/noisebox/internal/domain/library"
	"github.com/osheim/noisebox/internal/domain/source"
)

// Controller is the playback surface the shell drives.
type Controller interface {
	Play(items []string) error
	Queue(items []string)
	QueueRepeat(items []string, times int)
	Interrupt(items []string) error
	ClearInterrupts()
	Skip() error
	Stop()
	SetPaused(paused bool)
	TogglePause() bool
	ListDevices() (string, error)
	SelectDevice(index int) error
	CurrentDevice() (string, error)
}

// Shell reads commands from in and writes responses to out. Playback
// commands resolve names through the library first, so the controller
// only ever sees ordered URI sequences.
type Shell struct {
	controller Controller
	lib        *library.Library
	libPath    string
	in         io.Reader
	out        io.Writer
}

// New creates a shell over the given controller and library. libPath is
// where library mutations are persisted.
func New(controller Controller, lib *library.Library, libPath string, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		controller: controller,
		lib:        lib,
		libPath:    libPath,
		in:         in,
		out:        out,
	}
}

// Run processes commands until EOF or quit.
func (s *Shell) Run() error {
	fmt.Fprintln(s.out, `NoiseBox ready. Type "help" for commands.`)

	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			break
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			break
		}
		if err := s.dispatch(fields[0], fields[1:]); err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
	return scanner.Err()
}

func (s *Shell) dispatch(command string, args []string) error {
	switch command {
	case "help":
		s.printHelp()
		return nil
	case "play":
		return s.play(args)
	case "queue":
		return s.queue(args)
	case "repeat":
		return s.queueRepeat(args)
	case "interrupt":
		return s.interrupt(args)
	case "clear":
		s.controller.ClearInterrupts()
		return nil
	case "skip":
		return s.controller.Skip()
	case "stop":
		s.controller.Stop()
		return nil
	case "pause":
		if s.controller.TogglePause() {
			fmt.Fprintln(s.out, "paused")
		} else {
			fmt.Fprintln(s.out, "playing")
		}
		return nil
	case "resume":
		s.controller.SetPaused(false)
		return nil
	case "devices":
		listing, err := s.controller.ListDevices()
		if err != nil {
			return err
		}
		fmt.Fprint(s.out, listing)
		return nil
	case "device":
		return s.device(args)
	case "songs":
		s.printSongs()
		return nil
	case "playlists":
		s.printPlaylists()
		return nil
	case "addsong":
		return s.addSong(args)
	case "newplaylist":
		return s.newPlaylist(args)
	case "addto":
		return s.addToPlaylist(args)
	case "removefrom":
		return s.removeFromPlaylist(args)
	case "save":
		return s.saveLibrary()
	default:
		return errors.Newf("unknown command %q, try \"help\"", command)
	}
}

func (s *Shell) play(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: play NAME")
	}
	items, err := s.lib.Resolve(args[0])
	if err != nil {
		return err
	}
	return s.controller.Play(items)
}

func (s *Shell) queue(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: queue NAME")
	}
	items, err := s.lib.Resolve(args[0])
	if err != nil {
		return err
	}
	s.controller.Queue(items)
	return nil
}

func (s *Shell) queueRepeat(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: repeat NAME [TIMES]")
	}
	times := source.RepeatForever
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 0 {
			return errors.Newf("invalid repeat count %q", args[1])
		}
		times = n
	}
	items, err := s.lib.Resolve(args[0])
	if err != nil {
		return err
	}
	s.controller.QueueRepeat(items, times)
	return nil
}

func (s *Shell) interrupt(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: interrupt NAME")
	}
	items, err := s.lib.Resolve(args[0])
	if err != nil {
		return err
	}
	return s.controller.Interrupt(items)
}

func (s *Shell) device(args []string) error {
	if len(args) == 0 {
		desc, err := s.controller.CurrentDevice()
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, desc)
		return nil
	}
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.Newf("invalid device index %q", args[0])
	}
	return s.controller.SelectDevice(index)
}

func (s *Shell) printSongs() {
	for _, song := range s.lib.Songs() {
		if song.Description != "" {
			fmt.Fprintf(s.out, "\t%s: %s (%s)\n", song.Alias, song.Description, song.URI)
		} else {
			fmt.Fprintf(s.out, "\t%s: %s\n", song.Alias, song.URI)
		}
	}
}

func (s *Shell) printPlaylists() {
	for _, name := range s.lib.Playlists() {
		aliases, err := s.lib.Playlist(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(s.out, "\t%s: %s\n", name, strings.Join(aliases, ", "))
	}
}

func (s *Shell) addSong(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: addsong ALIAS PATH")
	}
	song, err := library.SongFromFile(args[0], args[1])
	if err != nil {
		return err
	}
	if err := s.lib.AddSong(song, false); err != nil {
		return err
	}
	return s.saveLibrary()
}

func (s *Shell) newPlaylist(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: newplaylist NAME")
	}
	if err := s.lib.CreatePlaylist(args[0], false); err != nil {
		return err
	}
	return s.saveLibrary()
}

func (s *Shell) addToPlaylist(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: addto PLAYLIST SONG")
	}
	if err := s.lib.AddToPlaylist(args[0], args[1]); err != nil {
		return err
	}
	return s.saveLibrary()
}

func (s *Shell) removeFromPlaylist(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: removefrom PLAYLIST SONG")
	}
	if err := s.lib.RemoveFromPlaylist(args[0], args[1]); err != nil {
		return err
	}
	return s.saveLibrary()
}

func (s *Shell) saveLibrary() error {
	if err := s.lib.Save(s.libPath); err != nil {
		return errors.Wrap(err, "failed to save library")
	}
	zlog.Debug().Msgf("shell: library saved to %s", s.libPath)
	return nil
}

func (s *Shell) printHelp() {
	fmt.Fprint(s.out, `Playback:
	play NAME          play a song or playlist now, discarding the queue
	queue NAME         append a song or playlist to the queue
	repeat NAME [N]    queue NAME repeating N extra times (forever if omitted)
	interrupt NAME     play NAME next, ahead of everything queued
	clear              drop pending interrupts
	skip               skip to the next track
	pause              toggle pause
	resume             resume if paused
	stop               stop playback
Devices:
	devices            list audio output devices
	device [N]         show the current device, or select device N
Library:
	songs              list songs
	playlists          list playlists
	addsong ALIAS PATH register a local audio file
	newplaylist NAME   create an empty playlist
	addto LIST SONG    append a song to a playlist
	removefrom LIST SONG
	save               write the library to disk
Other:
	help               show this text
	quit               exit
`)
}
