package platform

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/rs/zerolog"
)

// ErrNoPlayer indicates no command line audio player is installed.
var ErrNoPlayer = errors.New("no audio player found")

// audioPlayers are tried in order; the first one on PATH is used.
var audioPlayers = []string{"paplay", "aplay", "afplay"}

// AlarmPlayer plays alarm files through a system audio player and falls back
// to the terminal bell.
type AlarmPlayer struct {
	command string
	bell    io.Writer
	logger  zerolog.Logger
	start   func(cmd *exec.Cmd) error
}

// NewAlarmPlayer looks up an audio player. bell receives the fallback bell character.
func NewAlarmPlayer(bell io.Writer, logger zerolog.Logger) *AlarmPlayer {
	return newAlarmPlayer(exec.LookPath, bell, logger)
}

func newAlarmPlayer(lookPath func(string) (string, error), bell io.Writer, logger zerolog.Logger) *AlarmPlayer {
	player := &AlarmPlayer{
		bell:   bell,
		logger: logger,
		start:  startDetached,
	}
	for _, name := range audioPlayers {
		if path, err := lookPath(name); err == nil {
			player.command = path
			break
		}
	}
	return player
}

// Command returns the audio player in use, or an empty string.
func (player *AlarmPlayer) Command() string {
	return player.command
}

// PlayAlarm starts playing path without waiting for it to finish. An empty or
// missing path rings the bell instead.
func (player *AlarmPlayer) PlayAlarm(path string) error {
	if path == "" {
		return player.ring()
	}
	if _, err := os.Stat(path); err != nil {
		player.logger.Warn().Err(err).Str("path", path).Msg("alarm sound unavailable, ringing bell")
		return player.ring()
	}
	if player.command == "" {
		if err := player.ring(); err != nil {
			return err
		}
		return fmt.Errorf("play %s: %w", path, ErrNoPlayer)
	}

	if err := player.start(exec.Command(player.command, path)); err != nil {
		return fmt.Errorf("start %s: %w", player.command, err)
	}
	return nil
}

func (player *AlarmPlayer) ring() error {
	if player.bell == nil {
		return nil
	}
	if _, err := io.WriteString(player.bell, "\a"); err != nil {
		return fmt.Errorf("ring bell: %w", err)
	}
	return nil
}

func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}
