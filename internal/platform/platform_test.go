package platform

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookPathFor(available ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, candidate := range available {
			if candidate == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", exec.ErrNotFound
	}
}

func soundFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bell.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF"), 0o644))
	return path
}

func TestAlarmPlayerPrefersFirstAvailablePlayer(t *testing.T) {
	player := newAlarmPlayer(lookPathFor("afplay", "aplay"), nil, zerolog.Nop())
	assert.Equal(t, "/usr/bin/aplay", player.Command())
}

func TestAlarmPlayerStartsCommandWithPath(t *testing.T) {
	var started []string
	player := newAlarmPlayer(lookPathFor("paplay"), nil, zerolog.Nop())
	player.start = func(cmd *exec.Cmd) error {
		started = cmd.Args
		return nil
	}
	path := soundFile(t)

	require.NoError(t, player.PlayAlarm(path))
	assert.Equal(t, []string{"/usr/bin/paplay", path}, started)
}

func TestAlarmPlayerRingsBellWithoutSound(t *testing.T) {
	var bell bytes.Buffer
	player := newAlarmPlayer(lookPathFor("paplay"), &bell, zerolog.Nop())
	player.start = func(*exec.Cmd) error {
		t.Fatal("no command expected")
		return nil
	}

	require.NoError(t, player.PlayAlarm(""))
	require.NoError(t, player.PlayAlarm(filepath.Join(t.TempDir(), "missing.wav")))
	assert.Equal(t, "\a\a", bell.String())
}

func TestAlarmPlayerWithoutPlayer(t *testing.T) {
	var bell bytes.Buffer
	player := newAlarmPlayer(lookPathFor(), &bell, zerolog.Nop())

	err := player.PlayAlarm(soundFile(t))

	assert.ErrorIs(t, err, ErrNoPlayer)
	assert.Equal(t, "\a", bell.String())
}

func TestAlarmPlayerStartFailure(t *testing.T) {
	player := newAlarmPlayer(lookPathFor("aplay"), nil, zerolog.Nop())
	player.start = func(*exec.Cmd) error { return errors.New("exec format error") }

	assert.Error(t, player.PlayAlarm(soundFile(t)))
}

func TestSingleInstanceGuard(t *testing.T) {
	dir := t.TempDir()
	first, err := AcquireSingleInstance("pomopro-test", dir)
	if err != nil {
		t.Skipf("port unavailable: %v", err)
	}
	defer first.Release()

	_, err = AcquireSingleInstance("pomopro-test", dir)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	require.NoError(t, first.Release())
	again, err := AcquireSingleInstance("pomopro-test", dir)
	require.NoError(t, err)
	assert.Equal(t, first.Address(), again.Address())
	require.NoError(t, again.Release())
}

func TestDataDir(t *testing.T) {
	dir, err := DataDir("pomopro", "/srv/pomo")
	require.NoError(t, err)
	assert.Equal(t, "/srv/pomo", dir)

	t.Setenv("XDG_CONFIG_HOME", "/home/tester/.config")
	t.Setenv("HOME", "/home/tester")
	dir, err = DataDir("pomopro", "")
	require.NoError(t, err)
	assert.Equal(t, "pomopro", filepath.Base(dir))
}
