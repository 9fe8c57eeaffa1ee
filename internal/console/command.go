package console

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCommand is returned for input lines that name no command.
var ErrUnknownCommand = errors.New("unknown command")

// CommandName identifies a headless control command.
type CommandName string

const (
	CommandStart      CommandName = "start"
	CommandPause      CommandName = "pause"
	CommandSkip       CommandName = "skip"
	CommandReset      CommandName = "reset"
	CommandFocus      CommandName = "focus"
	CommandShortBreak CommandName = "break"
	CommandLongBreak  CommandName = "long"
	CommandTask       CommandName = "task"
	CommandAlarm      CommandName = "alarm"
	CommandStatus     CommandName = "status"
	CommandHelp       CommandName = "help"
	CommandQuit       CommandName = "quit"
)

var commandAliases = map[string]CommandName{
	"start": CommandStart, "go": CommandStart,
	"p": CommandPause, "pause": CommandPause, "resume": CommandPause,
	"s": CommandSkip, "skip": CommandSkip,
	"r": CommandReset, "reset": CommandReset,
	"f": CommandFocus, "focus": CommandFocus,
	"b": CommandShortBreak, "break": CommandShortBreak,
	"l": CommandLongBreak, "long": CommandLongBreak,
	"t": CommandTask, "task": CommandTask,
	"a": CommandAlarm, "alarm": CommandAlarm,
	"?": CommandStatus, "status": CommandStatus,
	"h": CommandHelp, "help": CommandHelp,
	"q": CommandQuit, "quit": CommandQuit, "exit": CommandQuit,
}

// Command is one parsed input line.
type Command struct {
	Name CommandName
	Arg  string
}

// ParseCommand parses "name [argument]". An empty line parses as status.
func ParseCommand(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{Name: CommandStatus}, nil
	}
	word, arg, _ := strings.Cut(line, " ")
	name, ok := commandAliases[strings.ToLower(word)]
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, word)
	}
	arg = strings.TrimSpace(arg)
	if name == CommandAlarm && arg == "" {
		return Command{}, fmt.Errorf("alarm needs a time, e.g. \"alarm 07:30\"")
	}
	return Command{Name: name, Arg: arg}, nil
}

// Help lists the headless commands.
const Help = `commands:
  start        start a focus session (or resume a stopped one)
  p, pause     pause or resume
  s, skip      end the current session as skipped
  r, reset     stop and return to idle
  f, b, l      start focus, short break or long break
  t <name>     set the current task
  a <HH:MM>    ring an alarm at a time of day ("a off" clears it)
  ?, status    show the timer state
  q, quit      exit
`
