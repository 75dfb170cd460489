package modes

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnknownMode is returned for commands that name no mode.
	ErrUnknownMode = errors.New("unknown mode")
	// ErrUnsupportedMode is returned for modes that exist but are not drawing
	// modes this host can run.
	ErrUnsupportedMode = errors.New("mode has no drawing surface")
)

// Non-drawing modes recognised by Select.
const (
	Chaos    = "chaos"
	Retro    = "retro"
	Darkness = "darkness"
	Crash    = "crash"
)

var commands = map[string]string{
	"coffee":        Coffee,
	"latte":         Coffee,
	"wiggly":        Wiggly,
	"paint":         Wiggly,
	"chaos":         Chaos,
	"konami":        Retro,
	"retro":         Retro,
	"darkness":      Darkness,
	"sudo rm -rf /": Crash,
}

// Select resolves a typed command to a mode name. Commands are matched
// case-insensitively after trimming. Recognised non-drawing modes return
// their name together with an error wrapping ErrUnsupportedMode.
func Select(command string) (string, error) {
	cmd := strings.ToLower(strings.TrimSpace(command))
	mode, ok := commands[cmd]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, command)
	}
	switch mode {
	case Coffee, Wiggly:
		return mode, nil
	}
	return mode, fmt.Errorf("%w: %s", ErrUnsupportedMode, mode)
}

// Commands lists the recognised commands for each mode.
func Commands() map[string][]string {
	out := make(map[string][]string)
	for cmd, mode := range commands {
		out[mode] = append(out[mode], cmd)
	}
	for _, cmds := range out {
		sort.Strings(cmds)
	}
	return out
}
