package ui

import (
	"os"

	"golang.org/x/term"
)

// defaultWidth is assumed when stdout is not a terminal (pipes, CI).
const defaultWidth = 80

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// IsInputTerminal reports whether stdin is attached to a terminal.
// Interactive prompts are skipped when it isn't.
func IsInputTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// TerminalWidth returns the stdout width, or a default when it can't
// be determined.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}
