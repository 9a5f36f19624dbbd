package cmdutils

import (
	"os"

	"golang.org/x/term"
)

// ColorEnabled returns true if the output should be colored, which is
// the case if CLICOLOR_FORCE is set or stderr is a terminal and NO_COLOR
// is not set.
func ColorEnabled() bool {
	if os.Getenv("CLICOLOR_FORCE") != "" {
		return true
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// ShouldShowSpinner returns true if a progress spinner can be shown
// without garbling the output.
func ShouldShowSpinner() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
}
