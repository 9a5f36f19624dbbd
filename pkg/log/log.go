package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/viper"
)

// Output is the writer all log functions print to. It defaults to
// stderr so that the report printed on stdout stays machine-readable.
var Output io.Writer = os.Stderr

// Successf highlights a message as successful
func Successf(format string, a ...any) {
	Success(fmt.Sprintf(format, a...))
}

func Success(a ...any) {
	log(*GetPtermSuccessStyle(), "✅ ", a...)
}

// Warnf highlights a message as a warning
func Warnf(format string, a ...any) {
	Warn(fmt.Sprintf(format, a...))
}

func Warn(a ...any) {
	log(pterm.Style{pterm.Bold, pterm.FgYellow}, "⚠️ ", a...)
}

// Notef highlights a message as a note
func Notef(format string, a ...any) {
	Note(fmt.Sprintf(format, a...))
}

func Note(a ...any) {
	log(pterm.Style{pterm.Bold, pterm.FgLightYellow}, "", a...)
}

// Errorf highlights a message as an error and shows the stack strace if the --verbose flag is active
func Errorf(err error, format string, a ...any) {
	Error(err, fmt.Sprintf(format, a...))
}

// Error highlights a message as an error and shows the stack strace if
// the --verbose flag is active. If no message is passed, the error
// message itself is printed.
func Error(err error, a ...any) {
	// If no message is passed, print the error message
	if len(a) == 0 {
		a = append(a, err.Error())
	}

	var stackErr interface{ StackTrace() errors.StackTrace }
	if viper.GetBool("verbose") && errors.As(err, &stackErr) {
		a = append(a, fmt.Sprintf("\n%+v", stackErr.StackTrace()))
	}

	log(*GetPtermErrorStyle(), "❌ ", a...)
}

// Infof outputs a regular user message without any highlighting
func Infof(format string, a ...any) {
	Info(fmt.Sprintf(format, a...))
}

func Info(a ...any) {
	log(pterm.Style{pterm.FgDefault}, "", a...)
}

// Debugf outputs additional information when the --verbose flag is active
func Debugf(format string, a ...any) {
	Debug(fmt.Sprintf(format, a...))
}

func Debug(a ...any) {
	if viper.GetBool("verbose") {
		log(pterm.Style{pterm.FgGray}, "🔍 ", a...)
	}
}

// Printf writes without any colors
func Printf(format string, a ...any) {
	Print(fmt.Sprintf(format, a...))
}

func Print(a ...any) {
	log(pterm.Style{pterm.FgDefault}, "", a...)
}

func log(style pterm.Style, icon string, a ...any) {
	s := icon + fmt.Sprint(a...)
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}

	// Clear the spinner line first so that the message doesn't get
	// mixed up with the spinner text
	if currentProgressSpinner != nil {
		pterm.Fprinto(Output, "")
	}

	_, _ = fmt.Fprint(Output, style.Sprint(s))

	if currentProgressSpinner != nil {
		currentProgressSpinner.UpdateText(currentProgressSpinner.Text)
	}
}
