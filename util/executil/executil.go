package executil

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/pkg/errors"

	"code-intelligence.com/bincheck/pkg/log"
)

// Cmd provides the same functionality as exec.Cmd plus some utility
// methods.
type Cmd struct {
	*exec.Cmd
}

func Command(name string, arg ...string) *Cmd {
	return &Cmd{Cmd: exec.Command(name, arg...)}
}

// CommandContext is like Command but includes a context which kills
// the process if it becomes done before the command completes on its
// own.
func CommandContext(ctx context.Context, name string, arg ...string) *Cmd {
	return &Cmd{Cmd: exec.CommandContext(ctx, name, arg...)}
}

// String returns the command line quoted so that it can be pasted into
// a shell.
func (c *Cmd) String() string {
	return shellescape.QuoteCommand(c.Args)
}

// OutputWithStderr runs the command and returns its standard output.
// If the command fails, the returned error includes everything it
// wrote to stderr.
func (c *Cmd) OutputWithStderr() ([]byte, error) {
	if c.Stdout != nil {
		return nil, errors.New("exec: Stdout already set")
	}
	if c.Stderr != nil {
		return nil, errors.New("exec: Stderr already set")
	}
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	log.Debugf("Command: %s", c.String())
	err := c.Run()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, errors.Wrapf(err, "command failed: %s", c.String())
		}
		return nil, errors.Wrapf(err, "command failed: %s\n%s", c.String(), msg)
	}
	return stdout.Bytes(), nil
}

// LookPath returns the path of the first of the given executables which
// can be found in PATH.
func LookPath(names ...string) (string, error) {
	if len(names) == 0 {
		return "", errors.New("no executable names given")
	}
	for _, name := range names {
		path, err := exec.LookPath(name)
		if err == nil {
			return path, nil
		}
	}
	return "", errors.Errorf("none of %s found in PATH", strings.Join(names, ", "))
}
