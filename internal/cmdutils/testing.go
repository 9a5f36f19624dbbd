package cmdutils

import (
	"bytes"
	"io"
	"testing"

	"github.com/spf13/cobra"
)

// ExecuteCommand runs the command with the arguments and returns what
// it printed to its output. Errors are returned but not printed, like
// the root command does.
func ExecuteCommand(t *testing.T, cmd *cobra.Command, in io.Reader, args ...string) (string, error) {
	t.Helper()

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	output := bytes.Buffer{}
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetIn(in)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return output.String(), err
}
