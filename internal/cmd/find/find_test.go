package find

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code-intelligence.com/bincheck/internal/cmdutils"
)

func setup(t *testing.T) string {
	t.Setenv("CLICOLOR_FORCE", "")
	t.Setenv("NO_COLOR", "1")

	dir := t.TempDir()
	for name, content := range map[string]string{
		"bin/tool":        "\x7fELF\x02\x01\x01\x00",
		"lib/libfoo.so.1": "\x7fELF\x02\x01\x01\x00",
		"bin/script":      "#!/bin/sh\n",
	} {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o755))
	}
	return dir
}

func TestFind(t *testing.T) {
	dir := setup(t)

	out, err := cmdutils.ExecuteCommand(t, New(), os.Stdin, "--darwin=false", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "bin", "tool")+"\n"+filepath.Join(dir, "lib", "libfoo.so.1")+"\n", out)
}

func TestFind_JSON(t *testing.T) {
	dir := setup(t)

	out, err := cmdutils.ExecuteCommand(t, New(), os.Stdin, "--darwin=false", "--json", filepath.Join(dir, "lib"))
	require.NoError(t, err)

	var binaries []string
	require.NoError(t, json.Unmarshal([]byte(out), &binaries))
	assert.Equal(t, []string{filepath.Join(dir, "lib", "libfoo.so.1")}, binaries)
}

func TestFind_NonExistent(t *testing.T) {
	_, err := cmdutils.ExecuteCommand(t, New(), os.Stdin, "--darwin=false", filepath.Join(t.TempDir(), "nonexistent"))
	assert.Error(t, err)
}
