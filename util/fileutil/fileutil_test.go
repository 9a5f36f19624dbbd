package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettifyPath(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, "/"+filepath.Join("not", "cwd"), PrettifyPath("/"+filepath.Join("not", "cwd")))
	assert.Equal(t, filepath.Join("some", "dir"), PrettifyPath(filepath.Join(cwd, "some", "dir")))
	assert.Equal(t, cwd, PrettifyPath(cwd))
	assert.Equal(t, filepath.Dir(cwd), PrettifyPath(filepath.Dir(cwd)))
	assert.Equal(t, filepath.Join("..some", "dir"), PrettifyPath(filepath.Join(cwd, "..some", "dir")))
}

func TestIsExecutable(t *testing.T) {
	dir := t.TempDir()

	exe := filepath.Join(dir, "exe")
	err := os.WriteFile(exe, []byte("#!/bin/sh\n"), 0755)
	require.NoError(t, err)
	plain := filepath.Join(dir, "plain")
	err = os.WriteFile(plain, []byte("data"), 0644)
	require.NoError(t, err)

	assert.True(t, IsExecutable(exe))
	assert.False(t, IsExecutable(plain))
	assert.False(t, IsExecutable(dir))
	assert.False(t, IsExecutable(filepath.Join(dir, "missing")))
	assert.True(t, IsFile(plain))
	assert.False(t, IsFile(dir))
	assert.True(t, IsDir(dir))
}

func TestReadMagic(t *testing.T) {
	dir := t.TempDir()

	short := filepath.Join(dir, "short")
	err := os.WriteFile(short, []byte{0x7f, 'E'}, 0644)
	require.NoError(t, err)
	magic, err := ReadMagic(short, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x7f, 'E'}, magic)

	elf := filepath.Join(dir, "elf")
	err = os.WriteFile(elf, []byte("\x7fELF\x02\x01\x01"), 0644)
	require.NoError(t, err)
	magic, err = ReadMagic(elf, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x7fELF"), magic)

	_, err = ReadMagic(filepath.Join(dir, "missing"), 4)
	require.Error(t, err)
}

func TestRealPath(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	target := filepath.Join(dir, "libfoo.so.1.2")
	err = os.WriteFile(target, nil, 0644)
	require.NoError(t, err)
	link := filepath.Join(dir, "libfoo.so.1")
	err = os.Symlink("libfoo.so.1.2", link)
	require.NoError(t, err)

	resolved, err := RealPath(link)
	require.NoError(t, err)
	assert.Equal(t, target, resolved)

	exists, err := Exists(link)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = Exists(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.False(t, exists)
}
