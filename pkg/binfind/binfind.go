// Package binfind discovers the binaries to check: it classifies files
// by their magic bytes and walks directories for executable binaries.
package binfind

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mattn/go-zglob"
	"github.com/pkg/errors"

	"code-intelligence.com/bincheck/pkg/bininfo"
	"code-intelligence.com/bincheck/pkg/log"
	"code-intelligence.com/bincheck/util/fileutil"
	"code-intelligence.com/bincheck/util/sliceutil"
)

var (
	elfMagic = []byte("\x7fELF")
	// Only 64-bit little endian Mach-O binaries are detected
	machOMagic = []byte{0xcf, 0xfa, 0xed, 0xfe}
)

func IsELF(path string) (bool, error) {
	return hasMagic(path, elfMagic)
}

// IsMachO returns true for Mach-O binaries and text-based stubs.
func IsMachO(path string) (bool, error) {
	if bininfo.IsTBDPath(path) {
		return true, nil
	}
	return hasMagic(path, machOMagic)
}

func hasMagic(path string, magic []byte) (bool, error) {
	head, err := fileutil.ReadMagic(path, len(magic))
	if err != nil {
		return false, err
	}
	return bytes.Equal(head, magic), nil
}

// AnyDarwin returns true if any of the paths looks like a Darwin
// library or binary.
func AnyDarwin(paths []string) bool {
	for _, path := range paths {
		if strings.HasSuffix(path, ".dylib") || bininfo.IsTBDPath(path) {
			return true
		}
		if !fileutil.IsFile(path) {
			continue
		}
		isMachO, err := IsMachO(path)
		if err != nil {
			log.Debugf("Failed to read magic of %s: %v", path, err)
			continue
		}
		if isMachO {
			return true
		}
	}
	return false
}

// Find returns the sorted list of binaries of the platform among the
// paths. A file is returned if it's a binary, a directory is searched
// recursively for executable binaries. Paths which don't exist are
// expanded as glob patterns (supporting "**").
func Find(paths []string, platform bininfo.Platform) ([]string, error) {
	isBinary := IsELF
	if platform == bininfo.MachO {
		isBinary = IsMachO
	}

	var binaries []string
	for _, path := range paths {
		matches, err := expand(path)
		if err != nil {
			return nil, err
		}
		for _, match := range matches {
			found, err := find(match, isBinary)
			if err != nil {
				return nil, err
			}
			binaries = append(binaries, found...)
		}
	}

	binaries = sliceutil.Unique(binaries)
	sort.Strings(binaries)
	return binaries, nil
}

func expand(path string) ([]string, error) {
	exists, err := fileutil.Exists(path)
	if err != nil {
		return nil, err
	}
	if exists || !strings.ContainsAny(path, "*?[{") {
		return []string{path}, nil
	}

	matches, err := zglob.Glob(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to expand %s", path)
	}
	if len(matches) == 0 {
		return nil, errors.Errorf("no files match %s", path)
	}
	return matches, nil
}

func find(path string, isBinary func(string) (bool, error)) ([]string, error) {
	if !fileutil.IsDir(path) {
		if !fileutil.IsFile(path) {
			return nil, errors.Errorf("%s is not a file or directory", path)
		}
		ok, err := isBinary(path)
		if err != nil || !ok {
			return nil, err
		}
		return []string{path}, nil
	}

	var binaries []string
	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.WithStack(err)
		}
		if d.IsDir() || !fileutil.IsExecutable(p) {
			return nil
		}
		ok, err := isBinary(p)
		if err != nil {
			if errors.Is(err, os.ErrPermission) {
				log.Debugf("Skipping unreadable file %s", p)
				return nil
			}
			return err
		}
		if ok {
			binaries = append(binaries, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return binaries, nil
}
