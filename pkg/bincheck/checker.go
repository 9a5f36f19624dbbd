// Package bincheck statically predicts whether the dynamic symbol
// references of a binary would be resolved by the dynamic loader: it
// walks the transitive library dependencies and reports missing
// libraries and unresolved symbols.
package bincheck

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"

	"code-intelligence.com/bincheck/pkg/bininfo"
	"code-intelligence.com/bincheck/pkg/log"
	"code-intelligence.com/bincheck/util/fileutil"
)

// Number of descriptors kept in memory, enough for the complete
// dependency closure of any realistic binary
const descriptorCacheSize = 4096

type Options struct {
	Platform bininfo.Platform
	// SearchPath is the list of directories searched for library names
	// without a directory separator, in order.
	SearchPath []string
	// StubDir is the root directory of the text-based stubs of the
	// libraries which are only present in the dyld shared cache. Only
	// used on the Mach-O platform.
	StubDir string
	// GlibcVersionMax is the newest GLIBC symbol version which is
	// allowed to be used, nil for no limit. Only used on the ELF
	// platform.
	GlibcVersionMax *semver.Version
}

func (opts *Options) Validate() error {
	switch opts.Platform {
	case bininfo.ELF:
	case bininfo.MachO:
		if opts.GlibcVersionMax != nil {
			return errors.New("a maximum GLIBC version can't be used for Mach-O binaries")
		}
	default:
		return errors.Errorf("unknown platform %q", opts.Platform)
	}
	return nil
}

// Checker holds the configuration of a check and the descriptors
// extracted so far. It's safe for concurrent use, the state of a
// single check lives in a Resolver.
type Checker struct {
	opts      Options
	extractor bininfo.Extractor
	// Maps the real path of a binary to its descriptor
	descriptors *lru.Cache[string, *bininfo.Library]
}

func NewChecker(opts *Options, extractor bininfo.Extractor) (*Checker, error) {
	err := opts.Validate()
	if err != nil {
		return nil, err
	}

	descriptors, err := lru.New[string, *bininfo.Library](descriptorCacheSize)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &Checker{
		opts:        *opts,
		extractor:   extractor,
		descriptors: descriptors,
	}, nil
}

// FindLibrary turns a dependency name into the path of an existing
// file. Names with a directory separator must be absolute; on the
// Mach-O platform they may also be found as a text-based stub in the
// stub directory. Other names are looked up in each directory of the
// search path in order.
//
// If the library can't be found, an error wrapping ErrNotFound is
// returned. Names and search path entries with unexpanded variables
// result in an UnsupportedError.
func (c *Checker) FindLibrary(name string) (string, error) {
	if c.opts.Platform == bininfo.MachO {
		name = strings.TrimPrefix(name, "@rpath/")
	}

	if strings.Contains(name, "$") {
		return "", unsupported(name, "unexpanded path variable")
	}

	if strings.Contains(name, "/") {
		if !filepath.IsAbs(name) {
			return "", unsupported(name, "relative path")
		}
		exists, err := fileutil.Exists(name)
		if err != nil {
			return "", err
		}
		if exists {
			return name, nil
		}
		if c.opts.Platform == bininfo.MachO && c.opts.StubDir != "" {
			// Since macOS 11, system libraries only exist in the dyld
			// shared cache, so we check against the SDK stubs instead
			stub := c.stubPath(name)
			exists, err = fileutil.Exists(stub)
			if err != nil {
				return "", err
			}
			if exists {
				return stub, nil
			}
		}
		return "", notFound(name)
	}

	for _, dir := range c.opts.SearchPath {
		if strings.Contains(dir, "$") {
			return "", unsupported(dir, "unexpanded path variable in search path")
		}
		candidate := filepath.Join(dir, name)
		exists, err := fileutil.Exists(candidate)
		if err != nil {
			return "", err
		}
		if exists {
			return candidate, nil
		}
	}
	return "", notFound(name)
}

// stubPath maps /usr/lib/libSystem.B.dylib to
// <StubDir>/usr/lib/libSystem.B.tbd
func (c *Checker) stubPath(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return filepath.Join(c.opts.StubDir, strings.TrimPrefix(base, "/")+".tbd")
}

// describe returns the descriptor of the binary at the real path and
// the symbols it provides, restricted to the allowed GLIBC versions if
// the binary is the C library.
func (c *Checker) describe(ctx context.Context, path string) (*bininfo.Library, bininfo.Symbols, error) {
	lib, ok := c.descriptors.Get(path)
	if !ok {
		var err error
		lib, err = c.extractor.Extract(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		c.descriptors.Add(path, lib)
	}

	if c.opts.GlibcVersionMax != nil && isGlibc(lib) {
		return lib, filterGlibcVersions(lib.Provides, c.opts.GlibcVersionMax), nil
	}
	return lib, lib.Provides.Clone(), nil
}

// NewResolver returns a resolver with a fresh resolution state which
// uses the configuration and the descriptor cache of the checker.
func (c *Checker) NewResolver() *Resolver {
	r := &Resolver{
		checker:   c,
		preloaded: bininfo.NewSymbols(),
	}
	r.Reset()
	return r
}

// Check checks a single binary with a fresh resolution state.
func (c *Checker) Check(ctx context.Context, binary string, preload []string) (*Result, error) {
	log.Debugf("Checking %s", binary)
	return c.NewResolver().Check(ctx, binary, preload)
}
