package bincheck

import (
	"context"
	"path/filepath"

	"github.com/pkg/errors"

	"code-intelligence.com/bincheck/pkg/bininfo"
	"code-intelligence.com/bincheck/pkg/log"
	"code-intelligence.com/bincheck/util/fileutil"
	"code-intelligence.com/bincheck/util/sliceutil"
)

// Resolver holds the resolution state of one check. It must not be
// used concurrently, use one resolver per binary to check binaries in
// parallel.
type Resolver struct {
	checker *Checker

	// Maps the real path of every visited library to the symbols it
	// provides, including the re-exported ones. An entry is added
	// before the dependencies of the library are resolved, so it also
	// marks the library as visited to break dependency cycles.
	loaded map[string]bininfo.Symbols
	// Maps the requested library names to the result of their
	// resolution, so that a library is only reported once per name
	resolved map[string]bininfo.Symbols
	// Symbols which are always resolvable, provided by the preloaded
	// libraries
	preloaded bininfo.Symbols

	errors  int
	entries []*Entry
}

// Reset clears the visited libraries and the errors, so that a library
// checked for one binary doesn't short-circuit the check of the next.
// The preloaded symbols are kept.
func (r *Resolver) Reset() {
	r.loaded = map[string]bininfo.Symbols{}
	r.resolved = map[string]bininfo.Symbols{}
	r.errors = 0
	r.entries = nil
}

// Errors returns the number of libraries which are missing or have
// unresolved symbols.
func (r *Resolver) Errors() int {
	return r.errors
}

// Entries returns the findings for every library visited since the
// last reset, in the order their resolution completed.
func (r *Resolver) Entries() []*Entry {
	return r.entries
}

// Preloaded returns the symbols of the preloaded libraries.
func (r *Resolver) Preloaded() bininfo.Symbols {
	return r.preloaded
}

// Check resets the resolver, preloads the given libraries and resolves
// the binary.
func (r *Resolver) Check(ctx context.Context, binary string, preload []string) (*Result, error) {
	r.Reset()

	for _, p := range preload {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		err = r.Preload(ctx, abs)
		if err != nil {
			return nil, err
		}
	}

	abs, err := filepath.Abs(binary)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	_, err = r.ResolveLibrary(ctx, abs)
	if err != nil {
		return nil, err
	}

	return &Result{
		Binary:  binary,
		Errors:  r.errors,
		Entries: r.entries,
	}, nil
}

// Preload resolves the library and makes its symbols resolvable for
// every library resolved afterwards, without adding a dependency.
func (r *Resolver) Preload(ctx context.Context, name string) error {
	provides, err := r.ResolveLibrary(ctx, name)
	if err != nil {
		return err
	}
	r.preloaded.Update(provides)
	return nil
}

// ResolveLibrary returns the symbols the library makes available to
// its dependents, re-exported ones included. Missing libraries and
// unresolved symbols are recorded as entries and counted as errors
// instead of being returned, so that a single check finds all of them.
// A missing library provides no symbols.
//
// Only unsupported library names and failures to extract the metadata
// of a binary are returned as errors.
func (r *Resolver) ResolveLibrary(ctx context.Context, name string) (bininfo.Symbols, error) {
	if provides, ok := r.resolved[name]; ok {
		return provides, nil
	}
	provides, err := r.resolveLibrary(ctx, name)
	if err != nil {
		return nil, err
	}
	r.resolved[name] = provides
	return provides, nil
}

func (r *Resolver) resolveLibrary(ctx context.Context, name string) (bininfo.Symbols, error) {
	path, err := r.checker.FindLibrary(name)
	if errors.Is(err, ErrNotFound) {
		log.Debugf("Library %s not found", name)
		r.errors++
		r.entries = append(r.entries, &Entry{Library: name, Missing: true})
		return bininfo.NewSymbols(), nil
	}
	if err != nil {
		return nil, err
	}

	path, err = fileutil.RealPath(path)
	if err != nil {
		return nil, err
	}
	if provides, ok := r.loaded[path]; ok {
		return provides, nil
	}

	lib, provides, err := r.checker.describe(ctx, path)
	if err != nil {
		return nil, err
	}
	// Mark the library as visited before resolving its dependencies,
	// a dependency cycle leading back to it then sees the symbols
	// known so far instead of recursing endlessly
	r.loaded[path] = provides

	// The symbols of the libraries re-exported by a stub are already
	// part of the stub
	if !lib.IsStub() {
		for _, reexport := range lib.Reexport {
			symbols, err := r.ResolveLibrary(ctx, reexport)
			if err != nil {
				return nil, err
			}
			provides.Update(symbols)
		}
	}

	unresolved := lib.Unresolved.Difference(r.preloaded)
	for _, need := range sliceutil.Concat(lib.Needed, lib.Upneeded) {
		symbols, err := r.ResolveLibrary(ctx, need)
		if err != nil {
			return nil, err
		}
		unresolved.Discard(symbols)
	}

	entry := &Entry{Library: name, Info: lib.Info()}
	if name != path {
		entry.File = path
	}
	if len(unresolved) > 0 {
		log.Debugf("%d unresolved symbols in %s", len(unresolved), name)
		entry.Unresolved = unresolved.Sorted()
		r.errors++
	}
	r.entries = append(r.entries, entry)

	return provides, nil
}
