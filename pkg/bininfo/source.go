package bininfo

import (
	"context"
	"sync"

	"code-intelligence.com/bincheck/util/executil"
)

// Source dumps the raw linking metadata of a binary as structured
// text, the extractors only parse it.
type Source interface {
	// DynamicSection returns the dynamic section and the dynamic symbol
	// table of an ELF binary in the format of
	// `readelf --dyn-syms --dynamic --wide`.
	DynamicSection(ctx context.Context, path string) ([]byte, error)
	// LoadCommands returns the load commands of a Mach-O binary in the
	// format of `otool -lX`.
	LoadCommands(ctx context.Context, path string) ([]byte, error)
	// SymbolTable returns the symbol table of a Mach-O binary in the
	// format of `nm -P`.
	SymbolTable(ctx context.Context, path string) ([]byte, error)
}

// ToolSource is a Source which runs the binutils / LLVM tools.
type ToolSource struct {
	// Paths of the tools, looked up in PATH on first use if empty
	Readelf string
	Otool   string
	NM      string

	mutex sync.Mutex
}

var _ Source = (*ToolSource)(nil)

func (s *ToolSource) DynamicSection(ctx context.Context, path string) ([]byte, error) {
	readelf, err := s.tool(&s.Readelf, "readelf", "llvm-readelf")
	if err != nil {
		return nil, err
	}
	return executil.CommandContext(ctx, readelf, "--dyn-syms", "--dynamic", "--wide", path).OutputWithStderr()
}

func (s *ToolSource) LoadCommands(ctx context.Context, path string) ([]byte, error) {
	otool, err := s.tool(&s.Otool, "llvm-otool", "otool")
	if err != nil {
		return nil, err
	}
	return executil.CommandContext(ctx, otool, "-lX", path).OutputWithStderr()
}

func (s *ToolSource) SymbolTable(ctx context.Context, path string) ([]byte, error) {
	nm, err := s.tool(&s.NM, "llvm-nm", "nm")
	if err != nil {
		return nil, err
	}
	return executil.CommandContext(ctx, nm, "-P", path).OutputWithStderr()
}

// tool returns the configured path of a tool or looks up the first of
// the candidates in PATH and remembers it.
func (s *ToolSource) tool(configured *string, candidates ...string) (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if *configured != "" {
		return *configured, nil
	}
	path, err := executil.LookPath(candidates...)
	if err != nil {
		return "", err
	}
	*configured = path
	return path, nil
}
