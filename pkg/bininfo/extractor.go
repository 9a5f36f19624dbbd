package bininfo

import (
	"bytes"
	"context"
	"strings"

	"github.com/pkg/errors"
)

// Extractor produces the descriptor of the binary at a path. It's
// deterministic and free of side effects, caching is up to the caller.
type Extractor interface {
	Extract(ctx context.Context, path string) (*Library, error)
}

// NewExtractor returns the extractor for the binary format family of
// the platform.
func NewExtractor(platform Platform, source Source) (Extractor, error) {
	switch platform {
	case ELF:
		return &elfExtractor{source: source}, nil
	case MachO:
		return &machOExtractor{source: source}, nil
	default:
		return nil, errors.Errorf("unknown platform %q", platform)
	}
}

type elfExtractor struct {
	source Source
}

func (e *elfExtractor) Extract(ctx context.Context, path string) (*Library, error) {
	out, err := e.source.DynamicSection(ctx, path)
	if err != nil {
		return nil, err
	}
	lib, err := ParseELF(bytes.NewReader(out))
	return lib, withPath(err, path)
}

type machOExtractor struct {
	source Source
}

func (e *machOExtractor) Extract(ctx context.Context, path string) (*Library, error) {
	if IsTBDPath(path) {
		return ReadTBDFile(path)
	}

	loadCommands, err := e.source.LoadCommands(ctx, path)
	if err != nil {
		return nil, err
	}
	symbols, err := e.source.SymbolTable(ctx, path)
	if err != nil {
		return nil, err
	}
	lib, err := ParseMachO(bytes.NewReader(loadCommands), bytes.NewReader(symbols))
	return lib, withPath(err, path)
}

// IsTBDPath returns true if the path names a text-based stub.
func IsTBDPath(path string) bool {
	return strings.HasSuffix(path, ".tbd")
}
