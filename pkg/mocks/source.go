package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"code-intelligence.com/bincheck/pkg/bininfo"
)

type SourceMock struct {
	mock.Mock
}

var _ bininfo.Source = (*SourceMock)(nil)

func (m *SourceMock) DynamicSection(ctx context.Context, path string) ([]byte, error) {
	args := m.Called(path)
	return bytesArg(args, 0), args.Error(1)
}

func (m *SourceMock) LoadCommands(ctx context.Context, path string) ([]byte, error) {
	args := m.Called(path)
	return bytesArg(args, 0), args.Error(1)
}

func (m *SourceMock) SymbolTable(ctx context.Context, path string) ([]byte, error) {
	args := m.Called(path)
	return bytesArg(args, 0), args.Error(1)
}

// bytesArg accepts both string and []byte return values so that tests
// can pass dumps as string literals.
func bytesArg(args mock.Arguments, index int) []byte {
	switch v := args.Get(index).(type) {
	case nil:
		return nil
	case string:
		return []byte(v)
	default:
		return args.Get(index).([]byte)
	}
}
