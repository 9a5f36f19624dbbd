package bininfo_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"code-intelligence.com/bincheck/pkg/bininfo"
	"code-intelligence.com/bincheck/pkg/mocks"
)

const appReadelf = `
Dynamic section at offset 0x2dc8 contains 2 entries:
  Tag        Type                         Name/Value
 0x0000000000000001 (NEEDED)             Shared library: [libfoo.so]
 0x0000000000000000 (NULL)               0x0

Symbol table '.dynsym' contains 2 entries:
   Num:    Value          Size Type    Bind   Vis      Ndx Name
     0: 0000000000000000     0 NOTYPE  LOCAL  DEFAULT  UND
     1: 0000000000000000     0 FUNC    GLOBAL DEFAULT  UND foo_init
`

func TestExtractor_ELF(t *testing.T) {
	source := &mocks.SourceMock{}
	source.On("DynamicSection", "/opt/app").Return(appReadelf, nil)

	extractor, err := bininfo.NewExtractor(bininfo.ELF, source)
	require.NoError(t, err)

	lib, err := extractor.Extract(context.Background(), "/opt/app")
	require.NoError(t, err)
	assert.Equal(t, []string{"libfoo.so"}, lib.Needed)
	assert.Equal(t, []string{"foo_init"}, lib.Unresolved.Sorted())
	source.AssertExpectations(t)
}

func TestExtractor_ELFMalformed(t *testing.T) {
	source := &mocks.SourceMock{}
	source.On("DynamicSection", "/opt/app").Return("Symbol table '.dynsym' contains 1 entries:\n", nil)

	extractor, err := bininfo.NewExtractor(bininfo.ELF, source)
	require.NoError(t, err)

	_, err = extractor.Extract(context.Background(), "/opt/app")
	require.Error(t, err)
	var malformedErr *bininfo.MalformedError
	require.ErrorAs(t, err, &malformedErr)
	assert.Equal(t, "/opt/app", malformedErr.Path)
}

func TestExtractor_SourceError(t *testing.T) {
	source := &mocks.SourceMock{}
	source.On("LoadCommands", "/opt/app").Return(nil, errors.New("otool exploded"))

	extractor, err := bininfo.NewExtractor(bininfo.MachO, source)
	require.NoError(t, err)

	_, err = extractor.Extract(context.Background(), "/opt/app")
	require.EqualError(t, err, "otool exploded")
	source.AssertNotCalled(t, "SymbolTable", mock.Anything)
}

func TestExtractor_MachO(t *testing.T) {
	source := &mocks.SourceMock{}
	source.On("LoadCommands", "/opt/libfoo.dylib").Return(`Load command 0
          cmd LC_ID_DYLIB
         name /opt/libfoo.dylib (offset 24)
Load command 1
          cmd LC_LOAD_DYLIB
         name /usr/lib/libSystem.B.dylib (offset 24)
`, nil)
	source.On("SymbolTable", "/opt/libfoo.dylib").Return("_foo T 3f50 0\n_printf U\n", nil)

	extractor, err := bininfo.NewExtractor(bininfo.MachO, source)
	require.NoError(t, err)

	lib, err := extractor.Extract(context.Background(), "/opt/libfoo.dylib")
	require.NoError(t, err)
	assert.Equal(t, "/opt/libfoo.dylib", lib.SONAME)
	assert.Equal(t, []string{"/usr/lib/libSystem.B.dylib"}, lib.Needed)
	assert.Equal(t, []string{"_foo"}, lib.Provides.Sorted())
	assert.Equal(t, []string{"_printf"}, lib.Unresolved.Sorted())
	source.AssertExpectations(t)
}

func TestExtractor_MachOStub(t *testing.T) {
	path := filepath.Join(t.TempDir(), "libSystem.B.tbd")
	err := os.WriteFile(path, []byte(`--- !tapi-tbd
tbd-version: 4
install-name: '/usr/lib/libSystem.B.dylib'
exports:
  - targets: [ arm64-macos ]
    symbols: [ _printf ]
...
`), 0644)
	require.NoError(t, err)

	source := &mocks.SourceMock{}
	extractor, err := bininfo.NewExtractor(bininfo.MachO, source)
	require.NoError(t, err)

	lib, err := extractor.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, lib.IsStub())
	assert.Equal(t, "/usr/lib/libSystem.B.dylib", lib.SONAME)
	assert.True(t, lib.Provides.Has("_printf"))
	source.AssertNotCalled(t, "LoadCommands", mock.Anything)
	source.AssertNotCalled(t, "SymbolTable", mock.Anything)
}

func TestNewExtractor_UnknownPlatform(t *testing.T) {
	_, err := bininfo.NewExtractor("pe", &mocks.SourceMock{})
	require.Error(t, err)
}
