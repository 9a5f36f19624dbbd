package bininfo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbols(t *testing.T) {
	unresolved := NewSymbols("a", "b", "c")
	provided := NewSymbols("b", "x", "y", "z")

	assert.Equal(t, []string{"a", "c"}, unresolved.Difference(provided).Sorted())
	// Difference doesn't modify the receiver
	assert.Len(t, unresolved, 3)

	remaining := unresolved.Clone()
	remaining.Discard(provided)
	assert.Equal(t, []string{"a", "c"}, remaining.Sorted())
	remaining.Discard(NewSymbols("a"))
	assert.Equal(t, []string{"c"}, remaining.Sorted())
	assert.Len(t, unresolved, 3)

	provided.Update(NewSymbols("q"))
	assert.True(t, provided.Has("q"))
	assert.False(t, provided.Has("a"))
}

func TestSymbols_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(NewSymbols("b", "a"))
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, string(data))

	data, err = json.Marshal(NewSymbols())
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestLibrary_Info(t *testing.T) {
	lib := NewLibrary(FormatMachO)
	lib.SONAME = "/usr/lib/libfoo.dylib"
	lib.RPath = "@loader_path"
	lib.Needed = []string{"/usr/lib/libSystem.B.dylib"}
	lib.Upneeded = []string{"/usr/lib/libup.dylib"}
	lib.Reexport = []string{"/usr/lib/libre.dylib"}

	assert.Equal(t, []InfoLine{
		{"SONAME", "/usr/lib/libfoo.dylib"},
		{"RPATH", "@loader_path"},
		{"NEEDED", "/usr/lib/libSystem.B.dylib"},
		{"UPNEEDED", "/usr/lib/libup.dylib"},
		{"REEXPORT", "/usr/lib/libre.dylib"},
	}, lib.Info())
}
