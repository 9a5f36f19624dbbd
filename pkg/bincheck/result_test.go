package bincheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupSymbols(t *testing.T) {
	groups := GroupSymbols([]string{"_Znwm", "__cxa_throw", "__gxx", "_zlib", "a", "ab", "b"})
	assert.Equal(t, [][]string{
		{"_Znwm"},
		{"__cxa_throw"},
		{"__gxx"},
		{"_zlib"},
		{"a", "ab"},
		{"b"},
	}, groups)

	assert.Empty(t, GroupSymbols(nil))
}

func TestEntry_Failed(t *testing.T) {
	assert.False(t, (&Entry{Library: "libfoo.so"}).Failed())
	assert.True(t, (&Entry{Library: "libfoo.so", Missing: true}).Failed())
	assert.True(t, (&Entry{Library: "libfoo.so", Unresolved: []string{"foo"}}).Failed())
}

func TestResult_Diagnostics(t *testing.T) {
	res := &Result{
		Binary: "app",
		Errors: 1,
		Entries: []*Entry{
			{Library: "libbar.so"},
			{Library: "libnope.so", Missing: true},
		},
	}
	assert.False(t, res.OK())
	assert.Equal(t, []*Entry{{Library: "libnope.so", Missing: true}}, res.Diagnostics())
}
