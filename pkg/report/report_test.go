package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code-intelligence.com/bincheck/pkg/bincheck"
	"code-intelligence.com/bincheck/pkg/bininfo"
)

var failedResult = &bincheck.Result{
	Binary: "/opt/app/bin/app",
	Errors: 2,
	Entries: []*bincheck.Entry{
		{Library: "libnope.so", Missing: true},
		{
			Library: "libfoo.so",
			File:    "/opt/app/lib/libfoo.so.1",
			Info: []bininfo.InfoLine{
				{Key: "SONAME", Value: "libfoo.so"},
				{Key: "NEEDED", Value: "libnope.so"},
			},
			Unresolved: []string{"_bar_fini", "_bar_init", "nope"},
		},
		{
			Library: "/opt/app/bin/app",
			Info:    []bininfo.InfoLine{{Key: "NEEDED", Value: "libfoo.so"}},
		},
	},
}

func TestReporter_Result(t *testing.T) {
	var out bytes.Buffer
	r := NewReporter(&out, &Palette{}, false)

	err := r.Result(failedResult)
	require.NoError(t, err)
	assert.Equal(t, `/opt/app/bin/app: KO
libnope.so
  MISSING
libfoo.so
  FILE      : /opt/app/lib/libfoo.so.1
  SONAME    : libfoo.so
  NEEDED    : libnope.so
  UNRESOLVED:
    _bar_fini  _bar_init
    nope
/opt/app/bin/app
  NEEDED    : libfoo.so
`, out.String())
}

func TestReporter_Result_OK(t *testing.T) {
	res := &bincheck.Result{
		Binary:  "app",
		Entries: []*bincheck.Entry{{Library: "app"}},
	}

	var out bytes.Buffer
	err := NewReporter(&out, &Palette{}, false).Result(res)
	require.NoError(t, err)
	assert.Equal(t, "app: OK\n", out.String())

	// In verbose mode the trace is printed for passing binaries too
	out.Reset()
	err = NewReporter(&out, &Palette{}, true).Result(res)
	require.NoError(t, err)
	assert.Equal(t, "app: OK\napp\n", out.String())
}

func TestReporter_Colors(t *testing.T) {
	var out bytes.Buffer
	r := NewReporter(&out, &Palette{Enabled: true}, false)

	err := r.Verdict(failedResult)
	require.NoError(t, err)
	assert.Equal(t, "\x1b[32;1m/opt/app/bin/app\x1b[0m: \x1b[31mKO\x1b[0m\n", out.String())

	out.Reset()
	err = r.Trace(failedResult.Entries[:1])
	require.NoError(t, err)
	assert.Equal(t, "\x1b[34;1mlibnope.so\x1b[0m\n\x1b[31;1m  MISSING\x1b[0m\n", out.String())
}

func TestReporter_Info(t *testing.T) {
	lib := bininfo.NewLibrary(bininfo.FormatMachO)
	lib.SONAME = "/usr/lib/libfoo.dylib"
	lib.RPath = "@loader_path/../lib"
	lib.Needed = []string{"/usr/lib/libSystem.B.dylib"}
	lib.Upneeded = []string{"/usr/lib/libbar.dylib"}
	lib.Reexport = []string{"/usr/lib/libbaz.dylib"}

	var out bytes.Buffer
	err := NewReporter(&out, nil, false).Info("libfoo.dylib", lib)
	require.NoError(t, err)
	assert.Equal(t, `libfoo.dylib:
  SONAME    : /usr/lib/libfoo.dylib
  RPATH     : @loader_path/../lib
  NEEDED    : /usr/lib/libSystem.B.dylib
  UPNEEDED  : /usr/lib/libbar.dylib
  REEXPORT  : /usr/lib/libbaz.dylib
`, out.String())
}

func TestReporter_JSON(t *testing.T) {
	var out bytes.Buffer
	err := NewReporter(&out, &Palette{}, false).JSON(failedResult)
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"binary": "/opt/app/bin/app"`)
	assert.Contains(t, out.String(), `"missing": true`)
	assert.NotContains(t, out.String(), "\x1b[")
}

func TestWrapSymbols(t *testing.T) {
	a := strings.Repeat("a", 20)
	b := strings.Repeat("b", 20)
	c := strings.Repeat("c", 20)
	assert.Equal(t, "    "+a+"  "+b+"\n    "+c, WrapSymbols([]string{a, b, c}))

	// Long symbols are not split
	long := strings.Repeat("x", 80)
	assert.Equal(t, "    "+long, WrapSymbols([]string{long}))
}
