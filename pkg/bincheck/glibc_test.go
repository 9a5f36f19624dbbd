package bincheck

import (
	"testing"

	"github.com/Masterminds/semver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code-intelligence.com/bincheck/pkg/bininfo"
)

func TestParseGlibcVersion(t *testing.T) {
	v, err := ParseGlibcVersion("2.17")
	require.NoError(t, err)
	assert.Equal(t, "2.17.0", v.String())

	for _, s := range []string{"", "2", "v2.17", "2.17-rc1", "latest"} {
		_, err = ParseGlibcVersion(s)
		assert.Error(t, err, s)
	}
}

func TestFilterGlibcVersions(t *testing.T) {
	provides := bininfo.NewSymbols(
		"memcpy",
		"memcpy@GLIBC_2.2.5",
		"memcpy@@GLIBC_2.14",
		"getrandom@@GLIBC_2.25",
		"private@GLIBC_PRIVATE",
	)
	filtered := filterGlibcVersions(provides, semver.MustParse("2.17"))
	assert.Equal(t, []string{
		"memcpy",
		"memcpy@@GLIBC_2.14",
		"memcpy@GLIBC_2.2.5",
		"private@GLIBC_PRIVATE",
	}, filtered.Sorted())
	// The input isn't modified
	assert.Len(t, provides, 5)
}
