package regexutil

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var symbolVersionRegex = regexp.MustCompile(`^(?P<name>[^@]+)@@?(?P<version>.+)$`)

func TestFindNamedGroupsMatch(t *testing.T) {
	groups, found := FindNamedGroupsMatch(symbolVersionRegex, "memcpy@@GLIBC_2.14")
	require.True(t, found)
	assert.Equal(t, map[string]string{"name": "memcpy", "version": "GLIBC_2.14"}, groups)

	groups, found = FindNamedGroupsMatch(symbolVersionRegex, "memcpy")
	assert.False(t, found)
	assert.Nil(t, groups)
}
