package sliceutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"libc.so.6", "libm.so.6"}, "libm.so.6"))
	assert.False(t, Contains([]string{"libc.so.6"}, "libm.so.6"))
	assert.False(t, Contains(nil, "libm.so.6"))
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"b", "a", "c"}, Unique([]string{"b", "a", "b", "c", "a"}))
	assert.Nil(t, Unique[string](nil))
}

func TestConcat(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Concat([]string{"a"}, nil, []string{"b", "c"}))
	assert.Empty(t, Concat[string]())
}
