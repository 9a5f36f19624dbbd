package cmdutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorEnabled_Forced(t *testing.T) {
	t.Setenv("CLICOLOR_FORCE", "1")
	assert.True(t, ColorEnabled())
}

func TestColorEnabled_NoColor(t *testing.T) {
	t.Setenv("CLICOLOR_FORCE", "")
	t.Setenv("NO_COLOR", "1")
	assert.False(t, ColorEnabled())
}
