package cli

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestConsole_NoColorIsLocal(t *testing.T) {
	saved := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = saved })

	var plain bytes.Buffer
	newConsole(&plain, true).pass("a.json", 2)
	assert.Equal(t, "✓ a.json (2 top-level expectations)\n", plain.String())
	assert.False(t, color.NoColor, "the package-wide setting is untouched")

	var coloured bytes.Buffer
	newConsole(&coloured, false).warn("careful")
	assert.Contains(t, coloured.String(), "\x1b[")
	assert.Contains(t, coloured.String(), "careful")
}
