package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestColorize(t *testing.T) {
	assert.Equal(t, "\033[31mdanger\033[0m", Colorize(Red, "danger"))
}

func TestColorf(t *testing.T) {
	assert.Equal(t, "\033[32mhealth: 42\033[0m", Colorf(Green, "health: %d", 42))
}

func TestStripANSI(t *testing.T) {
	input := "\033[31mred\033[0m normal \033[1m\033[32mbold green\033[0m"
	assert.Equal(t, "red normal bold green", StripANSI(input))
	assert.Equal(t, "plain text", StripANSI("plain text"))
	assert.Equal(t, "", StripANSI(""))
	assert.Equal(t, "broken \033[31", StripANSI("broken \033[31"))
}

func TestPalette_DisabledIsPlain(t *testing.T) {
	assert.Equal(t, "hello", Palette{}.Paint(Red, "hello"))
	assert.Equal(t, Colorize(Red, "hello"), Palette{Enabled: true}.Paint(Red, "hello"))
	assert.Equal(t, "", Palette{Enabled: true}.Paint(Red, ""))
}

func TestPropertyStripANSIInversesColorize(t *testing.T) {
	colors := []string{Red, Green, Yellow, Cyan, White, Bold, Dim, BrightBlack, BrightCyan}
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[a-zA-Z0-9 ]{0,50}`).Draw(t, "text")
		color := rapid.SampledFrom(colors).Draw(t, "color")
		assert.Equal(t, text, StripANSI(Colorize(color, text)))
	})
}

func TestPropertyStripANSIOutputShorterOrEqual(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.String().Draw(t, "text")
		assert.LessOrEqual(t, len(StripANSI(text)), len(text))
	})
}
