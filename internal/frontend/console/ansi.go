// Package console provides the line-oriented terminal front ends: the player
// REPL and the map builder REPL, with optional ANSI styling.
package console

import (
	"fmt"
	"strings"
)

// ANSI escape codes used by the console palette.
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
	White  = "\033[37m"

	BrightBlack  = "\033[90m"
	BrightRed    = "\033[91m"
	BrightYellow = "\033[93m"
	BrightCyan   = "\033[96m"
)

// Colorize wraps text with the given ANSI color code and a reset suffix.
//
// Precondition: color must be a valid ANSI escape sequence.
// Postcondition: Returns text wrapped with the color code and Reset.
func Colorize(color, text string) string {
	return color + text + Reset
}

// Colorf wraps a formatted string with the given ANSI color code.
func Colorf(color, format string, args ...any) string {
	return Colorize(color, fmt.Sprintf(format, args...))
}

// StripANSI removes all \033[...m sequences from s.
//
// Postcondition: Returns s without escape sequences; an unterminated
// sequence is kept as is.
func StripANSI(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			if end := strings.IndexByte(s[i+2:], 'm'); end >= 0 {
				i += 2 + end
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// Palette applies colors only when enabled, so output piped to a file or a
// test buffer stays plain.
type Palette struct {
	Enabled bool
}

// Paint colors text when the palette is enabled.
func (p Palette) Paint(color, text string) string {
	if !p.Enabled || text == "" {
		return text
	}
	return Colorize(color, text)
}
