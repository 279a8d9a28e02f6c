package console

import "strings"

// StyleLine colors one narration line by its kind: echoed input is dimmed,
// exits are cyan, headings are yellow, failures are red, and item rows white.
func StyleLine(p Palette, line string) string {
	switch {
	case strings.HasPrefix(line, "> "):
		return p.Paint(Dim, line)
	case strings.HasPrefix(line, "Exits:"), line == "There are no visible exits.":
		return p.Paint(Cyan, line)
	case isFailure(line):
		return p.Paint(Red, line)
	case strings.HasPrefix(strings.TrimLeft(line, " "), "- "):
		return p.Paint(White, line)
	case strings.HasSuffix(line, ":"):
		return p.Paint(BrightYellow, line)
	}
	return line
}

// StyleLines applies StyleLine to each line.
func StyleLines(p Palette, lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = StyleLine(p, l)
	}
	return out
}

func isFailure(line string) bool {
	for _, prefix := range []string{"Error ", "You can't", "Load error", "Save error", "(Error "} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
