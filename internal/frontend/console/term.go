package console

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode/utf8"
)

// MaxInputRunes bounds a single line of typed input; longer lines are cut.
const MaxInputRunes = 80

// Term is a line-based terminal over a reader and a writer.
type Term struct {
	reader  *bufio.Reader
	out     io.Writer
	palette Palette
	mu      sync.Mutex
}

// NewTerm wraps in and out. Colors are written only when color is true.
//
// Precondition: in and out must be non-nil.
func NewTerm(in io.Reader, out io.Writer, color bool) *Term {
	return &Term{
		reader:  bufio.NewReaderSize(in, 4096),
		out:     out,
		palette: Palette{Enabled: color},
	}
}

// Palette returns the palette used for output.
func (t *Term) Palette() Palette {
	return t.palette
}

// ReadLine reads the next line without its line terminator. Control
// characters other than tab are dropped and the line is cut to MaxInputRunes.
//
// Postcondition: Returns the line, or io.EOF once input is exhausted with
// nothing left to return.
func (t *Term) ReadLine() (string, error) {
	var line bytes.Buffer
	for {
		b, err := t.reader.ReadByte()
		if err != nil {
			if err == io.EOF && line.Len() > 0 {
				return truncateRunes(line.String(), MaxInputRunes), nil
			}
			return "", err
		}
		if b == '\n' {
			break
		}
		if b == '\r' {
			if next, err := t.reader.Peek(1); err == nil && next[0] == '\n' {
				_, _ = t.reader.ReadByte()
			}
			break
		}
		if (b < 32 && b != '\t') || b == 127 {
			continue
		}
		line.WriteByte(b)
	}
	return truncateRunes(line.String(), MaxInputRunes), nil
}

// WriteLine writes text followed by a newline.
func (t *Term) WriteLine(text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := io.WriteString(t.out, text+"\n")
	return err
}

// WriteLines writes each line in order.
func (t *Term) WriteLines(lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := io.WriteString(t.out, strings.Join(lines, "\n")+"\n")
	return err
}

// Prompt writes p without a trailing newline.
func (t *Term) Prompt(p string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := fmt.Fprint(t.out, t.palette.Paint(BrightCyan, p))
	return err
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
