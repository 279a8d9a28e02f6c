package session

// MessageLog is the ordered narration shown to the player. It only grows
// during a session; display layers decide how much of it to show.
type MessageLog struct {
	lines []string
}

// Append adds lines to the end of the log.
func (l *MessageLog) Append(lines ...string) {
	l.lines = append(l.lines, lines...)
}

// Len returns the number of lines logged.
func (l *MessageLog) Len() int {
	return len(l.lines)
}

// Lines returns a copy of every logged line.
func (l *MessageLog) Lines() []string {
	return append([]string(nil), l.lines...)
}

// Since returns a copy of the lines logged at or after index from.
func (l *MessageLog) Since(from int) []string {
	if from < 0 {
		from = 0
	}
	if from >= len(l.lines) {
		return nil
	}
	return append([]string(nil), l.lines[from:]...)
}

// Tail returns a copy of at most the last n lines.
func (l *MessageLog) Tail(n int) []string {
	if n <= 0 {
		return nil
	}
	return l.Since(len(l.lines) - n)
}
