package command

import "strings"

// ParseResult holds the parsed command name and arguments from a text line.
type ParseResult struct {
	// Line is the whole input with surrounding whitespace removed, case preserved.
	Line string
	// Command is the first word of the input, lowercased.
	Command string
	// Args are the remaining words after the command, lowercased.
	Args []string
	// RawArgs is the raw text after the command, case and inner spacing preserved.
	RawArgs string
}

// Parse splits a text line into a command and arguments.
//
// Postcondition: Returns a ParseResult. If line is blank, Command is empty.
func Parse(line string) ParseResult {
	line = strings.TrimSpace(line)
	if line == "" {
		return ParseResult{}
	}

	cmdEnd := strings.IndexFunc(line, isSpace)
	if cmdEnd < 0 {
		return ParseResult{
			Line:    line,
			Command: strings.ToLower(line),
		}
	}

	rest := strings.TrimSpace(line[cmdEnd:])
	return ParseResult{
		Line:    line,
		Command: strings.ToLower(line[:cmdEnd]),
		Args:    strings.Fields(strings.ToLower(rest)),
		RawArgs: rest,
	}
}

// Target joins the arguments into a multi-word name, e.g. "brass key".
func (p ParseResult) Target() string {
	return strings.Join(p.Args, " ")
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}
