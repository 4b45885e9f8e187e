package ui

import (
	"regexp"
	"strings"
)

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[mK]`)

// stripANSI removes ANSI color and erase sequences so assertions can match text.
func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// countLines returns the number of lines in the given string.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}
