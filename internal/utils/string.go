package utils

import (
	"strings"
	"unicode/utf8"
)

// SplitLastWord splits s on whitespace and returns the words before the last
// one joined by single spaces, and the last word itself. Both are empty for
// blank input.
func SplitLastWord(s string) (head, last string) {
	words := strings.Fields(s)
	if len(words) == 0 {
		return "", ""
	}
	last = words[len(words)-1]
	return strings.Join(words[:len(words)-1], " "), last
}

// Truncate shortens s to at most n bytes without splitting a rune.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
