package script

// Backspace deletes the character before cursor, taking a virama together with
// the character it is attached to. cursor counts runes and is clamped to the
// text. It returns the new text and cursor.
func Backspace(text string, cursor int) (string, int) {
	rs := []rune(text)
	cursor = min(max(cursor, 0), len(rs))
	if cursor == 0 {
		return text, 0
	}

	n := 1
	if cursor >= 2 && (rs[cursor-1] == virama || rs[cursor-2] == virama) {
		n = 2
	}
	start := cursor - n
	return string(rs[:start]) + string(rs[cursor:]), start
}
