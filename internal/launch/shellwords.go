package launch

import "unicode"

// SplitWords splits a command line into argv. Single quotes are literal, double quotes
// group words, and a backslash escapes the next rune outside single quotes. There is no
// variable expansion or globbing.
func SplitWords(s string) []string {
	var out []string
	var cur []rune
	inWord := false
	inSingle, inDouble, escaped := false, false, false

	flush := func() {
		if !inWord {
			return
		}
		out = append(out, string(cur))
		cur = cur[:0]
		inWord = false
	}

	for _, r := range s {
		switch {
		case escaped:
			cur = append(cur, r)
			escaped = false
		case r == '\\' && !inSingle:
			escaped = true
			inWord = true
		case r == '\'' && !inDouble:
			inSingle = !inSingle
			inWord = true
		case r == '"' && !inSingle:
			inDouble = !inDouble
			inWord = true
		case !inSingle && !inDouble && unicode.IsSpace(r):
			flush()
		default:
			cur = append(cur, r)
			inWord = true
		}
	}
	flush()
	return out
}
