package gemini

import "strings"

// ExtractJSONObject returns the first balanced {...} span in text. Braces inside
// JSON strings are ignored. A candidate that never closes is abandoned and the
// scan restarts at the next '{'. ok is false when no complete object is present.
func ExtractJSONObject(text string) (obj string, ok bool) {
	for start := strings.IndexByte(text, '{'); start >= 0; {
		if end := closingBrace(text, start); end >= 0 {
			return text[start : end+1], true
		}
		next := strings.IndexByte(text[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return "", false
}

// closingBrace returns the index of the '}' that balances the '{' at start,
// or -1 when the text ends first.
func closingBrace(text string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
