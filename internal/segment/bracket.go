package segment

// Bracket is a balanced [...] group found in a segment.
type Bracket struct {
	// Outer is the matched text including the enclosing brackets.
	Outer string
	// Interior is the text between the enclosing brackets.
	Interior string
}

// Detect finds the first balanced bracket group in s. Nested groups belong to
// the interior of the outermost one, brackets inside quoted literals are not
// counted and an unmatched ']' is skipped.
func Detect(s string) (Bracket, bool) {
	depth, start := 0, 0

	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case isQuote(c):
			if depth > 0 {
				i = skipQuoted(s, i)
			}
		case c == '[':
			if depth == 0 {
				start = i
			}
			depth++
		case c == ']':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				return Bracket{
					Outer:    s[start : i+1],
					Interior: s[start+1 : i],
				}, true
			}
		}
	}

	return Bracket{}, false
}

// HasBracket reports whether any of segments contains a bracket group.
func HasBracket(segments []string) bool {
	for _, s := range segments {
		if _, ok := Detect(s); ok {
			return true
		}
	}
	return false
}
