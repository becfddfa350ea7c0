package segment

func isQuote(c byte) bool {
	return c == '"' || c == '\'' || c == '`'
}

// skipQuoted returns the index of the quote closing the literal that opens at
// s[i], or i itself when the literal is never closed. Backslash escapes apply
// to single and double quotes only.
func skipQuoted(s string, i int) int {
	quote := s[i]
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			if quote != '`' {
				j++
			}
		case quote:
			return j
		}
	}
	return i
}
