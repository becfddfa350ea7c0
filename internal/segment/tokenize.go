package segment

import "github.com/jacoelho/propath/internal/stack"

// Wildcard broadcasts the remaining path over every element of the target.
const Wildcard = "*"

// Tokenize returns the segments of path. A []string is returned as is, a
// string is split with Split, and anything else is treated as an empty path.
func Tokenize(path any) []string {
	switch p := path.(type) {
	case []string:
		return p
	case string:
		return Split(p)
	default:
		return nil
	}
}

// Split breaks path on unescaped dots and drops empty segments.
//
// A dot directly preceded by '[' or ')' is kept, as is any dot nested inside
// balanced brackets or braces. Quoted literals inside a group are opaque. A
// closer ends every group opened after its own opener; closers without an
// opener are literal.
func Split(path string) []string {
	if path == "" {
		return nil
	}

	var (
		segments []string
		groups   = stack.New[byte]()
		open     = make(map[byte]int, 2)
		start    int
	)

	for i := 0; i < len(path); i++ {
		switch c := path[i]; c {
		case '"', '\'', '`':
			if !groups.IsEmpty() {
				i = skipQuoted(path, i)
			}
		case '[', '{':
			groups.Push(c)
			open[c]++
		case ']', '}':
			want := opener(c)
			if open[want] == 0 {
				continue
			}
			for {
				top, _ := groups.Pop()
				open[top]--
				if top == want {
					break
				}
			}
		case '.':
			if !groups.IsEmpty() || protected(path, i) {
				continue
			}
			if i > start {
				segments = append(segments, path[start:i])
			}
			start = i + 1
		}
	}

	if start < len(path) {
		segments = append(segments, path[start:])
	}

	return segments
}

// IsWildcard reports whether s is exactly the wildcard marker.
func IsWildcard(s string) bool {
	return s == Wildcard
}

// ContainsWildcard reports whether any of segments is the wildcard marker.
func ContainsWildcard(segments []string) bool {
	for _, s := range segments {
		if IsWildcard(s) {
			return true
		}
	}
	return false
}

// protected reports whether the dot at index i follows a call or an opening
// bracket, e.g. "Value().Name" or "[.5]".
func protected(path string, i int) bool {
	if i == 0 {
		return false
	}
	prev := path[i-1]
	return prev == '[' || prev == ')'
}

func opener(closer byte) byte {
	if closer == ']' {
		return '['
	}
	return '{'
}
