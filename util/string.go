package util

// StringTakeUntil returns the string up to and excluding char as well as the remainder excluding char
//
// if char was not found, then tail returns the empty string
func StringTakeUntil(s string, char rune) (head string, tail string) {
	for i, r := range s {
		if r == char && len(s[i:]) != 0 {
			return s[:i], s[i+1:]
		}
	}
	return s, ""
}

// SplitAll splits s on every occurrence of char, keeping empty segments
func SplitAll(s string, char rune) []string {
	var parts []string
	for {
		head, tail := StringTakeUntil(s, char)
		parts = append(parts, head)
		if len(head) == len(s) {
			return parts
		}
		s = tail
	}
}
