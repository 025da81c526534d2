package parser

import "strings"

// Message boundaries are doubled newline sequences of a single convention.
// A lone \r\n or a \n\r pair is not a boundary; streams are expected to use
// consistent line endings.
var boundaries = [...]string{"\r\n\r\n", "\r\r", "\n\n"}

// BoundaryIndex returns the index and length of the first message boundary
// in s. If no boundary is found, index is -1 and length is 0.
func BoundaryIndex(s string) (index, length int) {
	for i, l := 0, len(s); i < l; i++ {
		if !isNewlineChar(s[i]) {
			continue
		}
		for _, b := range boundaries {
			if strings.HasPrefix(s[i:], b) {
				return i, len(b)
			}
		}
	}

	return -1, 0
}

// TrimPartialLine truncates s back to the last full-line boundary,
// discarding any trailing partial line. Resumption after a reconnect is
// only valid at line boundaries.
func TrimPartialLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i != -1 {
		return s[:i+1]
	}
	return ""
}
