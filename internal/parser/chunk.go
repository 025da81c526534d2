package parser

// isNewlineChar returns whether the given character is '\n' or '\r'.
func isNewlineChar(b byte) bool {
	return b == '\n' || b == '\r'
}

// NewlineIndex returns the index of the first occurrence of a newline
// sequence (\n, \r, or \r\n). It also returns the sequence's length.
// If no sequence is found, index is equal to len(s) and length is 0.
//
// The newline sequences are the ones accepted by the Event Stream standard:
// https://html.spec.whatwg.org/multipage/server-sent-events.html#server-sent-events
func NewlineIndex(s string) (index, length int) {
	for l := len(s); index < l; index++ {
		b := s[index]

		if isNewlineChar(b) {
			length++
			if b == '\r' && index < l-1 && s[index+1] == '\n' {
				length++
			}

			break
		}
	}

	return
}

// NextLine retrieves the next line from the given string along with the
// data remaining after it. The returned line does not contain the newline
// sequence that terminated it. hasNewline reports whether a terminator was
// found at all; it is false only for the trailing line of an unterminated
// input.
func NextLine(s string) (line, remaining string, hasNewline bool) {
	index, length := NewlineIndex(s)
	return s[:index], s[index+length:], length > 0
}
