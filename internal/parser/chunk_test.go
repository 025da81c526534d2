package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solen-io/go-sseclient/internal/parser"
)

func TestNewlineIndex(t *testing.T) {
	t.Parallel()

	type test struct {
		name   string
		input  string
		index  int
		length int
	}

	tests := []test{
		{name: "No newline", input: "sarmale", index: 7, length: 0},
		{name: "LF", input: "sarmale\n", index: 7, length: 1},
		{name: "CR", input: "sarmale\r", index: 7, length: 1},
		{name: "CRLF", input: "sarmale\r\n", index: 7, length: 2},
		{name: "Empty input", input: "", index: 0, length: 0},
		{name: "Newline only", input: "\n", index: 0, length: 1},
		{name: "CR mid-string", input: "a\rb\n", index: 1, length: 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			index, length := parser.NewlineIndex(test.input)
			require.Equal(t, test.index, index, "incorrect index")
			require.Equal(t, test.length, length, "incorrect length")
		})
	}
}

func TestNextLine(t *testing.T) {
	t.Parallel()

	line, remaining, hasNewline := parser.NextLine("one\r\ntwo\rthree\nfour")
	require.Equal(t, "one", line, "incorrect line")
	require.Equal(t, "two\rthree\nfour", remaining, "incorrect remaining")
	require.True(t, hasNewline, "newline not detected")

	line, remaining, hasNewline = parser.NextLine(remaining)
	require.Equal(t, "two", line, "incorrect line")
	require.Equal(t, "three\nfour", remaining, "incorrect remaining")
	require.True(t, hasNewline, "newline not detected")

	line, remaining, hasNewline = parser.NextLine(remaining)
	require.Equal(t, "three", line, "incorrect line")
	require.Equal(t, "four", remaining, "incorrect remaining")
	require.True(t, hasNewline, "newline not detected")

	line, remaining, hasNewline = parser.NextLine(remaining)
	require.Equal(t, "four", line, "incorrect line")
	require.Empty(t, remaining, "nothing should remain")
	require.False(t, hasNewline, "unterminated line reported a newline")
}
