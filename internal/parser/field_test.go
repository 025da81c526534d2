package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solen-io/go-sseclient/internal/parser"
)

func TestScanField(t *testing.T) {
	t.Parallel()

	type test struct {
		name      string
		input     string
		field     parser.Field
		malformed bool
	}

	tests := []test{
		{name: "Name and value", input: "data: hello", field: parser.Field{Name: "data", Value: "hello"}},
		{name: "No space after colon", input: "data:hello", field: parser.Field{Name: "data", Value: "hello"}},
		{name: "Extra spaces are kept", input: "data:   hello", field: parser.Field{Name: "data", Value: "  hello"}},
		{name: "No colon", input: "data", field: parser.Field{Name: "data"}},
		{name: "Empty value", input: "id:", field: parser.Field{Name: "id"}},
		{name: "Comment", input: ": a remark", field: parser.Field{Value: "a remark"}},
		{name: "Unknown name", input: "custom: v", field: parser.Field{Name: "custom", Value: "v"}},
		{name: "Value with colons", input: "data: a:b:c", field: parser.Field{Name: "data", Value: "a:b:c"}},
		{name: "NUL byte", input: "da\x00ta: x", malformed: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			f, ok := parser.ScanField(test.input)
			if test.malformed {
				require.False(t, ok, "malformed line accepted")
				return
			}

			require.True(t, ok, "valid line rejected")
			require.Equal(t, test.field, f, "incorrect field")
			require.Equal(t, test.field.Name == "", f.IsComment(), "incorrect comment detection")
		})
	}
}
