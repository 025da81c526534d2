package parser

import "strings"

// FieldName identifies a field of an event. Values other than the
// constants below may occur on the wire; unknown names are ignored by
// the caller, as the protocol requires.
type FieldName string

const (
	FieldNameData  = FieldName("data")
	FieldNameEvent = FieldName("event")
	FieldNameRetry = FieldName("retry")
	FieldNameID    = FieldName("id")
)

// A Field is a single decoded "name[: value]" line of an event.
type Field struct {
	Name  FieldName
	Value string
}

// IsComment returns true for fields parsed from lines starting with a
// colon. Comments carry no information and must not be dispatched.
func (f Field) IsComment() bool {
	return f.Name == ""
}

// ScanField splits a single line into its field name and value. A line
// without a colon is a field with that name and an empty value; at most
// one space following the colon is stripped from the value. Lines
// containing a NUL byte do not fit the field shape and are rejected.
func ScanField(line string) (f Field, ok bool) {
	if strings.IndexByte(line, 0) != -1 {
		return Field{}, false
	}

	colonPos := strings.IndexByte(line, ':')
	if colonPos == -1 {
		return Field{Name: FieldName(line)}, true
	}

	return Field{
		Name:  FieldName(line[:colonPos]),
		Value: trimFirstSpace(line[colonPos+1:]),
	}, true
}

func trimFirstSpace(v string) string {
	if v != "" && v[0] == ' ' {
		return v[1:]
	}
	return v
}
