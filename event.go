package sseclient

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/solen-io/go-sseclient/internal/parser"
)

// DefaultEventType is the type attributed to events whose stream did not
// name them through an "event" field.
const DefaultEventType = "message"

// The Event struct represents a single decoded message of an event
// stream.
type Event struct {
	// The event's payload: the values of all "data" fields of the
	// message, joined by LF. Empty if the message carried no data.
	Data string
	// The event's type. Defaults to "message" when the stream doesn't
	// name the event.
	Type string
	// The event's ID. Unset unless an "id" field appeared literally in
	// the message.
	ID EventID
	// The reconnection delay requested by the server. Unset unless a
	// "retry" field appeared literally in the message.
	Retry RetryDelay
}

// String returns the event's payload.
func (e Event) String() string {
	return e.Data
}

// ParseEvent decodes a single message of an event stream. The input must
// be one complete message with the terminating blank line already
// stripped; it may use any one of the LF, CR or CRLF newline
// conventions.
//
// ParseEvent always produces an event: comment lines, unknown field
// names and lines that don't fit the field shape are dropped without
// failing the parse. The only hard failure is a "retry" field whose
// value is not a valid non-negative integer, reported as an error
// wrapping ErrInvalidRetry.
func ParseEvent(raw string) (Event, error) {
	return parseEvent(raw, nil)
}

func parseEvent(raw string, onMalformed func(line string)) (Event, error) {
	e := Event{Type: DefaultEventType}

	for line, rest := "", raw; rest != ""; {
		line, rest, _ = parser.NextLine(rest)
		if line == "" {
			continue
		}

		f, ok := parser.ScanField(line)
		if !ok {
			if onMalformed != nil {
				onMalformed(line)
			}
			continue
		}
		if f.IsComment() {
			continue
		}

		switch f.Name {
		case parser.FieldNameData:
			if e.Data != "" {
				e.Data += "\n" + f.Value
			} else {
				e.Data = f.Value
			}
		case parser.FieldNameEvent:
			e.Type = f.Value
		case parser.FieldNameID:
			e.ID = EventID{value: f.Value, set: true}
		case parser.FieldNameRetry:
			n, err := strconv.ParseInt(f.Value, 10, 64)
			if err != nil || n < 0 {
				return Event{}, fmt.Errorf("%w: %q", ErrInvalidRetry, f.Value)
			}
			e.Retry = RetryDelay{value: time.Duration(n) * time.Millisecond, set: true}
		default:
			// Unknown field names are ignored, as the protocol requires.
		}
	}

	return e, nil
}

// Dump serializes the event back to its wire format, including the
// terminating blank line. Fields that are unset produce no output, so
// ParseEvent(e.Dump()) reproduces e's Data, Type, ID and Retry exactly.
func (e Event) Dump() string {
	var sb strings.Builder

	if e.ID.IsSet() {
		sb.WriteString("id: ")
		sb.WriteString(e.ID.String())
		sb.WriteByte('\n')
	}
	if e.Type != DefaultEventType {
		sb.WriteString("event: ")
		sb.WriteString(e.Type)
		sb.WriteByte('\n')
	}
	if e.Retry.IsSet() {
		sb.WriteString("retry: ")
		sb.WriteString(strconv.FormatInt(e.Retry.Millis(), 10))
		sb.WriteByte('\n')
	}
	if e.Data != "" {
		for _, d := range strings.Split(e.Data, "\n") {
			sb.WriteString("data: ")
			sb.WriteString(d)
			sb.WriteByte('\n')
		}
	}
	sb.WriteByte('\n')

	return sb.String()
}

// MarshalText returns the event's wire representation. It never fails.
func (e Event) MarshalText() ([]byte, error) {
	return []byte(e.Dump()), nil
}

// UnmarshalText decodes an event from its wire representation.
func (e *Event) UnmarshalText(data []byte) error {
	ev, err := ParseEvent(string(data))
	if err != nil {
		return err
	}
	*e = ev
	return nil
}
