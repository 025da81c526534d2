package sseclient

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/solen-io/go-sseclient/internal/parser"
)

// The EventID struct represents any valid event ID value.
// IDs must be passed around as values, not as pointers!
// They can also safely be used as map keys.
//
// An EventID is either unset or holds an explicit value, which may be
// the empty string. The distinction matters for the reader's sticky
// last-event-ID tracking: a message that omits the "id" field leaves
// the last seen ID untouched.
type EventID struct {
	value string
	set   bool
}

// NewEventID creates an EventID value. A valid ID must not contain any
// newlines. If the input is not valid, an unset ID and an error are
// returned.
func NewEventID(value string) (EventID, error) {
	if !isSingleLine(value) {
		return EventID{}, fmt.Errorf("input is not a valid EventID: %q", value)
	}
	return EventID{value: value, set: true}, nil
}

// MustEventID is the same as NewEventID, but it panics if the input
// isn't a valid ID.
func MustEventID(value string) EventID {
	id, err := NewEventID(value)
	if err != nil {
		panic(err)
	}
	return id
}

// IsSet returns true if the receiver is a valid (set) ID value.
func (i EventID) IsSet() bool {
	return i.set
}

// String returns the ID's value. The value may be an empty string,
// make sure to check if the ID is set before using the value.
func (i EventID) String() string {
	return i.value
}

// UnmarshalText sets the ID's value to the given string, if valid.
// If the input is invalid, the previous value is discarded.
func (i *EventID) UnmarshalText(data []byte) error {
	*i = EventID{}

	id, err := NewEventID(string(data))
	if err != nil {
		return err
	}

	*i = id

	return nil
}

// ErrIDUnset is returned when calling MarshalText for an unset ID.
var ErrIDUnset = errors.New("tried to marshal to text an unset ID")

// MarshalText returns a copy of the ID's value if it is set.
// It returns an error when trying to marshal an unset ID.
func (i *EventID) MarshalText() ([]byte, error) {
	if i.IsSet() {
		return []byte(i.String()), nil
	}

	return nil, ErrIDUnset
}

// UnmarshalJSON sets the ID's value to the given JSON value if the
// value is a string. JSON null results in an unset ID. The previous
// value is discarded if the operation fails.
func (i *EventID) UnmarshalJSON(data []byte) error {
	*i = EventID{}

	if string(data) == "null" {
		return nil
	}

	var input string

	if err := json.Unmarshal(data, &input); err != nil {
		return err
	}

	id, err := NewEventID(input)
	if err != nil {
		return err
	}

	*i = id

	return nil
}

// MarshalJSON returns a JSON representation of the ID's value if it is
// set. It otherwise returns the representation of the JSON null value.
func (i EventID) MarshalJSON() ([]byte, error) {
	if i.IsSet() {
		return json.Marshal(i.String())
	}

	return json.Marshal(nil)
}

func isSingleLine(p string) bool {
	_, newlineLen := parser.NewlineIndex(p)
	return newlineLen == 0
}
