package sseclient_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	sseclient "github.com/solen-io/go-sseclient"
)

func TestNewEventID(t *testing.T) {
	t.Parallel()

	id, err := sseclient.NewEventID("")
	require.NoError(t, err, "ID deemed as invalid")
	require.True(t, id.IsSet(), "ID is not set")
	require.Equal(t, "", id.String(), "ID incorrectly set")

	id, err = sseclient.NewEventID("in\nvalid")
	require.Error(t, err, "ID deemed as valid")
	require.Empty(t, id, "ID isn't unset")
}

func TestMustEventID(t *testing.T) {
	t.Parallel()

	require.NotPanics(t, func() { sseclient.MustEventID("") }, "panicked on valid ID")
	require.Panics(t, func() { sseclient.MustEventID("in\nvalid") }, "no panic on invalid ID")
}

func TestEventID_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	type test struct {
		name      string
		input     []byte
		output    sseclient.EventID
		expectErr bool
	}

	tests := []test{
		{name: "Valid input", input: []byte("\"\""), output: sseclient.MustEventID("")},
		{name: "Null input", input: []byte("null")},
		{name: "Invalid JSON value", input: []byte("525482"), expectErr: true},
		{name: "Invalid input", input: []byte("\"multi\\nline\""), expectErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			id := sseclient.EventID{}
			err := id.UnmarshalJSON(test.input)

			if test.expectErr {
				require.Error(t, err, "expected error")
			} else {
				require.NoError(t, err, "unexpected error")
			}

			require.Equal(t, test.output, id, "unexpected unmarshal result")
		})
	}
}

func TestEventID_UnmarshalText(t *testing.T) {
	t.Parallel()

	var id sseclient.EventID
	err := id.UnmarshalText([]byte(""))

	require.Equal(t, sseclient.MustEventID(""), id, "unexpected unmarshal result")
	require.NoError(t, err, "unexpected error")

	err = id.UnmarshalText([]byte("in\nvalid"))

	require.Error(t, err, "expected error")
	require.Empty(t, id, "ID is not unset after invalid unmarshal")
}

func TestEventID_MarshalJSON(t *testing.T) {
	t.Parallel()

	var id sseclient.EventID
	v, err := id.MarshalJSON()

	require.NoError(t, err, "unexpected error")
	require.Equal(t, "null", string(v), "invalid JSON result")

	id = sseclient.MustEventID("")
	v, err = id.MarshalJSON()

	require.NoError(t, err, "unexpected error")
	require.Equal(t, "\"\"", string(v), "invalid JSON result")
}

func TestEventID_MarshalText(t *testing.T) {
	t.Parallel()

	var id sseclient.EventID
	v, err := id.MarshalText()

	require.ErrorIs(t, err, sseclient.ErrIDUnset, "invalid error")
	require.Nil(t, v, "invalid result")

	id = sseclient.MustEventID("")
	v, err = id.MarshalText()

	require.NoError(t, err, "unexpected error")
	require.Equal(t, []byte{}, v, "unexpected result")
}
