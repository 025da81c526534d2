package sseclient_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	sseclient "github.com/solen-io/go-sseclient"
)

func TestNewRetryDelay(t *testing.T) {
	t.Parallel()

	r, err := sseclient.NewRetryDelay(0)
	require.NoError(t, err, "delay deemed as invalid")
	require.True(t, r.IsSet(), "delay is not set")
	require.Equal(t, time.Duration(0), r.Duration(), "delay incorrectly set")

	r, err = sseclient.NewRetryDelay(-time.Second)
	require.Error(t, err, "delay deemed as valid")
	require.Empty(t, r, "delay isn't unset")
}

func TestMustRetryDelay(t *testing.T) {
	t.Parallel()

	require.NotPanics(t, func() { sseclient.MustRetryDelay(time.Second) }, "panicked on valid delay")
	require.Panics(t, func() { sseclient.MustRetryDelay(-time.Second) }, "no panic on invalid delay")
}

func TestRetryDelay_Millis(t *testing.T) {
	t.Parallel()

	r := sseclient.MustRetryDelay(2500 * time.Millisecond)
	require.EqualValues(t, 2500, r.Millis(), "wrong millisecond value")
}
