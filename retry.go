package sseclient

import (
	"fmt"
	"time"
)

// The RetryDelay struct represents the optional reconnection delay a
// message may carry in its "retry" field. Like EventID, a RetryDelay is
// either unset or holds an explicit value; a message that omits the
// field is distinguishable from one that carries a zero delay.
type RetryDelay struct {
	value time.Duration
	set   bool
}

// NewRetryDelay creates a RetryDelay value. Delays must not be negative;
// on invalid input an unset delay and an error are returned.
func NewRetryDelay(d time.Duration) (RetryDelay, error) {
	if d < 0 {
		return RetryDelay{}, fmt.Errorf("input is not a valid RetryDelay: %s", d)
	}
	return RetryDelay{value: d, set: true}, nil
}

// MustRetryDelay is the same as NewRetryDelay, but it panics on invalid input.
func MustRetryDelay(d time.Duration) RetryDelay {
	r, err := NewRetryDelay(d)
	if err != nil {
		panic(err)
	}
	return r
}

// IsSet returns true if the receiver holds an explicit delay value.
func (r RetryDelay) IsSet() bool {
	return r.set
}

// Duration returns the delay's value. The value is zero for unset
// delays, make sure to check IsSet before using it.
func (r RetryDelay) Duration() time.Duration {
	return r.value
}

// Millis returns the delay in milliseconds, the unit the protocol uses
// on the wire.
func (r RetryDelay) Millis() int64 {
	return r.value.Milliseconds()
}
