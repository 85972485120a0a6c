package weave

import (
	"time"

	"github.com/iov-one/kitties/errors"
)

// UnixTime is a moment with a precision of a second. Kitties store their
// creation time in this form.
type UnixTime int64

// AsUnixTime drops the sub second part of t.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

// Time returns the moment in UTC.
func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

// Validate rejects moments before the epoch.
func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrapf(errors.ErrState, "time %d before epoch", int64(t))
	}
	return nil
}

func (t UnixTime) String() string {
	return t.Time().Format(time.RFC3339)
}
