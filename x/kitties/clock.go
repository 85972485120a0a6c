package kitties

import (
	"time"

	"github.com/iov-one/kitties/weave"
)

// Clock tells the creation time of new kitties.
type Clock interface {
	Now() (time.Time, error)
}

// ClockFunc is a function that implements Clock.
type ClockFunc func() (time.Time, error)

func (fn ClockFunc) Now() (time.Time, error) {
	return fn()
}

// BlockClock returns the time of the block being processed.
func BlockClock(ctx weave.Context) Clock {
	return ClockFunc(func() (time.Time, error) {
		return weave.BlockTime(ctx)
	})
}

// FixedClock always returns the same time.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() (time.Time, error) {
		return t, nil
	})
}
