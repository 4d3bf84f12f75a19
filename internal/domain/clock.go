package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock supplies the current time for form defaults and audit timestamps.
// Tests and fixture generators freeze it via SetClock.
var clock = clockwork.NewRealClock()

// Now returns the current time from the package clock.
func Now() time.Time {
	return clock.Now()
}

// SetClock swaps the package time source. Pass nil to restore the real clock.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
