package schedule

import "time"

// Open reports whether the rule's window is open at the given instant.
// The check is stateless: callers re-read the clock on every evaluation.
// StartSec == EndSec means the window is never open. The interval does not
// wrap across the minute boundary.
func Open(r Rule, now time.Time) bool {
	sec := now.Second()
	return r.StartSec <= sec && sec < r.EndSec
}
