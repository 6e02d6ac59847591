package schedule

import "time"

// Clock supplies the current time. The cancellation deadline and slot
// expiry rules depend on it, so services take a Clock instead of
// calling time.Now, which keeps those rules testable with fixed times.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// NewClock returns a Clock backed by the system time.
func NewClock() Clock { return realClock{} }
