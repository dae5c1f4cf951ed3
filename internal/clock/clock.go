package clock

import "time"

// Clock supplies the current time so run timestamps can be pinned in tests
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// System returns a Clock backed by time.Now in UTC
func System() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// Fixed is a Clock that always reports the same instant
type Fixed time.Time

// Now implements Clock
func (f Fixed) Now() time.Time {
	return time.Time(f)
}
