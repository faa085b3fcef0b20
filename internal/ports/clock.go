package ports

import "time"

// Clock abstracts wall-clock time so services can be tested at fixed
// instants.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
