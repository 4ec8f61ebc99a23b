package ports

import "time"

// Clock abstracts the current time so that deadlines can be tested without
// waiting.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// SystemClock is the wall clock in UTC.
var SystemClock Clock = systemClock{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}
