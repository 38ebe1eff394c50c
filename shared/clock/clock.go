// Package clock abstracts "now" so admission-window checks stay testable.
package clock

import (
	"tavolo/shared/timezone"
	"time"
)

type Clock interface {
	Now() time.Time
}

type appClock struct{}

// New returns a Clock reading the current time in the application timezone.
func New() Clock {
	return appClock{}
}

func (appClock) Now() time.Time {
	return timezone.Now()
}

// Fixed returns a Clock frozen at the given instant.
func Fixed(t time.Time) Clock {
	return fixedClock{t: t}
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}
