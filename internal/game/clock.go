package game

import "time"

// Clock supplies wall-clock time. Tests swap in a fake.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
