package engine

import "time"

// DayFormat is the calendar-day key used for quota rollover.
const DayFormat = "2006-01-02"

// Clock provides "now" and "today" so status resolution and quota rollover
// stay deterministic in tests.
type Clock interface {
	Now() time.Time
	Today() string
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) Today() string { return time.Now().Format(DayFormat) }

// FixedClock always reports the same instant.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time { return c.At }

func (c FixedClock) Today() string { return c.At.Format(DayFormat) }
