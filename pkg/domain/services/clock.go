package services

import "time"

// Clock supplies "today" to date-dependent calculations and timestamps
// generated reports
type Clock interface {
	Now() time.Time
	Today() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

func (SystemClock) Today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FixedClock always returns the same instant
type FixedClock struct {
	Day time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Day
}

func (c FixedClock) Today() time.Time {
	y, m, d := c.Day.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
