// Package clock provides the UTC timestamp source used for record provenance.
package clock

import "time"

// Clock reports the current time.
type Clock interface {
	// Now returns the current instant.
	Now() time.Time
}

// systemClock implements Clock using the wall clock.
type systemClock struct{}

// System returns a Clock backed by time.Now, normalised to UTC.
//
// Postcondition: Every value returned by Now has location UTC.
func System() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// Fixed is a Clock that always reports the same instant. Tests advance it by
// assigning to T.
type Fixed struct {
	T time.Time
}

// Now returns f.T in UTC.
func (f *Fixed) Now() time.Time {
	return f.T.UTC()
}

// Advance moves the fixed clock forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.T = f.T.Add(d)
}
