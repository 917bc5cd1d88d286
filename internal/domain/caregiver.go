package domain

import "time"

// AvailabilityWindow is one weekday's working window for a caregiver.
// Available=false means the caregiver does not work that weekday at all.
type AvailabilityWindow struct {
	Available bool
	Start     TimeOfDay
	End       TimeOfDay
}

// DateRange is an inclusive calendar date range (blackout periods, PTO).
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the given date falls inside the range.
func (r DateRange) Contains(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(r.Start)) && !d.After(DateOnly(r.End))
}

// Caregiver is a field employee as supplied by the record store.
// Home is nil when geocoding of the caregiver's address failed; such a
// caregiver cannot be routed and scores zero distance points.
type Caregiver struct {
	ID             string
	Name           string
	Home           *Coordinates
	MaxWeeklyHours float64
	Certifications []string
	// Indexed by time.Weekday (0 = Sunday).
	Availability [7]AvailabilityWindow
	Blackouts    []DateRange
	Active       bool
}

// MissingCertifications returns the required tags this caregiver is missing.
func (c *Caregiver) MissingCertifications(required []string) []string {
	have := make(map[string]struct{}, len(c.Certifications))
	for _, cert := range c.Certifications {
		have[cert] = struct{}{}
	}

	var missing []string
	for _, req := range required {
		if _, ok := have[req]; !ok {
			missing = append(missing, req)
		}
	}
	return missing
}

// AvailableFor reports whether the weekly availability window fully covers
// the candidate interval on the given date.
func (c *Caregiver) AvailableFor(date time.Time, start, end TimeOfDay) bool {
	w := c.Availability[int(date.Weekday())]
	return w.Available && w.Start <= start && end <= w.End
}

// BlackedOut reports whether any blackout range covers the date.
func (c *Caregiver) BlackedOut(date time.Time) bool {
	for _, r := range c.Blackouts {
		if r.Contains(date) {
			return true
		}
	}
	return false
}
