package models

import "time"

// Interval is a half-open time range [Start, End) representing requested or
// reserved occupancy of a resource. All times are stored in UTC.
type Interval struct {
	Start time.Time `bson:"start" json:"start"`
	End   time.Time `bson:"end" json:"end"`
}

// Overlaps reports whether two half-open intervals intersect.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Duration returns the total length of the interval.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Days returns the number of whole days covered by the interval, with any
// partial day rounded up. An empty or inverted interval yields zero.
func (iv Interval) Days() int {
	d := iv.End.Sub(iv.Start)
	if d <= 0 {
		return 0
	}
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// IsValid reports whether the interval is well-formed (Start strictly before End).
func (iv Interval) IsValid() bool {
	return iv.Start.Before(iv.End)
}
