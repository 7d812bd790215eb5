package evolution

import "time"

// periodIndex maps an offset from the plan start to a period index.
// The result is clamped to [0, count-1], so an offset equal to the full span
// lands in the last period even when count*d falls short of it.
func periodIndex(offset, d time.Duration, count int) int {
	if offset <= 0 || d <= 0 {
		return 0
	}
	idx := int(offset / d)
	if idx >= count {
		return count - 1
	}
	return idx
}

// Index returns the period that owns t.
// It reports false when t is zero or outside [Start, End].
func (p *Plan) Index(t time.Time) (int, bool) {
	if t.IsZero() || t.Before(p.Start) || t.After(p.End) {
		return 0, false
	}
	return periodIndex(t.Sub(p.Start), p.Duration, len(p.Periods)), true
}
