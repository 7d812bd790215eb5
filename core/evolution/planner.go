// Package evolution buckets an answer log into chronological periods for trend output.
//
// Every call builds its own periods; nothing is cached between calls.
package evolution

import (
	"time"

	"github.com/huangsam/studytrack/schema"
)

const day = 24 * time.Hour

// TimeRange is the window to plan. A nil Start means the unbounded past.
type TimeRange struct {
	Start *time.Time
	End   time.Time
}

// Plan holds the resolved window and its contiguous periods.
type Plan struct {
	Start    time.Time
	End      time.Time
	Duration time.Duration // length of every period except possibly the last
	Periods  []schema.Period
	Labels   []string
}

// ResolveStart returns the concrete start of the range.
// An unbounded start becomes six months before End, at start-of-day in End's location.
// A start after End collapses to End.
func ResolveStart(r TimeRange) time.Time {
	if r.Start == nil {
		back := r.End.AddDate(0, -schema.DefaultLookbackMon, 0)
		y, m, d := back.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, r.End.Location())
	}
	start := r.Start.In(r.End.Location())
	if start.After(r.End) {
		return r.End
	}
	return start
}

// PeriodCount returns how many periods a window of the given span gets.
// Spans of at most 15 days get one period per day, overriding requested.
func PeriodCount(span time.Duration, requested int) int {
	if requested <= 0 {
		requested = schema.DefaultPeriods
	}
	dayDiff := int((span + day - 1) / day)
	if dayDiff <= schema.DayGranularityMax {
		return max(1, dayDiff)
	}
	return requested
}

// NewPlan resolves the range and partitions it into periods.
func NewPlan(r TimeRange, requested int) *Plan {
	start := ResolveStart(r)
	end := r.End
	span := end.Sub(start)

	count := PeriodCount(span, requested)
	d := max(time.Millisecond, span/time.Duration(count))

	p := &Plan{
		Start:    start,
		End:      end,
		Duration: d,
		Periods:  make([]schema.Period, count),
		Labels:   make([]string, count),
	}
	for i := range count {
		ps := start.Add(time.Duration(i) * d)
		pe := end
		if i < count-1 {
			pe = start.Add(time.Duration(i+1)*d - time.Millisecond)
		}
		label := periodLabel(ps, pe, count)
		p.Periods[i] = schema.Period{Index: i, Label: label, Start: ps, End: pe}
		p.Labels[i] = label
	}
	return p
}

// periodLabel names a period by its start day for short plans and by its span otherwise.
func periodLabel(start, end time.Time, count int) string {
	if count <= schema.DayGranularityMax {
		return start.Format("02/01")
	}
	return start.Format("02/01") + "-" + end.Format("02/01")
}
