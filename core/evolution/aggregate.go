package evolution

import "github.com/huangsam/studytrack/schema"

// Aggregate counts every in-window entry into exactly one period of the plan.
// Entries without a timestamp or outside the window are skipped.
// It returns the number of entries counted.
func Aggregate(log []schema.LogEntry, p *Plan) int {
	counted := 0
	for _, e := range log {
		idx, ok := p.Index(e.Timestamp)
		if !ok {
			continue
		}
		period := &p.Periods[idx]
		period.Total++
		if e.IsCorrect {
			period.Correct++
		} else {
			period.Incorrect++
		}
		counted++
	}
	return counted
}

// IsEmpty reports whether no period received an entry.
func IsEmpty(periods []schema.Period) bool {
	for _, p := range periods {
		if p.Total > 0 {
			return false
		}
	}
	return true
}
