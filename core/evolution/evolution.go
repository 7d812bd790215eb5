package evolution

import "github.com/huangsam/studytrack/schema"

// Build runs the whole engine: plan the range, count the log, project the metric.
// When no period receives an entry the result is marked Empty and has no series.
func Build(log []schema.LogEntry, r TimeRange, requested int, metric schema.Metric) schema.EvolutionResult {
	p := NewPlan(r, requested)
	Aggregate(log, p)

	result := schema.EvolutionResult{
		Metric:  metric,
		Start:   p.Start,
		End:     p.End,
		Labels:  p.Labels,
		Periods: p.Periods,
	}
	if IsEmpty(p.Periods) {
		result.Empty = true
		return result
	}
	result.Series = Project(p.Periods, metric)
	return result
}
