package evolution

import "github.com/huangsam/studytrack/schema"

// projector turns one part of a period total into a chart value.
type projector func(part, total int) float64

func countsProjector(part, _ int) float64 {
	return float64(part)
}

// percentageProjector returns 0 for empty periods instead of NaN.
func percentageProjector(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// Project converts period counts into the positive and negative series of the metric.
func Project(periods []schema.Period, metric schema.Metric) []schema.MetricSeries {
	fn := countsProjector
	positive, negative := "Correct", "Incorrect"
	if metric == schema.PercentageMetric {
		fn = percentageProjector
		positive, negative = "Correct (%)", "Incorrect (%)"
	}
	return []schema.MetricSeries{
		{Label: positive, Role: schema.PositiveRole, Points: projectPoints(periods, fn, true)},
		{Label: negative, Role: schema.NegativeRole, Points: projectPoints(periods, fn, false)},
	}
}

func projectPoints(periods []schema.Period, fn projector, correct bool) []float64 {
	points := make([]float64, len(periods))
	for i, p := range periods {
		part := p.Incorrect
		if correct {
			part = p.Correct
		}
		points[i] = fn(part, p.Total)
	}
	return points
}
