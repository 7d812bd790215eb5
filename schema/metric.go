package schema

import (
	"fmt"
	"strings"
)

// Metric selects how per-period counts are projected into chart values.
type Metric uint8

// All metrics supported.
const (
	CountsMetric     Metric = iota // absolute correct/incorrect counts (default)
	PercentageMetric               // share of the period total, 0-100
)

// metricNames maps every accepted spelling to its metric.
// The Portuguese names are kept for configs written against older releases.
var metricNames = map[string]Metric{
	"counts":     CountsMetric,
	"count":      CountsMetric,
	"resolucoes": CountsMetric,
	"percentage": PercentageMetric,
	"percent":    PercentageMetric,
	"desempenho": PercentageMetric,
}

// ParseMetric converts a user-supplied name into a Metric.
// An empty string yields CountsMetric.
func ParseMetric(s string) (Metric, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CountsMetric, nil
	}
	m, ok := metricNames[s]
	if !ok {
		return CountsMetric, fmt.Errorf("invalid metric %q. Must be counts or percentage", s)
	}
	return m, nil
}

// String returns the canonical name of the metric.
func (m Metric) String() string {
	switch m {
	case PercentageMetric:
		return "percentage"
	default:
		return "counts"
	}
}

// Unit returns the value suffix used when displaying the metric.
func (m Metric) Unit() string {
	if m == PercentageMetric {
		return "%"
	}
	return ""
}

// MarshalText implements encoding.TextMarshaler.
func (m Metric) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Metric) UnmarshalText(text []byte) error {
	parsed, err := ParseMetric(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
