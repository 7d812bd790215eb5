package schema

import "time"

// Period is one chronological bucket of the evolution view.
type Period struct {
	Index     int       `json:"index"`
	Label     string    `json:"label"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Correct   int       `json:"correct"`
	Incorrect int       `json:"incorrect"`
	Total     int       `json:"total"`
}

// MetricSeries is one labeled sequence of chart values, parallel to the period labels.
type MetricSeries struct {
	Label  string    `json:"label"`
	Points []float64 `json:"points"`
	Role   ColorRole `json:"color_role"`
}

// EvolutionResult holds the bucketed accuracy evolution.
// Empty is set when no period received an entry; Series is nil in that case.
type EvolutionResult struct {
	Empty   bool           `json:"empty"`
	Metric  Metric         `json:"metric"`
	Start   time.Time      `json:"start"`
	End     time.Time      `json:"end"`
	Labels  []string       `json:"labels"`
	Periods []Period       `json:"periods"`
	Series  []MetricSeries `json:"series,omitempty"`
}

// SubjectResult holds the totals for one subject.
type SubjectResult struct {
	Subject   string  `json:"subject"`
	Correct   int     `json:"correct"`
	Incorrect int     `json:"incorrect"`
	Total     int     `json:"total"`
	Accuracy  float64 `json:"accuracy"`
}

// SubjectsResult holds the per-subject performance view.
type SubjectsResult struct {
	Empty    bool            `json:"empty"`
	Subjects []SubjectResult `json:"subjects"`
}

// WeeklyPoint is the number of questions solved on one day.
type WeeklyPoint struct {
	Date   time.Time `json:"date"`
	Label  string    `json:"label"`
	Solved int       `json:"solved"`
}

// WeeklyResult holds the solves of the last seven days, oldest first.
type WeeklyResult struct {
	Empty bool          `json:"empty"`
	Days  []WeeklyPoint `json:"days"`
}

// SummaryResult holds the overall totals for the filtered attempts.
type SummaryResult struct {
	Empty     bool    `json:"empty"`
	Correct   int     `json:"correct"`
	Incorrect int     `json:"incorrect"`
	Total     int     `json:"total"`
	Accuracy  float64 `json:"accuracy"`
}
