package agg

import (
	"testing"
	"time"

	"github.com/huangsam/studytrack/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attempt(subject, topic string, correct bool, at time.Time) schema.Attempt {
	return schema.Attempt{Subject: subject, Topic: topic, IsCorrect: correct, AnsweredAt: at}
}

func TestFilterAttempts(t *testing.T) {
	ts := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	attempts := []schema.Attempt{
		attempt("Math", "Algebra", true, ts),
		attempt("math", "Geometry", false, ts),
		attempt("History", "Rome", false, ts),
	}

	tests := []struct {
		name   string
		filter schema.AttemptFilter
		want   int
	}{
		{"no filter", schema.AttemptFilter{}, 3},
		{"subject is case-insensitive", schema.AttemptFilter{Subject: "MATH"}, 2},
		{"subject and topic", schema.AttemptFilter{Subject: "math", Topic: "geometry"}, 1},
		{"only incorrect", schema.AttemptFilter{OnlyIncorrect: true}, 2},
		{"no match", schema.AttemptFilter{Subject: "Biology"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, FilterAttempts(attempts, tt.filter), tt.want)
		})
	}
}

func TestSubjects(t *testing.T) {
	ts := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	attempts := []schema.Attempt{
		attempt("Math", "", true, ts),
		attempt("Math", "", true, ts),
		attempt("Math", "", false, ts),
		attempt("Biology", "", false, ts),
		attempt("Art", "", true, ts),
		attempt("", "", true, ts),
	}

	result := Subjects(attempts, 0)
	require.False(t, result.Empty)
	require.Len(t, result.Subjects, 4)

	assert.Equal(t, "Math", result.Subjects[0].Subject)
	assert.Equal(t, 3, result.Subjects[0].Total)
	assert.Equal(t, 2, result.Subjects[0].Correct)
	assert.Equal(t, 1, result.Subjects[0].Incorrect)
	assert.InDelta(t, 66.666, result.Subjects[0].Accuracy, 0.01)

	// ties on total are ordered by name
	assert.Equal(t, "Art", result.Subjects[1].Subject)
	assert.Equal(t, "Biology", result.Subjects[2].Subject)
	assert.Equal(t, "Unknown", result.Subjects[3].Subject)
	assert.Zero(t, result.Subjects[2].Accuracy)

	limited := Subjects(attempts, 2)
	assert.Len(t, limited.Subjects, 2)

	empty := Subjects(nil, 0)
	assert.True(t, empty.Empty)
}

func TestSubjectsIgnoresCase(t *testing.T) {
	ts := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	attempts := []schema.Attempt{
		attempt("Math", "", true, ts),
		attempt("math", "", false, ts),
		attempt(" MATH ", "", false, ts),
	}

	result := Subjects(attempts, 0)
	require.Len(t, result.Subjects, 1)
	assert.Equal(t, "Math", result.Subjects[0].Subject)
	assert.Equal(t, 1, result.Subjects[0].Correct)
	assert.Equal(t, 2, result.Subjects[0].Incorrect)
	assert.Equal(t, 3, result.Subjects[0].Total)
}

func TestWeekly(t *testing.T) {
	now := time.Date(2026, 10, 14, 15, 0, 0, 0, time.UTC)
	attempts := []schema.Attempt{
		attempt("Math", "", true, now.Add(-time.Hour)),    // today
		attempt("Math", "", false, now.Add(-2*time.Hour)), // today
		attempt("Math", "", true, now.AddDate(0, 0, -1)),  // yesterday
		attempt("Math", "", true, now.AddDate(0, 0, -4)),  // 10/10
		attempt("Math", "", true, now.AddDate(0, 0, -6)),  // 08/10, first day of the window
		attempt("Math", "", true, now.AddDate(0, 0, -7)),  // outside
		attempt("Math", "", true, now.AddDate(0, 0, 1)),   // future
		{Subject: "Math", IsCorrect: true},                // no timestamp
	}

	result := Weekly(attempts, now)
	require.False(t, result.Empty)
	require.Len(t, result.Days, 4)

	assert.Equal(t, "08/10", result.Days[0].Label)
	assert.Equal(t, 1, result.Days[0].Solved)
	assert.Equal(t, "10/10", result.Days[1].Label)
	assert.Equal(t, "Yesterday", result.Days[2].Label)
	assert.Equal(t, "Today", result.Days[3].Label)
	assert.Equal(t, 2, result.Days[3].Solved)
	assert.Equal(t, time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), result.Days[3].Date)
}

func TestWeeklyUsesNowLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	now := time.Date(2026, 10, 14, 10, 0, 0, 0, loc)
	// 01:30 UTC on the 14th is still the 13th in BRT
	late := time.Date(2026, 10, 14, 1, 30, 0, 0, time.UTC)

	result := Weekly([]schema.Attempt{attempt("Math", "", true, late)}, now)
	require.Len(t, result.Days, 1)
	assert.Equal(t, "Yesterday", result.Days[0].Label)
}

func TestWeeklyEmpty(t *testing.T) {
	now := time.Date(2026, 10, 14, 15, 0, 0, 0, time.UTC)
	result := Weekly([]schema.Attempt{attempt("Math", "", true, now.AddDate(0, -1, 0))}, now)
	assert.True(t, result.Empty)
	assert.Empty(t, result.Days)
}

func TestSummary(t *testing.T) {
	ts := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	result := Summary([]schema.Attempt{
		attempt("Math", "", true, ts),
		attempt("Math", "", true, ts),
		attempt("Math", "", true, ts),
		attempt("Art", "", false, ts),
	})
	assert.False(t, result.Empty)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 3, result.Correct)
	assert.Equal(t, 1, result.Incorrect)
	assert.InDelta(t, 75.0, result.Accuracy, 0.0001)

	empty := Summary(nil)
	assert.True(t, empty.Empty)
	assert.Zero(t, empty.Accuracy)
}
