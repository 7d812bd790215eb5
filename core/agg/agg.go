// Package agg computes the non-temporal performance views over attempts.
package agg

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/huangsam/studytrack/schema"
)

// FilterAttempts returns the attempts that match the subject, topic and correctness predicates.
// Subject and topic are compared case-insensitively. Time bounds are applied by the store.
func FilterAttempts(attempts []schema.Attempt, f schema.AttemptFilter) []schema.Attempt {
	out := make([]schema.Attempt, 0, len(attempts))
	for _, a := range attempts {
		if f.Subject != "" && !strings.EqualFold(a.Subject, f.Subject) {
			continue
		}
		if f.Topic != "" && !strings.EqualFold(a.Topic, f.Topic) {
			continue
		}
		if f.OnlyIncorrect && a.IsCorrect {
			continue
		}
		out = append(out, a)
	}
	return out
}

// accuracy returns correct/total as a percentage, 0 when total is 0.
func accuracy(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

// Subjects groups attempts by subject, sorted by total desc then name.
// A positive limit truncates the result.
func Subjects(attempts []schema.Attempt, limit int) schema.SubjectsResult {
	bySubject := make(map[string]*schema.SubjectResult)
	for _, a := range attempts {
		name := strings.TrimSpace(a.Subject)
		if name == "" {
			name = "Unknown"
		}
		// Grouped like the subject filter matches: case-insensitively, first spelling shown.
		key := strings.ToLower(name)
		s, ok := bySubject[key]
		if !ok {
			s = &schema.SubjectResult{Subject: name}
			bySubject[key] = s
		}
		s.Total++
		if a.IsCorrect {
			s.Correct++
		} else {
			s.Incorrect++
		}
	}

	subjects := make([]schema.SubjectResult, 0, len(bySubject))
	for _, s := range bySubject {
		s.Accuracy = accuracy(s.Correct, s.Total)
		subjects = append(subjects, *s)
	}
	slices.SortFunc(subjects, func(a, b schema.SubjectResult) int {
		if c := cmp.Compare(b.Total, a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.Subject, b.Subject)
	})
	if limit > 0 && len(subjects) > limit {
		subjects = subjects[:limit]
	}
	return schema.SubjectsResult{Empty: len(subjects) == 0, Subjects: subjects}
}

// Weekly counts the attempts answered on each of the last seven days ending on now's day.
// Days without attempts are dropped. Days are computed in now's location.
func Weekly(attempts []schema.Attempt, now time.Time) schema.WeeklyResult {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	first := today.AddDate(0, 0, -(schema.WeeklyWindowDays - 1))

	var counts [schema.WeeklyWindowDays]int
	for _, a := range attempts {
		if a.AnsweredAt.IsZero() {
			continue
		}
		ay, am, ad := a.AnsweredAt.In(now.Location()).Date()
		answered := time.Date(ay, am, ad, 0, 0, 0, 0, now.Location())
		if answered.Before(first) || answered.After(today) {
			continue
		}
		counts[dayOffset(first, answered)]++
	}

	var days []schema.WeeklyPoint
	for i, solved := range counts {
		if solved == 0 {
			continue
		}
		date := first.AddDate(0, 0, i)
		days = append(days, schema.WeeklyPoint{
			Date:   date,
			Label:  weeklyLabel(i, date),
			Solved: solved,
		})
	}
	return schema.WeeklyResult{Empty: len(days) == 0, Days: days}
}

// dayOffset counts calendar days between two midnights in the same location.
func dayOffset(first, day time.Time) int {
	for i := range schema.WeeklyWindowDays {
		if first.AddDate(0, 0, i).Equal(day) {
			return i
		}
	}
	return schema.WeeklyWindowDays - 1
}

func weeklyLabel(i int, date time.Time) string {
	switch i {
	case schema.WeeklyWindowDays - 1:
		return "Today"
	case schema.WeeklyWindowDays - 2:
		return "Yesterday"
	default:
		return date.Format("02/01")
	}
}

// Summary totals every attempt.
func Summary(attempts []schema.Attempt) schema.SummaryResult {
	var s schema.SummaryResult
	for _, a := range attempts {
		s.Total++
		if a.IsCorrect {
			s.Correct++
		} else {
			s.Incorrect++
		}
	}
	s.Empty = s.Total == 0
	s.Accuracy = accuracy(s.Correct, s.Total)
	return s
}
