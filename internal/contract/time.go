package contract

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateFormat is the calendar-day format accepted for --start and --end.
const DateFormat = "2006-01-02"

// ErrInvalidTimeRange is returned when the start of a window is after its end.
var ErrInvalidTimeRange = errors.New("invalid time range")

// Define the regular expression to capture "N [units] ago"
// e.g., "2 years ago", "3 months ago", "1 week ago".
var relativeTimeRe = regexp.MustCompile(`^(\d+)\s+(year|month|week|day|hour|minute)s?\s+ago$`)

// ParseRelativeTime converts strings like "2 years ago" into a time.Time in the past.
func ParseRelativeTime(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	matches := relativeTimeRe.FindStringSubmatch(s)

	if len(matches) == 0 {
		return time.Time{}, fmt.Errorf("invalid relative time format: %s", s)
	}

	// 1: Value (e.g., "2")
	// 2: Unit (e.g., "year" or "month")
	value, err := strconv.Atoi(matches[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid relative time value: %s", matches[1])
	}

	switch matches[2] {
	case "year":
		return now.AddDate(-value, 0, 0), nil
	case "month":
		return now.AddDate(0, -value, 0), nil
	case "week":
		return now.AddDate(0, 0, -7*value), nil
	case "day":
		return now.AddDate(0, 0, -value), nil
	case "hour":
		return now.Add(time.Duration(-value) * time.Hour), nil
	default: // minute
		return now.Add(time.Duration(-value) * time.Minute), nil
	}
}

// ParseTimeBound parses an absolute or relative time for one end of a window.
// Accepted forms: RFC3339, 2006-01-02 in loc, "today", "N units ago".
// A calendar day used as an end bound means the last millisecond of that day.
func ParseTimeBound(s string, now time.Time, loc *time.Location, isEnd bool) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}

	var day time.Time
	if strings.EqualFold(s, "today") {
		y, m, d := now.In(loc).Date()
		day = time.Date(y, m, d, 0, 0, 0, 0, loc)
	} else if t, err := time.ParseInLocation(DateFormat, s, loc); err == nil {
		day = t
	}
	if !day.IsZero() {
		if isEnd {
			return day.AddDate(0, 0, 1).Add(-time.Millisecond), nil
		}
		return day, nil
	}

	t, err := ParseRelativeTime(s, now.In(loc))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format for '%s'. Expected RFC3339, %s, today or 'N [units] ago'", s, DateFormat)
	}
	return t, nil
}
