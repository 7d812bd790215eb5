// Package schema has the models shared by all parts of studytrack.
package schema

import "time"

// LogEntry is a single answer event as seen by the aggregation engine.
// A zero Timestamp means the event has no timestamp.
type LogEntry struct {
	Timestamp time.Time
	IsCorrect bool
}

// Attempt is one persisted answer to a practice question.
type Attempt struct {
	ID         int64     `json:"id" yaml:"id"`
	UserID     string    `json:"user_id" yaml:"user_id"`
	QuestionID string    `json:"question_id" yaml:"question_id"`
	Subject    string    `json:"subject" yaml:"subject"`
	Topic      string    `json:"topic" yaml:"topic"`
	Answer     string    `json:"answer" yaml:"answer"`
	IsCorrect  bool      `json:"is_correct" yaml:"is_correct"`
	Review     bool      `json:"review" yaml:"review"`
	AnsweredAt time.Time `json:"answered_at" yaml:"answered_at"`
}

// LogEntry returns the engine view of the attempt.
func (a Attempt) LogEntry() LogEntry {
	return LogEntry{Timestamp: a.AnsweredAt, IsCorrect: a.IsCorrect}
}

// LogEntries converts attempts into engine log entries.
func LogEntries(attempts []Attempt) []LogEntry {
	entries := make([]LogEntry, len(attempts))
	for i, a := range attempts {
		entries[i] = a.LogEntry()
	}
	return entries
}

// AttemptFilter narrows the attempts returned by a store.
// Zero values mean "no restriction".
type AttemptFilter struct {
	Subject       string
	Topic         string
	Start         time.Time
	End           time.Time
	OnlyIncorrect bool
}

// Progress is the latest answer a user gave to one question.
type Progress struct {
	QuestionID string    `json:"question_id"`
	Answer     string    `json:"answer"`
	IsCorrect  bool      `json:"is_correct"`
	Review     bool      `json:"review"`
	AnsweredAt time.Time `json:"answered_at"`
}

// Notebook is a named set of questions a user saved for practice.
type Notebook struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Subject     string    `json:"subject,omitempty"`
	Topic       string    `json:"topic,omitempty"`
	QuestionIDs []string  `json:"question_ids"`
	CreatedAt   time.Time `json:"created_at"`
	Active      bool      `json:"active"`
}
