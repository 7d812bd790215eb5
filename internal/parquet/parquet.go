// Package parquet provides data structures and functions for exporting studytrack
// data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/studytrack/schema"
	"github.com/parquet-go/parquet-go"
)

// AttemptRecord represents a single persisted answer attempt.
// This struct maps to the study_attempts database table.
type AttemptRecord struct {
	// ID is the store-assigned identifier of the attempt
	ID int64 `parquet:"id,snappy"`

	UserID     string `parquet:"user_id,snappy,dict"`
	QuestionID string `parquet:"question_id,snappy"`
	Subject    string `parquet:"subject,snappy,dict"`

	// Topic is nullable since many questions are only filed under a subject
	Topic *string `parquet:"topic,optional,snappy,dict"`

	Answer    string `parquet:"answer,snappy"`
	IsCorrect bool   `parquet:"is_correct"`

	// Review is set for wrong answers so the question resurfaces
	Review bool `parquet:"review"`

	// AnsweredAt is when the answer was given (stored as TIMESTAMP)
	AnsweredAt time.Time `parquet:"answered_at,snappy"`
}

// PeriodRecord represents one bucket of an evolution result.
type PeriodRecord struct {
	Index       int32     `parquet:"period_index"`
	Label       string    `parquet:"label,snappy"`
	PeriodStart time.Time `parquet:"period_start,snappy"`
	PeriodEnd   time.Time `parquet:"period_end,snappy"`
	Correct     int32     `parquet:"correct"`
	Incorrect   int32     `parquet:"incorrect"`
	Total       int32     `parquet:"total"`

	// Metric names the projection of the two value columns (counts or percentage)
	Metric   string  `parquet:"metric,dict"`
	Positive float64 `parquet:"positive_value"`
	Negative float64 `parquet:"negative_value"`
}

// ConvertAttempts converts schema.Attempt values to AttemptRecord for Parquet export.
func ConvertAttempts(attempts []schema.Attempt) []AttemptRecord {
	result := make([]AttemptRecord, len(attempts))
	for i, a := range attempts {
		result[i] = AttemptRecord{
			ID:         a.ID,
			UserID:     a.UserID,
			QuestionID: a.QuestionID,
			Subject:    a.Subject,
			Answer:     a.Answer,
			IsCorrect:  a.IsCorrect,
			Review:     a.Review,
			AnsweredAt: a.AnsweredAt,
		}
		if a.Topic != "" {
			topic := a.Topic
			result[i].Topic = &topic
		}
	}
	return result
}

// ConvertEvolution flattens an evolution result into one record per period.
// Value columns are zero when the result is empty.
func ConvertEvolution(result schema.EvolutionResult) []PeriodRecord {
	records := make([]PeriodRecord, len(result.Periods))
	for i, p := range result.Periods {
		records[i] = PeriodRecord{
			Index:       int32(p.Index),
			Label:       p.Label,
			PeriodStart: p.Start,
			PeriodEnd:   p.End,
			Correct:     int32(p.Correct),
			Incorrect:   int32(p.Incorrect),
			Total:       int32(p.Total),
			Metric:      result.Metric.String(),
		}
		for _, s := range result.Series {
			if i >= len(s.Points) {
				continue
			}
			switch s.Role {
			case schema.PositiveRole:
				records[i].Positive = s.Points[i]
			case schema.NegativeRole:
				records[i].Negative = s.Points[i]
			}
		}
	}
	return records
}

// Write encodes rows of any struct type into Parquet on w.
// The schema is derived from the struct tags of T.
func Write[T any](w io.Writer, rows []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet data: %w", err)
	}
	return nil
}

// WriteAttemptsFile writes attempt records to a new Parquet file at outputPath.
func WriteAttemptsFile(data []AttemptRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := Write(file, data); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
