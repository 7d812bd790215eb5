// Package importer reads answer attempts from CSV, JSON and YAML files.
package importer

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/huangsam/studytrack/internal/contract"
	"github.com/huangsam/studytrack/schema"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for files whose extension is not a known import format.
var ErrUnsupportedFormat = errors.New("unsupported import format")

// ErrUserMismatch is returned for a record whose user_id is not the importing user.
var ErrUserMismatch = errors.New("record belongs to another user")

// record is the on-disk shape of one attempt, shared by JSON and YAML.
type record struct {
	UserID     string `json:"user_id" yaml:"user_id"`
	QuestionID string `json:"question_id" yaml:"question_id"`
	Subject    string `json:"subject" yaml:"subject"`
	Topic      string `json:"topic" yaml:"topic"`
	Answer     string `json:"answer" yaml:"answer"`
	IsCorrect  bool   `json:"is_correct" yaml:"is_correct"`
	AnsweredAt string `json:"answered_at" yaml:"answered_at"`
}

// FormatFor returns the import format of a path based on its extension.
func FormatFor(path string) (schema.ImportFormat, error) {
	ext := strings.ToLower(filepath.Ext(path))
	format, ok := schema.ValidImportFormats[ext]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return format, nil
}

// ParseFiles parses every file concurrently and returns the attempts in file order.
// Nothing is returned unless every file parses.
func ParseFiles(ctx context.Context, paths []string, userID string) ([]schema.Attempt, error) {
	results := make([][]schema.Attempt, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			attempts, err := ParseFile(path, userID)
			if err != nil {
				return err
			}
			results[i] = attempts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []schema.Attempt
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}

// ParseFile reads one file. Records without a user take userID; records of another user are rejected.
func ParseFile(path, userID string) ([]schema.Attempt, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	attempts, err := Parse(bytes.NewReader(data), format, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return attempts, nil
}

// Parse decodes attempts of the given format from r.
func Parse(r io.Reader, format schema.ImportFormat, userID string) ([]schema.Attempt, error) {
	var records []record
	switch format {
	case schema.CSVImport:
		var err error
		if records, err = decodeCSV(r); err != nil {
			return nil, err
		}
	case schema.JSONImport:
		if err := json.NewDecoder(r).Decode(&records); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
	case schema.YAMLImport:
		if err := yaml.NewDecoder(r).Decode(&records); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	attempts := make([]schema.Attempt, 0, len(records))
	for i, rec := range records {
		a, err := rec.toAttempt(userID)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		attempts = append(attempts, a)
	}
	return attempts, nil
}

// csvColumns are the accepted CSV header names.
var csvColumns = []string{"user_id", "question_id", "subject", "topic", "answer", "is_correct", "answered_at"}

// decodeCSV reads a CSV file whose first row names the columns.
func decodeCSV(r io.Reader) ([]record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"question_id", "is_correct", "answered_at"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("CSV header is missing column %q", required)
		}
	}

	var records []record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid CSV row: %w", err)
		}

		values := make(map[string]string, len(csvColumns))
		for _, col := range csvColumns {
			if i, ok := index[col]; ok && i < len(row) {
				values[col] = strings.TrimSpace(row[i])
			}
		}
		correct, err := contract.ParseBoolString(values["is_correct"])
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid is_correct: %w", len(records)+2, err)
		}
		records = append(records, record{
			UserID:     values["user_id"],
			QuestionID: values["question_id"],
			Subject:    values["subject"],
			Topic:      values["topic"],
			Answer:     values["answer"],
			IsCorrect:  correct,
			AnsweredAt: values["answered_at"],
		})
	}
	return records, nil
}

// toAttempt validates the record and converts it.
func (rec record) toAttempt(userID string) (schema.Attempt, error) {
	if strings.TrimSpace(rec.QuestionID) == "" {
		return schema.Attempt{}, errors.New("question_id is required")
	}
	answeredAt, err := parseTimestamp(rec.AnsweredAt)
	if err != nil {
		return schema.Attempt{}, err
	}
	if user := strings.TrimSpace(rec.UserID); user != "" && user != userID {
		return schema.Attempt{}, fmt.Errorf("%w: %q is not %q", ErrUserMismatch, user, userID)
	}
	return schema.Attempt{
		UserID:     userID,
		QuestionID: strings.TrimSpace(rec.QuestionID),
		Subject:    strings.TrimSpace(rec.Subject),
		Topic:      strings.TrimSpace(rec.Topic),
		Answer:     rec.Answer,
		IsCorrect:  rec.IsCorrect,
		Review:     !rec.IsCorrect,
		AnsweredAt: answeredAt,
	}, nil
}

// parseTimestamp accepts RFC3339 or a calendar day in UTC.
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("answered_at is required")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(contract.DateFormat, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid answered_at %q. Expected RFC3339 or %s", s, contract.DateFormat)
}
