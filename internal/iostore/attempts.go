package iostore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/huangsam/studytrack/schema"
)

// resetBatchSize bounds the number of placeholders in one DELETE statement.
const resetBatchSize = 500

// execer is the subset of *sql.DB and *sql.Tx used by the write helpers.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// RecordAttempt appends the attempt and upserts the progress of its question.
// A wrong answer flags the question for review.
func (s *StoreImpl) RecordAttempt(ctx context.Context, a schema.Attempt) (int64, error) {
	if s.disabled() {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	id, err := s.writeAttempt(ctx, tx, a)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit attempt: %w", err)
	}
	return id, nil
}

// ImportAttempts records every attempt in one transaction.
// Nothing is written when any attempt fails.
func (s *StoreImpl) ImportAttempts(ctx context.Context, attempts []schema.Attempt) (int, error) {
	if s.disabled() || len(attempts) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, a := range attempts {
		if _, err := s.writeAttempt(ctx, tx, a); err != nil {
			return 0, fmt.Errorf("attempt %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}
	return len(attempts), nil
}

// writeAttempt inserts one attempt row and upserts the matching progress row.
func (s *StoreImpl) writeAttempt(ctx context.Context, ex execer, a schema.Attempt) (int64, error) {
	if a.UserID == "" || a.QuestionID == "" {
		return 0, fmt.Errorf("attempt requires a user and a question")
	}
	if a.AnsweredAt.IsZero() {
		return 0, fmt.Errorf("attempt for question %s has no timestamp", a.QuestionID)
	}
	a.Review = !a.IsCorrect

	insert := fmt.Sprintf(`INSERT INTO %s (user_id, question_id, subject, topic, answer, is_correct, review, answered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, quoteTableName(attemptsTable, s.backend))
	args := []any{a.UserID, a.QuestionID, a.Subject, a.Topic, a.Answer, a.IsCorrect, a.Review, toMillis(a.AnsweredAt)}

	var id int64
	switch s.backend {
	case schema.PostgreSQLBackend:
		if err := ex.QueryRowContext(ctx, s.rebind(insert+" RETURNING id"), args...).Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to insert attempt: %w", err)
		}
	default: // SQLite and MySQL
		result, err := ex.ExecContext(ctx, insert, args...)
		if err != nil {
			return 0, fmt.Errorf("failed to insert attempt: %w", err)
		}
		if id, err = result.LastInsertId(); err != nil {
			return 0, fmt.Errorf("failed to read attempt id: %w", err)
		}
	}

	progressArgs := []any{a.UserID, a.QuestionID, a.Answer, a.IsCorrect, a.Review, toMillis(a.AnsweredAt)}
	if _, err := ex.ExecContext(ctx, s.rebind(s.upsertProgressQuery()), progressArgs...); err != nil {
		return 0, fmt.Errorf("failed to upsert progress: %w", err)
	}
	return id, nil
}

// upsertProgressQuery returns the backend's insert-or-update statement for one progress row.
// An existing row is only replaced by an answer at the same time or later.
func (s *StoreImpl) upsertProgressQuery() string {
	table := quoteTableName(progressTable, s.backend)
	switch s.backend {
	case schema.MySQLBackend:
		// Assignments run left to right, so answered_at must be updated last.
		return fmt.Sprintf(`INSERT INTO %s (user_id, question_id, answer, is_correct, review, answered_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE
				answer = IF(VALUES(answered_at) >= answered_at, VALUES(answer), answer),
				is_correct = IF(VALUES(answered_at) >= answered_at, VALUES(is_correct), is_correct),
				review = IF(VALUES(answered_at) >= answered_at, VALUES(review), review),
				answered_at = IF(VALUES(answered_at) >= answered_at, VALUES(answered_at), answered_at)`, table)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf(`INSERT INTO %s (user_id, question_id, answer, is_correct, review, answered_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (user_id, question_id) DO UPDATE SET answer = excluded.answer,
				is_correct = excluded.is_correct, review = excluded.review, answered_at = excluded.answered_at
			WHERE excluded.answered_at >= %s.answered_at`, table, table)
	}
}

// ListAttempts returns the attempts of a user that match the filter, oldest first.
func (s *StoreImpl) ListAttempts(ctx context.Context, userID string, filter schema.AttemptFilter) ([]schema.Attempt, error) {
	if s.disabled() {
		return nil, nil
	}

	var where strings.Builder
	where.WriteString("user_id = ?")
	args := []any{userID}
	if filter.Subject != "" {
		where.WriteString(" AND LOWER(subject) = LOWER(?)")
		args = append(args, filter.Subject)
	}
	if filter.Topic != "" {
		where.WriteString(" AND LOWER(topic) = LOWER(?)")
		args = append(args, filter.Topic)
	}
	if !filter.Start.IsZero() {
		where.WriteString(" AND answered_at >= ?")
		args = append(args, toMillis(filter.Start))
	}
	if !filter.End.IsZero() {
		where.WriteString(" AND answered_at <= ?")
		args = append(args, toMillis(filter.End))
	}
	if filter.OnlyIncorrect {
		where.WriteString(" AND is_correct = ?")
		args = append(args, false)
	}

	query := fmt.Sprintf(`SELECT id, user_id, question_id, subject, topic, answer, is_correct, review, answered_at
		FROM %s WHERE %s ORDER BY answered_at, id`, quoteTableName(attemptsTable, s.backend), where.String())
	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var attempts []schema.Attempt
	for rows.Next() {
		var a schema.Attempt
		var answeredAt int64
		if err := rows.Scan(&a.ID, &a.UserID, &a.QuestionID, &a.Subject, &a.Topic, &a.Answer,
			&a.IsCorrect, &a.Review, &answeredAt); err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		a.AnsweredAt = fromMillis(answeredAt)
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attempts: %w", err)
	}
	return attempts, nil
}

// LoadProgress returns the progress of a user keyed by question ID.
func (s *StoreImpl) LoadProgress(ctx context.Context, userID string) (map[string]schema.Progress, error) {
	progress := make(map[string]schema.Progress)
	if s.disabled() {
		return progress, nil
	}

	query := fmt.Sprintf(`SELECT question_id, answer, is_correct, review, answered_at FROM %s WHERE user_id = ?`,
		quoteTableName(progressTable, s.backend))
	rows, err := s.db.QueryContext(ctx, s.rebind(query), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query progress: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var p schema.Progress
		var answeredAt int64
		if err := rows.Scan(&p.QuestionID, &p.Answer, &p.IsCorrect, &p.Review, &answeredAt); err != nil {
			return nil, fmt.Errorf("failed to scan progress: %w", err)
		}
		p.AnsweredAt = fromMillis(answeredAt)
		progress[p.QuestionID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate progress: %w", err)
	}
	return progress, nil
}

// ResetProgress deletes the progress rows of the given questions in one transaction.
// It returns the number of rows removed.
func (s *StoreImpl) ResetProgress(ctx context.Context, userID string, questionIDs []string) (int64, error) {
	if s.disabled() || len(questionIDs) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	table := quoteTableName(progressTable, s.backend)
	var removed int64
	for start := 0; start < len(questionIDs); start += resetBatchSize {
		batch := questionIDs[start:min(start+resetBatchSize, len(questionIDs))]
		query := fmt.Sprintf("DELETE FROM %s WHERE user_id = ? AND question_id IN (%s)", table, placeholders(len(batch)))
		args := make([]any, 0, len(batch)+1)
		args = append(args, userID)
		for _, id := range batch {
			args = append(args, id)
		}
		result, err := tx.ExecContext(ctx, s.rebind(query), args...)
		if err != nil {
			return 0, fmt.Errorf("failed to reset progress: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to count reset rows: %w", err)
		}
		removed += n
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit progress reset: %w", err)
	}
	return removed, nil
}
