package iostore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/studytrack/schema"
)

// SaveNotebook stores a new notebook.
func (s *StoreImpl) SaveNotebook(ctx context.Context, nb schema.Notebook) error {
	if s.disabled() {
		return nil
	}
	if nb.ID == "" || nb.UserID == "" {
		return fmt.Errorf("notebook requires an id and a user")
	}

	ids, err := json.Marshal(nb.QuestionIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal question ids: %w", err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, user_id, name, subject, topic, question_ids, created_at, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, quoteTableName(notebooksTable, s.backend))
	_, err = s.db.ExecContext(ctx, s.rebind(query),
		nb.ID, nb.UserID, nb.Name, nb.Subject, nb.Topic, string(ids), toMillis(nb.CreatedAt), nb.Active)
	if err != nil {
		return fmt.Errorf("failed to insert notebook: %w", err)
	}
	return nil
}

// ListNotebooks returns the notebooks of a user, newest first.
func (s *StoreImpl) ListNotebooks(ctx context.Context, userID string) ([]schema.Notebook, error) {
	if s.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT id, user_id, name, subject, topic, question_ids, created_at, active
		FROM %s WHERE user_id = ? ORDER BY created_at DESC, id`, quoteTableName(notebooksTable, s.backend))
	rows, err := s.db.QueryContext(ctx, s.rebind(query), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notebooks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var notebooks []schema.Notebook
	for rows.Next() {
		var nb schema.Notebook
		var ids string
		var createdAt int64
		if err := rows.Scan(&nb.ID, &nb.UserID, &nb.Name, &nb.Subject, &nb.Topic, &ids, &createdAt, &nb.Active); err != nil {
			return nil, fmt.Errorf("failed to scan notebook: %w", err)
		}
		if err := json.Unmarshal([]byte(ids), &nb.QuestionIDs); err != nil {
			return nil, fmt.Errorf("notebook %s has malformed question ids: %w", nb.ID, err)
		}
		nb.CreatedAt = fromMillis(createdAt)
		notebooks = append(notebooks, nb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notebooks: %w", err)
	}
	return notebooks, nil
}

// DeleteNotebook removes one notebook of a user. It returns ErrNotFound when nothing matched.
func (s *StoreImpl) DeleteNotebook(ctx context.Context, userID, id string) error {
	if s.disabled() {
		return nil
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE user_id = ? AND id = ?", quoteTableName(notebooksTable, s.backend))
	result, err := s.db.ExecContext(ctx, s.rebind(query), userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete notebook: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count deleted notebooks: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("notebook %s: %w", id, ErrNotFound)
	}
	return nil
}
