package iostore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/studytrack/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var storeBase = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newMemoryStore(t *testing.T) *StoreImpl {
	t.Helper()
	store, err := NewStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func answer(user, question, subject string, correct bool, at time.Time) schema.Attempt {
	return schema.Attempt{UserID: user, QuestionID: question, Subject: subject, Answer: "A", IsCorrect: correct, AnsweredAt: at}
}

func TestStore_NoneBackend(t *testing.T) {
	store, err := NewStore(schema.NoneBackend, "")
	require.NoError(t, err)
	ctx := context.Background()

	id, err := store.RecordAttempt(ctx, answer("ana", "q1", "Math", true, storeBase))
	assert.NoError(t, err)
	assert.Zero(t, id)

	attempts, err := store.ListAttempts(ctx, "ana", schema.AttemptFilter{})
	assert.NoError(t, err)
	assert.Empty(t, attempts)

	progress, err := store.LoadProgress(ctx, "ana")
	assert.NoError(t, err)
	assert.Empty(t, progress)

	assert.NoError(t, store.SaveNotebook(ctx, schema.Notebook{ID: "nb", UserID: "ana"}))
	assert.NoError(t, store.DeleteNotebook(ctx, "ana", "missing"))

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)
	assert.NoError(t, store.Close())
}

func TestStore_RecordAttemptUpsertsProgress(t *testing.T) {
	store := newMemoryStore(t)
	ctx := context.Background()

	id1, err := store.RecordAttempt(ctx, answer("ana", "q1", "Math", false, storeBase))
	require.NoError(t, err)
	id2, err := store.RecordAttempt(ctx, answer("ana", "q1", "Math", true, storeBase.Add(time.Hour)))
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	attempts, err := store.ListAttempts(ctx, "ana", schema.AttemptFilter{})
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.True(t, attempts[0].Review, "wrong answers are flagged for review")
	assert.False(t, attempts[1].Review)
	assert.Equal(t, storeBase, attempts[0].AnsweredAt)

	progress, err := store.LoadProgress(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, progress, 1)
	assert.True(t, progress["q1"].IsCorrect, "progress holds the latest answer")
	assert.False(t, progress["q1"].Review)
	assert.Equal(t, storeBase.Add(time.Hour), progress["q1"].AnsweredAt)
}

func TestStore_RecordAttemptValidation(t *testing.T) {
	store := newMemoryStore(t)
	ctx := context.Background()

	_, err := store.RecordAttempt(ctx, schema.Attempt{UserID: "ana", AnsweredAt: storeBase})
	assert.Error(t, err)
	_, err = store.RecordAttempt(ctx, schema.Attempt{UserID: "ana", QuestionID: "q1"})
	assert.Error(t, err)
}

func TestStore_ListAttemptsFilters(t *testing.T) {
	store := newMemoryStore(t)
	ctx := context.Background()

	batch := []schema.Attempt{
		answer("ana", "q1", "Math", true, storeBase.Add(2*time.Hour)),
		answer("ana", "q2", "math", false, storeBase),
		answer("ana", "q3", "History", false, storeBase.AddDate(0, 0, 3)),
		answer("bob", "q1", "Math", true, storeBase),
	}
	batch[0].Topic = "Algebra"
	n, err := store.ImportAttempts(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	tests := []struct {
		name   string
		filter schema.AttemptFilter
		want   []string
	}{
		{"all, oldest first", schema.AttemptFilter{}, []string{"q2", "q1", "q3"}},
		{"subject ignores case", schema.AttemptFilter{Subject: "MATH"}, []string{"q2", "q1"}},
		{"topic", schema.AttemptFilter{Topic: "algebra"}, []string{"q1"}},
		{"only incorrect", schema.AttemptFilter{OnlyIncorrect: true}, []string{"q2", "q3"}},
		{"start bound is inclusive", schema.AttemptFilter{Start: storeBase.Add(2 * time.Hour)}, []string{"q1", "q3"}},
		{"end bound is inclusive", schema.AttemptFilter{End: storeBase.Add(2 * time.Hour)}, []string{"q2", "q1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts, err := store.ListAttempts(ctx, "ana", tt.filter)
			require.NoError(t, err)
			got := make([]string, len(attempts))
			for i, a := range attempts {
				got[i] = a.QuestionID
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStore_ImportAttemptsIsAtomic(t *testing.T) {
	store := newMemoryStore(t)
	ctx := context.Background()

	_, err := store.ImportAttempts(ctx, []schema.Attempt{
		answer("ana", "q1", "Math", true, storeBase),
		{UserID: "ana", QuestionID: "q2"}, // no timestamp
	})
	require.Error(t, err)

	attempts, err := store.ListAttempts(ctx, "ana", schema.AttemptFilter{})
	require.NoError(t, err)
	assert.Empty(t, attempts)
}

func TestStore_ImportAttemptsKeepsLatestProgress(t *testing.T) {
	store := newMemoryStore(t)
	ctx := context.Background()

	// Rows out of time order: the newer correct answer comes first.
	n, err := store.ImportAttempts(ctx, []schema.Attempt{
		answer("ana", "q1", "Math", true, storeBase.Add(48*time.Hour)),
		answer("ana", "q1", "Math", false, storeBase),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	progress, err := store.LoadProgress(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, progress, 1)
	assert.True(t, progress["q1"].IsCorrect)
	assert.False(t, progress["q1"].Review)
	assert.Equal(t, storeBase.Add(48*time.Hour), progress["q1"].AnsweredAt)

	// A later answer still replaces it.
	_, err = store.RecordAttempt(ctx, answer("ana", "q1", "Math", false, storeBase.Add(72*time.Hour)))
	require.NoError(t, err)
	progress, err = store.LoadProgress(ctx, "ana")
	require.NoError(t, err)
	assert.False(t, progress["q1"].IsCorrect)
	assert.True(t, progress["q1"].Review)
}

func TestStore_ResetProgress(t *testing.T) {
	store := newMemoryStore(t)
	ctx := context.Background()

	var batch []schema.Attempt
	var ids []string
	for i := range resetBatchSize + 20 {
		id := fmt.Sprintf("q%d", i)
		ids = append(ids, id)
		batch = append(batch, answer("ana", id, "Math", i%2 == 0, storeBase))
	}
	batch = append(batch, answer("bob", "q1", "Math", true, storeBase))
	_, err := store.ImportAttempts(ctx, batch)
	require.NoError(t, err)

	removed, err := store.ResetProgress(ctx, "ana", nil)
	require.NoError(t, err)
	assert.Zero(t, removed)

	removed, err = store.ResetProgress(ctx, "ana", append(ids, "unknown"))
	require.NoError(t, err)
	assert.Equal(t, int64(len(ids)), removed)

	progress, err := store.LoadProgress(ctx, "ana")
	require.NoError(t, err)
	assert.Empty(t, progress)

	other, err := store.LoadProgress(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, other, 1, "other users keep their progress")

	attempts, err := store.ListAttempts(ctx, "ana", schema.AttemptFilter{})
	require.NoError(t, err)
	assert.Len(t, attempts, len(ids), "attempt history survives a reset")
}

func TestStore_Notebooks(t *testing.T) {
	store := newMemoryStore(t)
	ctx := context.Background()

	older := schema.Notebook{ID: "nb-1", UserID: "ana", Name: "Algebra", Subject: "Math", QuestionIDs: []string{"q1", "q2"}, CreatedAt: storeBase, Active: true}
	newer := schema.Notebook{ID: "nb-2", UserID: "ana", Name: "Rome", QuestionIDs: []string{"q9"}, CreatedAt: storeBase.Add(time.Minute), Active: true}
	require.NoError(t, store.SaveNotebook(ctx, older))
	require.NoError(t, store.SaveNotebook(ctx, newer))
	assert.Error(t, store.SaveNotebook(ctx, older), "ids are unique")

	notebooks, err := store.ListNotebooks(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, notebooks, 2)
	assert.Equal(t, newer, notebooks[0])
	assert.Equal(t, older, notebooks[1])

	require.NoError(t, store.DeleteNotebook(ctx, "ana", "nb-1"))
	err = store.DeleteNotebook(ctx, "ana", "nb-1")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(store.DeleteNotebook(ctx, "bob", "nb-2"), ErrNotFound), "notebooks are scoped to their user")
}

func TestStore_GetStatus(t *testing.T) {
	store := newMemoryStore(t)
	ctx := context.Background()

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, uint(2), status.SchemaVersion)
	assert.Zero(t, status.TotalAttempts)

	_, err = store.ImportAttempts(ctx, []schema.Attempt{
		answer("ana", "q1", "Math", true, storeBase),
		answer("ana", "q2", "Math", false, storeBase.Add(time.Hour)),
	})
	require.NoError(t, err)

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.Equal(t, 2, status.TotalAttempts)
	assert.Equal(t, 2, status.TotalProgress)
	assert.Equal(t, storeBase, status.OldestAttemptTime)
	assert.Equal(t, storeBase.Add(time.Hour), status.LastAttemptTime)
	assert.Equal(t, int64(2), status.TableSizes[attemptsTable])

	var buf bytes.Buffer
	PrintStoreStatus(&buf, status)
	assert.Contains(t, buf.String(), "Total Attempts: 2")
	assert.Contains(t, buf.String(), "study_attempts: 2 rows")
}

func TestMigrateStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "store.db")

	from, to, err := MigrateStore(schema.SQLiteBackend, dbPath, -1)
	require.NoError(t, err)
	assert.Equal(t, uint(0), from)
	assert.Equal(t, uint(2), to)

	from, to, err = MigrateStore(schema.SQLiteBackend, dbPath, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(2), from)
	assert.Equal(t, uint(1), to)

	_, to, err = MigrateStore(schema.SQLiteBackend, dbPath, 0)
	require.NoError(t, err)
	assert.Equal(t, uint(0), to)

	_, _, err = MigrateStore(schema.NoneBackend, "", -1)
	assert.Error(t, err)
}

func TestExecuteExport(t *testing.T) {
	store := newMemoryStore(t)
	ctx := context.Background()
	out := filepath.Join(t.TempDir(), "attempts.parquet")
	var progress bytes.Buffer

	err := ExecuteExport(ctx, store, "ana", out, &progress)
	assert.ErrorContains(t, err, "no attempts")

	_, err = store.RecordAttempt(ctx, answer("ana", "q1", "Math", true, storeBase))
	require.NoError(t, err)

	assert.Error(t, ExecuteExport(ctx, store, "ana", "", &progress))
	require.NoError(t, ExecuteExport(ctx, store, "ana", out, &progress))
	assert.Contains(t, progress.String(), "Exported 1 attempts")
}

func TestRebind(t *testing.T) {
	q := "SELECT * FROM t WHERE a = ? AND b IN (?, ?)"
	assert.Equal(t, q, rebind(schema.SQLiteBackend, q))
	assert.Equal(t, q, rebind(schema.MySQLBackend, q))
	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND b IN ($2, $3)", rebind(schema.PostgreSQLBackend, q))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?, ?, ?", placeholders(3))
}

func TestTableNames(t *testing.T) {
	for _, table := range append(allTables, migrationsTable) {
		assert.NoError(t, validateTableName(table))
	}
	assert.Error(t, validateTableName("x; DROP TABLE y"))
	assert.Equal(t, "`study_attempts`", quoteTableName(attemptsTable, schema.MySQLBackend))
	assert.Equal(t, `"study_attempts"`, quoteTableName(attemptsTable, schema.PostgreSQLBackend))
}

func TestMySQLDSN(t *testing.T) {
	dsn, err := mysqlDSN("user:pass@tcp(localhost:3306)/study")
	require.NoError(t, err)
	assert.Contains(t, dsn, "multiStatements=true")

	_, err = mysqlDSN("not a dsn")
	assert.Error(t, err)
}

func TestClearStores_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "store.db")
	store, err := NewStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.NoError(t, ClearStores(schema.SQLiteBackend, dbPath, ""))
	require.NoError(t, ClearStores(schema.SQLiteBackend, dbPath, ""), "missing file is not an error")
	assert.Error(t, ClearStores(schema.SQLiteBackend, "", ""))
	assert.NoError(t, ClearStores(schema.NoneBackend, "", ""))
}
