package iostore

import (
	"fmt"
	"io"
	"slices"

	"github.com/huangsam/studytrack/schema"
)

// GetStatus returns status information about the store.
func (s *StoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:    string(s.backend),
		Connected:  s.db != nil,
		TableSizes: make(map[string]int64),
	}

	if s.disabled() {
		return status, nil
	}

	version, err := schemaVersion(s.db, s.backend)
	if err != nil {
		return status, fmt.Errorf("failed to get schema version: %w", err)
	}
	status.SchemaVersion = version

	for _, table := range allTables {
		var count int64
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, s.backend))
		if err := s.db.QueryRow(query).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	status.TotalAttempts = int(status.TableSizes[attemptsTable])
	status.TotalProgress = int(status.TableSizes[progressTable])
	status.TotalNotebooks = int(status.TableSizes[notebooksTable])

	if status.TotalAttempts > 0 {
		var oldest, last int64
		query := fmt.Sprintf("SELECT MIN(answered_at), MAX(answered_at) FROM %s", quoteTableName(attemptsTable, s.backend))
		if err := s.db.QueryRow(query).Scan(&oldest, &last); err != nil {
			return status, fmt.Errorf("failed to get attempt time range: %w", err)
		}
		status.OldestAttemptTime = fromMillis(oldest)
		status.LastAttemptTime = fromMillis(last)
	}

	return status, nil
}

// PrintStoreStatus writes the store status in a human readable form.
func PrintStoreStatus(w io.Writer, status schema.StoreStatus) {
	_, _ = fmt.Fprintf(w, "Store Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Schema Version: %d\n", status.SchemaVersion)
	_, _ = fmt.Fprintf(w, "Total Attempts: %d\n", status.TotalAttempts)
	if status.TotalAttempts > 0 {
		_, _ = fmt.Fprintf(w, "Last Attempt: %s\n", status.LastAttemptTime.Format("2006-01-02 15:04:05"))
		_, _ = fmt.Fprintf(w, "Oldest Attempt: %s\n", status.OldestAttemptTime.Format("2006-01-02 15:04:05"))
	}
	_, _ = fmt.Fprintf(w, "Tracked Questions: %d\n", status.TotalProgress)
	_, _ = fmt.Fprintf(w, "Notebooks: %d\n", status.TotalNotebooks)
	_, _ = fmt.Fprintln(w, "Table Sizes:")
	tables := make([]string, 0, len(status.TableSizes))
	for table := range status.TableSizes {
		tables = append(tables, table)
	}
	slices.Sort(tables)
	for _, table := range tables {
		_, _ = fmt.Fprintf(w, "  %s: %d rows\n", table, status.TableSizes[table])
	}
}
