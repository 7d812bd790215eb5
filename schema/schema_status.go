package schema

import "time"

// StoreStatus represents the status of the attempt and notebook stores.
type StoreStatus struct {
	Backend           string           `json:"backend"`
	Connected         bool             `json:"connected"`
	SchemaVersion     uint             `json:"schema_version"`
	TotalAttempts     int              `json:"total_attempts"`
	TotalProgress     int              `json:"total_progress"`
	TotalNotebooks    int              `json:"total_notebooks"`
	LastAttemptTime   time.Time        `json:"last_attempt_time"`
	OldestAttemptTime time.Time        `json:"oldest_attempt_time"`
	TableSizes        map[string]int64 `json:"table_sizes"`
}
