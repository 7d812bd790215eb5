package iostore

import (
	"context"

	"github.com/huangsam/studytrack/internal/contract"
	"github.com/huangsam/studytrack/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetAttemptStore implements the StoreManager interface.
func (m *MockStoreManager) GetAttemptStore() contract.AttemptStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.AttemptStore)
	return store
}

// GetNotebookStore implements the StoreManager interface.
func (m *MockStoreManager) GetNotebookStore() contract.NotebookStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.NotebookStore)
	return store
}

// MockAttemptStore is a mock implementation of AttemptStore for testing.
type MockAttemptStore struct {
	mock.Mock
}

var _ contract.AttemptStore = &MockAttemptStore{} // Compile-time check

// RecordAttempt implements the AttemptStore interface.
func (m *MockAttemptStore) RecordAttempt(ctx context.Context, a schema.Attempt) (int64, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(int64), args.Error(1)
}

// ImportAttempts implements the AttemptStore interface.
func (m *MockAttemptStore) ImportAttempts(ctx context.Context, attempts []schema.Attempt) (int, error) {
	args := m.Called(ctx, attempts)
	return args.Int(0), args.Error(1)
}

// ListAttempts implements the AttemptStore interface.
func (m *MockAttemptStore) ListAttempts(ctx context.Context, userID string, filter schema.AttemptFilter) ([]schema.Attempt, error) {
	args := m.Called(ctx, userID, filter)
	attempts, _ := args.Get(0).([]schema.Attempt)
	return attempts, args.Error(1)
}

// LoadProgress implements the AttemptStore interface.
func (m *MockAttemptStore) LoadProgress(ctx context.Context, userID string) (map[string]schema.Progress, error) {
	args := m.Called(ctx, userID)
	progress, _ := args.Get(0).(map[string]schema.Progress)
	return progress, args.Error(1)
}

// ResetProgress implements the AttemptStore interface.
func (m *MockAttemptStore) ResetProgress(ctx context.Context, userID string, questionIDs []string) (int64, error) {
	args := m.Called(ctx, userID, questionIDs)
	return args.Get(0).(int64), args.Error(1)
}

// GetStatus implements the AttemptStore interface.
func (m *MockAttemptStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the AttemptStore interface.
func (m *MockAttemptStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockNotebookStore is a mock implementation of NotebookStore for testing.
type MockNotebookStore struct {
	mock.Mock
}

var _ contract.NotebookStore = &MockNotebookStore{} // Compile-time check

// SaveNotebook implements the NotebookStore interface.
func (m *MockNotebookStore) SaveNotebook(ctx context.Context, nb schema.Notebook) error {
	args := m.Called(ctx, nb)
	return args.Error(0)
}

// ListNotebooks implements the NotebookStore interface.
func (m *MockNotebookStore) ListNotebooks(ctx context.Context, userID string) ([]schema.Notebook, error) {
	args := m.Called(ctx, userID)
	notebooks, _ := args.Get(0).([]schema.Notebook)
	return notebooks, args.Error(1)
}

// DeleteNotebook implements the NotebookStore interface.
func (m *MockNotebookStore) DeleteNotebook(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// Close implements the NotebookStore interface.
func (m *MockNotebookStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
