// Package iostore persists answer attempts, question progress and notebooks.
package iostore

import (
	"sync"

	"github.com/huangsam/studytrack/internal/contract"
)

// StoreManagerImpl manages the attempt and notebook stores.
type StoreManagerImpl struct {
	sync.RWMutex // Protects the store pointers during initialization
	attempts     contract.AttemptStore
	notebooks    contract.NotebookStore
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// NewStoreManager returns a manager over an already opened store.
func NewStoreManager(attempts contract.AttemptStore, notebooks contract.NotebookStore) *StoreManagerImpl {
	return &StoreManagerImpl{attempts: attempts, notebooks: notebooks}
}

// GetAttemptStore returns the AttemptStore.
func (mgr *StoreManagerImpl) GetAttemptStore() contract.AttemptStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.attempts
}

// GetNotebookStore returns the NotebookStore.
func (mgr *StoreManagerImpl) GetNotebookStore() contract.NotebookStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.notebooks
}
