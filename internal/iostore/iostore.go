// Package iostore persists batch runs and their per-building outcomes.
package iostore

import (
	"sync"

	"github.com/fermata-energy/fermata/internal/contract"
)

// RunStoreManager holds the run store shared by the commands of one process.
type RunStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	runs         contract.RunStore
}

var _ contract.StoreManager = &RunStoreManager{} // Compile-time check

// GetRunStore returns the run store, or nil when run tracking is not initialized.
func (mgr *RunStoreManager) GetRunStore() contract.RunStore {
	mgr.RLock()
	defer mgr.RUnlock()
	if mgr.runs == nil {
		return nil
	}
	return mgr.runs
}
