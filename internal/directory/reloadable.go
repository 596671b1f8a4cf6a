package directory

import (
	"sync/atomic"

	"github.com/bft-labs/shiprelay/internal/domain"
	"github.com/bft-labs/shiprelay/internal/ports"
)

// Reloadable publishes the current snapshot through an atomic pointer.
// Readers never block; a swap affects only lookups made after it.
type Reloadable struct {
	current atomic.Pointer[Static]
}

// NewReloadable creates a directory serving initial.
func NewReloadable(initial *Static) *Reloadable {
	r := &Reloadable{}
	if initial == nil {
		initial = &Static{accounts: map[string]domain.Account{}}
	}
	r.current.Store(initial)
	return r
}

// Lookup resolves accountID in the current snapshot.
func (r *Reloadable) Lookup(accountID string) (domain.Account, bool) {
	return r.current.Load().Lookup(accountID)
}

// Snapshot returns the snapshot currently being served.
func (r *Reloadable) Snapshot() *Static {
	return r.current.Load()
}

// Swap replaces the snapshot and returns the previous one. A nil snapshot
// is ignored.
func (r *Reloadable) Swap(next *Static) *Static {
	if next == nil {
		return r.current.Load()
	}
	return r.current.Swap(next)
}

var _ ports.AccountDirectory = (*Reloadable)(nil)
