// Package directory provides account directories for the relay: an
// immutable snapshot built from a list of accounts, the built-in store
// table, an accounts file loader and a reloadable wrapper that swaps
// snapshots atomically.
package directory

import (
	"fmt"
	"sort"

	"github.com/bft-labs/shiprelay/internal/domain"
	"github.com/bft-labs/shiprelay/internal/ports"
)

// Static is an immutable account snapshot. It is safe for concurrent reads.
type Static struct {
	accounts map[string]domain.Account
}

// NewStatic builds a snapshot from accounts. An empty id fails with
// ErrInvalidAccount and a repeated id with ErrDuplicateAccount.
func NewStatic(accounts []domain.Account) (*Static, error) {
	m := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		if a.ID == "" {
			return nil, fmt.Errorf("%w: empty account id", domain.ErrInvalidAccount)
		}
		if _, exists := m[a.ID]; exists {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateAccount, a.ID)
		}
		m[a.ID] = a
	}
	return &Static{accounts: m}, nil
}

// Lookup returns the account with the given id.
func (s *Static) Lookup(accountID string) (domain.Account, bool) {
	a, ok := s.accounts[accountID]
	return a, ok
}

// Len returns the number of accounts.
func (s *Static) Len() int {
	return len(s.accounts)
}

// IDs returns the account ids in sorted order.
func (s *Static) IDs() []string {
	ids := make([]string, 0, len(s.accounts))
	for id := range s.accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Configured returns how many accounts carry a credential.
func (s *Static) Configured() int {
	n := 0
	for _, a := range s.accounts {
		if a.HasCredential() {
			n++
		}
	}
	return n
}

var _ ports.AccountDirectory = (*Static)(nil)
