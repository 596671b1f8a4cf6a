package ports

import "github.com/bft-labs/shiprelay/internal/domain"

// AccountDirectory maps account ids to accounts.
// Implementations must be safe for unlimited concurrent readers.
type AccountDirectory interface {
	Lookup(accountID string) (domain.Account, bool)
}
