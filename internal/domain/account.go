package domain

import (
	"fmt"
	"strings"
)

// AccountDelimiter separates the account id from the order token in an
// external reference.
const AccountDelimiter = "-"

// Account is a destination store on the order gateway.
type Account struct {
	ID          string
	Credential  string
	DisplayName string
}

// HasCredential reports whether a gateway credential is configured.
func (a Account) HasCredential() bool {
	return strings.TrimSpace(a.Credential) != ""
}

// ParseAccountID extracts the account id from an external reference: the
// substring before the first AccountDelimiter. A reference without the
// delimiter, or with nothing before it, fails with ErrInvalidAccount.
func ParseAccountID(externalRef string) (string, error) {
	id, _, found := strings.Cut(externalRef, AccountDelimiter)
	if !found || id == "" {
		return id, fmt.Errorf("%w: %q", ErrInvalidAccount, externalRef)
	}
	return id, nil
}
