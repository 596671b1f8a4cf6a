package directory

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/bft-labs/shiprelay/internal/domain"
)

// accountsFile is the TOML layout of an accounts file:
//
//	[[account]]
//	id = "21633"
//	name = "Amentum Inventory"
//	credential_env = "STORE_21633"
type accountsFile struct {
	Accounts []accountEntry `toml:"account"`
}

type accountEntry struct {
	ID            string `toml:"id"`
	Name          string `toml:"name"`
	Credential    string `toml:"credential"`
	CredentialEnv string `toml:"credential_env"`
}

// LoadFile reads an accounts file and builds a snapshot. credential_env is
// resolved through getenv when no inline credential is set.
func LoadFile(path string, getenv func(string) string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read accounts file: %w", err)
	}
	return Parse(data, getenv)
}

// Parse builds a snapshot from accounts file contents.
func Parse(data []byte, getenv func(string) string) (*Static, error) {
	var f accountsFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse accounts file: %w", err)
	}

	accounts := make([]domain.Account, 0, len(f.Accounts))
	for i, e := range f.Accounts {
		id := strings.TrimSpace(e.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: account #%d has no id", domain.ErrInvalidAccount, i+1)
		}
		if strings.Contains(id, domain.AccountDelimiter) {
			return nil, fmt.Errorf("%w: account id %q contains %q", domain.ErrInvalidAccount, id, domain.AccountDelimiter)
		}
		credential := e.Credential
		if credential == "" && e.CredentialEnv != "" {
			credential = getenv(e.CredentialEnv)
		}
		accounts = append(accounts, domain.Account{
			ID:          id,
			DisplayName: e.Name,
			Credential:  credential,
		})
	}
	return NewStatic(accounts)
}
